// Package secrets resolves CLAUDIUS_SECRET_* environment variables
// through the configured secret manager before handing them to a child
// process.
package secrets

import (
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/thoreinstein/claudius/internal/config"
	"github.com/thoreinstein/claudius/internal/errors"
)

// MockEnvVar switches 1Password reads to a fixed in-process table so
// integration tests never shell out.
const MockEnvVar = "CLAUDIUS_TEST_MOCK_OP"

// ProfileEnvVar enables the resolution performance summary.
const ProfileEnvVar = "CLAUDIUS_PROFILE"

// Resolver resolves secret references found in CLAUDIUS_SECRET_*
// environment variables. Safe for concurrent use.
type Resolver struct {
	manager *config.SecretManager
	logger  *slog.Logger

	mu      sync.Mutex
	cache   map[string]string
	metrics ResolutionMetrics
}

// NewResolver creates a Resolver for the given secret manager config.
// A nil manager means references pass through unchanged.
func NewResolver(manager *config.SecretManager, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		manager: manager,
		logger:  logger,
		cache:   make(map[string]string),
	}
}

// ResolveEnvVars runs the full resolution pipeline: collect
// CLAUDIUS_SECRET_* variables, resolve their secret references, expand
// cross-variable references, and strip the prefix from the result keys.
func (r *Resolver) ResolveEnvVars() (map[string]string, error) {
	start := time.Now()

	collected := r.collectSecrets()

	resolved := r.resolveParallel(collected)

	expanded, err := ExpandVariables(resolved, map[string]string{}, r.logger)
	if err != nil {
		return nil, err
	}

	result := removePrefixes(expanded)

	r.mu.Lock()
	r.metrics.TotalDuration = time.Since(start)
	if _, ok := os.LookupEnv(ProfileEnvVar); ok {
		r.metrics.LogSummary(r.logger)
	}
	r.mu.Unlock()

	return result, nil
}

func (r *Resolver) collectSecrets() map[string]string {
	secrets := make(map[string]string)
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if ok && strings.HasPrefix(key, SecretPrefix) {
			secrets[key] = value
		}
	}

	r.mu.Lock()
	r.metrics.TotalSecrets = len(secrets)
	r.mu.Unlock()

	r.logger.Debug("collected secret variables", "count", len(secrets))
	return secrets
}

// resolveParallel resolves every collected variable through a bounded
// pool of workers so a large environment cannot fork an op subprocess
// per variable all at once.
func (r *Resolver) resolveParallel(secrets map[string]string) map[string]string {
	resolved := make(map[string]string, len(secrets))
	if len(secrets) == 0 {
		return resolved
	}

	workers := runtime.NumCPU()
	if workers > len(secrets) {
		workers = len(secrets)
	}

	type entry struct {
		key   string
		value string
	}
	jobs := make(chan entry)

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				final := r.resolveValue(job.key, job.value)
				mu.Lock()
				resolved[job.key] = final
				mu.Unlock()
			}
		}()
	}

	for key, value := range secrets {
		jobs <- entry{key: key, value: value}
	}
	close(jobs)
	wg.Wait()

	return resolved
}

// resolveValue resolves one variable's value through the configured
// manager, or returns it unchanged when nothing applies.
func (r *Resolver) resolveValue(key, value string) string {
	if r.manager == nil {
		return value
	}

	switch r.manager.Type {
	case config.SecretManagerVault:
		r.logger.Warn("Vault secret manager is configured but not yet implemented. Skipping resolution for " + key)
		return value
	case config.SecretManagerOnePassword:
		if !strings.Contains(value, "op://") {
			return value
		}
		return r.resolveInlineReferences(value)
	default:
		return value
	}
}

// resolveInlineReferences substitutes every op:// reference in the
// value. Delimited {{op://...}} references go first since they are
// unambiguous, then bare references for backward compatibility.
func (r *Resolver) resolveInlineReferences(value string) string {
	result := r.resolveDelimitedReferences(value)
	return r.resolveBareReferences(result)
}

func (r *Resolver) resolveDelimitedReferences(value string) string {
	var b strings.Builder
	remaining := value

	for {
		start := strings.Index(remaining, "{{op://")
		if start < 0 {
			break
		}
		b.WriteString(remaining[:start])

		refStart := start + 2
		end := strings.Index(remaining[refStart:], "}}")
		if end < 0 {
			r.logger.Warn("Unclosed delimiter", "position", start)
			b.WriteString("{{op://")
			remaining = remaining[start+7:]
			continue
		}

		ref := remaining[refStart : refStart+end]
		b.WriteString(r.resolveWithCache(ref))
		remaining = remaining[refStart+end+2:]
	}

	b.WriteString(remaining)
	return b.String()
}

func (r *Resolver) resolveBareReferences(value string) string {
	var b strings.Builder
	remaining := value

	for {
		start := strings.Index(remaining, "op://")
		if start < 0 {
			break
		}
		prefix := remaining[:start]
		b.WriteString(prefix)

		isURLContext := start > 0 &&
			(strings.HasSuffix(prefix, "/") || strings.HasSuffix(prefix, "="))

		ref := extractOpReference(remaining[start:])

		if isURLContext && strings.Contains(ref, " ") {
			r.logger.Warn("Ambiguous op:// reference in URL context. Consider using {{op://...}} syntax for clarity.",
				"ref", ref,
			)
		}

		b.WriteString(r.resolveWithCache(ref))
		remaining = remaining[start+len(ref):]
	}

	b.WriteString(remaining)
	return b.String()
}

// resolveWithCache reads a reference through the secret manager at most
// once per run. Failed reads keep the literal reference.
func (r *Resolver) resolveWithCache(ref string) string {
	r.mu.Lock()
	cached, ok := r.cache[ref]
	r.mu.Unlock()
	if ok {
		r.logger.Debug("using cached value", "ref", ref)
		return cached
	}

	start := time.Now()
	secret, err := readOnePasswordReference(ref)
	duration := time.Since(start)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.logger.Warn("failed to resolve reference", "ref", ref, "duration", duration, "error", err)
		r.metrics.AddOpCall(ref, duration, false)
		return ref
	}

	r.metrics.AddOpCall(ref, duration, true)
	r.cache[ref] = secret
	return secret
}

// extractOpReference cuts an op:// reference out of text that starts
// with one. References are op://vault/item/field, optionally with a
// section segment, but values may embed them mid-string, so the end is
// found heuristically.
func extractOpReference(text string) string {
	if !strings.HasPrefix(text, "op://") {
		return ""
	}

	// Space-terminated reference wins when enough path segments precede it.
	if spacePos := strings.IndexByte(text, ' '); spacePos >= 0 {
		before := text[:spacePos]
		if strings.Count(before, "/")+1 >= 5 {
			return before
		}
	}

	parts := strings.Split(text, "/")

	// Minimum shape is op:, "", vault, item, field.
	if len(parts) <= 5 {
		return text
	}

	// A second op:// reference ends this one.
	for i := 5; i < len(parts); i++ {
		if parts[i] == "op:" && i+1 < len(parts) && parts[i+1] == "" {
			return strings.Join(parts[:i], "/")
		}
	}

	// A URL path component after the field means the reference stops at
	// the standard five segments.
	if isURLPathComponent(parts[5]) {
		return strings.Join(parts[:5], "/")
	}

	return text
}

func isURLPathComponent(part string) bool {
	if part == "" {
		return false
	}
	for _, c := range part {
		if !(c >= 'a' && c <= 'z') && c != '-' && c != '_' {
			return false
		}
	}
	return true
}

// readOnePasswordReference resolves a reference via the op CLI, or the
// mock table when CLAUDIUS_TEST_MOCK_OP is set.
func readOnePasswordReference(ref string) (string, error) {
	if _, ok := os.LookupEnv(MockEnvVar); ok {
		return mockOpRead(ref)
	}

	if _, err := exec.LookPath("op"); err != nil {
		return "", errors.New("1Password CLI (op) is not installed or not in PATH")
	}

	out, err := exec.Command("op", "read", ref).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", errors.Newf("1Password CLI failed: %s", string(exitErr.Stderr))
		}
		return "", errors.Wrap(err, "executing 1Password CLI")
	}

	return strings.TrimSpace(string(out)), nil
}

// mockOpRead serves a fixed reference table for tests.
func mockOpRead(ref string) (string, error) {
	switch ref {
	case "op://vault/test-item/api-key":
		return "secret-api-key-12345", nil
	case "op://vault/database/password":
		return "db-password-xyz789", nil
	case "op://Private/CLOUDFLARE_AI_Gateway/Account_ID",
		"op://Private/CLOUDFLARE AI Gateway/Account ID":
		return "cf-account-12345", nil
	case "op://Private/CLOUDFLARE_AI_Gateway/Gateway_ID",
		"op://Private/CLOUDFLARE AI Gateway/Gateway ID":
		return "cf-gateway-67890", nil
	case "op://Private/CLOUDFLARE_AI_Gateway/credential",
		"op://Private/CLOUDFLARE AI Gateway/credential":
		return "cf-credential-secret", nil
	case "op://vault/item1/field1":
		return "secret-value-1", nil
	case "op://vault/item2/field2":
		return "secret-value-2", nil
	case "op://vault/item3/field3":
		return "secret-value-3", nil
	case "op://vault/item4/field4":
		return "secret-value-4", nil
	case "op://vault/item5/field5":
		return "secret-value-5", nil
	case "op://invalid/reference/field":
		return "", errors.New("1Password CLI failed: ERROR: Item not found")
	default:
		return "", errors.New("1Password CLI failed: ERROR: Unknown reference")
	}
}

func removePrefixes(variables map[string]string) map[string]string {
	result := make(map[string]string, len(variables))
	for key, value := range variables {
		result[strings.TrimPrefix(key, SecretPrefix)] = value
	}
	return result
}

// InjectEnvVars sets the resolved variables in the current process
// environment so spawned commands inherit them.
func InjectEnvVars(vars map[string]string) {
	for key, value := range vars {
		os.Setenv(key, value)
	}
}

// Metrics returns a copy of the metrics gathered so far.
func (r *Resolver) Metrics() ResolutionMetrics {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := r.metrics
	copied.OpCalls = make([]OpCallMetric, len(r.metrics.OpCalls))
	copy(copied.OpCalls, r.metrics.OpCalls)
	return copied
}
