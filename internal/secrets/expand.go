package secrets

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/thoreinstein/claudius/internal/errors"
)

// SecretPrefix marks environment variables the resolver manages.
const SecretPrefix = "CLAUDIUS_SECRET_"

// varRefPattern matches $CLAUDIUS_SECRET_NAME and ${CLAUDIUS_SECRET_NAME}.
var varRefPattern = regexp.MustCompile(`\$\{?(CLAUDIUS_SECRET_[A-Z_][A-Z0-9_]*)\}?`)

type variableNode struct {
	rawValue     string
	dependencies []string
	resolved     *string
}

// variableGraph resolves cross-references between secret variables in
// dependency order.
type variableGraph struct {
	nodes  map[string]*variableNode
	logger *slog.Logger
}

func newVariableGraph(logger *slog.Logger) *variableGraph {
	return &variableGraph{
		nodes:  make(map[string]*variableNode),
		logger: logger,
	}
}

func (g *variableGraph) addVariable(name, value string) {
	g.nodes[name] = &variableNode{
		rawValue:     value,
		dependencies: extractDependencies(value),
	}
}

func extractDependencies(value string) []string {
	var deps []string
	for _, match := range varRefPattern.FindAllStringSubmatch(value, -1) {
		deps = append(deps, match[1])
	}
	return deps
}

// topologicalSort orders variables so every dependency resolves before
// its dependents. Kahn's algorithm; leftover in-degrees mean a cycle.
func (g *variableGraph) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))
	for name := range g.nodes {
		inDegree[name] = 0
	}

	for name, node := range g.nodes {
		for _, dep := range node.dependencies {
			if _, ok := g.nodes[dep]; !ok {
				continue
			}
			dependents[dep] = append(dependents[dep], name)
			inDegree[name]++
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(order) != len(g.nodes) {
		var cycle []string
		for name, degree := range inDegree {
			if degree > 0 {
				cycle = append(cycle, name)
			}
		}
		sort.Strings(cycle)
		return nil, errors.Newf("Circular dependency detected involving variables: %v", cycle)
	}

	return order, nil
}

func (g *variableGraph) resolveAll(external map[string]string) (map[string]string, error) {
	order, err := g.topologicalSort()
	if err != nil {
		return nil, err
	}

	for _, name := range order {
		g.resolveVariable(name, external)
	}

	result := make(map[string]string, len(g.nodes))
	for name, node := range g.nodes {
		if node.resolved == nil {
			continue
		}
		result[strings.TrimPrefix(name, SecretPrefix)] = *node.resolved
	}
	return result, nil
}

func (g *variableGraph) resolveVariable(name string, external map[string]string) {
	node, ok := g.nodes[name]
	if !ok || node.resolved != nil {
		return
	}

	var unresolved []string
	expanded := varRefPattern.ReplaceAllStringFunc(node.rawValue, func(match string) string {
		ref := varRefPattern.FindStringSubmatch(match)[1]
		if value, ok := g.lookup(ref, external); ok {
			return value
		}
		unresolved = append(unresolved, ref)
		return match
	})

	if len(unresolved) > 0 && g.logger != nil {
		g.logger.Warn("variable contains unresolved references",
			"variable", name,
			"references", unresolved,
		)
	}

	node.resolved = &expanded
}

func (g *variableGraph) lookup(ref string, external map[string]string) (string, bool) {
	if node, ok := g.nodes[ref]; ok && node.resolved != nil {
		return *node.resolved, true
	}
	value, ok := external[ref]
	return value, ok
}

// ExpandVariables resolves $CLAUDIUS_SECRET_* references between the
// given variables, consulting external for references resolved out of
// band. Result keys have the prefix stripped. Unresolvable references
// stay literal; reference cycles are an error.
func ExpandVariables(variables, external map[string]string, logger *slog.Logger) (map[string]string, error) {
	graph := newVariableGraph(logger)
	for name, value := range variables {
		graph.addVariable(name, value)
	}
	return graph.resolveAll(external)
}
