// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"golang.org/x/term"

	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/merge"
)

// Sentinel errors for interactive selection.
var (
	ErrNoChoices          = errors.New("no choices to select from")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Prompter asks yes/no questions and resolves merge conflicts on the
// terminal. It buffers the input stream once so consecutive prompts
// continue reading where the previous one stopped.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// New creates a Prompter bound to stdin and stdout.
func New() *Prompter {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO creates a Prompter with custom reader and writer for testing.
func NewWithIO(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Confirm asks a yes/no question and returns true only for an explicit
// yes. EOF counts as a decline.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.writer, "%s [y/N] ", question)

	input, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return strings.EqualFold(strings.TrimSpace(input), "y"), nil
		}
		return false, errors.Wrap(err, "reading confirmation")
	}

	return strings.EqualFold(strings.TrimSpace(input), "y"), nil
}

// ResolveConflict displays a configuration conflict and asks whether the
// incoming value should win. It implements merge.Resolver.
func (p *Prompter) ResolveConflict(c merge.Conflict) (bool, error) {
	fmt.Fprintf(p.writer, "\n=== Configuration conflict detected ===\n")
	fmt.Fprintf(p.writer, "  Field: %s\n", c.Field)
	fmt.Fprintf(p.writer, "  Current value: %s\n", c.Existing)
	fmt.Fprintf(p.writer, "  New value: %s\n", c.Proposed)

	return p.Confirm("\nOverwrite with new value?")
}

// IsInteractive reports whether stdin is a terminal. Selection prompts
// are skipped when it is not.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// SelectRule opens a fuzzy finder over the available rule names. It
// requires an interactive terminal.
func SelectRule(rules []string) (string, error) {
	if len(rules) == 0 {
		return "", ErrNoChoices
	}
	if len(rules) == 1 {
		return rules[0], nil
	}

	idx, err := fuzzyfinder.Find(rules, func(i int) string {
		return rules[i]
	})
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "selecting rule")
	}

	return rules[idx], nil
}
