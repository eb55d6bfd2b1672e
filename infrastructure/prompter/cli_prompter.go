// Package prompter implements interactive confirmation for CLI environments.
package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// CliPrompter implements ports.Prompter for CLI environments.
type CliPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewCliPrompter creates a new CliPrompter.
func NewCliPrompter(in io.Reader, out io.Writer) *CliPrompter {
	return &CliPrompter{in: in, out: out}
}

// IsInteractive checks if the input is a terminal.
func (p *CliPrompter) IsInteractive() bool {
	if f, ok := p.in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// Confirm asks a yes/no question. Only "y" or "yes" confirm.
func (p *CliPrompter) Confirm(question string) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(p.in)
	if scanner.Scan() {
		text := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return text == "y" || text == "yes", nil
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, io.EOF
}
