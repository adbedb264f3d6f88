package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LinePrompter asks questions on out and reads one-line answers from in.
// It backs the organizer's interactive resolver with the controlling
// terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter reading from in and writing to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Prompt prints text and blocks until a line of input arrives. The
// trailing newline is stripped. A final unterminated line is still
// returned; only a bare EOF is an error.
func (p *LinePrompter) Prompt(text string) (string, error) {
	if _, err := fmt.Fprint(p.out, text); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
