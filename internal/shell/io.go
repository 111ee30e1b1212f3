package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IO is the line-oriented console the [Shell] talks to.
type IO interface {
	// ReadLine shows prompt and returns the next input line without its line ending.
	// It returns "" once the input is exhausted.
	ReadLine(prompt string) string
	// Print writes line followed by a newline.
	Print(line string)
	// HasNextLine reports whether more input may follow.
	HasNextLine() bool
}

// ConsoleIO implements [IO] over a reader and a writer.
//
// Prompts are written only when ShowPrompts is set, which [NewConsoleIO] does when the reader is a terminal.
type ConsoleIO struct {
	scanner     *bufio.Scanner
	out         io.Writer
	eof         bool
	ShowPrompts bool
}

// NewConsoleIO creates a [ConsoleIO] reading from in and writing to out.
func NewConsoleIO(in io.Reader, out io.Writer) *ConsoleIO {
	return &ConsoleIO{
		scanner:     bufio.NewScanner(in),
		out:         out,
		ShowPrompts: IsTerminal(in),
	}
}

// IsTerminal reports whether r is a file attached to a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *ConsoleIO) ReadLine(prompt string) string {
	if c.eof {
		return ""
	}
	if c.ShowPrompts && prompt != "" {
		fmt.Fprint(c.out, prompt)
		if !strings.HasSuffix(prompt, " ") && !strings.HasSuffix(prompt, "\n") {
			fmt.Fprint(c.out, " ")
		}
	}
	if !c.scanner.Scan() {
		c.eof = true
		return ""
	}
	return strings.TrimRight(c.scanner.Text(), "\r")
}

func (c *ConsoleIO) Print(line string) {
	fmt.Fprintln(c.out, line)
}

// HasNextLine reports false once a read has reached the end of the input. It never blocks.
func (c *ConsoleIO) HasNextLine() bool {
	return !c.eof
}
