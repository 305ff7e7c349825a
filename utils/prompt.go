package utils

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter asks for console input during interactive calibration and
// setpoint entry. It wraps arbitrary reader/writer pairs so the prompt
// flows are testable without a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm prints msg and waits for the user to press Enter.
func (p *Prompter) Confirm(msg string) error {
	fmt.Fprint(p.out, msg)
	_, err := p.in.ReadString('\n')
	return err
}

// IntInRange keeps asking until the user enters a whole number within
// [min, max].
func (p *Prompter) IntInRange(msg string, min, max int) (int, error) {
	for {
		fmt.Fprint(p.out, msg)
		line, err := p.in.ReadString('\n')
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(line)

		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(p.out, "nur ganze Zahlen als Input erlaubt")
			continue
		}
		if v < min || v > max {
			fmt.Fprintf(p.out, "nur Werte zwischen %d und %d als Input erlaubt\n", min, max)
			continue
		}
		return v, nil
	}
}
