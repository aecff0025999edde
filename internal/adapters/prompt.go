package adapters

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"pyrun/internal/ports"
)

// StdinPrompt asks yes/no questions on the terminal. EOF or a read error
// counts as "no", so a non-interactive run never installs unconfirmed.
type StdinPrompt struct {
	In  io.Reader
	Out io.Writer
}

func NewStdinPrompt() StdinPrompt {
	return StdinPrompt{In: os.Stdin, Out: os.Stderr}
}

func (p StdinPrompt) Confirm(message string) bool {
	reader := bufio.NewReader(p.In)
	for {
		fmt.Fprintf(p.Out, "%s (y/n): ", message)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(p.Out, "please answer y or n")
	}
}

var _ ports.PromptPort = StdinPrompt{}
