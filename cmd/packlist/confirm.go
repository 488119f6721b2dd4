package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// confirmer asks the user a yes/no question.
type confirmer func(prompt string) (bool, error)

var errNotInteractive = errors.New("confirmation required: rerun with --yes or from an interactive terminal")

// newConfirmer returns the confirmer for cmd. --yes answers every prompt.
// Prompts read a y/N answer from the command input; when that input is the
// process stdin it must be a terminal.
func (c *commandContext) newConfirmer(cmd *cobra.Command) confirmer {
	if c.flags.yes {
		return func(string) (bool, error) { return true, nil }
	}
	in := cmd.InOrStdin()
	out := cmd.ErrOrStderr()
	return func(prompt string) (bool, error) {
		if file, ok := in.(*os.File); ok && !isTerminal(file) {
			return false, errNotInteractive
		}
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		return readYes(in)
	}
}

func readYes(in io.Reader) (bool, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
