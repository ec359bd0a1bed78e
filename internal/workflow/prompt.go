package workflow

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Action is the user's decision about a generated message.
type Action int

const (
	ActionAccept Action = iota
	ActionRegenerate
	ActionQuit
)

const messageSeparator = "========================================="

// InteractivePrompter reads the accept/regenerate/quit decision from the
// terminal, one line per attempt.
type InteractivePrompter struct {
	OutWriter io.Writer
	ErrWriter io.Writer
	Stdin     io.Reader
}

// Confirm shows the message framed by separators and reads decisions until
// one of Y, R or Q (case-insensitive) is entered. Invalid input re-prints
// the prompt line only, never the message banner.
func (p *InteractivePrompter) Confirm(message string) (Action, error) {
	out := p.OutWriter
	if out == nil {
		out = os.Stdout
	}
	errW := p.ErrWriter
	if errW == nil {
		errW = os.Stderr
	}
	stdin := p.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	if f, ok := stdin.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return ActionQuit, errors.New("stdin is not a terminal, use --yes to skip confirmation")
		}
	}

	fmt.Fprintln(errW, "\nGenerated commit message:")
	fmt.Fprintln(errW, messageSeparator)
	fmt.Fprintln(out, message)
	fmt.Fprintln(errW, messageSeparator)

	reader := bufio.NewReader(stdin)
	for {
		fmt.Fprint(errW, "Accept this message? Yes (Y) Regenerate (R) Quit (Q): ")

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return ActionQuit, fmt.Errorf("failed to read user input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return ActionAccept, nil
		case "r":
			return ActionRegenerate, nil
		case "q":
			return ActionQuit, nil
		default:
			fmt.Fprintln(errW, "Invalid input. Please enter Y, R, or Q.")
		}
	}
}
