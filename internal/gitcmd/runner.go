// Package gitcmd executes git commands and captures their output.
package gitcmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes git commands with shared logging and output capture.
// The zero value runs git in the current directory without logging.
type Runner struct {
	Verbose bool
	Dir     string
	Logger  io.Writer
}

// Result holds the captured stdout/stderr of a git command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Out returns stdout with surrounding whitespace trimmed.
func (r Result) Out() string {
	return strings.TrimSpace(string(r.Stdout))
}

// Err returns stderr with surrounding whitespace trimmed.
func (r Result) Err() string {
	return strings.TrimSpace(string(r.Stderr))
}

// Run executes a git command and captures stdout/stderr. The returned
// Result is populated even when the command exits non-zero.
func (r Runner) Run(args ...string) (Result, error) {
	r.log(args)

	cmd := exec.Command("git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}, err
}

func (r Runner) log(args []string) {
	if !r.Verbose {
		return
	}
	logger := r.Logger
	if logger == nil {
		logger = os.Stderr
	}
	fmt.Fprintf(logger, "Running: git %s\n", strings.Join(args, " "))
}
