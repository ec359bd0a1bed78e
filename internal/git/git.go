// Package git provides the repository operations used by the commit flow.
package git

import (
	"io"

	"github.com/cmtdev/cmt/internal/gitcmd"
)

// Options configures a Client.
type Options struct {
	// Dir overrides the working directory for git commands.
	Dir string
	// Verbose logs every git invocation to Logger (os.Stderr by default).
	Verbose bool
	Logger  io.Writer
}

// Client runs git commands against a single repository.
type Client struct {
	runner gitcmd.Runner
}

// NewClient creates a git client with the given options.
func NewClient(opts Options) *Client {
	return &Client{
		runner: gitcmd.Runner{
			Dir:     opts.Dir,
			Verbose: opts.Verbose,
			Logger:  opts.Logger,
		},
	}
}

// CheckRepository verifies the current directory is inside a git work tree.
func (c *Client) CheckRepository() error {
	result, err := c.runner.Run("rev-parse", "--is-inside-work-tree")
	if err != nil {
		return &OperationError{Op: "rev-parse", Stderr: result.Err(), Err: err}
	}
	return nil
}

// CurrentBranch returns the current branch name. The result is empty on a
// detached HEAD, which git reports as success.
func (c *Client) CurrentBranch() (string, error) {
	result, err := c.runner.Run("branch", "--show-current")
	if err != nil {
		return "", &OperationError{Op: "branch", Stderr: result.Err(), Err: err}
	}
	return result.Out(), nil
}

// StagedDiff returns the diff of staged changes, trimmed. An empty string
// means nothing is staged and is not an error.
func (c *Client) StagedDiff() (string, error) {
	result, err := c.runner.Run("diff", "--cached")
	if err != nil {
		return "", &OperationError{Op: "diff", Stderr: result.Err(), Err: err}
	}
	return result.Out(), nil
}

// AddAll stages all changes in the working tree.
func (c *Client) AddAll() error {
	result, err := c.runner.Run("add", ".")
	if err != nil {
		return &OperationError{Op: "add", Stderr: result.Err(), Err: err}
	}
	return nil
}

// Commit creates a commit with the given message. The message is passed as
// a single argument, never through a shell. Extra args (e.g. --no-verify)
// are appended to the commit command.
func (c *Client) Commit(message string, args ...string) error {
	commitArgs := append([]string{"commit", "-m", message}, args...)
	result, err := c.runner.Run(commitArgs...)
	if err != nil {
		return &OperationError{Op: "commit", Stderr: result.Err(), Err: err}
	}
	return nil
}
