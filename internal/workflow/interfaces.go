// Package workflow orchestrates the generate/confirm/commit loop.
package workflow

import (
	"context"

	"github.com/cmtdev/cmt/internal/prompt"
)

// GitClient abstracts git operations for testability.
type GitClient interface {
	CheckRepository() error
	CurrentBranch() (string, error)
	StagedDiff() (string, error)
	AddAll() error
	Commit(message string, args ...string) error
}

// LLMClient abstracts the text generation service for testability.
type LLMClient interface {
	GenerateCommitMessage(ctx context.Context, msg prompt.Message) (string, error)
}

// Prompter collects the user's decision about a generated message.
type Prompter interface {
	Confirm(message string) (Action, error)
}
