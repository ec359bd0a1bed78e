package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cmtdev/cmt/internal/llm"
	"github.com/cmtdev/cmt/internal/prompt"
	"github.com/cmtdev/cmt/internal/ui"
)

// ErrAborted is returned when the user quits without committing. It is a
// deliberate termination, not a failure.
var ErrAborted = errors.New("aborted by user")

// Options configures a commit flow run.
type Options struct {
	AddAll    bool
	NoVerify  bool
	DryRun    bool
	AutoYes   bool
	OutWriter io.Writer
	ErrWriter io.Writer
}

// CommitFlow runs one generate/confirm/commit session. The staged diff and
// branch are snapshotted once at the start; regeneration reuses them.
type CommitFlow struct {
	git      GitClient
	llm      LLMClient
	opts     Options
	prompter Prompter
}

// NewCommitFlow wires a flow with an interactive prompter.
func NewCommitFlow(git GitClient, llm LLMClient, opts Options) *CommitFlow {
	if opts.OutWriter == nil {
		opts.OutWriter = os.Stdout
	}
	if opts.ErrWriter == nil {
		opts.ErrWriter = os.Stderr
	}
	return &CommitFlow{
		git:  git,
		llm:  llm,
		opts: opts,
		prompter: &InteractivePrompter{
			OutWriter: opts.OutWriter,
			ErrWriter: opts.ErrWriter,
		},
	}
}

// SetPrompter replaces the interactive prompter, used by tests.
func (f *CommitFlow) SetPrompter(p Prompter) {
	f.prompter = p
}

// Run executes the flow: verify the repository, snapshot the staged diff
// and branch, then loop generating messages until the user accepts or
// quits. On accept the commit is created; on quit ErrAborted is returned.
func (f *CommitFlow) Run(ctx context.Context) error {
	if err := f.git.CheckRepository(); err != nil {
		return err
	}

	if err := f.handleStaging(); err != nil {
		return err
	}

	diff, err := f.git.StagedDiff()
	if err != nil {
		return err
	}

	branch, err := f.git.CurrentBranch()
	if err != nil {
		return err
	}

	for {
		message, err := f.generate(ctx, diff, branch)
		if err != nil {
			return err
		}

		if f.opts.AutoYes {
			fmt.Fprintln(f.opts.ErrWriter, "Auto-confirming commit message (-y flag is set)")
			fmt.Fprintln(f.opts.OutWriter, message)
			return f.performCommit(message)
		}

		action, err := f.prompter.Confirm(message)
		if err != nil {
			return err
		}

		switch action {
		case ActionAccept:
			return f.performCommit(message)
		case ActionRegenerate:
			fmt.Fprintln(f.opts.ErrWriter, "Regenerating commit message...")
		case ActionQuit:
			return ErrAborted
		}
	}
}

func (f *CommitFlow) handleStaging() error {
	if !f.opts.AddAll {
		return nil
	}

	if err := f.git.AddAll(); err != nil {
		return err
	}
	fmt.Fprintln(f.opts.ErrWriter, "All changes have been added to the staging area.")
	return nil
}

// generate builds the prompt and calls the model. An empty diff fails
// before any model call is made.
func (f *CommitFlow) generate(ctx context.Context, diff, branch string) (string, error) {
	if diff == "" {
		return "", &llm.GenerationError{Reason: "nothing staged to commit"}
	}

	msg, err := prompt.Build(diff, branch)
	if err != nil {
		return "", err
	}

	sp := ui.NewSpinner("Generating commit message...")
	sp.Start()
	message, err := f.llm.GenerateCommitMessage(ctx, msg)
	sp.Stop()

	if err != nil {
		return "", fmt.Errorf("failed to generate commit message: %w", err)
	}
	return message, nil
}

func (f *CommitFlow) commitArgs() []string {
	var args []string
	if f.opts.NoVerify {
		args = append(args, "--no-verify")
	}
	return args
}

func (f *CommitFlow) performCommit(message string) error {
	if f.opts.DryRun {
		fmt.Fprintln(f.opts.ErrWriter, "Dry run mode, no actual commit")
		return nil
	}

	if err := f.git.Commit(message, f.commitArgs()...); err != nil {
		return err
	}

	fmt.Fprintln(f.opts.ErrWriter, "Commit successful!")
	return nil
}
