package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmtdev/cmt/internal/config"
	"github.com/cmtdev/cmt/internal/git"
	"github.com/cmtdev/cmt/internal/llm"
	"github.com/cmtdev/cmt/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	addAll    bool
	noVerify  bool
	dryRun    bool
	autoYes   bool
	verbose   bool
	configErr error

	rootCmd = &cobra.Command{
		Use:   "cmt",
		Short: "cmt - AI-assisted commit messages",
		Long: `cmt writes the commit message for your staged changes. It reads the ` +
			`staged diff and current branch, asks an OpenAI-compatible model for a ` +
			`conventional-commit line, then lets you accept, regenerate, or quit ` +
			`before committing.`,
		Version: fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			return runCommit(cmd.Context())
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute runs the root command. The caller maps the returned error to the
// process exit code.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $XDG_CONFIG_HOME/cmt/config.yaml)")
	rootCmd.Flags().BoolVarP(&addAll, "all", "a", false,
		"Stage all changes before generating the message")
	rootCmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip pre-commit hooks")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate message only, do not commit")
	rootCmd.Flags().BoolVarP(&autoYes, "yes", "y", false, "Accept the first generated message")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "Show git commands as they run")

	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

func runCommit(ctx context.Context) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	gitClient := git.NewClient(git.Options{Verbose: verbose, Logger: errWriter()})
	llmClient := llm.NewClient(llm.Options{
		APIKey:  cfg.APIKey,
		APIBase: cfg.APIBase,
		Model:   cfg.Model,
	})

	flow := workflow.NewCommitFlow(gitClient, llmClient, workflow.Options{
		AddAll:    addAll,
		NoVerify:  noVerify,
		DryRun:    dryRun,
		AutoYes:   autoYes,
		OutWriter: outWriter(),
		ErrWriter: errWriter(),
	})

	if err := flow.Run(ctx); err != nil {
		if errors.Is(err, workflow.ErrAborted) {
			fmt.Fprintln(outWriter(), "Aborting, no commit was made.")
			return nil
		}
		return err
	}
	return nil
}
