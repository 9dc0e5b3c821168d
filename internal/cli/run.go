// Package cli provides the command-line interface for autoresolve.
package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gitops-tools/autoresolve/internal/config"
	"github.com/gitops-tools/autoresolve/internal/git"
	"github.com/gitops-tools/autoresolve/internal/pipeline"
	"github.com/gitops-tools/autoresolve/internal/resolve"
)

// runFlags holds the flags specific to the run command.
type runFlags struct {
	strategy string
	remote   string
	message  string
	repo     string
	dryRun   bool
}

// AddRunCommand adds the run command to the root command.
func AddRunCommand(root *cobra.Command, global *GlobalFlags) {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch, merge, resolve conflicts, commit, and push",
		Long: `Run the full pipeline against the repository: fetch the remote, merge the
tracking reference into the current branch, resolve any conflicts with the
configured strategy, commit, and push.

If the remote has no tracking reference for the branch yet, the branch is
published directly and no merge is attempted. Every fatal condition halts
the pipeline immediately; nothing is retried or rolled back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.strategy, "strategy", "", "conflict strategy: ours or theirs (default from config)")
	cmd.Flags().StringVar(&flags.remote, "remote", "", "remote to fetch from and push to (default from config)")
	cmd.Flags().StringVar(&flags.message, "message", "", "commit message for the merge and/or conflict commit (default from config)")
	cmd.Flags().StringVar(&flags.repo, "repo", ".", "path to the repository working directory")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "stop after the tracking-reference probe, mutating nothing")

	root.AddCommand(cmd)
}

// runPipeline resolves configuration, builds the pipeline, and executes it.
func runPipeline(cmd *cobra.Command, global *GlobalFlags, flags *runFlags) error {
	logger := GetLogger()
	ctx := logger.WithContext(cmd.Context())

	workDir, err := filepath.Abs(flags.repo)
	if err != nil {
		return fmt.Errorf("failed to resolve repository path: %w", err)
	}

	// Only flags the user actually set become overrides, so config files and
	// environment variables keep working underneath them.
	overrides := map[string]any{}
	if cmd.Flags().Changed("strategy") {
		overrides["git.strategy"] = flags.strategy
	}
	if cmd.Flags().Changed("remote") {
		overrides["git.remote"] = flags.remote
	}
	if cmd.Flags().Changed("message") {
		overrides["git.commit_message"] = flags.message
	}

	cfg, err := config.LoadWithOverrides(ctx, workDir, overrides)
	if err != nil {
		return err
	}

	// Validated by config.Validate above; parse into the closed enum.
	strategy, err := resolve.ParseStrategy(cfg.Git.Strategy)
	if err != nil {
		return err
	}

	runner, err := git.NewRunner(ctx, workDir, git.WithCommandTimeout(cfg.Git.CommandTimeout))
	if err != nil {
		return err
	}

	// One run per repository at a time. A second invocation fails fast
	// instead of racing a half-resolved merge.
	lock, err := git.AcquireLock(runner.GitDir())
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.Warn().Err(releaseErr).Msg("failed to release repository lock")
		}
	}()

	p := pipeline.New(runner, pipeline.Config{
		Remote:        cfg.Git.Remote,
		Strategy:      strategy,
		CommitMessage: cfg.Git.CommitMessage,
		DryRun:        flags.dryRun,
	},
		pipeline.WithLogger(logger),
		pipeline.WithOutput(cmd.OutOrStdout()),
	)

	result, runErr := p.Run(ctx)
	if runErr != nil {
		logger.Error().
			Err(runErr).
			Str("phase", string(result.Phase)).
			Msg("pipeline failed")
		return runErr
	}

	if global.Output == OutputJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	}

	return nil
}
