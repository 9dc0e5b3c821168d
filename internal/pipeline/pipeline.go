// Package pipeline sequences the fetch, merge, resolve, commit, and push
// phases that integrate remote changes without human review.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gitops-tools/autoresolve/internal/clock"
	"github.com/gitops-tools/autoresolve/internal/ctxutil"
	arerrors "github.com/gitops-tools/autoresolve/internal/errors"
	"github.com/gitops-tools/autoresolve/internal/git"
	"github.com/gitops-tools/autoresolve/internal/resolve"
)

// progressPrefix tags every progress line on stdout so invoking agents can
// scrape them out of mixed output.
const progressPrefix = "[autoresolve]"

// Config carries the immutable per-run settings resolved before the
// pipeline starts.
type Config struct {
	// Remote is the fetch/push target (default "origin").
	Remote string
	// Strategy selects which side wins on file-level conflict.
	Strategy resolve.Strategy
	// CommitMessage is used for the merge and/or conflict commit.
	CommitMessage string
	// DryRun stops after the tracking-reference probe, reporting what would
	// happen without mutating the repository.
	DryRun bool
}

// Pipeline runs the fetch, merge, resolve, commit, push sequence against a
// single working tree. Runs against the same repository must be serialized
// externally; the working tree and index are shared mutable state with no
// internal locking.
type Pipeline struct {
	runner   git.Runner
	resolver *resolve.Resolver
	cfg      Config
	logger   zerolog.Logger
	out      io.Writer
	clk      clock.Clock
	runID    string
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger for pipeline operations.
func WithLogger(logger zerolog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithOutput sets the writer that receives progress lines. Defaults to stdout;
// diagnostics go to the logger, never here.
func WithOutput(w io.Writer) PipelineOption {
	return func(p *Pipeline) {
		p.out = w
	}
}

// WithClock sets the clock used to measure run duration. Defaults to the
// system clock.
func WithClock(c clock.Clock) PipelineOption {
	return func(p *Pipeline) {
		p.clk = c
	}
}

// New creates a Pipeline for the given runner and per-run config.
func New(runner git.Runner, cfg Config, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		runner: runner,
		cfg:    cfg,
		logger: zerolog.Nop(),
		out:    os.Stdout,
		clk:    clock.RealClock{},
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With().Str("run_id", p.runID).Logger()
	p.resolver = resolve.NewResolver(runner,
		resolve.WithLogger(p.logger),
		resolve.WithProgress(p.progress),
	)
	return p
}

// Run executes the pipeline to completion. Every fatal condition halts
// forward progress immediately; there is no retry and no rollback of
// already-applied commits or pushes. The returned Result records how far the
// run got even when an error is returned.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: p.runID, Phase: PhaseStart}
	start := p.clk.Now()
	defer func() {
		res.Duration = p.clk.Now().Sub(start).Round(time.Millisecond).String()
	}()

	if err := ctxutil.Canceled(ctx); err != nil {
		return res, err
	}

	branch, err := p.preflight(ctx)
	if err != nil {
		return res, err
	}
	res.Branch = branch
	res.Phase = PhasePreflight
	p.progress(fmt.Sprintf("preflight ok: branch %s, remote %s, strategy %s", branch, p.cfg.Remote, p.cfg.Strategy))

	if err := p.runner.Fetch(ctx, p.cfg.Remote); err != nil {
		return res, fmt.Errorf("%w: %w", arerrors.ErrFetchFailed, err)
	}
	res.Phase = PhaseFetch
	p.progress(fmt.Sprintf("fetched %s", p.cfg.Remote))

	hasUpstream, err := p.runner.RemoteRefExists(ctx, p.cfg.Remote, branch)
	if err != nil {
		return res, err
	}

	if p.cfg.DryRun {
		return p.finishDryRun(res, hasUpstream)
	}

	// First-publish case: nothing to merge against by construction.
	if !hasUpstream {
		return p.firstPublish(ctx, res, branch)
	}

	conflicted, err := p.merge(ctx, res, branch)
	if err != nil {
		return res, err
	}

	if conflicted {
		if err := p.resolveAndCommit(ctx, res); err != nil {
			return res, err
		}
	}

	if err := p.runner.Push(ctx, p.cfg.Remote, branch, false); err != nil {
		return res, fmt.Errorf("%w: %w", arerrors.ErrPushFailed, err)
	}
	res.Phase = PhasePush
	p.progress(fmt.Sprintf("pushed %s to %s", branch, p.cfg.Remote))

	res.Phase = PhaseDone
	p.progress("done")
	p.logger.Info().
		Str("branch", branch).
		Bool("clean_merge", res.CleanMerge).
		Str("duration", p.clk.Now().Sub(start).Round(time.Millisecond).String()).
		Msg("pipeline completed")
	return res, nil
}

// preflight validates the configured strategy and remote and resolves the
// current branch. Configuration errors are caught here, before any mutating
// command touches the repository.
func (p *Pipeline) preflight(ctx context.Context) (string, error) {
	if _, err := resolve.ParseStrategy(p.cfg.Strategy.String()); err != nil {
		return "", err
	}
	if p.cfg.CommitMessage == "" {
		return "", fmt.Errorf("commit message cannot be empty: %w", arerrors.ErrEmptyValue)
	}

	exists, err := p.runner.RemoteExists(ctx, p.cfg.Remote)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: %q has no configured URL", arerrors.ErrRemoteNotFound, p.cfg.Remote)
	}

	branch, err := p.runner.CurrentBranch(ctx)
	if err != nil {
		return "", err
	}

	return branch, nil
}

// firstPublish pushes the branch to the remote under the same name and ends
// the run. There is no conflict scenario here: no tracking reference means
// there is nothing to merge against.
func (p *Pipeline) firstPublish(ctx context.Context, res *Result, branch string) (*Result, error) {
	p.logger.Info().Str("branch", branch).Str("remote", p.cfg.Remote).Msg("no tracking reference, publishing branch")

	if err := p.runner.Push(ctx, p.cfg.Remote, branch, true); err != nil {
		return res, fmt.Errorf("%w: %w", arerrors.ErrPushFailed, err)
	}

	res.FirstPublish = true
	res.Phase = PhaseDone
	p.progress(fmt.Sprintf("published %s to %s (no tracking reference)", branch, p.cfg.Remote))
	p.progress("done")
	return res, nil
}

// merge attempts the merge of the tracking reference into the current branch.
// The strategy rides along as a merge-level preference and the configured
// message as the merge-commit message, so a trivial merge completes in one
// step. Returns true when conflicts remain in the index.
func (p *Pipeline) merge(ctx context.Context, res *Result, branch string) (bool, error) {
	ref := fmt.Sprintf("refs/remotes/%s/%s", p.cfg.Remote, branch)
	mergeRes := p.runner.Merge(ctx, ref, p.cfg.Strategy.Side(), p.cfg.CommitMessage)
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}
	res.Phase = PhaseMerge

	if mergeRes.Ok() {
		res.CleanMerge = true
		p.progress(fmt.Sprintf("merged %s cleanly", ref))
		return false, nil
	}

	p.logger.Info().
		Str("ref", ref).
		Int("exit_code", mergeRes.ExitCode).
		Str("output", mergeRes.Output).
		Msg("merge left conflicts in the index")
	p.progress(fmt.Sprintf("merge of %s reported conflicts", ref))
	return true, nil
}

// resolveAndCommit applies the strategy to every conflicted path and commits
// the result. The commit is skipped without error when resolution nets to
// exactly the checked-out content; anything staged after resolution is
// committed uniformly, with no attempt to separate conflict-resolution
// changes from other dirt.
func (p *Pipeline) resolveAndCommit(ctx context.Context, res *Result) error {
	files, err := p.runner.ConflictedFiles(ctx)
	if err != nil {
		return err
	}

	if err := p.resolver.Resolve(ctx, files, p.cfg.Strategy); err != nil {
		return err
	}
	res.ResolvedFiles = files
	res.Phase = PhaseResolve
	p.progress(fmt.Sprintf("resolved %d conflicted file(s) with strategy %s", len(files), p.cfg.Strategy))

	clean, err := p.runner.IsWorkingTreeClean(ctx)
	if err != nil {
		return err
	}
	if clean {
		p.progress("nothing to commit after resolution")
		return nil
	}

	if err := p.runner.Commit(ctx, p.cfg.CommitMessage); err != nil {
		return fmt.Errorf("%w: %w", arerrors.ErrCommitFailed, err)
	}
	res.Committed = true
	res.Phase = PhaseCommit
	p.progress(fmt.Sprintf("committed resolution: %s", p.cfg.CommitMessage))
	return nil
}

// finishDryRun reports what a real run would do and stops before any
// mutating command.
func (p *Pipeline) finishDryRun(res *Result, hasUpstream bool) (*Result, error) {
	if hasUpstream {
		p.progress(fmt.Sprintf("dry-run: would merge refs/remotes/%s/%s with strategy %s", p.cfg.Remote, res.Branch, p.cfg.Strategy))
	} else {
		p.progress(fmt.Sprintf("dry-run: would publish %s to %s (no tracking reference)", res.Branch, p.cfg.Remote))
	}
	res.Phase = PhaseDone
	p.progress("done (dry-run)")
	return res, nil
}

// progress emits one tagged informational line. Progress goes to stdout for
// log-scraping by the invoking agent; diagnostics go to the error stream.
func (p *Pipeline) progress(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", progressPrefix, msg)
}
