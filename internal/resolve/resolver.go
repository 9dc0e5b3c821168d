// Package resolve applies a conflict strategy to the unmerged paths left
// behind by a failed merge.
package resolve

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gitops-tools/autoresolve/internal/ctxutil"
	arerrors "github.com/gitops-tools/autoresolve/internal/errors"
	"github.com/gitops-tools/autoresolve/internal/git"
)

// Resolver restores one side of every conflicted file and stages the result.
// Resolution operates at file granularity, not hunk granularity: the whole
// file is taken from one side. Binary files and files with multiple conflict
// regions are handled identically by construction.
type Resolver struct {
	runner   git.Runner
	logger   zerolog.Logger
	progress func(msg string)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for resolution operations.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithProgress sets a callback that receives one record per resolved file.
func WithProgress(fn func(msg string)) Option {
	return func(r *Resolver) {
		r.progress = fn
	}
}

// NewResolver creates a Resolver backed by the given git runner.
func NewResolver(runner git.Runner, opts ...Option) *Resolver {
	r := &Resolver{
		runner:   runner,
		logger:   zerolog.Nop(),
		progress: func(string) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve applies the strategy to each conflicted path in the order reported
// by the repository, staging each file as it goes. It aborts on the first
// file it cannot restore or stage, naming the path that failed; the
// repository is left partially resolved for manual intervention.
//
// Zero files is a logged no-op, not an error.
func (r *Resolver) Resolve(ctx context.Context, files []string, strategy Strategy) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if len(files) == 0 {
		r.logger.Info().Msg("no conflicted files to resolve")
		return nil
	}

	r.logger.Info().
		Int("file_count", len(files)).
		Str("strategy", strategy.String()).
		Msg("resolving conflicted files")

	for _, path := range files {
		if err := r.resolveFile(ctx, path, strategy); err != nil {
			return err
		}
		r.progress(fmt.Sprintf("resolved %s (%s)", path, strategy))
	}

	return nil
}

// resolveFile restores one side of a single conflicted path and stages it.
func (r *Resolver) resolveFile(ctx context.Context, path string, strategy Strategy) error {
	if err := r.runner.CheckoutSide(ctx, strategy.Side(), path); err != nil {
		return fmt.Errorf("%w: applying %s side of %s: %w", arerrors.ErrResolveFailed, strategy, path, err)
	}

	if err := r.runner.Add(ctx, []string{path}); err != nil {
		return fmt.Errorf("%w: staging %s: %w", arerrors.ErrResolveFailed, path, err)
	}

	r.logger.Debug().
		Str("path", path).
		Str("strategy", strategy.String()).
		Msg("conflicted file resolved and staged")

	return nil
}
