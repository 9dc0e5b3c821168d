package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arerrors "github.com/gitops-tools/autoresolve/internal/errors"
	"github.com/gitops-tools/autoresolve/internal/git"
	"github.com/gitops-tools/autoresolve/internal/testutil"
)

// mockRunner implements git.Runner for testing. Only the methods the
// resolver touches are configurable; the rest return zero values.
type mockRunner struct {
	CheckoutSideFunc func(ctx context.Context, side, path string) error
	AddFunc          func(ctx context.Context, paths []string) error
}

func (m *mockRunner) CurrentBranch(_ context.Context) (string, error) { return "main", nil }

func (m *mockRunner) RemoteExists(_ context.Context, _ string) (bool, error) { return true, nil }

func (m *mockRunner) RemoteRefExists(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

func (m *mockRunner) Fetch(_ context.Context, _ string) error { return nil }

func (m *mockRunner) Merge(_ context.Context, _, _, _ string) git.RunResult {
	return git.RunResult{}
}

func (m *mockRunner) ConflictedFiles(_ context.Context) ([]string, error) { return nil, nil }

func (m *mockRunner) CheckoutSide(ctx context.Context, side, path string) error {
	if m.CheckoutSideFunc != nil {
		return m.CheckoutSideFunc(ctx, side, path)
	}
	return nil
}

func (m *mockRunner) Add(ctx context.Context, paths []string) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, paths)
	}
	return nil
}

func (m *mockRunner) IsWorkingTreeClean(_ context.Context) (bool, error) { return true, nil }

func (m *mockRunner) Commit(_ context.Context, _ string) error { return nil }

func (m *mockRunner) Push(_ context.Context, _, _ string, _ bool) error { return nil }

func TestResolver_Resolve(t *testing.T) {
	t.Run("zero files is a no-op", func(t *testing.T) {
		called := false
		runner := &mockRunner{
			CheckoutSideFunc: func(_ context.Context, _, _ string) error {
				called = true
				return nil
			},
		}

		resolver := NewResolver(runner)
		err := resolver.Resolve(context.Background(), nil, StrategyOurs)
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("overwrites and stages each file once in order", func(t *testing.T) {
		var checkouts []string
		var staged []string
		runner := &mockRunner{
			CheckoutSideFunc: func(_ context.Context, side, path string) error {
				checkouts = append(checkouts, side+":"+path)
				return nil
			},
			AddFunc: func(_ context.Context, paths []string) error {
				staged = append(staged, paths...)
				return nil
			},
		}

		files := []string{"b.txt", "a.txt", "dir/c.txt"}
		resolver := NewResolver(runner)
		err := resolver.Resolve(context.Background(), files, StrategyTheirs)
		require.NoError(t, err)

		assert.Equal(t, []string{"theirs:b.txt", "theirs:a.txt", "theirs:dir/c.txt"}, checkouts)
		assert.Equal(t, files, staged)
	})

	t.Run("emits one progress record per resolved file", func(t *testing.T) {
		var records []string
		resolver := NewResolver(&mockRunner{}, WithProgress(func(msg string) {
			records = append(records, msg)
		}))

		err := resolver.Resolve(context.Background(), []string{"a.txt", "b.txt"}, StrategyOurs)
		require.NoError(t, err)

		require.Len(t, records, 2)
		assert.Contains(t, records[0], "a.txt")
		assert.Contains(t, records[1], "b.txt")
	})

	t.Run("aborts on first overwrite failure naming the path", func(t *testing.T) {
		var staged []string
		runner := &mockRunner{
			CheckoutSideFunc: func(_ context.Context, _, path string) error {
				if path == "b.txt" {
					return testutil.ErrMockPathspec
				}
				return nil
			},
			AddFunc: func(_ context.Context, paths []string) error {
				staged = append(staged, paths...)
				return nil
			},
		}

		resolver := NewResolver(runner)
		err := resolver.Resolve(context.Background(), []string{"a.txt", "b.txt", "c.txt"}, StrategyOurs)
		require.Error(t, err)
		assert.ErrorIs(t, err, arerrors.ErrResolveFailed)
		assert.Contains(t, err.Error(), "b.txt")
		// Only the file before the failure was staged; c.txt was never touched.
		assert.Equal(t, []string{"a.txt"}, staged)
	})

	t.Run("aborts on staging failure naming the path", func(t *testing.T) {
		runner := &mockRunner{
			AddFunc: func(_ context.Context, _ []string) error {
				return testutil.ErrMockIndexLocked
			},
		}

		resolver := NewResolver(runner)
		err := resolver.Resolve(context.Background(), []string{"a.txt"}, StrategyTheirs)
		require.Error(t, err)
		assert.ErrorIs(t, err, arerrors.ErrResolveFailed)
		assert.Contains(t, err.Error(), "a.txt")
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		resolver := NewResolver(&mockRunner{})
		err := resolver.Resolve(ctx, []string{"a.txt"}, StrategyOurs)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
