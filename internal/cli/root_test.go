package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitops-tools/autoresolve/internal/errors"
)

func TestFormatVersion(t *testing.T) {
	t.Run("fills in placeholders", func(t *testing.T) {
		got := formatVersion(BuildInfo{})
		assert.Equal(t, "dev (commit: none, built: unknown)", got)
	})

	t.Run("uses provided build info", func(t *testing.T) {
		got := formatVersion(BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-08-01"})
		assert.Equal(t, "1.2.3 (commit: abc1234, built: 2026-08-01)", got)
	})
}

func TestRootCommand(t *testing.T) {
	t.Run("help without subcommand", func(t *testing.T) {
		t.Setenv("AUTORESOLVE_HOME", t.TempDir())

		flags := &GlobalFlags{}
		cmd := newRootCmd(flags, BuildInfo{})
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(out)
		cmd.SetArgs([]string{})

		err := cmd.ExecuteContext(context.Background())
		require.NoError(t, err)
		assert.Contains(t, out.String(), "autoresolve")
		assert.Contains(t, out.String(), "run")
	})

	t.Run("rejects invalid output format", func(t *testing.T) {
		t.Setenv("AUTORESOLVE_HOME", t.TempDir())

		flags := &GlobalFlags{}
		cmd := newRootCmd(flags, BuildInfo{})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--output", "yaml"})

		err := cmd.ExecuteContext(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
		assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	})

	t.Run("env sets global flags", func(t *testing.T) {
		t.Setenv("AUTORESOLVE_HOME", t.TempDir())
		t.Setenv("AUTORESOLVE_OUTPUT", "json")
		t.Setenv("AUTORESOLVE_VERBOSE", "true")

		flags := &GlobalFlags{}
		cmd := newRootCmd(flags, BuildInfo{})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{})

		err := cmd.ExecuteContext(context.Background())
		require.NoError(t, err)
		assert.Equal(t, OutputJSON, flags.Output)
		assert.True(t, flags.Verbose)
	})

	t.Run("invalid output format from env is rejected", func(t *testing.T) {
		t.Setenv("AUTORESOLVE_HOME", t.TempDir())
		t.Setenv("AUTORESOLVE_OUTPUT", "yaml")

		flags := &GlobalFlags{}
		cmd := newRootCmd(flags, BuildInfo{})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{})

		err := cmd.ExecuteContext(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
	})

	t.Run("explicit flag beats env", func(t *testing.T) {
		t.Setenv("AUTORESOLVE_HOME", t.TempDir())
		t.Setenv("AUTORESOLVE_OUTPUT", "yaml")

		flags := &GlobalFlags{}
		cmd := newRootCmd(flags, BuildInfo{})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--output", "text"})

		err := cmd.ExecuteContext(context.Background())
		require.NoError(t, err)
		assert.Equal(t, OutputText, flags.Output)
	})
}
