package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/credstore"
	"github.com/conn-castle/pinset/internal/enroll"
)

// isolate points pinset at a fresh state directory and a non-interactive
// terminal.
func isolate(t *testing.T) config.Paths {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.StateDirEnv, dir)
	t.Setenv("PINSET_BIOMETRIC_PROBE", config.ProbeNone)
	setTerminal(t, false)
	return config.PathsFor(dir)
}

func setTerminal(t *testing.T, interactive bool) {
	t.Helper()
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func() bool { return interactive }
}

// run executes the CLI with stdin and returns combined output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

// enrollDirect presses digits straight into a controller over the
// configured store, bypassing any front end.
func enrollDirect(t *testing.T, digits string) {
	t.Helper()
	require.NoError(t, withStore(func(_ *config.Config, store credstore.Store) error {
		ctrl, err := enroll.New(enroll.Options{Store: store})
		if err != nil {
			return err
		}
		ctrl.PressDigits(context.Background(), digits)
		require.Equal(t, enroll.PhaseCompleted, ctrl.Phase())
		return nil
	}))
}
