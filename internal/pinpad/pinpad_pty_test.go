//go:build !windows

package pinpad

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/pinset/internal/enroll"
)

type supported enroll.Kind

func (k supported) CheckSupport(context.Context) (enroll.Support, error) {
	return enroll.Support{Supported: true, Kind: enroll.Kind(k)}, nil
}

// runOnPTY drives Run through a real pseudo-terminal, typing keys one write
// at a time so each byte arrives as its own key event.
func runOnPTY(t *testing.T, store enroll.CredentialStore, probe enroll.BiometricProbe, keys []string) enroll.Result {
	t.Helper()

	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ptmx.Close() })
	t.Cleanup(func() { _ = tty.Close() })

	// Keep the terminal output drained so renders never block.
	go func() { _, _ = io.Copy(io.Discard, ptmx) }()

	go func() {
		time.Sleep(100 * time.Millisecond)
		for _, k := range keys {
			_, _ = ptmx.Write([]byte(k))
			time.Sleep(20 * time.Millisecond)
		}
	}()

	type outcome struct {
		res enroll.Result
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		res, err := Run(context.Background(), store, probe, tea.WithInput(tty), tea.WithOutput(tty))
		ch <- outcome{res: res, err: err}
	}()

	select {
	case out := <-ch:
		require.NoError(t, out.err)
		return out.res
	case <-time.After(10 * time.Second):
		t.Fatal("pin pad did not exit within timeout")
		return enroll.Result{}
	}
}

func split(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func TestPTY_EnrollWithoutBiometric(t *testing.T) {
	store := &recordingStore{}
	res := runOnPTY(t, store, nil, split("12341234"))

	assert.Equal(t, enroll.OutcomeCompleted, res.Outcome)
	assert.False(t, res.Biometric)
	assert.Equal(t, 1, store.saved)
	assert.True(t, store.enabled)
}

func TestPTY_DeleteThenMismatchThenMatch(t *testing.T) {
	store := &recordingStore{}
	keys := split("129")
	keys = append(keys, "\x7f")
	keys = append(keys, split("34"+"1235"+"5678"+"5678")...)
	res := runOnPTY(t, store, nil, keys)

	assert.Equal(t, enroll.OutcomeCompleted, res.Outcome)
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Errors[0], enroll.ErrMismatch)
	assert.Equal(t, 1, store.saved)
}

func TestPTY_AcceptBiometricOffer(t *testing.T) {
	store := &recordingStore{}
	keys := append(split("43214321"), "y")
	res := runOnPTY(t, store, supported(enroll.KindFingerprint), keys)

	assert.Equal(t, enroll.OutcomeCompleted, res.Outcome)
	assert.True(t, res.Biometric)
}

func TestPTY_CtrlCSkips(t *testing.T) {
	store := &recordingStore{}
	res := runOnPTY(t, store, nil, []string{"1", "2", "\x03"})

	assert.Equal(t, enroll.OutcomeSkipped, res.Outcome)
	assert.Equal(t, 0, store.saved)
}
