package terminal

import (
	"os"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInteractive(t *testing.T) {
	// The result depends on how tests are run; only exercise the call.
	_ = IsInteractive()
}

func TestInteractive(t *testing.T) {
	assert.False(t, Interactive())
	assert.False(t, Interactive(nil))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close(); _ = w.Close() })
	assert.False(t, Interactive(r, w))

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() { _ = ptmx.Close(); _ = tty.Close() })
	assert.True(t, Interactive(tty))
	assert.False(t, Interactive(tty, w))
}
