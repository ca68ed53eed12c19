package wizard

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRunForm(t *testing.T, fn func(form *huh.Form) error) {
	t.Helper()
	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })
	runFormFunc = fn
}

func TestNewHuhUI(t *testing.T) {
	ui := NewHuhUI()
	assert.NotNil(t, ui)
	assert.NotNil(t, ui.isTerminal)
}

func TestHuhUI_EnsureInteractive_NilChecker(t *testing.T) {
	// Tests run without a TTY, so the default checker fails.
	ui := &HuhUI{isTerminal: nil}
	err := ui.ensureInteractive()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestHuhUI_NoTTY(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return false }}

	t.Run("PINInput", func(t *testing.T) {
		var res string
		assert.Error(t, ui.PINInput("Title", &res))
	})
	t.Run("Confirm", func(t *testing.T) {
		var res bool
		assert.Error(t, ui.Confirm("Title", "Body", &res))
	})
	t.Run("Note", func(t *testing.T) {
		assert.Error(t, ui.Note("Title", "Body"))
	})
}

func TestHuhUI_RunFormSuccess(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return true }}
	called := false
	stubRunForm(t, func(form *huh.Form) error {
		assert.NotNil(t, form)
		called = true
		return nil
	})

	var res string
	require.NoError(t, ui.PINInput("Title", &res))
	assert.True(t, called)
}

func TestHuhUI_RunFormMapsUserAbortToBack(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return true }}
	stubRunForm(t, func(*huh.Form) error { return huh.ErrUserAborted })

	var res bool
	assert.ErrorIs(t, ui.Confirm("Title", "", &res), ErrBack)
}

func TestHuhUI_RunFormMapsCtrlCAbortToCancelled(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return true }}
	stubRunForm(t, func(*huh.Form) error {
		ui.ctrlCAbort = true
		return huh.ErrUserAborted
	})

	assert.ErrorIs(t, ui.Note("Title", "Body"), ErrCancelled)
}

func TestHuhUI_RunFormResetsCtrlCFlag(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return true }, ctrlCAbort: true}
	stubRunForm(t, func(*huh.Form) error { return huh.ErrUserAborted })

	assert.ErrorIs(t, ui.Note("Title", "Body"), ErrBack)
}

func TestHuhUI_RunFormPassesOtherErrors(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return true }}
	boom := errors.New("boom")
	stubRunForm(t, func(*huh.Form) error { return boom })

	assert.ErrorIs(t, ui.Note("Title", "Body"), boom)
}

func TestFormFilter(t *testing.T) {
	ui := &HuhUI{}
	filter := ui.formFilter()

	out := filter(nil, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, ui.ctrlCAbort)
	assert.IsType(t, tea.KeyMsg{}, out)

	out = filter(nil, tea.InterruptMsg{})
	assert.IsType(t, tea.QuitMsg{}, out)
}

func TestPromptKeyMapHints(t *testing.T) {
	km := promptKeyMap()
	assert.Equal(t, "skip", km.Input.Prev.Help().Desc)
	assert.Equal(t, "exit", km.Confirm.Next.Help().Desc)
	assert.ElementsMatch(t, []string{"ctrl+c", "esc"}, km.Quit.Keys())
}

func TestValidatePIN(t *testing.T) {
	assert.NoError(t, validatePIN("0429"))
	assert.Error(t, validatePIN("123"))
	assert.Error(t, validatePIN("12a4"))
	assert.Error(t, validatePIN("12345"))
	assert.Error(t, validatePIN("١٢٣٤"))
}
