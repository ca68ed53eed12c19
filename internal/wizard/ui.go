package wizard

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
	"github.com/conn-castle/pinset/internal/terminal"
)

var (
	// ErrBack is returned when the user pressed Esc on a prompt.
	ErrBack = errors.New("prompt back requested")
	// ErrCancelled is returned when the user pressed Ctrl+C on a prompt.
	ErrCancelled = errors.New("prompt cancelled")
)

// UI defines the prompts the enrollment form needs.
type UI interface {
	PINInput(title string, value *string) error
	Confirm(title string, description string, value *bool) error
	Note(title string, body string) error
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
	ctrlCAbort bool // set by the key filter while a form runs
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI that checks terminal.IsInteractive before each prompt.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf(messages.WizardRequiresTerminal)
}

// promptKeyMap maps both Esc and Ctrl+C to form abort; runForm tells them
// apart through ctrlCAbort. Prev and Next only render hints.
func promptKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	escSkip := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip"))
	km.Confirm.Prev = escSkip
	km.Input.Prev = escSkip
	km.Note.Prev = escSkip

	ctrlCExit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "exit"))
	km.Confirm.Next = ctrlCExit
	km.Input.Next = ctrlCExit
	km.Note.Next = ctrlCExit
	return km
}

// hintField keeps the Prev/Next hints visible. huh disables Prev on the
// first field and Next on the last one, and every prompt here has one field.
type hintField struct {
	huh.Field
	km *huh.KeyMap
}

// Update delegates and re-wraps so the group keeps the wrapper.
func (f *hintField) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := f.Field.Update(msg)
	if field, ok := model.(huh.Field); ok {
		f.Field = field
	}
	return f, cmd
}

// WithPosition lets huh apply positional state, then restores the hints.
func (f *hintField) WithPosition(p huh.FieldPosition) huh.Field {
	f.Field.WithPosition(p)
	f.WithKeyMap(f.km)
	return f
}

func newHintField(field huh.Field) huh.Field {
	return &hintField{Field: field, km: promptKeyMap()}
}

// formFilter records Ctrl+C presses and turns InterruptMsg into QuitMsg so
// bubbletea clears the form on the way out.
func (ui *HuhUI) formFilter() func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
			ui.ctrlCAbort = true
		}
		if _, ok := msg.(tea.InterruptMsg); ok {
			return tea.QuitMsg{}
		}
		return msg
	}
}

// runForm returns ErrBack for Esc and ErrCancelled for Ctrl+C.
func (ui *HuhUI) runForm(form *huh.Form) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}

	ui.ctrlCAbort = false
	form.WithKeyMap(promptKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithReportFocus(),
		tea.WithFilter(ui.formFilter()),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		if ui.ctrlCAbort {
			return ErrCancelled
		}
		return ErrBack
	}
	return err
}

// PINInput renders a masked 4-digit input.
func (ui *HuhUI) PINInput(title string, value *string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewInput().
				Title(title).
				Description(messages.PromptPINDescription).
				CharLimit(enroll.PINLength).
				EchoMode(huh.EchoModePassword).
				Validate(validatePIN).
				Value(value)),
		),
	))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, description string, value *bool) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewConfirm().
				Title(title).
				Description(description).
				Value(value)),
		),
	))
}

// Note renders an informational screen.
func (ui *HuhUI) Note(title string, body string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewNote().
				Title(title).
				Description(body)),
		),
	))
}

func validatePIN(value string) error {
	if len(value) != enroll.PINLength {
		return errors.New(messages.PromptPINDigitsOnly)
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return errors.New(messages.PromptPINDigitsOnly)
		}
	}
	return nil
}
