package pinpad

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
)

type action int

const (
	actDigit action = iota
	actDelete
	actSkip
)

// input is one key press forwarded to the driver.
type input struct {
	act   action
	digit byte
}

type (
	snapshotMsg   enroll.Snapshot
	committingMsg struct{}
	errorMsg      struct{ err error }
	offerMsg      struct {
		kind  enroll.Kind
		reply chan<- bool
	}
	finishedMsg struct {
		outcome   enroll.Outcome
		biometric bool
		kind      enroll.Kind
	}
)

type keyMap struct {
	Digit   key.Binding
	Delete  key.Binding
	Skip    key.Binding
	Accept  key.Binding
	Decline key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digit:   key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "digit")),
		Delete:  key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("backspace", "delete")),
		Skip:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "skip")),
		Accept:  key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "enable")),
		Decline: key.NewBinding(key.WithKeys("n", "N", "esc", "ctrl+c"), key.WithHelp("n", "not now")),
	}
}

// entryKeys and offerKeys implement help.KeyMap for the two screens.
type entryKeys keyMap

func (k entryKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Digit, k.Delete, k.Skip}
}

func (k entryKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type offerKeys keyMap

func (k offerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Decline}
}

func (k offerKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	filledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	emptyStyle   = lipgloss.NewStyle().Faint(true)
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// model renders the pad. It never touches the controller; presses go to the
// driver over inputs and state comes back as messages.
type model struct {
	inputs chan<- input
	keys   keyMap
	help   help.Model

	snap    enroll.Snapshot
	saving  bool
	problem string
	offer   *offerMsg
	done    *finishedMsg
}

func newModel(inputs chan<- input) model {
	return model{
		inputs: inputs,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = enroll.Snapshot(msg)
		m.saving = false
	case committingMsg:
		m.saving = true
	case errorMsg:
		m.problem = msg.err.Error()
		m.saving = false
	case offerMsg:
		m.offer = &msg
		m.saving = false
	case finishedMsg:
		m.done = &msg
		m.offer = nil
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done != nil {
		return m, nil
	}
	if m.offer != nil {
		switch {
		case key.Matches(msg, m.keys.Accept):
			m.answerOffer(true)
		case key.Matches(msg, m.keys.Decline):
			m.answerOffer(false)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Digit):
		m.problem = ""
		m.forward(input{act: actDigit, digit: byte(msg.Runes[0])})
	case key.Matches(msg, m.keys.Delete):
		m.forward(input{act: actDelete})
	case key.Matches(msg, m.keys.Skip):
		m.forward(input{act: actSkip})
	}
	return m, nil
}

// forward drops the press when the driver is saturated.
func (m *model) forward(in input) {
	select {
	case m.inputs <- in:
	default:
	}
}

func (m *model) answerOffer(accept bool) {
	m.offer.reply <- accept
	m.offer = nil
}

func (m model) View() string {
	var b strings.Builder
	if m.done != nil {
		b.WriteString(doneStyle.Render(outcomeLine(*m.done)))
		b.WriteString("\n")
		return b.String()
	}

	if m.offer != nil {
		b.WriteString(titleStyle.Render(fmt.Sprintf(messages.PromptOfferFmt, m.offer.kind.Label())))
		b.WriteString("\n")
		b.WriteString(messages.PromptOfferBody)
		b.WriteString("\n\n")
		b.WriteString(m.help.View(offerKeys(m.keys)))
		b.WriteString("\n")
		return b.String()
	}

	title := messages.PromptEnterPIN
	if m.snap.Mode == enroll.ModeConfirming {
		title = messages.PromptConfirmPIN
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(dots(m.snap.ActiveLen()))
	b.WriteString("\n\n")
	switch {
	case m.saving:
		b.WriteString(messages.PromptSaving)
		b.WriteString("\n")
	case m.problem != "":
		b.WriteString(problemStyle.Render(m.problem))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(entryKeys(m.keys)))
	b.WriteString("\n")
	return b.String()
}

func dots(n int) string {
	cells := make([]string, 0, enroll.PINLength)
	for i := 0; i < enroll.PINLength; i++ {
		if i < n {
			cells = append(cells, filledStyle.Render("●"))
		} else {
			cells = append(cells, emptyStyle.Render("○"))
		}
	}
	return strings.Join(cells, " ")
}

func outcomeLine(done finishedMsg) string {
	switch {
	case done.outcome == enroll.OutcomeSkipped:
		return messages.PadSkipped
	case done.biometric:
		return fmt.Sprintf(messages.PadSavedBiometricFmt, done.kind.Label())
	default:
		return messages.PadSaved
	}
}
