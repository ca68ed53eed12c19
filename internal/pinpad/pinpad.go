// Package pinpad is a full-screen bubbletea PIN pad for enrollment.
//
// Digits are applied one key press at a time, so the pad shows the same
// partial state the controller holds: filled dots, deletes and the saving
// step after the fourth confirmation digit. The controller runs on a driver
// goroutine so a slow store never blocks rendering.
package pinpad

import (
	"context"
	"errors"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
)

// ErrClosed is returned to the controller when the pad exits during a
// biometric offer.
var ErrClosed = errors.New(messages.PadClosed)

const inputBuffer = 64

// Run shows the pad until enrollment completes or is skipped. Options are
// appended after the defaults, so callers can redirect input and output.
func Run(ctx context.Context, store enroll.CredentialStore, probe enroll.BiometricProbe, opts ...tea.ProgramOption) (enroll.Result, error) {
	inputs := make(chan input, inputBuffer)
	closed := make(chan struct{})

	programOpts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	}, opts...)
	p := tea.NewProgram(newModel(inputs), programOpts...)

	offer := &padOfferer{send: p.Send, closed: closed}
	rec := &enroll.Recorder{
		Next: enroll.ListenerFuncs{
			CompletedFunc: func(biometric bool) {
				p.Send(finishedMsg{outcome: enroll.OutcomeCompleted, biometric: biometric, kind: offer.lastKind()})
			},
			SkippedFunc: func() {
				p.Send(finishedMsg{outcome: enroll.OutcomeSkipped})
			},
			ErrorFunc: func(err error) {
				p.Send(errorMsg{err: err})
			},
		},
	}
	ctrl, err := enroll.New(enroll.Options{
		Store:    store,
		Probe:    probe,
		Offerer:  offer,
		Listener: rec,
	})
	if err != nil {
		return enroll.Result{}, err
	}

	d := &driver{ctrl: ctrl, send: p.Send}
	go d.run(ctx, inputs, closed)

	_, runErr := p.Run()
	close(closed)
	return rec.Result(), runErr
}

// driver applies presses to the controller in arrival order.
type driver struct {
	ctrl *enroll.Controller
	send func(tea.Msg)
}

func (d *driver) run(ctx context.Context, inputs <-chan input, closed <-chan struct{}) {
	for {
		select {
		case <-closed:
			return
		case in := <-inputs:
			d.apply(ctx, in)
			d.send(snapshotMsg(d.ctrl.Snapshot()))
		}
	}
}

func (d *driver) apply(ctx context.Context, in input) {
	switch in.act {
	case actDigit:
		if commits(d.ctrl.Snapshot()) {
			d.send(committingMsg{})
		}
		// Invalid digits and presses after the flow ended are dropped.
		_ = d.ctrl.PressDigit(ctx, in.digit)
	case actDelete:
		d.ctrl.PressDelete()
	case actSkip:
		_ = d.ctrl.Skip()
	}
}

// commits reports whether the next digit completes the confirmation buffer.
func commits(s enroll.Snapshot) bool {
	return !s.Phase.Terminal() && s.Mode == enroll.ModeConfirming && s.ConfirmLen == enroll.PINLength-1
}

// padOfferer asks the model and waits for its answer.
type padOfferer struct {
	send   func(tea.Msg)
	closed <-chan struct{}

	mu   sync.Mutex
	kind enroll.Kind
}

func (o *padOfferer) OfferBiometric(ctx context.Context, kind enroll.Kind) (bool, error) {
	o.mu.Lock()
	o.kind = kind
	o.mu.Unlock()

	reply := make(chan bool, 1)
	o.send(offerMsg{kind: kind, reply: reply})
	select {
	case accepted := <-reply:
		return accepted, nil
	case <-ctx.Done():
		return false, ctx.Err()
	case <-o.closed:
		return false, ErrClosed
	}
}

func (o *padOfferer) lastKind() enroll.Kind {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.kind
}
