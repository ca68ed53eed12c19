// Package wizard drives PIN enrollment through huh form prompts.
//
// Each prompt collects a full 4-digit entry which is fed to the
// enrollment controller one digit at a time, so the controller stays the
// single owner of buffer, mode and commit logic. Esc or Ctrl+C on an entry
// prompt skips enrollment.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
)

// Run enrolls a PIN using ui and returns how the flow ended.
func Run(ctx context.Context, ui UI, store enroll.CredentialStore, probe enroll.BiometricProbe) (enroll.Result, error) {
	var reported []error
	rec := &enroll.Recorder{
		Next: enroll.ListenerFuncs{
			ErrorFunc: func(err error) { reported = append(reported, err) },
		},
	}
	ctrl, err := enroll.New(enroll.Options{
		Store:    store,
		Probe:    probe,
		Offerer:  offerer(ui),
		Listener: rec,
	})
	if err != nil {
		return enroll.Result{}, err
	}

	for !ctrl.Phase().Terminal() {
		title := messages.PromptEnterPIN
		if ctrl.Mode() == enroll.ModeConfirming {
			title = messages.PromptConfirmPIN
		}

		var value string
		if err := ui.PINInput(title, &value); err != nil {
			if isAbort(err) {
				_ = ctrl.Skip()
				break
			}
			return rec.Result(), err
		}
		ctrl.PressDigits(ctx, value)

		for _, problem := range reported {
			if err := ui.Note(messages.PromptErrorTitle, problem.Error()); err != nil && !isAbort(err) {
				return rec.Result(), err
			}
		}
		reported = nil
	}
	return rec.Result(), nil
}

func offerer(ui UI) enroll.Offerer {
	return enroll.OffererFunc(func(_ context.Context, kind enroll.Kind) (bool, error) {
		accept := true
		title := fmt.Sprintf(messages.PromptOfferFmt, kind.Label())
		if err := ui.Confirm(title, messages.PromptOfferBody, &accept); err != nil {
			return false, err
		}
		return accept, nil
	})
}

func isAbort(err error) bool {
	return errors.Is(err, ErrBack) || errors.Is(err, ErrCancelled)
}
