// Package pinentry runs enrollment through a GnuPG pinentry program over
// the Assuan protocol.
//
// One pinentry session serves the whole flow: each GETPIN collects a full
// entry that is pressed into the controller digit by digit, and the
// biometric offer is a CONFIRM dialog. Cancelling any dialog skips
// enrollment.
package pinentry

import (
	"context"
	"fmt"
	"os/exec"

	assuan "github.com/foxcpp/go-assuan/client"
	assuanpin "github.com/foxcpp/go-assuan/pinentry"

	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
)

// DefaultProgram is looked up on PATH when no program is configured.
const DefaultProgram = "pinentry"

const dialogTitle = "pinset"

// dialog is the subset of the pinentry client used here.
type dialog interface {
	SetTitle(text string)
	SetPrompt(text string)
	SetDesc(text string)
	GetPIN() (string, error)
	Confirm() error
	Shutdown()
}

var launchFunc = launch

// Run enrolls a PIN through program and returns how the flow ended.
func Run(ctx context.Context, program string, store enroll.CredentialStore, probe enroll.BiometricProbe) (enroll.Result, error) {
	if program == "" {
		program = DefaultProgram
	}

	var reported []error
	rec := &enroll.Recorder{
		Next: enroll.ListenerFuncs{
			ErrorFunc: func(err error) { reported = append(reported, err) },
		},
	}

	dlg, wait, err := launchFunc(ctx, program)
	if err != nil {
		return enroll.Result{}, fmt.Errorf(messages.PinentryLaunchFailedFmt, program, err)
	}
	defer func() {
		dlg.Shutdown()
		_ = wait()
	}()

	ctrl, err := enroll.New(enroll.Options{
		Store:    store,
		Probe:    probe,
		Offerer:  offerer(dlg),
		Listener: rec,
	})
	if err != nil {
		return enroll.Result{}, err
	}

	dlg.SetTitle(dialogTitle)

	desc := messages.PromptPINDescription
	for !ctrl.Phase().Terminal() {
		prompt := messages.PromptEnterPIN
		if ctrl.Mode() == enroll.ModeConfirming {
			prompt = messages.PromptConfirmPIN
		}
		dlg.SetPrompt(prompt + ":")
		dlg.SetDesc(desc)

		value, err := dlg.GetPIN()
		if err != nil {
			// pinentry reports cancel and window close the same way.
			_ = ctrl.Skip()
			break
		}
		if !validEntry(value) {
			desc = messages.PromptPINDigitsOnly
			continue
		}

		ctrl.PressDigits(ctx, value)
		desc = messages.PromptPINDescription
		if len(reported) > 0 {
			desc = reported[len(reported)-1].Error()
			reported = nil
		}
	}
	return rec.Result(), nil
}

// validEntry reports whether value is exactly one PIN. Partial entries are
// rejected before reaching the controller so its buffers stay aligned with
// the prompts.
func validEntry(value string) bool {
	if len(value) != enroll.PINLength {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

func offerer(dlg dialog) enroll.Offerer {
	return enroll.OffererFunc(func(_ context.Context, kind enroll.Kind) (bool, error) {
		dlg.SetDesc(fmt.Sprintf(messages.PromptOfferFmt, kind.Label()) + "\n" + messages.PromptOfferBody)
		// CONFIRM fails for both "not now" and cancel.
		return dlg.Confirm() == nil, nil
	})
}

// launch starts program and opens an Assuan session on its stdio.
func launch(ctx context.Context, program string) (dialog, func() error, error) {
	cmd := exec.CommandContext(ctx, program)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}

	var c assuanpin.Client
	c.Session, err = assuan.Init(assuan.ReadWriteCloser{
		ReadCloser:  stdout,
		WriteCloser: stdin,
	})
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, nil, err
	}
	return &c, cmd.Wait, nil
}
