package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/credstore"
	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
	"github.com/conn-castle/pinset/internal/pinentry"
	"github.com/conn-castle/pinset/internal/pinpad"
	"github.com/conn-castle/pinset/internal/telemetry"
	"github.com/conn-castle/pinset/internal/wizard"
)

var runPad = func(ctx context.Context, store enroll.CredentialStore, probe enroll.BiometricProbe) (enroll.Result, error) {
	return pinpad.Run(ctx, store, probe)
}

var runForm = func(ctx context.Context, store enroll.CredentialStore, probe enroll.BiometricProbe) (enroll.Result, error) {
	return wizard.Run(ctx, wizard.NewHuhUI(), store, probe)
}

var runPinentry = pinentry.Run

var setupTelemetry = telemetry.Setup

func newEnrollCmd() *cobra.Command {
	var ui string

	cmd := &cobra.Command{
		Use:   messages.EnrollUse,
		Short: messages.EnrollShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(cfg *config.Config, store credstore.Store) error {
				frontend := strings.TrimSpace(ui)
				if frontend == "" {
					frontend = cfg.UI.Frontend
				}
				probe, err := newProbe(cfg)
				if err != nil {
					return err
				}

				shutdown, err := setupTelemetry(cmd.Context(), cfg.Telemetry.OTLPEndpoint, Version)
				if err != nil {
					return err
				}
				defer func() { _ = shutdown(context.Background()) }()

				result, err := runFrontend(cmd.Context(), frontend, cfg, store, probe)
				if err != nil {
					return err
				}
				return printOutcome(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().StringVar(&ui, "ui", "", messages.EnrollFlagUI)
	return cmd
}

func runFrontend(ctx context.Context, frontend string, cfg *config.Config, store enroll.CredentialStore, probe enroll.BiometricProbe) (enroll.Result, error) {
	switch frontend {
	case config.FrontendPad, config.FrontendForm:
		if !isTerminal() {
			return enroll.Result{}, fmt.Errorf(messages.WizardRequiresTerminal)
		}
		if frontend == config.FrontendPad {
			return runPad(ctx, store, probe)
		}
		return runForm(ctx, store, probe)
	case config.FrontendPinentry:
		return runPinentry(ctx, cfg.UI.PinentryProgram, store, probe)
	default:
		return enroll.Result{}, fmt.Errorf(messages.EnrollUnknownUIFmt, frontend)
	}
}

func printOutcome(out io.Writer, result enroll.Result) error {
	switch result.Outcome {
	case enroll.OutcomeCompleted:
		success := color.New(color.FgGreen)
		if result.Biometric {
			_, err := success.Fprintln(out, fmt.Sprintf(messages.PadSavedBiometricFmt, result.Kind.Label()))
			return err
		}
		_, err := success.Fprintln(out, messages.PadSaved)
		return err
	case enroll.OutcomeSkipped:
		_, err := color.New(color.FgYellow).Fprintln(out, messages.PadSkipped)
		return err
	default:
		return nil
	}
}
