package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/credstore"
	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
	"github.com/conn-castle/pinset/internal/wizard"
)

var promptPIN = func() (string, error) {
	var value string
	err := wizard.NewHuhUI().PINInput(messages.PromptVerifyPIN, &value)
	return value, err
}

func newVerifyCmd() *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   messages.VerifyUse,
		Short: messages.VerifyShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(_ *config.Config, store credstore.Store) error {
				raw, err := readPIN(cmd.InOrStdin(), fromStdin)
				if errors.Is(err, wizard.ErrBack) || errors.Is(err, wizard.ErrCancelled) {
					return &SilentExitError{Code: 1}
				}
				if err != nil {
					return err
				}
				pin, err := parsePIN(raw)
				if err != nil {
					return err
				}
				ok, err := store.Verify(cmd.Context(), pin)
				if err != nil {
					return err
				}
				if !ok {
					_, _ = color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), messages.VerifyRejected)
					return &SilentExitError{Code: 1}
				}
				_, err = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), messages.VerifyAccepted)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, messages.VerifyFlagStdin)
	return cmd
}

// readPIN prompts on a terminal and otherwise reads one line from in.
func readPIN(in io.Reader, fromStdin bool) (string, error) {
	if !fromStdin && isTerminal() {
		return promptPIN()
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf(messages.VerifyReadFailedFmt, err)
	}
	return strings.TrimSpace(line), nil
}

func parsePIN(raw string) (enroll.PIN, error) {
	var pin enroll.PIN
	if len(raw) != enroll.PINLength {
		return pin, errors.New(messages.VerifyInvalidPIN)
	}
	for i := 0; i < enroll.PINLength; i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return pin, errors.New(messages.VerifyInvalidPIN)
		}
		pin[i] = raw[i]
	}
	return pin, nil
}
