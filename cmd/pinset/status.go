package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/credstore"
	"github.com/conn-castle/pinset/internal/messages"
)

func newStatusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(_ *config.Config, store credstore.Store) error {
				rec, err := store.Load(cmd.Context())
				if errors.Is(err, credstore.ErrNoCredential) {
					if asJSON {
						return writeJSON(cmd.OutOrStdout(), map[string]bool{"enrolled": false})
					}
					_, err := color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), messages.StatusNotEnrolled)
					return err
				}
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), rec.Status())
				}
				return printStatus(cmd.OutOrStdout(), rec.Status())
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, messages.StatusFlagJSON)
	return cmd
}

func printStatus(out io.Writer, status credstore.Status) error {
	if _, err := fmt.Fprintf(out, messages.StatusIDFmt, status.ID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, messages.StatusEnabledFmt, onOff(status.Enabled)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, messages.StatusBiometricFmt, onOff(status.BiometricEnabled)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, messages.StatusUpdatedFmt, status.UpdatedAt.Local().Format(time.RFC1123))
	return err
}

func onOff(enabled bool) string {
	if enabled {
		return color.New(color.FgGreen).Sprint(messages.StatusOn)
	}
	return color.New(color.FgYellow).Sprint(messages.StatusOff)
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
