package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/credstore"
	"github.com/conn-castle/pinset/internal/messages"
)

func newDeleteAccountCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   messages.DeleteAccountUse,
		Short: messages.DeleteAccountShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !isTerminal() {
					return errors.New(messages.AccountDeleteRequiresConfirm)
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), messages.AccountDeleteConfirmBody); err != nil {
					return err
				}
				ok, err := promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), messages.AccountDeleteConfirmTitle, false)
				if err != nil {
					return err
				}
				if !ok {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), messages.AccountDeleteCancelled)
					return err
				}
			}
			return withStore(func(cfg *config.Config, store credstore.Store) error {
				if err := newAccountClient(cfg, store).DeleteAccount(cmd.Context()); err != nil {
					return err
				}
				_, err := color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), messages.AccountDeleted)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, messages.DeleteAccountFlagYes)
	return cmd
}
