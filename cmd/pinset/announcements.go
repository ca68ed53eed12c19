package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/pinset/internal/account"
	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/credstore"
	"github.com/conn-castle/pinset/internal/messages"
)

func newAccountClient(cfg *config.Config, store credstore.Store) *account.Client {
	return account.New(cfg.Announcements.URL, cfg.AnnouncementsTimeout(), store)
}

func newAnnouncementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.AnnouncementsUse,
		Short: messages.AnnouncementsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(cfg *config.Config, store credstore.Store) error {
				items, err := newAccountClient(cfg, store).ListAnnouncements(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(items) == 0 {
					_, err := fmt.Fprintln(out, messages.AccountNoAnnouncements)
					return err
				}
				for _, item := range items {
					if _, err := fmt.Fprintf(out, messages.AnnouncementFmt, item.PublishedAt.Format("2006-01-02"), item.Title); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
