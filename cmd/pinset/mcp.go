package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/credstore"
	"github.com/conn-castle/pinset/internal/mcp"
	"github.com/conn-castle/pinset/internal/messages"
)

var runMCPServer = mcp.RunServer

func newMcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.McpUse,
		Short: messages.McpShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(cfg *config.Config, store credstore.Store) error {
				return runMCPServer(cmd.Context(), Version, mcp.Deps{
					Credentials:   store,
					Announcements: newAccountClient(cfg, store),
				})
			})
		},
	}
}
