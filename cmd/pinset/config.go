package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/messages"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ConfigUse,
		Short: messages.ConfigShort,
	}
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigSetUse,
		Short: messages.ConfigSetShort,
		Long:  configSetLong(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := defaultPaths()
			if err != nil {
				return err
			}
			key, value := strings.TrimSpace(args[0]), args[1]
			if err := config.WriteValue(paths.ConfigPath, key, value); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), messages.ConfigSetFmt, key, value, paths.ConfigPath)
			return err
		},
	}
}

func configSetLong() string {
	var b strings.Builder
	b.WriteString(messages.ConfigSetLong)
	b.WriteString("\n")
	for _, field := range config.Fields() {
		kind := string(field.Type)
		if len(field.Options) > 0 {
			kind = strings.Join(field.Options, "|")
		}
		fmt.Fprintf(&b, messages.ConfigKeyFmt, field.Key, kind)
	}
	return b.String()
}
