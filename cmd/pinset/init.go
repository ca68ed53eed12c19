package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/pinset/internal/install"
	"github.com/conn-castle/pinset/internal/messages"
)

var installRun = install.Run

func newInitCmd() *cobra.Command {
	var force bool
	var diffLines int

	cmd := &cobra.Command{
		Use:   messages.InitUse,
		Short: messages.InitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := defaultPaths()
			if err != nil {
				return err
			}

			var prompter install.Prompter
			if !force {
				prompter = install.PromptFuncs{
					OverwriteFunc: func(preview install.DiffPreview) (bool, error) {
						if !isTerminal() {
							return false, errors.New(messages.InitOverwriteRequiresTerminal)
						}
						if _, err := fmt.Fprintln(cmd.OutOrStdout(), preview.UnifiedDiff); err != nil {
							return false, err
						}
						return promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), messages.InitOverwriteTitle, false)
					},
				}
			}

			result, err := installRun(install.Options{
				ConfigPath:   paths.ConfigPath,
				Force:        force,
				DiffMaxLines: diffLines,
				Prompter:     prompter,
			})
			if err != nil {
				return err
			}
			return printInitResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, messages.InitFlagForce)
	cmd.Flags().IntVar(&diffLines, strings.TrimPrefix(install.DiffLineCapFlagName, "--"), install.DefaultDiffMaxLines, messages.InitFlagDiffLines)
	return cmd
}

func printInitResult(out io.Writer, result install.Result) error {
	var format string
	switch result.Action {
	case install.ActionCreated:
		format = messages.InitCreatedFmt
	case install.ActionUnchanged:
		format = messages.InitUnchangedFmt
	case install.ActionOverwritten:
		format = messages.InitOverwrittenFmt
	default:
		format = messages.InitKeptFmt
	}
	_, err := fmt.Fprintln(out, fmt.Sprintf(format, result.Path))
	return err
}

// promptYesNo asks a yes/no question on out and reads the answer from in.
func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	reader := bufio.NewReader(in)
	for {
		format := messages.PromptNoDefaultFmt
		if defaultYes {
			format = messages.PromptYesDefaultFmt
		}
		if _, err := fmt.Fprintf(out, format, prompt); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return defaultYes, nil
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.PromptInvalidResponse, response)
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}
