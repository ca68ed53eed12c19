package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/pinset/internal/biometric"
	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/credstore"
	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
	"github.com/conn-castle/pinset/internal/terminal"
)

var isTerminal = terminal.IsInteractive

var defaultPaths = config.DefaultPaths

var openStore = func(cfg *config.Config, paths config.Paths) (credstore.Store, error) {
	path, err := paths.CredentialPath(cfg)
	if err != nil {
		return nil, err
	}
	return credstore.Open(cfg.Store.Backend, path)
}

var newProbe = func(cfg *config.Config) (enroll.BiometricProbe, error) {
	return biometric.New(cfg.Biometric)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)

	cmd.AddCommand(
		newEnrollCmd(),
		newStatusCmd(),
		newVerifyCmd(),
		newInitCmd(),
		newConfigCmd(),
		newAnnouncementsCmd(),
		newDeleteAccountCmd(),
		newMcpCmd(),
	)
	return cmd
}

// loadConfig resolves paths and loads config.toml, falling back to defaults.
func loadConfig() (*config.Config, config.Paths, error) {
	paths, err := defaultPaths()
	if err != nil {
		return nil, config.Paths{}, err
	}
	cfg, err := config.Load(paths.ConfigPath)
	if err != nil {
		return nil, config.Paths{}, err
	}
	return cfg, paths, nil
}

// withStore loads config, opens the credential store and closes it after fn.
func withStore(fn func(cfg *config.Config, store credstore.Store) error) (err error) {
	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg, paths)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(cfg, store)
}
