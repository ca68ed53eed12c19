package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/pinset/internal/messages"
)

// StateDirEnv overrides the pinset state directory.
const StateDirEnv = "PINSET_HOME"

var homeDirFunc = homedir.Dir

// Paths holds resolved locations of pinset files.
type Paths struct {
	StateDir       string
	ConfigPath     string
	CredentialFile string
	CredentialDB   string
}

// DefaultPaths resolves paths under $PINSET_HOME or ~/.config/pinset.
func DefaultPaths() (Paths, error) {
	if dir := strings.TrimSpace(os.Getenv(StateDirEnv)); dir != "" {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return Paths{}, fmt.Errorf(messages.ConfigExpandPathFailedFmt, dir, err)
		}
		return PathsFor(expanded), nil
	}
	home, err := homeDirFunc()
	if err != nil {
		return Paths{}, fmt.Errorf(messages.ConfigHomeDirFailedFmt, err)
	}
	return PathsFor(filepath.Join(home, ".config", "pinset")), nil
}

// PathsFor returns the paths rooted at stateDir.
func PathsFor(stateDir string) Paths {
	return Paths{
		StateDir:       stateDir,
		ConfigPath:     filepath.Join(stateDir, "config.toml"),
		CredentialFile: filepath.Join(stateDir, "credential.cbor"),
		CredentialDB:   filepath.Join(stateDir, "credential.db"),
	}
}

// CredentialPath returns where the configured backend keeps the credential.
// store.path wins over the state directory default.
func (p Paths) CredentialPath(cfg *Config) (string, error) {
	if path := strings.TrimSpace(cfg.Store.Path); path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return "", fmt.Errorf(messages.ConfigExpandPathFailedFmt, path, err)
		}
		return expanded, nil
	}
	if cfg.Store.Backend == BackendSQLite {
		return p.CredentialDB, nil
	}
	return p.CredentialFile, nil
}
