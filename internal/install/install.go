// Package install writes the default pinset config.
package install

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/conn-castle/pinset/internal/messages"
	"github.com/conn-castle/pinset/internal/templates"
)

const configTemplate = "config.toml"

// Action is what Run did with the config file.
type Action int

const (
	ActionCreated Action = iota
	ActionUnchanged
	ActionOverwritten
	ActionKept
)

func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionUnchanged:
		return "unchanged"
	case ActionOverwritten:
		return "overwritten"
	case ActionKept:
		return "kept"
	default:
		return "unknown"
	}
}

// Options controls Run.
type Options struct {
	ConfigPath string
	// Force replaces a differing config without prompting.
	Force        bool
	DiffMaxLines int
	Prompter     Prompter
	System       System
}

// Result reports what Run did. Preview is set when the existing file differed.
type Result struct {
	Path    string
	Action  Action
	Preview *DiffPreview
}

// Run writes the default config to opts.ConfigPath. An existing file that
// differs is only replaced with Force or after the prompter agrees.
func Run(opts Options) (Result, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		return Result{}, errors.New(messages.InstallConfigPathRequired)
	}
	sys := opts.System
	if sys == nil {
		sys = RealSystem{}
	}

	target, err := templates.Read(configTemplate)
	if err != nil {
		return Result{}, fmt.Errorf(messages.InstallReadTemplateFailedFmt, err)
	}

	current, err := sys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := write(sys, path, target); err != nil {
			return Result{}, err
		}
		return Result{Path: path, Action: ActionCreated}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf(messages.InstallReadExistingFailedFmt, path, err)
	}

	currentText := normalizeContent(string(current))
	targetText := normalizeContent(string(target))
	if currentText == targetText {
		return Result{Path: path, Action: ActionUnchanged}, nil
	}

	preview := buildDiffPreview(filepath.Base(path), currentText, targetText, opts.DiffMaxLines)
	result := Result{Path: path, Action: ActionKept, Preview: &preview}
	if !opts.Force {
		prompter := opts.Prompter
		if prompter == nil {
			prompter = PromptFuncs{}
		}
		ok, err := prompter.Overwrite(preview)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return result, nil
		}
	}

	if err := write(sys, path, target); err != nil {
		return Result{}, err
	}
	result.Action = ActionOverwritten
	return result, nil
}

func write(sys System, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := sys.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf(messages.InstallMkdirFailedFmt, dir, err)
	}
	if err := sys.WriteFileAtomic(path, data, 0o600); err != nil {
		return fmt.Errorf(messages.InstallWriteFailedFmt, path, err)
	}
	return nil
}
