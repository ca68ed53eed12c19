package install

import (
	"fmt"

	"github.com/conn-castle/pinset/internal/messages"
)

// Prompter decides whether an existing config may be replaced.
type Prompter interface {
	Overwrite(preview DiffPreview) (bool, error)
}

// PromptOverwriteFunc asks whether to replace the file shown in preview.
type PromptOverwriteFunc func(preview DiffPreview) (bool, error)

// PromptFuncs adapts an optional callback into a Prompter.
type PromptFuncs struct {
	OverwriteFunc PromptOverwriteFunc
}

// Overwrite returns an error if no OverwriteFunc is configured.
func (p PromptFuncs) Overwrite(preview DiffPreview) (bool, error) {
	if p.OverwriteFunc == nil {
		return false, fmt.Errorf(messages.InstallOverwritePromptRequired)
	}
	return p.OverwriteFunc(preview)
}
