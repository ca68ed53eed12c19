package install

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/pinset/internal/messages"
)

const (
	// DefaultDiffMaxLines is the default maximum number of diff lines shown.
	DefaultDiffMaxLines = 40
	// DiffLineCapFlagName is the CLI flag that raises the diff line cap.
	DiffLineCapFlagName = "--diff-lines"
)

// DiffPreview shows how the default config differs from the file on disk.
type DiffPreview struct {
	Path        string
	UnifiedDiff string
	Truncated   bool
}

func normalizeDiffMaxLines(value int) int {
	if value <= 0 {
		return DefaultDiffMaxLines
	}
	return value
}

func buildDiffPreview(path string, current string, target string, maxLines int) DiffPreview {
	rendered, truncated := renderTruncatedUnifiedDiff(path+" (current)", path+" (default)", current, target, maxLines)
	return DiffPreview{
		Path:        path,
		UnifiedDiff: rendered,
		Truncated:   truncated,
	}
}

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	limit := normalizeDiffMaxLines(maxLines)
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := append(lines[:limit:limit], fmt.Sprintf(messages.InstallDiffTruncatedFmt, limit, DiffLineCapFlagName))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}

// normalizeContent folds line endings and trailing blank lines so cosmetic
// differences do not count as edits.
func normalizeContent(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.TrimRight(content, "\n") + "\n"
}
