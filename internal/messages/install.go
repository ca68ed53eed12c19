package messages

// Messages for writing the default config.
const (
	InstallOverwritePromptRequired = "overwrite prompt handler is required; rerun with --force"
	InstallConfigPathRequired      = "config path is required"
	InstallReadTemplateFailedFmt   = "read config template: %w"
	InstallReadExistingFailedFmt   = "read existing config %s: %w"
	InstallMkdirFailedFmt          = "create config directory %s: %w"
	InstallWriteFailedFmt          = "write config %s: %w"
	InstallDiffTruncatedFmt        = "... (truncated to %d lines; rerun with %s <n> to see more)"

	InitCreatedFmt     = "Wrote %s"
	InitUnchangedFmt   = "%s already matches the default config."
	InitOverwrittenFmt = "Replaced %s with the default config."
	InitKeptFmt        = "Kept existing %s."
	InitOverwriteTitle = "Replace your config with the default?"
)
