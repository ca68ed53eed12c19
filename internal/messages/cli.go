package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "pinset"
	// RootShort is the short description for the root command.
	RootShort       = "Enroll and manage the device unlock PIN"
	RootVersionFlag = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// EnrollUse is the enroll command name.
	EnrollUse          = "enroll"
	EnrollShort        = "Create a 4-digit PIN and optionally enable biometric unlock"
	EnrollFlagUI       = "Front end: pad, form or pinentry (defaults to ui.frontend)"
	EnrollUnknownUIFmt = "unknown front end %q (supported: pad, form, pinentry)"

	StatusUse          = "status"
	StatusShort        = "Show whether a PIN is enrolled"
	StatusFlagJSON     = "Print status as JSON"
	StatusNotEnrolled  = "No PIN enrolled. Run 'pinset enroll' to create one."
	StatusIDFmt        = "Credential:  %s\n"
	StatusEnabledFmt   = "PIN:         %s\n"
	StatusBiometricFmt = "Biometric:   %s\n"
	StatusUpdatedFmt   = "Updated:     %s\n"
	StatusOn           = "enabled"
	StatusOff          = "disabled"

	VerifyUse           = "verify"
	VerifyShort         = "Check a PIN against the enrolled credential"
	VerifyFlagStdin     = "Read the PIN from stdin instead of prompting"
	VerifyAccepted      = "PIN accepted."
	VerifyRejected      = "PIN rejected."
	VerifyReadFailedFmt = "read PIN: %w"
	VerifyInvalidPIN    = "PIN must be exactly 4 digits"

	InitUse                       = "init"
	InitShort                     = "Write the default config file"
	InitFlagForce                 = "Overwrite an existing config without prompting"
	InitFlagDiffLines             = "Maximum diff lines to show before the overwrite prompt"
	InitOverwriteRequiresTerminal = "init overwrite prompts require an interactive terminal; re-run with --force to overwrite without prompts"

	ConfigUse      = "config"
	ConfigShort    = "Inspect or change config values"
	ConfigSetUse   = "set <key> <value>"
	ConfigSetShort = "Set one config key in config.toml"
	ConfigSetLong  = "Set one config key in config.toml. Known keys:"
	ConfigSetFmt   = "Set %s = %s in %s\n"
	ConfigKeyFmt   = "  %s (%s)\n"

	AnnouncementsUse   = "announcements"
	AnnouncementsShort = "List announcements from the configured feed"
	AnnouncementFmt    = "%s  %s\n"

	DeleteAccountUse     = "delete-account"
	DeleteAccountShort   = "Delete the account and the enrolled credential on this device"
	DeleteAccountFlagYes = "Delete without asking for confirmation"

	McpUse   = "mcp"
	McpShort = "Run the read-only MCP server over stdio"

	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt   = "%s [Y/n]: "
	PromptNoDefaultFmt    = "%s [y/N]: "
	PromptInvalidResponse = "invalid response %q"
	PromptRetryYesNo      = "Please enter y or n."
)
