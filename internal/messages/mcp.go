package messages

// MCP server messages.
const (
	McpRunServerFailedFmt     = "failed to run MCP server: %w"
	McpServerRunnerNil        = "mcp server runner is nil"
	McpCredentialStatusDesc   = "Report whether a PIN is enrolled on this device and whether biometric unlock is enabled. Never returns the PIN or its hash."
	McpListAnnouncementsDesc  = "List announcements from the configured pinset feed."
	McpCredentialStatusFailed = "read credential status: %w"
)
