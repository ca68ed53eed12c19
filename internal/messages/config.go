package messages

// Config messages for configuration loading, validation and patching.
const (
	ConfigMissingFileFmt        = "missing config file %s: %w"
	ConfigFailedReadTemplateFmt = "failed to read template config.toml: %w"
	ConfigInvalidConfigFmt      = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt   = "%s: unrecognized config keys: %v"
	ConfigValidationGuidance    = "(run 'pinset init --force' to restore defaults)"
	ConfigEnvOverrideFailedFmt  = "apply PINSET_* environment overrides: %w"
	ConfigHomeDirFailedFmt      = "resolve home directory: %w"
	ConfigExpandPathFailedFmt   = "expand path %q: %w"

	ConfigEnumInvalidFmt        = "%s: %s must be one of %s"
	ConfigPositiveIntInvalidFmt = "%s: %s must be a positive integer"
	ConfigStaticKindRequiredFmt = "%s: biometric.kind is required when biometric.probe is static"

	ConfigUnknownKeyFmt       = "unknown config key %q"
	ConfigBoolValueInvalidFmt = "%s must be true or false"
	ConfigParseForPatchFmt    = "parse config: %w"
	ConfigRenderFailedFmt     = "render config: %w"
	ConfigWriteFailedFmt      = "write config %s: %w"
	ConfigMkdirFailedFmt      = "create config directory %s: %w"
)
