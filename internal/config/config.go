// Package config loads and validates pinset configuration.
package config

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Biometric probe modes.
const (
	ProbeAuto   = "auto"
	ProbeStatic = "static"
	ProbeNone   = "none"
)

// Enrollment front ends.
const (
	FrontendPad      = "pad"
	FrontendForm     = "form"
	FrontendPinentry = "pinentry"
)

// DefaultAnnouncementsTimeoutSeconds applies when announcements.timeout_seconds is unset.
const DefaultAnnouncementsTimeoutSeconds = 10

// Config is the parsed config.toml.
type Config struct {
	Store         StoreConfig         `toml:"store"`
	Biometric     BiometricConfig     `toml:"biometric"`
	UI            UIConfig            `toml:"ui"`
	Announcements AnnouncementsConfig `toml:"announcements"`
	Telemetry     TelemetryConfig     `toml:"telemetry"`
}

// StoreConfig selects the credential backend.
type StoreConfig struct {
	Backend string `toml:"backend" env:"PINSET_STORE_BACKEND"`
	// Path overrides the backend file location. Empty uses the state directory.
	Path string `toml:"path" env:"PINSET_STORE_PATH"`
}

// BiometricConfig selects how biometric support is detected.
type BiometricConfig struct {
	Probe string `toml:"probe" env:"PINSET_BIOMETRIC_PROBE"`
	// Kind is reported by the static probe.
	Kind string `toml:"kind" env:"PINSET_BIOMETRIC_KIND"`
}

// UIConfig selects the enrollment front end.
type UIConfig struct {
	Frontend        string `toml:"frontend" env:"PINSET_UI"`
	PinentryProgram string `toml:"pinentry_program" env:"PINSET_PINENTRY_PROGRAM"`
}

// AnnouncementsConfig points at the read-only announcement feed.
type AnnouncementsConfig struct {
	URL            string `toml:"url" env:"PINSET_ANNOUNCEMENTS_URL"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"PINSET_ANNOUNCEMENTS_TIMEOUT_SECONDS"`
}

// TelemetryConfig configures trace export.
type TelemetryConfig struct {
	OTLPEndpoint string `toml:"otlp_endpoint" env:"PINSET_OTLP_ENDPOINT"`
}
