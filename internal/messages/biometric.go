package messages

// Biometric probe messages.
const (
	BiometricUnknownProbeFmt = "unknown biometric probe %q"
	BiometricUnknownKindFmt  = "unknown biometric kind %q"
	BiometricProbeFailedFmt  = "%s failed: %w"
)
