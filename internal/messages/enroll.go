package messages

// Enrollment messages surfaced by the PIN enrollment controller.
const (
	EnrollMismatch        = "PINs do not match"
	EnrollCommitFailed    = "failed to save credential"
	EnrollBiometricFailed = "biometric could not be enabled"
	EnrollInvalidDigit    = "PIN digits must be 0-9"
	EnrollFinished        = "enrollment already finished"
	EnrollStoreRequired   = "credential store is required"
)
