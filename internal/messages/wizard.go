package messages

// Enrollment prompt text shared by the interactive front ends.
const (
	WizardRequiresTerminal = "enrollment prompts require an interactive terminal"

	PromptEnterPIN       = "Create a 4-digit PIN"
	PromptConfirmPIN     = "Confirm your PIN"
	PromptPINDescription = "Used to unlock pinset on this device."
	PromptPINDigitsOnly  = "enter exactly 4 digits"
	PromptSaving         = "Saving credential..."
	PromptErrorTitle     = "Try again"
	PromptOfferFmt       = "Enable %s unlock?"
	PromptOfferBody      = "You can use it instead of your PIN. Your PIN stays as a fallback."
	PromptVerifyPIN      = "Enter your PIN"

	KindFacialLabel      = "face"
	KindFingerprintLabel = "fingerprint"
	KindBiometricLabel   = "biometric"
)

// Outcome lines shown when an enrollment front end exits.
const (
	PadSaved             = "PIN saved."
	PadSavedBiometricFmt = "PIN saved with %s unlock enabled."
	PadSkipped           = "Enrollment skipped."
	PadClosed            = "pin pad closed"

	PinentryLaunchFailedFmt = "launch pinentry %s: %w"
)
