package enroll

import "github.com/conn-castle/pinset/internal/messages"

// Label returns the user-facing name of the biometric kind.
func (k Kind) Label() string {
	switch k {
	case KindFacial:
		return messages.KindFacialLabel
	case KindFingerprint:
		return messages.KindFingerprintLabel
	default:
		return messages.KindBiometricLabel
	}
}
