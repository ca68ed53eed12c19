// Package enroll implements the local PIN enrollment state machine.
//
// A Controller collects a 4-digit PIN, asks for it a second time, commits
// the matched value to a CredentialStore and, when a BiometricProbe reports
// platform support, offers to enable the biometric factor. Mismatches and
// persistence failures reset the controller to a clean entry state.
package enroll

import (
	"context"
	"errors"

	"github.com/conn-castle/pinset/internal/messages"
)

// PINLength is the number of digits in an enrolled PIN.
const PINLength = 4

// PIN is a complete 4-digit credential.
type PIN [PINLength]byte

// String returns the digits of the PIN.
func (p PIN) String() string {
	return string(p[:])
}

var (
	// ErrMismatch is reported when the confirmation differs from the first entry.
	ErrMismatch = errors.New(messages.EnrollMismatch)
	// ErrCommitFailed is reported when the store could not persist or enable the PIN.
	ErrCommitFailed = errors.New(messages.EnrollCommitFailed)
	// ErrBiometricFailed is reported when the biometric factor could not be enabled.
	// The PIN stays committed.
	ErrBiometricFailed = errors.New(messages.EnrollBiometricFailed)
	// ErrInvalidDigit is returned for presses outside '0'..'9'.
	ErrInvalidDigit = errors.New(messages.EnrollInvalidDigit)
	// ErrFinished is returned for input after the flow completed or was skipped.
	ErrFinished = errors.New(messages.EnrollFinished)
)

// CredentialStore persists the committed PIN and its enablement flags.
type CredentialStore interface {
	Save(ctx context.Context, pin PIN) error
	SetEnabled(ctx context.Context, enabled bool) error
	SetBiometricEnabled(ctx context.Context, enabled bool) error
}

// Kind identifies a platform biometric factor.
type Kind string

const (
	// KindNone is reported when no biometric factor is available.
	KindNone Kind = "none"
	// KindFacial is face recognition.
	KindFacial Kind = "facial"
	// KindFingerprint is a fingerprint reader.
	KindFingerprint Kind = "fingerprint"
)

// Support is the result of a biometric capability check.
type Support struct {
	Supported bool
	Kind      Kind
}

// BiometricProbe reports whether a biometric factor is available.
// Implementations must be idempotent.
type BiometricProbe interface {
	CheckSupport(ctx context.Context) (Support, error)
}

// Offerer asks the user whether to enable the biometric factor.
// It returns true to accept; an error is treated as a decline.
type Offerer interface {
	OfferBiometric(ctx context.Context, kind Kind) (bool, error)
}

// OffererFunc adapts a function into an Offerer.
type OffererFunc func(ctx context.Context, kind Kind) (bool, error)

// OfferBiometric calls f.
func (f OffererFunc) OfferBiometric(ctx context.Context, kind Kind) (bool, error) {
	return f(ctx, kind)
}

// Listener receives the controller's outward signals.
type Listener interface {
	// OnCompleted fires once when the flow finished; biometric reports
	// whether the biometric factor was enabled.
	OnCompleted(biometric bool)
	// OnSkipped fires once when the user abandoned the flow.
	OnSkipped()
	// OnRecoverableError reports a user-visible condition. err wraps one of
	// ErrMismatch, ErrCommitFailed or ErrBiometricFailed.
	OnRecoverableError(err error)
}

// Mode selects which entry buffer receives digits.
type Mode int

const (
	ModeEntering Mode = iota
	ModeConfirming
)

func (m Mode) String() string {
	if m == ModeConfirming {
		return "confirming"
	}
	return "entering"
}

// Phase is the observable lifecycle stage of a Controller.
type Phase int32

const (
	PhaseEntering Phase = iota
	PhaseConfirming
	// PhaseCommitting covers the save and enable calls.
	PhaseCommitting
	// PhaseOffering covers the probe check and the biometric decision.
	PhaseOffering
	PhaseCompleted
	PhaseSkipped
)

var phaseNames = map[Phase]string{
	PhaseEntering:   "entering",
	PhaseConfirming: "confirming",
	PhaseCommitting: "committing",
	PhaseOffering:   "offering",
	PhaseCompleted:  "completed",
	PhaseSkipped:    "skipped",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the phase accepts no further input.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseSkipped
}

// Snapshot is a digit-free view of controller state for rendering.
type Snapshot struct {
	Mode       Mode
	Phase      Phase
	PrimaryLen int
	ConfirmLen int
}

// ActiveLen returns the length of the buffer currently receiving digits.
func (s Snapshot) ActiveLen() int {
	if s.Mode == ModeConfirming {
		return s.ConfirmLen
	}
	return s.PrimaryLen
}
