// Package biometric detects platform biometric factors.
package biometric

import (
	"context"
	"fmt"

	"github.com/conn-castle/pinset/internal/config"
	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
)

// Static reports a fixed kind. KindNone or an empty kind means unsupported.
type Static struct {
	Kind enroll.Kind
}

// CheckSupport returns the configured kind.
func (s Static) CheckSupport(context.Context) (enroll.Support, error) {
	if s.Kind == "" || s.Kind == enroll.KindNone {
		return enroll.Support{Kind: enroll.KindNone}, nil
	}
	return enroll.Support{Supported: true, Kind: s.Kind}, nil
}

// None never reports support.
type None struct{}

// CheckSupport always reports no support.
func (None) CheckSupport(context.Context) (enroll.Support, error) {
	return enroll.Support{Kind: enroll.KindNone}, nil
}

// ParseKind converts a config value into an enroll.Kind.
func ParseKind(value string) (enroll.Kind, error) {
	switch enroll.Kind(value) {
	case enroll.KindFacial, enroll.KindFingerprint, enroll.KindNone:
		return enroll.Kind(value), nil
	case "":
		return enroll.KindNone, nil
	default:
		return "", fmt.Errorf(messages.BiometricUnknownKindFmt, value)
	}
}

// New builds the probe selected by cfg.
func New(cfg config.BiometricConfig) (enroll.BiometricProbe, error) {
	switch cfg.Probe {
	case config.ProbeAuto:
		return NewPlatform(), nil
	case config.ProbeStatic:
		kind, err := ParseKind(cfg.Kind)
		if err != nil {
			return nil, err
		}
		return Static{Kind: kind}, nil
	case config.ProbeNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf(messages.BiometricUnknownProbeFmt, cfg.Probe)
	}
}
