package config

import (
	"fmt"
	"strings"

	"github.com/conn-castle/pinset/internal/messages"
)

// Validate ensures the config is complete and consistent.
// source names the config in error messages.
func (c *Config) Validate(source string) error {
	enums := []struct {
		key   string
		value string
	}{
		{"store.backend", c.Store.Backend},
		{"biometric.probe", c.Biometric.Probe},
		{"ui.frontend", c.UI.Frontend},
	}
	for _, e := range enums {
		if err := checkEnum(source, e.key, e.value); err != nil {
			return err
		}
	}

	if c.Biometric.Probe == ProbeStatic && c.Biometric.Kind == "" {
		return fmt.Errorf(messages.ConfigStaticKindRequiredFmt, source)
	}
	if c.Biometric.Kind != "" {
		if err := checkEnum(source, "biometric.kind", c.Biometric.Kind); err != nil {
			return err
		}
	}
	if c.Announcements.TimeoutSeconds < 0 {
		return fmt.Errorf(messages.ConfigPositiveIntInvalidFmt, source, "announcements.timeout_seconds")
	}
	return nil
}

func checkEnum(source, key, value string) error {
	field, ok := LookupField(key)
	if !ok {
		return fmt.Errorf(messages.ConfigUnknownKeyFmt, key)
	}
	if !field.allows(value) {
		return fmt.Errorf(messages.ConfigEnumInvalidFmt, source, key, strings.Join(field.Options, ", "))
	}
	return nil
}
