package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml"

	"github.com/conn-castle/pinset/internal/messages"
	"github.com/conn-castle/pinset/internal/templates"
)

// SetValue returns content with key set to raw. raw is converted according
// to the field registry and the result must pass full validation.
// Comments in content are not preserved.
func SetValue(content []byte, key string, raw string) ([]byte, error) {
	field, ok := LookupField(key)
	if !ok {
		return nil, fmt.Errorf(messages.ConfigUnknownKeyFmt, key)
	}
	value, err := coerceValue(field, raw)
	if err != nil {
		return nil, err
	}

	tree, err := toml.LoadBytes(content)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigParseForPatchFmt, err)
	}
	tree.Set(key, value)
	rendered, err := tree.ToTomlString()
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigRenderFailedFmt, err)
	}
	if _, err := ParseConfig([]byte(rendered), key); err != nil {
		return nil, err
	}
	return []byte(rendered), nil
}

// WriteValue patches key in the config at path, starting from the embedded
// template when the file does not exist yet.
func WriteValue(path string, key string, raw string) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		content, err = templates.Read("config.toml")
		if err != nil {
			return fmt.Errorf(messages.ConfigFailedReadTemplateFmt, err)
		}
	} else if err != nil {
		return fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}

	updated, err := SetValue(content, key, raw)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf(messages.ConfigMkdirFailedFmt, filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, updated, 0o600); err != nil {
		return fmt.Errorf(messages.ConfigWriteFailedFmt, path, err)
	}
	return nil
}

func coerceValue(field FieldDef, raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)
	switch field.Type {
	case FieldBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf(messages.ConfigBoolValueInvalidFmt, field.Key)
		}
		return v, nil
	case FieldPositiveInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf(messages.ConfigPositiveIntInvalidFmt, "value", field.Key)
		}
		return v, nil
	case FieldEnum:
		if !field.allows(raw) {
			return nil, fmt.Errorf(messages.ConfigEnumInvalidFmt, "value", field.Key, strings.Join(field.Options, ", "))
		}
		return raw, nil
	default:
		return raw, nil
	}
}
