package config

// FieldType classifies the kind of value a config field accepts.
type FieldType string

const (
	// FieldBool accepts true or false.
	FieldBool FieldType = "bool"
	// FieldEnum accepts one of a fixed set of options.
	FieldEnum FieldType = "enum"
	// FieldFreetext accepts arbitrary string input.
	FieldFreetext FieldType = "freetext"
	// FieldPositiveInt accepts a positive integer.
	FieldPositiveInt FieldType = "positive_int"
)

// FieldDef describes a single config key's type and valid options.
type FieldDef struct {
	Key     string
	Type    FieldType
	Options []string
}

// fields is the ordered registry of every settable config key.
var fields = []FieldDef{
	{Key: "store.backend", Type: FieldEnum, Options: []string{BackendFile, BackendSQLite}},
	{Key: "store.path", Type: FieldFreetext},
	{Key: "biometric.probe", Type: FieldEnum, Options: []string{ProbeAuto, ProbeStatic, ProbeNone}},
	{Key: "biometric.kind", Type: FieldEnum, Options: []string{"facial", "fingerprint"}},
	{Key: "ui.frontend", Type: FieldEnum, Options: []string{FrontendPad, FrontendForm, FrontendPinentry}},
	{Key: "ui.pinentry_program", Type: FieldFreetext},
	{Key: "announcements.url", Type: FieldFreetext},
	{Key: "announcements.timeout_seconds", Type: FieldPositiveInt},
	{Key: "telemetry.otlp_endpoint", Type: FieldFreetext},
}

var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Key] = i
	}
	return idx
}

// LookupField returns the field definition for key.
func LookupField(key string) (FieldDef, bool) {
	i, ok := fieldIndex[key]
	if !ok {
		return FieldDef{}, false
	}
	return copyFieldDef(fields[i]), true
}

// Fields returns a copy of all field definitions in registry order.
func Fields() []FieldDef {
	out := make([]FieldDef, len(fields))
	for i, f := range fields {
		out[i] = copyFieldDef(f)
	}
	return out
}

// copyFieldDef returns a deep copy so callers cannot mutate the registry.
func copyFieldDef(f FieldDef) FieldDef {
	if len(f.Options) > 0 {
		f.Options = append([]string(nil), f.Options...)
	}
	return f
}

func (f FieldDef) allows(value string) bool {
	for _, opt := range f.Options {
		if opt == value {
			return true
		}
	}
	return false
}
