// Package schema declares the settings a check accepts and validates user options
// against them.
//
// A [Schema] maps setting names to a [Prop] giving the expected [Type] and default.
// [Schema.Validate] turns the loosely typed options decoded from a configuration file
// into [Settings] where every declared key is present with a value of its declared type.
package schema

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

// Type is the type of a setting value.
type Type int

const (
	TypeString      Type = iota // string
	TypeBoolean                 // boolean
	TypeInteger                 // integer
	TypeNumber                  // number
	TypeStringArray             // string[]
)

// String returns the name of the type as shown to users.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeNumber:
		return "number"
	case TypeStringArray:
		return "string[]"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Type].
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] for [Type].
func (t *Type) UnmarshalText(text []byte) error {
	for typ := TypeString; typ <= TypeStringArray; typ++ {
		if typ.String() == string(text) {
			*t = typ
			return nil
		}
	}

	return fmt.Errorf("unknown setting type %q", text)
}

// Prop describes a single setting.
type Prop struct {
	// Default is used when the user does not set the option, it must be of Type
	Default any `json:"default,omitempty" msgpack:"default,omitempty" toml:"default,omitempty" yaml:"default,omitempty"`

	// Description of the setting, shown in documentation and by the CLI
	Description string `json:"description,omitempty" msgpack:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`

	// The expected type of the value
	Type Type `json:"type" msgpack:"type" toml:"type" yaml:"type"`
}

// String implements [fmt.Stringer] for a [Prop].
func (p Prop) String() string {
	if p.Default == nil {
		return p.Type.String()
	}

	return fmt.Sprintf("%s (default %v)", p.Type, p.Default)
}

// Schema maps setting names to their description.
type Schema map[string]Prop

// Keys returns the setting names in sorted order.
func (s Schema) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Error is a single setting that does not match its schema.
type Error struct {
	// The offending value, nil for unknown settings
	Got any

	// Name of the setting
	Key string

	// The declared type, unused if Unknown
	Want Type

	// The setting is not declared by the schema
	Unknown bool
}

// Error implements the error interface for [*Error].
func (e *Error) Error() string {
	if e.Unknown {
		return fmt.Sprintf("unknown setting %q", e.Key)
	}

	return fmt.Sprintf("setting %q: expected %s, got %T (%v)", e.Key, e.Want, e.Got, e.Got)
}

// Validate checks options against the schema and returns complete settings.
//
// Declared settings missing from options take their default, values are coerced
// to their declared Go type (int for integers, float64 for numbers and []string
// for string arrays). Every mismatch and every undeclared option is reported,
// the returned error is the [errors.Join] of one [*Error] per problem.
func (s Schema) Validate(options map[string]any) (Settings, error) {
	settings := make(Settings, len(s))

	var errs []error

	for _, key := range s.Keys() {
		prop := s[key]

		value, ok := options[key]
		if !ok {
			if prop.Default != nil {
				if coerced, ok := coerce(prop.Type, prop.Default); ok {
					settings[key] = coerced
				}
			}

			continue
		}

		coerced, ok := coerce(prop.Type, value)
		if !ok {
			errs = append(errs, &Error{Key: key, Want: prop.Type, Got: value})
			continue
		}

		settings[key] = coerced
	}

	for _, key := range slices.Sorted(maps.Keys(options)) {
		if _, declared := s[key]; !declared {
			errs = append(errs, &Error{Key: key, Unknown: true})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return settings, nil
}

// coerce converts value to the Go type of typ, reporting whether it could.
func coerce(typ Type, value any) (any, bool) {
	switch typ {
	case TypeString:
		v, ok := value.(string)
		return v, ok
	case TypeBoolean:
		v, ok := value.(bool)
		return v, ok
	case TypeInteger:
		f, ok := number(value)
		if !ok || f != math.Trunc(f) {
			return nil, false
		}

		return int(f), true
	case TypeNumber:
		return number(value)
	case TypeStringArray:
		return stringArray(value)
	default:
		return nil, false
	}
}

// number converts any of the numeric types produced by the YAML and TOML decoders
// to a float64.
func number(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func stringArray(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return slices.Clone(v), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}

			out = append(out, s)
		}

		return out, true
	default:
		return nil, false
	}
}

// Settings are validated check options, keyed by setting name.
type Settings map[string]any

// GetString returns the string setting key, or "" if it is not set.
func (s Settings) GetString(key string) string {
	v, _ := s[key].(string)
	return v
}

// GetBool returns the boolean setting key, or false if it is not set.
func (s Settings) GetBool(key string) bool {
	v, _ := s[key].(bool)
	return v
}

// GetInt returns the integer setting key, or 0 if it is not set.
func (s Settings) GetInt(key string) int {
	v, _ := s[key].(int)
	return v
}

// GetNumber returns the number setting key, or 0 if it is not set.
func (s Settings) GetNumber(key string) float64 {
	v, _ := s[key].(float64)
	return v
}

// GetStrings returns the string array setting key, or nil if it is not set.
func (s Settings) GetStrings(key string) []string {
	v, _ := s[key].([]string)
	return v
}

// Describe renders the schema as one "name: type (default) description" line per
// setting, in sorted order.
func (s Schema) Describe() string {
	var b strings.Builder
	for _, key := range s.Keys() {
		prop := s[key]
		fmt.Fprintf(&b, "%s: %s", key, prop)

		if prop.Description != "" {
			fmt.Fprintf(&b, " %s", prop.Description)
		}

		b.WriteByte('\n')
	}

	return b.String()
}
