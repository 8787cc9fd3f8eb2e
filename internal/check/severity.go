package check

import (
	"fmt"
	"strings"
)

// Severity is how serious an offense is, lower is more severe.
type Severity int

const (
	SeverityError   Severity = iota // error
	SeverityWarning                 // warning
	SeverityInfo                    // info
)

// String returns the name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Severity].
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] for [Severity].
func (s *Severity) UnmarshalText(text []byte) error {
	severity, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}

	*s = severity

	return nil
}

// ParseSeverity parses a severity from its name or its numeric value, so "warning"
// and "1" both give [SeverityWarning].
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "0":
		return SeverityError, nil
	case "warning", "1":
		return SeverityWarning, nil
	case "info", "2":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("invalid severity %q, expected one of error, warning, info (or 0, 1, 2)", s)
	}
}
