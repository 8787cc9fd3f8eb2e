package check

import "fmt"

// ConfigError is a check whose settings do not match its schema, or settings
// for a check that does not exist. The check does not run.
type ConfigError struct {
	Err   error  // The underlying problem, often a join of [*schema.Error]
	Check string // Code of the misconfigured check
}

// Error implements the error interface for [*ConfigError].
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for check %s: %v", e.Check, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExecutionError is a check that failed while running against a file. Only that
// check on that file is affected.
type ExecutionError struct {
	Err   error  // What the handler returned, or the recovered panic
	Check string // Code of the failed check
	Path  string // Absolute path of the file being checked
	Panic bool   // The handler panicked
}

// Error implements the error interface for [*ExecutionError].
func (e *ExecutionError) Error() string {
	if e.Panic {
		return fmt.Sprintf("check %s panicked on %s: %v", e.Check, e.Path, e.Err)
	}

	return fmt.Sprintf("check %s failed on %s: %v", e.Check, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}
