package cloudconfig

import "fmt"

// ValidationError reports configuration that cannot be loaded. Err carries
// the specific cause when there is one.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the specific cause
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field string, cause error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: cause.Error(),
		Err:     cause,
	}
}

// DuplicateCloudError is returned when two clouds share a Keystone hostname
type DuplicateCloudError struct {
	KeystoneHostname string
}

func (e *DuplicateCloudError) Error() string {
	return fmt.Sprintf("duplicate cloud keystone hostname %q", e.KeystoneHostname)
}

// MultiplePrimaryVersionsError is returned when an instance type flags more
// than one version as primary
type MultiplePrimaryVersionsError struct {
	KeystoneHostname string
	InstanceType     string
	Versions         []string
}

func (e *MultiplePrimaryVersionsError) Error() string {
	return fmt.Sprintf("instance type %q on cloud %s has %d primary versions %v",
		e.InstanceType, e.KeystoneHostname, len(e.Versions), e.Versions)
}

// InvalidFlavorGroupError is returned when a flavor group pattern is empty or
// does not compile
type InvalidFlavorGroupError struct {
	KeystoneHostname string
	Title            string
	MatchOn          string
	Err              error
}

func (e *InvalidFlavorGroupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("flavor group %q on cloud %s has an empty matchOn pattern", e.Title, e.KeystoneHostname)
	}
	return fmt.Sprintf("flavor group %q on cloud %s has invalid matchOn pattern %q: %v",
		e.Title, e.KeystoneHostname, e.MatchOn, e.Err)
}

func (e *InvalidFlavorGroupError) Unwrap() error {
	return e.Err
}
