package domain

import (
	"errors"
	"fmt"
)

var (
	ErrReferenceDataNotFound = errors.New("reference data not found")
	ErrProfileNotFound       = errors.New("aircraft profile not found")
	ErrConfiguration         = errors.New("configuration error")
	ErrParse                 = errors.New("parse error")
)

// ReferenceDataNotFoundError reports a missing aircraft, category, location
// or alternate key. The engine never substitutes a guess.
type ReferenceDataNotFoundError struct {
	Kind string
	Key  string
}

func (e *ReferenceDataNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *ReferenceDataNotFoundError) Is(target error) bool {
	switch target {
	case ErrReferenceDataNotFound:
		return true
	case ErrProfileNotFound:
		return e.Kind == "aircraft category" || e.Kind == "aircraft model"
	}
	return false
}

// ConfigurationError is fatal before any simulation starts.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return "configuration: " + e.Reason }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// NewConfigurationError formats a ConfigurationError.
func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// ParseError names a source value that could not be interpreted.
type ParseError struct {
	Field string
	Value any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s value %v", e.Field, e.Value)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }
