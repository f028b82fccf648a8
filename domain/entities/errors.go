package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when an element cannot be found, either on the page or in a registry
	ErrNotFound = errors.New("element not found")

	// ErrAutomationFailure wraps driver errors raised while interacting with a resolved element
	ErrAutomationFailure = errors.New("automation failure")

	// ErrTemplateMisuse is returned when a template element is resolved without identifiers
	ErrTemplateMisuse = errors.New("template element has no identifiers")

	// ErrInsufficientArguments is returned when a locator template has more slots than identifiers
	ErrInsufficientArguments = errors.New("insufficient template arguments")

	// ErrLocalizationMismatch is returned when a registry key is not a localization of its element
	ErrLocalizationMismatch = errors.New("localization mismatch")

	// ErrTimeout is returned when a visibility wait runs out of time
	ErrTimeout = errors.New("wait timed out")

	// ErrLinkNotConfigured is returned by GoToLink when no link page was set through the builder
	ErrLinkNotConfigured = errors.New("link not configured")

	// ErrLinkUnsupported is returned by controls that can never link to another page
	ErrLinkUnsupported = errors.New("links not supported")

	// ErrLabelNotSet is returned when an element without a label is asked for one
	ErrLabelNotSet = errors.New("label not set")
)

// InsufficientArgumentsError carries the template and identifiers that failed to format
type InsufficientArgumentsError struct {
	Base        string
	Identifiers []string
	Err         error
}

func (e *InsufficientArgumentsError) Error() string {
	return fmt.Sprintf("either the type or quantity of arguments supplied for the template [%s] is incorrect -> [%s] : %v",
		e.Base, strings.Join(e.Identifiers, ", "), e.Err)
}

func (e *InsufficientArgumentsError) Unwrap() error {
	return e.Err
}

func (e *InsufficientArgumentsError) Is(target error) bool {
	return target == ErrInsufficientArguments
}

// TimeoutError reports the bound a visibility wait exceeded
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("element was not visible after %s", e.Timeout)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}
