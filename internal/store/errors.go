package store

import (
	"errors"
	"strings"
)

var (
	// ErrClosed is returned by actions on a closed store.
	ErrClosed = errors.New("store closed")
	// ErrNoToken is returned by remote actions when no design-file token is set.
	ErrNoToken = errors.New("figma token not set")
	// ErrProjectNotFound is returned when an archive id does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNoActiveProject is returned when an action needs an active project.
	ErrNoActiveProject = errors.New("no active project")
	// ErrInvalidInvite is returned when an invite link has no start parameter.
	ErrInvalidInvite = errors.New("invalid invite link")
	// ErrNoTariff is returned when paying without a selected tariff.
	ErrNoTariff = errors.New("no tariff selected")
	// ErrUnknownTariff is returned when selecting a plan that does not exist.
	ErrUnknownTariff = errors.New("unknown tariff")
	// ErrNothingPending is returned when confirming a modal that is not open.
	ErrNothingPending = errors.New("nothing to confirm")

	// errSkip aborts a mutation without notifying observers.
	errSkip = errors.New("skip")
)

// ValidationError lists the required form fields that were left empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
