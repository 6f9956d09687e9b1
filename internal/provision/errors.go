package provision

import (
	"errors"
	"fmt"
)

// ErrMissingIdentifier is returned when a find-or-create step completes
// without yielding a usable entity id.
var ErrMissingIdentifier = errors.New("no identifier obtained")

// Step names one stage of the provisioning sequence.
type Step string

// Provisioning steps in execution order.
const (
	StepRootCategory Step = "root category"
	StepWebsite      Step = "website"
	StepStoreGroup   Step = "store group"
	StepStores       Step = "stores"
	StepDefaultStore Step = "default store"
)

const failurePrefix = "failed to create store hierarchy"

// Failure is the single error a provisioning run reports. It carries the step
// that failed and the underlying cause.
type Failure struct {
	Step Step
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s: %v", failurePrefix, f.Step, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// PersistenceError reports a read or write the store rejected.
type PersistenceError struct {
	Entity string
	Op     string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistenceErr(entity, op string, err error) error {
	return &PersistenceError{Entity: entity, Op: op, Err: err}
}

func missingID(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrMissingIdentifier)
}
