package apperr

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by readers when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// ProviderError is a search provider failure. It is fatal to a pipeline run.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProvider(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// ModelError is a language model call or response failure scoped to one item.
type ModelError struct {
	Stage string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model error in %s: %v", e.Stage, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

func NewModel(stage string, err error) *ModelError {
	return &ModelError{Stage: stage, Err: err}
}

// StorageError is a database failure. Batches that hit one are rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// GateSkip is a deliberate short-circuit: the topic was processed inside the freshness window.
type GateSkip struct {
	Topic   string
	Elapsed time.Duration
	Message string
}

func (e *GateSkip) Error() string {
	return e.Message
}

// IsFatal reports whether err must abort a pipeline run.
func IsFatal(err error) bool {
	var pe *ProviderError
	var se *StorageError
	return errors.As(err, &pe) || errors.As(err, &se)
}
