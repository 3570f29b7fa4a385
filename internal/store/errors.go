package store

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when no snapshot matches an ID prefix.
type NotFoundError struct {
	Project string
	Prefix  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no snapshot matching %q found for prompt %q", e.Prefix, e.Project)
}

// AmbiguousIDError is returned when a short ID prefix matches more than
// one snapshot. Candidates holds the 8-character short form of every
// match so the caller can disambiguate.
type AmbiguousIDError struct {
	Prefix     string
	Candidates []string
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("short ID %q is ambiguous. Candidates: %s. Use more characters",
		e.Prefix, strings.Join(e.Candidates, ", "))
}

// ValidationError is returned for malformed caller input, e.g. an empty
// tag label or an empty ID prefix. Always caller-recoverable.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// StorageError wraps an underlying database failure. Fatal for the
// current operation; never retried by the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageErr wraps err as a StorageError, passing nil through.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
