package todo

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("task not found")
	ErrMalformedRecord = errors.New("malformed record")
	ErrAttachment      = errors.New("attachment processing failed")
	ErrPersistence     = errors.New("state not saved")
	ErrParse           = errors.New("unreadable import data")
)

// ValidationError rejects an operation before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MalformedRecordError describes one skipped import record.
type MalformedRecordError struct {
	Index  int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// AttachmentError means the attachment token could not be produced; the log
// entry was not appended.
type AttachmentError struct {
	Err error
}

func (e *AttachmentError) Error() string {
	return "attachment: " + e.Err.Error()
}

func (e *AttachmentError) Unwrap() error { return e.Err }

func (e *AttachmentError) Is(target error) bool {
	return target == ErrAttachment
}

// PersistenceError is returned after a successful in-memory mutation whose
// change hook failed. The store keeps the mutation and stays dirty.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "changes kept in memory but not saved: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// ParseError aborts an import before the store is touched.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse import: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
