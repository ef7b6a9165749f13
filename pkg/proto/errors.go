package proto

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument reports input that is not well-formed JSON.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrSchemaMismatch reports a well-formed document that is not a valid event.
	ErrSchemaMismatch = errors.New("schema mismatch")

	errMissingField = errors.New("missing required field")
)

// MalformedDocumentError wraps the parser error for a document that could not
// be read at all.
type MalformedDocumentError struct {
	Err error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedDocument, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

func (e *MalformedDocumentError) Is(target error) bool { return target == ErrMalformedDocument }

// SchemaError describes why a document does not match the event schema.
// Type is the discriminator as received, possibly empty or unregistered.
// Field is the wire path of the offending field, if any.
type SchemaError struct {
	Type  string
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	msg := ErrSchemaMismatch.Error()
	if e.Type != "" {
		msg += fmt.Sprintf(" for %q", e.Type)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" at %s", e.Field)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) Is(target error) bool { return target == ErrSchemaMismatch }
