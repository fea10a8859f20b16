package domain

import "errors"

// ErrorKind classifies a domain failure so the transport layer can map it
// to an HTTP status without inspecting messages.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindConflict
	KindNotFound
	KindBusiness
)

// Error is a typed domain failure with a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NewConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NewNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewBusiness(msg string) *Error {
	return &Error{Kind: KindBusiness, Message: msg}
}

// KindOf returns the ErrorKind of err, or ok=false for errors raised
// outside the domain.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}

func IsConflict(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindConflict
}

func IsValidation(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindValidation
}
