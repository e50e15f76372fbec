package services

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound // missing entity, or a product detail with no stock
	KindBadRequest
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	}
	return "internal"
}

// Error is the typed failure every service returns; handlers map Kind to an HTTP status.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// MsgNotInStock is reported for unknown products and for details that are missing or sold out.
const MsgNotInStock = "Not in stock"

func validationErr(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }
func badRequest(msg string) error { return &Error{Kind: KindBadRequest, Msg: msg} }
func conflict(msg string) error { return &Error{Kind: KindConflict, Msg: msg} }
func notFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }
func notInStock() error { return notFound(MsgNotInStock) }
func internal(op string, err error) error {
	return &Error{Kind: KindInternal, Msg: op, Err: err}
}

// KindOf reports the Kind of err; untyped errors count as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the caller-facing message for err. Internal failures get a generic text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	return "Internal server error"
}
