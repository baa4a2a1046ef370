// Package fault defines the error taxonomy shared by services and
// handlers: invalid input, missing entity, duplicate entity, forbidden
// action. Handlers map kinds to HTTP status codes; messages are short and
// safe to show to users.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInvalid Kind = iota
	KindNotFound
	KindExists
	KindForbidden
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Invalid(format string, args ...any) error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Exists(format string, args ...any) error {
	return &Error{Kind: KindExists, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, or (0, false) if err is not a fault.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
