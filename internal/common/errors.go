// Package common defines the error taxonomy shared by the client sync engine
// and the server. Callers should use errors.Is to match the sentinel kinds.
package common

import (
	"errors"
	"fmt"
)

// Kind classifies a repository-level failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound is a remote lookup miss.
	KindNotFound
	// KindNotFoundOffline is a local miss while no connectivity is available.
	KindNotFoundOffline
	// KindRemoteTransport wraps a network or transport error.
	KindRemoteTransport
	// KindLocalStorage wraps a persistence layer error.
	KindLocalStorage
	// KindOffline is an operation that requires connectivity.
	KindOffline
	// KindUnauthenticated is an operation that requires a session.
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindNotFoundOffline:
		return "not found offline"
	case KindRemoteTransport:
		return "remote transport failure"
	case KindLocalStorage:
		return "local storage failure"
	case KindOffline:
		return "offline"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrNotFoundOffline   = &Error{Kind: KindNotFoundOffline}
	ErrRemoteTransport   = &Error{Kind: KindRemoteTransport}
	ErrLocalStorage      = &Error{Kind: KindLocalStorage}
	ErrOffline           = &Error{Kind: KindOffline}
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated}
	ErrAlreadyExists     = errors.New("already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrInvalidDocument   = errors.New("invalid document")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Error is the failure result of a repository operation. ID is set whenever
// the operation already knew the entity id, so a failed create still reports
// the id it reserved.
type Error struct {
	Kind Kind
	Op   string
	ID   string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.ID != "" {
		msg = fmt.Sprintf("%s (id=%s)", msg, e.ID)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match on Kind, so errors.Is(err, ErrNotFound) works for any
// *Error of the not-found kind regardless of Op, ID or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// E builds an *Error. If err is already an *Error of some kind it is kept as
// the cause, which lets callers add Op/ID context without losing the kind.
func E(kind Kind, op, id string, err error) *Error {
	return &Error{Kind: kind, Op: op, ID: id, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
