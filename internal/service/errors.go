// Package service implements the scoped resource services: every operation
// combines the role/ownership predicates with tenant-scope membership before
// touching a store. All checks run eagerly and short-circuit, so a failed
// validation never leaves a partial mutation behind.
package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service error semantically. The transport layer maps
// kinds to wire responses; the core never does.
type Kind int

const (
	KindNotAuthenticated Kind = iota + 1
	KindNotAuthorized
	KindNotFound
	KindInvalid
	KindAlreadyExists
	KindConflict
	KindPersistence
)

// Error is a coded service failure. Code is a stable snake_case identifier
// such as "org_not_found" that survives transport translation.
type Error struct {
	Kind Kind
	Code string
	Err  error // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or 0 if err is not a service error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// CodeOf returns the code of err, or "" if err is not a service error.
func CodeOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

func notAuthenticated(code string) error {
	return &Error{Kind: KindNotAuthenticated, Code: code}
}

func notAuthorized(code string) error {
	return &Error{Kind: KindNotAuthorized, Code: code}
}

func notFound(code string) error {
	return &Error{Kind: KindNotFound, Code: code}
}

func invalid(code string) error {
	return &Error{Kind: KindInvalid, Code: code}
}

func alreadyExists(code string) error {
	return &Error{Kind: KindAlreadyExists, Code: code}
}

func conflict(code string) error {
	return &Error{Kind: KindConflict, Code: code}
}

func persistence(code string, err error) error {
	return &Error{Kind: KindPersistence, Code: code, Err: err}
}
