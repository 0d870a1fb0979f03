// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
)

// Kind classifies why a lookup ended without results. Every kind is
// terminal for the invocation that produced it.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmptySelection
	KindMissingCredential
	KindTransport
	KindAPIRejected
	KindNoResults
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindEmptySelection:    "empty_selection",
	KindMissingCredential: "missing_credential",
	KindTransport:         "transport",
	KindAPIRejected:       "api_rejected",
	KindNoResults:         "no_results",
}

// String returns the snake_case name used in logs and metrics labels.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// Error describes a failed lookup. Message carries the remote or transport
// explanation verbatim; Query is set for NoResults.
type Error struct {
	Kind    Kind
	Message string
	Query   string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptySelection:
		return "no text selected"
	case KindMissingCredential:
		return "no Stack Exchange API key configured"
	case KindNoResults:
		return fmt.Sprintf("no results for %q", e.Query)
	case KindAPIRejected:
		return fmt.Sprintf("Stack Exchange API rejected the request: %s", e.Message)
	case KindTransport:
		if e.Err != nil {
			return fmt.Sprintf("Stack Exchange API request failed: %v", e.Err)
		}
		return fmt.Sprintf("Stack Exchange API request failed: %s", e.Message)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two *Error values by Kind so the sentinels below work with
// errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	// ErrEmptySelection is returned when the selection trims to nothing.
	ErrEmptySelection = &Error{Kind: KindEmptySelection}

	// ErrMissingCredential is returned when the key pool is empty.
	ErrMissingCredential = &Error{Kind: KindMissingCredential}
)

// KindOf returns the Kind carried by err, or KindUnknown when err is not an
// *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

func transportErr(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

func transportStatus(status int) *Error {
	return &Error{Kind: KindTransport, Message: fmt.Sprintf("HTTP %d", status)}
}

func rejected(msg string) *Error {
	return &Error{Kind: KindAPIRejected, Message: msg}
}

func noResults(query string) *Error {
	return &Error{Kind: KindNoResults, Query: query}
}
