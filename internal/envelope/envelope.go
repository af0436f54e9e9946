// Package envelope defines the uniform result shape every core operation
// returns: an HTTP-style status, a human-readable message, and an optional
// payload. Failures are values, never propagated errors — nothing above the
// operation layer sees a raw error.
package envelope

import "net/http"

type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func OK[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Status: http.StatusOK, Message: message, Data: data}
}

func Created[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Status: http.StatusCreated, Message: message, Data: data}
}

// Forbidden is returned when the caller's role lacks permission. The store is
// never contacted on this path.
func Forbidden[T any](message string) Envelope[T] {
	return Envelope[T]{Status: http.StatusForbidden, Message: message}
}

func NotFound[T any](message string) Envelope[T] {
	return Envelope[T]{Status: http.StatusNotFound, Message: message}
}

// Failure covers upstream store errors and malformed upstream data. Read
// operations pass their zero-value collection as data so consumers always
// receive a well-formed (if empty) result set.
func Failure[T any](message string) Envelope[T] {
	return Envelope[T]{Status: http.StatusBadRequest, Message: message}
}

// FailureWith is Failure with an explicit data value, used by read paths that
// must return an empty result set rather than nothing.
func FailureWith[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Status: http.StatusBadRequest, Message: message, Data: data}
}

func (e Envelope[T]) Success() bool {
	return e.Status == http.StatusOK || e.Status == http.StatusCreated
}
