// Package httperr defines the error value that flows from request handlers
// into the JSON error renderer.
//
// Any error may reach the renderer. An error (or anything it wraps) that
// implements StatusCode() int controls the response status; everything else
// is reported as 500. New and Wrap are the constructors request handlers
// use to attach a status before forwarding an error.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// Error is an HTTP-aware error carrying a status, a client-facing message,
// and the stack captured where it was created.
type Error struct {
	Status  int    // 0 means unset; rendered as 500
	Message string // client-facing message
	Stack   string // captured at construction
	Err     error  // optional cause
}

// New returns an Error with the given status and message.
func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg, Stack: callers(3)}
}

// NotFound returns the error synthesized for unmatched requests.
func NotFound() *Error {
	return &Error{Status: http.StatusNotFound, Message: "Not Found", Stack: callers(3)}
}

// Wrap attaches a status to err. The message is err's text.
// Wrap returns nil when err is nil.
func Wrap(err error, status int) *Error {
	if err == nil {
		return nil
	}
	return &Error{Status: status, Message: err.Error(), Err: err, Stack: callers(3)}
}

// FromPanic converts a recovered panic value into a 500 error. The panic
// value is kept only as the cause; the client-facing message is generic.
func FromPanic(v any) *Error {
	var cause error
	switch t := v.(type) {
	case error:
		cause = t
	default:
		cause = fmt.Errorf("%v", t)
	}
	return &Error{
		Status:  http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
		Err:     cause,
		Stack:   callers(3),
	}
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode reports the status as set, including 0 for unset.
func (e *Error) StatusCode() int { return e.Status }

type statusCoder interface {
	StatusCode() int
}

// StatusOf returns the response status for err: the first valid status
// found walking the chain. Unset (0) or invalid statuses are skipped, so an
// outer wrapper without a status does not hide an inner one. No valid
// status yields 500.
func StatusOf(err error) int {
	if s := findStatus(err); s != 0 {
		return s
	}
	return http.StatusInternalServerError
}

func findStatus(err error) int {
	for err != nil {
		if sc, ok := err.(statusCoder); ok {
			if s := sc.StatusCode(); s >= 100 && s <= 599 {
				return s
			}
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				if s := findStatus(e); s != 0 {
					return s
				}
			}
			return 0
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		default:
			return 0
		}
	}
	return 0
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var he *Error
	if errors.As(err, &he) && he.Message != "" {
		return he.Message
	}
	return err.Error()
}

// StackOf returns the stack captured by the first *Error in err's chain.
func StackOf(err error) string {
	var he *Error
	if errors.As(err, &he) {
		return he.Stack
	}
	return ""
}

// Detail returns the full error object exposed by the development renderer.
func Detail(err error) map[string]any {
	out := map[string]any{}
	if err == nil {
		return out
	}

	var he *Error
	if errors.As(err, &he) {
		if he.Status != 0 {
			out["status"] = he.Status
		}
		out["message"] = he.Message
		if he.Stack != "" {
			out["stack"] = he.Stack
		}
		if he.Err != nil {
			out["cause"] = he.Err.Error()
		}
		return out
	}

	out["message"] = err.Error()
	var sc statusCoder
	if errors.As(err, &sc) && sc.StatusCode() != 0 {
		out["status"] = sc.StatusCode()
	}
	return out
}

// callers formats the calling stack, skipping the runtime frames and the
// constructor itself.
func callers(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}
	return b.String()
}
