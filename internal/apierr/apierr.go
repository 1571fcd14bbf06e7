package apierr

import (
  "fmt"
  "net/http"
)

const (
  CodeValidation  = "validation_error"
  CodeNotFound    = "not_found"
  CodeConflict    = "conflict"
  CodeInvariant   = "invariant_violation"
)

type Error struct {
  Status int
  Code   string
  Err    error
}

func (e *Error) Error() string {
  if e == nil {
    return ""
  }
  if e.Err != nil {
    return e.Err.Error()
  }
  if e.Code != "" {
    return e.Code
  }
  if e.Status != 0 {
    return fmt.Sprintf("api error (%d)", e.Status)
  }
  return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
  return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
  return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
  return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func Conflict(format string, args ...interface{}) *Error {
  return New(http.StatusConflict, CodeConflict, fmt.Errorf(format, args...))
}

// Invariant marks a state that should be unreachable; callers must not
// persist anything after seeing one.
func Invariant(format string, args ...interface{}) *Error {
  return New(http.StatusInternalServerError, CodeInvariant, fmt.Errorf(format, args...))
}
