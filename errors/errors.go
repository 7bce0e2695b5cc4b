// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package errors wraps pkg/errors and adds error codes. Every package in
// sqlcast that reports a user-facing failure returns a coded error so callers
// (the cast dispatcher in particular) can tell a bad literal apart from an
// out-of-range value or an internal fault.
package errors

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Code is an error code which can be used to check against a given error. For
// example, see the Is() method.
type Code string

const (
	// ErrUncoded is the code reported by CodeOf for errors that carry no code.
	ErrUncoded Code = "Uncoded"
)

// New returns a coded error with a stack.
func New(code Code, message string) error {
	return errors.WithStack(codedError{
		Code:    code,
		Message: message,
	})
}

// Newf is New with a format string.
func Newf(code Code, format string, args ...interface{}) error {
	return New(code, fmt.Sprintf(format, args...))
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func Cause(err error) error {
	return errors.Cause(err)
}

func Errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Is is a fork of the Is() method from `pkg/errors` which takes as its target
// an error Code instead of an error.
func Is(err error, target Code) bool {
	return errors.Is(err, codedError{Code: target})
}

// CodeOf returns the code of the first coded error in err's chain, or
// ErrUncoded if there is none.
func CodeOf(err error) Code {
	var ce codedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrUncoded
}

// Message returns the message of the first coded error in err's chain without
// any wrapping context. For uncoded errors it returns err.Error().
func Message(err error) string {
	var ce codedError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func WithMessage(err error, message string) error {
	return errors.WithMessage(err, message)
}

func WithMessagef(err error, format string, args ...interface{}) error {
	return errors.WithMessagef(err, format, args...)
}

func WithStack(err error) error {
	return errors.WithStack(err)
}

func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

func Wrapf(err error, fmt string, args ...interface{}) error {
	return errors.Wrapf(err, fmt, args...)
}

// codedError is the fundamental type used by this package to provide coded
// errors.
type codedError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Wrapped string `json:"wrapped,omitempty"`
}

func (ce codedError) Error() string {
	if ce.Wrapped != "" {
		return ce.Wrapped
	}
	return ce.Message
}

func (ce codedError) Is(err error) bool {
	if e, ok := err.(codedError); ok && ce.Code == e.Code {
		return true
	}
	return false
}

// MarshalJSON returns err as a json object (as a string) representing a
// codedError. Uncoded errors are marshalled with an empty code.
func MarshalJSON(err error) string {
	var out codedError
	if !errors.As(err, &out) {
		out = codedError{Message: Cause(err).Error()}
	}
	out.Wrapped = err.Error()

	j, jerr := json.Marshal(out)
	if jerr != nil {
		return out.Error()
	}
	return string(j)
}

// UnmarshalJSON converts the contents of r into a coded error. If the bytes
// can't unmarshal to a codedError, a plain error holding the raw text is
// returned.
func UnmarshalJSON(r io.Reader) error {
	b, _ := io.ReadAll(r)

	out := codedError{}
	if err := json.Unmarshal(b, &out); err != nil || out.Code == "" {
		return errors.New(string(b))
	}
	return out
}
