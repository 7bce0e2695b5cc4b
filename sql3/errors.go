// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sql3

import (
	"fmt"
	"runtime"

	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/sql3/parser"
)

const (
	ErrInternal errors.Code = "ErrInternal"

	ErrUnknownIdentifier errors.Code = "ErrUnknownIdentifier"

	ErrTypeIncompatibleWithArithmeticOperator errors.Code = "ErrTypeIncompatibleWithArithmeticOperator"

	ErrInvalidCast errors.Code = "ErrInvalidCast"
	ErrOutOfRange  errors.Code = "ErrOutOfRange"

	ErrLiteralOutOfRange errors.Code = "ErrLiteralOutOfRange"

	// parser errors
	ErrSyntax               = parser.ErrSyntax
	ErrUnknownType          = parser.ErrUnknownType
	ErrInvalidTypeArgs      = parser.ErrInvalidTypeArgs
	ErrUnsupportedStatement = parser.ErrUnsupportedStatement
)

// at formats a source position prefix. Casts requested outside of SQL text
// have no position and no prefix.
func at(line, col int) string {
	if line <= 0 {
		return ""
	}
	return fmt.Sprintf("[%d:%d] ", line, col)
}

func NewErrUnknownIdentifier(line, col int, ident string) error {
	return errors.New(
		ErrUnknownIdentifier,
		fmt.Sprintf("%sunknown identifier '%s'", at(line, col), ident),
	)
}

func NewErrUnsupportedStatement(line, col int, keyword string) error {
	return parser.NewErrUnsupportedStatement(line, col, fmt.Sprintf("statement '%s'", keyword))
}

func NewErrInternal(msg string) error {
	preamble := "internal error"
	_, filename, line, ok := runtime.Caller(1)
	if ok {
		preamble = fmt.Sprintf("internal error (%s:%d)", filename, line)
	}
	errorMessage := fmt.Sprintf("%s %s", preamble, msg)
	return errors.New(
		ErrInternal,
		errorMessage,
	)
}

func NewErrInternalf(format string, a ...interface{}) error {
	preamble := "internal error"
	_, filename, line, ok := runtime.Caller(1)
	if ok {
		preamble = fmt.Sprintf("internal error (%s:%d)", filename, line)
	}
	errorMessage := fmt.Sprintf(format, a...)
	errorMessage = fmt.Sprintf("%s %s", preamble, errorMessage)
	return errors.New(
		ErrInternal,
		errorMessage,
	)
}

func NewErrTypeIncompatibleWithArithmeticOperator(line, col int, operator, type1 string) error {
	return errors.New(
		ErrTypeIncompatibleWithArithmeticOperator,
		fmt.Sprintf("%soperator '%s' incompatible with type '%s'", at(line, col), operator, type1),
	)
}

// NewErrInvalidCast reports a cast between types that cannot be converted.
func NewErrInvalidCast(line, col int, from, to string) error {
	return errors.New(
		ErrInvalidCast,
		fmt.Sprintf("%s'%s' cannot be cast to '%s'", at(line, col), from, to),
	)
}

// NewErrCastFailed reports a value that could not be converted. Range
// failures in cause keep their meaning under ErrOutOfRange.
func NewErrCastFailed(line, col int, value, to string, cause error, outOfRange bool) error {
	if outOfRange {
		return errors.New(
			ErrOutOfRange,
			fmt.Sprintf("%svalue '%s' is out of range for type '%s': %s", at(line, col), value, to, errors.Message(cause)),
		)
	}
	return errors.New(
		ErrInvalidCast,
		fmt.Sprintf("%scould not convert '%s' to '%s': %s", at(line, col), value, to, errors.Message(cause)),
	)
}

func NewErrLiteralOutOfRange(line, col int, lit string) error {
	return errors.New(
		ErrLiteralOutOfRange,
		fmt.Sprintf("%snumeric literal '%s' is out of range", at(line, col), lit),
	)
}
