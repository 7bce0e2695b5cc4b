// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"fmt"

	"github.com/featurebasedb/sqlcast/errors"
)

const (
	ErrSyntax               errors.Code = "ErrSyntax"
	ErrUnknownType          errors.Code = "ErrUnknownType"
	ErrInvalidTypeArgs      errors.Code = "ErrInvalidTypeArgs"
	ErrUnsupportedStatement errors.Code = "ErrUnsupportedStatement"
)

func newErrSyntax(pos Pos, format string, a ...interface{}) error {
	return errors.New(
		ErrSyntax,
		fmt.Sprintf("[%d:%d] %s", pos.Line, pos.Column, fmt.Sprintf(format, a...)),
	)
}

// newErrExpected reports that the token at pos is not what the grammar wants.
func newErrExpected(pos Pos, tok Token, lit string, want string) error {
	found := lit
	switch {
	case tok == EOF:
		found = "EOF"
	case tok == STRING:
		found = (&StringLit{Value: lit}).String()
	case lit == "":
		found = tok.String()
	}
	return newErrSyntax(pos, "expected %s, found '%s'", want, found)
}

func NewErrUnknownType(line, col int, typ string) error {
	return errors.New(
		ErrUnknownType,
		fmt.Sprintf("[%d:%d] unknown type '%s'", line, col, typ),
	)
}

func NewErrInvalidTypeArgs(line, col int, typ string, msg string) error {
	return errors.New(
		ErrInvalidTypeArgs,
		fmt.Sprintf("[%d:%d] invalid arguments for type '%s': %s", line, col, typ, msg),
	)
}

func NewErrUnsupportedStatement(line, col int, what string) error {
	return errors.New(
		ErrUnsupportedStatement,
		fmt.Sprintf("[%d:%d] %s is not supported", line, col, what),
	)
}
