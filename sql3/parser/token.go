// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"fmt"
	"strings"
)

// Token is a lexical token of the SQL language.
type Token int

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF
	WS

	literal_beg
	IDENT        // main
	QIDENT       // "main"
	STRING       // 'foo'
	UNTERMSTRING // 'foo<newline>
	INTEGER      // 12345
	FLOAT        // 123.45
	literal_end

	operator_beg
	SEMI        // ;
	LP          // (
	RP          // )
	COMMA       // ,
	PLUS        // +
	MINUS       // -
	STAR        // *
	DOUBLECOLON // ::
	operator_end

	keyword_beg
	AS
	CAST
	DATE
	FALSE
	FROM
	NULL
	SELECT
	TIMESTAMP
	TRUE
	TRY_CAST
	WHERE
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	WS:      "WS",

	IDENT:        "IDENT",
	QIDENT:       "QIDENT",
	STRING:       "STRING",
	UNTERMSTRING: "UNTERMSTRING",
	INTEGER:      "INTEGER",
	FLOAT:        "FLOAT",

	SEMI:        ";",
	LP:          "(",
	RP:          ")",
	COMMA:       ",",
	PLUS:        "+",
	MINUS:       "-",
	STAR:        "*",
	DOUBLECOLON: "::",

	AS:        "AS",
	CAST:      "CAST",
	DATE:      "DATE",
	FALSE:     "FALSE",
	FROM:      "FROM",
	NULL:      "NULL",
	SELECT:    "SELECT",
	TIMESTAMP: "TIMESTAMP",
	TRUE:      "TRUE",
	TRY_CAST:  "TRY_CAST",
	WHERE:     "WHERE",
}

var keywords map[string]Token

func init() {
	keywords = make(map[string]Token)
	for tok := keyword_beg + 1; tok < keyword_end; tok++ {
		keywords[tokens[tok]] = tok
	}
}

// String returns the string representation of the token.
func (tok Token) String() string {
	if tok >= 0 && tok < Token(len(tokens)) {
		return tokens[tok]
	}
	return ""
}

// IsLiteral returns true for literal tokens.
func (tok Token) IsLiteral() bool {
	return tok > literal_beg && tok < literal_end
}

// IsKeyword returns true for keyword tokens.
func (tok Token) IsKeyword() bool {
	return tok > keyword_beg && tok < keyword_end
}

// Lookup returns the keyword token for ident, or IDENT if it is not a
// keyword.
func Lookup(ident string) Token {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return IDENT
}

// Pos specifies the position of a token. Offset is a zero-based byte offset;
// Line and Column are one-based.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// String returns a string representation of the position.
func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if p is non-zero.
func (p Pos) IsValid() bool {
	return p != Pos{}
}
