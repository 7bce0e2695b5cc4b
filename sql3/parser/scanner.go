// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"bufio"
	"bytes"
	"io"
	"unicode"
)

const eof = rune(0)

// Scanner represents a SQL lexical scanner.
type Scanner struct {
	r    io.RuneScanner
	pos  Pos // position of the next rune
	prev Pos // position before the last read, restored by unread
}

// NewScanner returns a new instance of Scanner.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		r:   bufio.NewReader(r),
		pos: Pos{Offset: 0, Line: 1, Column: 1},
	}
}

// Scan returns the next token and position from the underlying reader.
// Comments are returned as whitespace.
func (s *Scanner) Scan() (pos Pos, tok Token, lit string) {
	pos = s.pos
	ch := s.read()

	switch {
	case isWhitespace(ch):
		s.unread()
		return s.scanWhitespace()
	case isIdentFirstChar(ch):
		s.unread()
		return s.scanIdent()
	case isDigit(ch):
		s.unread()
		return s.scanNumber()
	}

	switch ch {
	case eof:
		return pos, EOF, ""
	case '\'':
		return s.scanString(pos)
	case '"':
		return s.scanQuotedIdent(pos)
	case '.':
		if next := s.read(); isDigit(next) {
			s.unread()
			return s.scanFraction(pos, []rune{'.'})
		}
		s.unread()
		return pos, ILLEGAL, "."
	case '-':
		if next := s.read(); next == '-' {
			s.skipLine()
			return pos, WS, ""
		}
		s.unread()
		return pos, MINUS, "-"
	case ':':
		if next := s.read(); next == ':' {
			return pos, DOUBLECOLON, "::"
		}
		s.unread()
		return pos, ILLEGAL, ":"
	case ';':
		return pos, SEMI, ";"
	case '(':
		return pos, LP, "("
	case ')':
		return pos, RP, ")"
	case ',':
		return pos, COMMA, ","
	case '+':
		return pos, PLUS, "+"
	case '*':
		return pos, STAR, "*"
	default:
		return pos, ILLEGAL, string(ch)
	}
}

// read returns the next code point from the underlying reader and updates
// the position.
func (s *Scanner) read() rune {
	ch, size, err := s.r.ReadRune()
	if err != nil {
		return eof
	}
	s.prev = s.pos
	s.pos.Offset += size
	if ch == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	} else {
		s.pos.Column++
	}
	return ch
}

// unread pushes the previously read rune back onto the reader. Only one rune
// may be unread between reads.
func (s *Scanner) unread() {
	if err := s.r.UnreadRune(); err != nil {
		return
	}
	s.pos = s.prev
}

func (s *Scanner) scanWhitespace() (pos Pos, tok Token, lit string) {
	pos = s.pos
	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == eof {
			break
		} else if !isWhitespace(ch) {
			s.unread()
			break
		}
		buf.WriteRune(ch)
	}
	return pos, WS, buf.String()
}

// skipLine consumes the rest of a "--" comment.
func (s *Scanner) skipLine() {
	for {
		if ch := s.read(); ch == eof || ch == '\n' {
			return
		}
	}
}

func (s *Scanner) scanIdent() (pos Pos, tok Token, lit string) {
	pos = s.pos
	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == eof {
			break
		} else if !isIdentChar(ch) {
			s.unread()
			break
		}
		buf.WriteRune(ch)
	}
	lit = buf.String()
	return pos, Lookup(lit), lit
}

// scanString consumes a single-quoted string. A doubled quote is an escaped
// quote. The opening quote has already been read.
func (s *Scanner) scanString(pos Pos) (Pos, Token, string) {
	var buf bytes.Buffer
	for {
		ch := s.read()
		switch ch {
		case eof, '\n':
			return pos, UNTERMSTRING, "'" + buf.String()
		case '\'':
			if next := s.read(); next == '\'' {
				buf.WriteRune('\'')
				continue
			}
			s.unread()
			return pos, STRING, buf.String()
		}
		buf.WriteRune(ch)
	}
}

// scanQuotedIdent consumes a double-quoted identifier.
func (s *Scanner) scanQuotedIdent(pos Pos) (Pos, Token, string) {
	var buf bytes.Buffer
	for {
		ch := s.read()
		switch ch {
		case eof:
			return pos, ILLEGAL, `"` + buf.String()
		case '"':
			if next := s.read(); next == '"' {
				buf.WriteRune('"')
				continue
			}
			s.unread()
			return pos, QIDENT, buf.String()
		}
		buf.WriteRune(ch)
	}
}

// scanNumber consumes digits with an optional fraction and exponent.
func (s *Scanner) scanNumber() (Pos, Token, string) {
	pos := s.pos
	lit := s.digits(nil)

	switch ch := s.read(); ch {
	case '.':
		return s.scanFraction(pos, append(lit, ch))
	case 'e', 'E':
		return s.scanExponent(pos, append(lit, ch))
	default:
		s.unread()
	}
	return pos, INTEGER, string(lit)
}

// scanFraction continues a number after its decimal point.
func (s *Scanner) scanFraction(pos Pos, lit []rune) (Pos, Token, string) {
	lit = s.digits(lit)
	if ch := s.read(); ch == 'e' || ch == 'E' {
		return s.scanExponent(pos, append(lit, ch))
	}
	s.unread()
	return pos, FLOAT, string(lit)
}

// scanExponent continues a number after its 'e'.
func (s *Scanner) scanExponent(pos Pos, lit []rune) (Pos, Token, string) {
	ch := s.read()
	if ch == '+' || ch == '-' {
		lit = append(lit, ch)
	} else {
		s.unread()
	}
	n := len(lit)
	if lit = s.digits(lit); len(lit) == n {
		return pos, ILLEGAL, string(lit)
	}
	return pos, FLOAT, string(lit)
}

func (s *Scanner) digits(lit []rune) []rune {
	for {
		ch := s.read()
		if !isDigit(ch) {
			s.unread()
			return lit
		}
		lit = append(lit, ch)
	}
}

// bufScanner represents a wrapper for scanner to add a buffer.
// It provides a fixed-length circular buffer that can be unread.
type bufScanner struct {
	s   *Scanner
	i   int // buffer index
	n   int // buffer size
	buf [4]struct {
		pos Pos
		tok Token
		lit string
	}
}

func newBufScanner(r io.Reader) *bufScanner {
	return &bufScanner{s: NewScanner(r), i: -1}
}

// Scan reads the next non-whitespace token.
func (s *bufScanner) Scan() (pos Pos, tok Token, lit string) {
	if s.n > 0 {
		s.n--
		return s.curr()
	}
	for {
		pos, tok, lit = s.s.Scan()
		if tok != WS {
			break
		}
	}
	s.i = (s.i + 1) % len(s.buf)
	b := &s.buf[s.i]
	b.pos, b.tok, b.lit = pos, tok, lit
	return pos, tok, lit
}

// unscan pushes the previously read token back onto the buffer.
func (s *bufScanner) unscan() { s.n++ }

// curr returns the last read token.
func (s *bufScanner) curr() (pos Pos, tok Token, lit string) {
	b := &s.buf[(s.i-s.n+len(s.buf))%len(s.buf)]
	return b.pos, b.tok, b.lit
}

func isWhitespace(ch rune) bool { return unicode.IsSpace(ch) }

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isIdentFirstChar(ch rune) bool { return unicode.IsLetter(ch) || ch == '_' }

func isIdentChar(ch rune) bool { return isIdentFirstChar(ch) || isDigit(ch) }
