// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package temporal

import (
	"strings"
)

// failure classifies why a temporal literal was rejected.
type failure int

const (
	parsedOK failure = iota
	badFormat
	badField
	badRange
)

// special holds the non-finite and named literals accepted by both DATE and
// TIMESTAMP.
type special int

const (
	notSpecial special = iota
	specialInfinity
	specialNegInfinity
	specialEpoch
)

func parseSpecial(s string) special {
	switch strings.ToLower(s) {
	case "infinity", "+infinity":
		return specialInfinity
	case "-infinity":
		return specialNegInfinity
	case "epoch":
		return specialEpoch
	}
	return notSpecial
}

// fields is the result of scanning a date or timestamp literal.
type fields struct {
	year   int64 // astronomical
	month  int
	day    int
	micros int64 // time of day

	hasTime   bool
	offsetSec int64 // east of UTC
}

// maxYearDigits is enough for MaxYear and MinYear with room to report a
// range error instead of a format error for slightly longer years.
const maxYearDigits = 9

// scan parses "[-]Y<sep>M<sep>D[(T| +)HH:MM[:SS[.F]]][ ][offset][ ][era]". The
// caller has already trimmed surrounding whitespace.
func scan(s string) (fields, failure) {
	var f fields
	c := &cursor{s: s}

	negYear := c.accept('-')
	year, n := c.digits()
	if n == 0 {
		return f, badFormat
	}
	if n > maxYearDigits {
		return f, badRange
	}

	sep := c.peek()
	if sep != '-' && sep != '/' && sep != '.' && sep != ' ' {
		return f, badFormat
	}
	c.next()

	month, okM := c.number(1, 2)
	if !okM || !c.accept(sep) {
		return f, badFormat
	}
	day, okD := c.number(1, 2)
	if !okD {
		return f, badFormat
	}
	f.month, f.day = int(month), int(day)

	// Time of day.
	mark := c.pos
	if c.accept('T') || c.accept('t') {
		if !isDigit(c.peek()) {
			return f, badFormat
		}
	} else if c.spaces() == 0 || !isDigit(c.peek()) {
		c.pos = mark
	}
	if c.pos != mark {
		if r := scanTime(c, &f); r != parsedOK {
			return f, r
		}
	}

	// Era.
	mark = c.pos
	c.spaces()
	bc := false
	switch {
	case c.word("(BC)") || c.word("BC"):
		bc = true
	case c.word("(AD)") || c.word("AD"):
	default:
		c.pos = mark
	}
	c.spaces()
	if !c.done() {
		return f, badFormat
	}

	switch {
	case bc && negYear:
		return f, badFormat
	case bc && year == 0:
		return f, badField
	case bc:
		year = 1 - year
	case negYear:
		year = -year
	}
	if year < MinYear || year > MaxYear {
		return f, badRange
	}
	f.year = year

	if f.month < 1 || f.month > 12 || f.day < 1 || f.day > DaysInMonth(f.year, f.month) {
		return f, badField
	}
	return f, parsedOK
}

// scanTime reads "HH:MM[:SS[.F]]" followed by an optional UTC offset.
func scanTime(c *cursor, f *fields) failure {
	hour, okH := c.number(1, 2)
	if !okH || !c.accept(':') {
		return badFormat
	}
	minute, okM := c.number(2, 2)
	if !okM {
		return badFormat
	}
	var second, frac int64
	if c.accept(':') {
		var okS bool
		if second, okS = c.number(2, 2); !okS {
			return badFormat
		}
		if c.accept('.') {
			v, n := c.digits()
			if n == 0 || n > 9 {
				return badFormat
			}
			// Keep microseconds, truncating anything finer.
			for ; n < 6; n++ {
				v *= 10
			}
			for ; n > 6; n-- {
				v /= 10
			}
			frac = v
		}
	}
	if hour > 23 || minute > 59 || second > 59 {
		return badField
	}
	f.hasTime = true
	f.micros = hour*usPerHour + minute*usPerMinute + second*usPerSecond + frac

	mark := c.pos
	c.spaces()
	switch c.peek() {
	case 'Z', 'z':
		c.next()
	case '+', '-':
		sign := int64(1)
		if c.peek() == '-' {
			sign = -1
		}
		c.next()
		oh, n := c.take(2)
		if n == 0 {
			return badFormat
		}
		var om int64
		if c.accept(':') || isDigit(c.peek()) {
			if om, n = c.take(2); n != 2 {
				return badFormat
			}
		}
		if oh > 15 || om > 59 {
			return badField
		}
		f.offsetSec = sign * (oh*3600 + om*60)
	default:
		c.pos = mark
	}
	return parsedOK
}

// cursor walks an ASCII literal one byte at a time.
type cursor struct {
	s   string
	pos int
}

func (c *cursor) done() bool { return c.pos >= len(c.s) }

func (c *cursor) peek() byte {
	if c.done() {
		return 0
	}
	return c.s[c.pos]
}

func (c *cursor) next() { c.pos++ }

func (c *cursor) accept(b byte) bool {
	if c.peek() == b && !c.done() {
		c.pos++
		return true
	}
	return false
}

// spaces skips blanks and returns how many were skipped.
func (c *cursor) spaces() int {
	start := c.pos
	for !c.done() && isSpace(c.s[c.pos]) {
		c.pos++
	}
	return c.pos - start
}

// word consumes w if it is next in the input, ignoring case.
func (c *cursor) word(w string) bool {
	if len(c.s)-c.pos < len(w) || !strings.EqualFold(c.s[c.pos:c.pos+len(w)], w) {
		return false
	}
	c.pos += len(w)
	return true
}

// digits consumes a run of digits and returns its value and length. Values
// stop accumulating past 18 digits; callers bound the length.
func (c *cursor) digits() (int64, int) {
	var v int64
	n := 0
	for !c.done() && isDigit(c.s[c.pos]) {
		if n < 18 {
			v = v*10 + int64(c.s[c.pos]-'0')
		}
		c.pos++
		n++
	}
	return v, n
}

// take consumes at most max digits.
func (c *cursor) take(max int) (int64, int) {
	var v int64
	n := 0
	for n < max && !c.done() && isDigit(c.s[c.pos]) {
		v = v*10 + int64(c.s[c.pos]-'0')
		c.pos++
		n++
	}
	return v, n
}

// number consumes between min and max digits. It fails if fewer are present
// or if the run is longer than max.
func (c *cursor) number(min, max int) (int64, bool) {
	v, n := c.digits()
	return v, n >= min && n <= max
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
