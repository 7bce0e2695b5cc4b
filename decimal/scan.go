// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package decimal

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
)

const (
	stateSign         = "sign"
	stateLeadingZeros = "zeros"
	stateMantissa     = "mantissa"
	stateExponent     = "exponent"
)

// maxExponent caps explicit exponents. Anything this large is out of range
// (or truncates to zero) for every DECIMAL type.
const maxExponent = 1000000

// lexeme is a decimal literal reduced to sign, significant digits and a
// power of ten: the value is digits * 10^exp.
type lexeme struct {
	neg    bool
	digits []byte // no leading zeros; empty for zero
	exp    int64
}

// scan accepts "[ws][+-]digits[.digits][(e|E)[+-]digits][ws]" with at least
// one mantissa digit. Either side of the point may be empty.
func scan(s string) (lexeme, bool) {
	var lx lexeme
	t := strings.TrimSpace(s)

	var sawDigit, sawPoint, sawExponent bool
	var fracLen int64

	state := stateSign
	for i := 0; i < len(t); i++ {
		c := t[i]
		switch state {
		case stateSign:
			state = stateLeadingZeros
			switch c {
			case '-':
				lx.neg = true
				continue
			case '+':
				continue
			}
			i--
		case stateLeadingZeros:
			switch {
			case c == '0':
				sawDigit = true
				if sawPoint {
					fracLen++
				}
				continue
			case c == '.' && !sawPoint:
				sawPoint = true
				continue
			}
			state = stateMantissa
			i--
		case stateMantissa:
			switch {
			case c >= '0' && c <= '9':
				sawDigit = true
				lx.digits = append(lx.digits, c)
				if sawPoint {
					fracLen++
				}
			case c == '.' && !sawPoint:
				sawPoint = true
			case (c == 'e' || c == 'E') && sawDigit:
				state = stateExponent
			default:
				return lexeme{}, false
			}
		case stateExponent:
			e, ok := scanExponent(t[i:])
			if !ok {
				return lexeme{}, false
			}
			lx.exp = e
			sawExponent = true
			i = len(t)
		}
	}
	// A trailing 'e' leaves the loop in stateExponent without an exponent.
	if !sawDigit || (state == stateExponent && !sawExponent) {
		return lexeme{}, false
	}
	lx.exp -= fracLen
	return lx, true
}

// scanExponent parses "[+-]digits", saturating at maxExponent.
func scanExponent(s string) (int64, bool) {
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	var e int64
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		if e < maxExponent {
			e = e*10 + int64(s[i]-'0')
		}
	}
	if e > maxExponent {
		e = maxExponent
	}
	if neg {
		e = -e
	}
	return e, true
}

// exponent is the power of ten applied to digits.
func (lx *lexeme) exponent() int64 { return lx.exp }

// intDigits is the number of digits left of the point; it is zero or
// negative for values below one.
func (lx *lexeme) intDigits() int64 {
	if len(lx.digits) == 0 {
		return 0
	}
	return int64(len(lx.digits)) + lx.exp
}

// trimTrailingZeros drops zeros right of the point.
func (lx *lexeme) trimTrailingZeros() {
	if len(lx.digits) == 0 {
		lx.exp = 0
		return
	}
	for lx.exp < 0 && lx.digits[len(lx.digits)-1] == '0' {
		lx.digits = lx.digits[:len(lx.digits)-1]
		lx.exp++
	}
}

func (lx *lexeme) apd() *apd.Decimal {
	if len(lx.digits) == 0 {
		return apd.New(0, 0)
	}
	var coeff apd.BigInt
	coeff.SetString(string(lx.digits), 10)
	d := apd.NewWithBigInt(&coeff, int32(lx.exp))
	d.Negative = lx.neg
	return d
}
