// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package decimal implements the fixed-point DECIMAL(width, scale) type. A
// value is a 128-bit unscaled integer; the represented number is
// Value * 10^-Scale and |Value| < 10^Width always holds.
package decimal

import (
	"fmt"
	"math/big"

	"github.com/apache/arrow/go/v10/arrow/decimal128"
	"github.com/cockroachdb/apd/v3"
	"github.com/featurebasedb/sqlcast/errors"
)

const (
	// MaxWidth is the largest width whose values fit in 128 bits.
	MaxWidth = 38

	// DefaultWidth and DefaultScale apply to a bare DECIMAL.
	DefaultWidth = MaxWidth
	DefaultScale = 10
)

// truncator rounds toward zero. Its precision leaves headroom over MaxWidth
// so Quantize never reports an invalid operation for in-range values.
var truncator = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(MaxWidth + 2)
	c.Rounding = apd.RoundDown
	return c
}()

// Decimal is a fixed-point number with a declared width and scale.
type Decimal struct {
	Value decimal128.Num
	Width int64
	Scale int64
}

// New returns a Decimal from an unscaled value without range checks.
func New(unscaled int64, width, scale int64) Decimal {
	return Decimal{Value: decimal128.FromI64(unscaled), Width: width, Scale: scale}
}

// ValidateType checks DECIMAL(width, scale) arguments.
func ValidateType(width, scale int64) error {
	switch {
	case width < 1 || width > MaxWidth:
		return errors.Newf(ErrInvalidTypeArgs, "decimal width must be between 1 and %d, got %d", MaxWidth, width)
	case scale < 0:
		return errors.Newf(ErrInvalidTypeArgs, "decimal scale must not be negative, got %d", scale)
	case scale > width:
		return errors.Newf(ErrInvalidTypeArgs, "decimal scale %d must not exceed width %d", scale, width)
	}
	return nil
}

// ParseDecimalType parses s as a DECIMAL(width, scale). Digits beyond scale
// are truncated toward zero. Values with more than width-scale integer digits
// are out of range.
func ParseDecimalType(s string, width, scale int64) (Decimal, error) {
	if err := ValidateType(width, scale); err != nil {
		return Decimal{}, err
	}
	lx, ok := scan(s)
	if !ok {
		return Decimal{}, newErrInvalidDecimal(s)
	}
	d, ok := fit(lx.apd(), width, scale)
	if !ok {
		return Decimal{}, newErrOutOfRange(fmt.Sprintf("%q", s), width, scale)
	}
	return d, nil
}

// ParseDecimal parses s choosing the narrowest width and scale that hold it
// exactly. Trailing fractional zeros do not count toward the scale.
func ParseDecimal(s string) (Decimal, error) {
	lx, ok := scan(s)
	if !ok {
		return Decimal{}, newErrInvalidDecimal(s)
	}
	lx.trimTrailingZeros()

	var scale int64
	if e := lx.exponent(); e < 0 {
		scale = -e
	}
	width := lx.intDigits()
	if width < 0 {
		width = 0
	}
	width += scale
	if width == 0 {
		width = 1
	}
	if width > MaxWidth {
		return Decimal{}, errors.Newf(ErrOutOfRange, "value %q needs %d digits, more than %d", s, width, MaxWidth)
	}
	d, _ := fit(lx.apd(), width, scale)
	return d, nil
}

// MustParseDecimal is ParseDecimal that panics on error.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromInt64 returns v as a DECIMAL(width, scale).
func FromInt64(v int64, width, scale int64) (Decimal, error) {
	if err := ValidateType(width, scale); err != nil {
		return Decimal{}, err
	}
	d, ok := fit(apd.New(v, 0), width, scale)
	if !ok {
		return Decimal{}, newErrOutOfRange(fmt.Sprint(v), width, scale)
	}
	return d, nil
}

// Rescale converts d to DECIMAL(width, scale) with the same truncation and
// range rules as ParseDecimalType.
func (d Decimal) Rescale(width, scale int64) (Decimal, error) {
	if err := ValidateType(width, scale); err != nil {
		return Decimal{}, err
	}
	out, ok := fit(d.apd(), width, scale)
	if !ok {
		return Decimal{}, newErrOutOfRange(d.String(), width, scale)
	}
	return out, nil
}

// fit truncates x toward zero to scale fractional digits and reports whether
// the result fits in width digits.
func fit(x *apd.Decimal, width, scale int64) (Decimal, bool) {
	zero := Decimal{Width: width, Scale: scale}
	if x.IsZero() {
		return zero, true
	}
	intDigits := x.NumDigits() + int64(x.Exponent)
	if intDigits > width-scale {
		return Decimal{}, false
	}
	if intDigits <= -scale {
		return zero, true
	}
	var q apd.Decimal
	if _, err := truncator.Quantize(&q, x, int32(-scale)); err != nil {
		return Decimal{}, false
	}
	return fromAPD(&q, width, scale), true
}

func fromAPD(x *apd.Decimal, width, scale int64) Decimal {
	bi := x.Coeff.MathBigInt()
	if x.Negative {
		bi.Neg(bi)
	}
	return Decimal{Value: decimal128.FromBigInt(bi), Width: width, Scale: scale}
}

func (d Decimal) apd() *apd.Decimal {
	return apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(d.Value.BigInt()), int32(-d.Scale))
}

// BigInt returns the unscaled value.
func (d Decimal) BigInt() *big.Int { return d.Value.BigInt() }

// Neg returns -d with the same width and scale.
func (d Decimal) Neg() Decimal {
	return Decimal{Value: decimal128.FromBigInt(new(big.Int).Neg(d.BigInt())), Width: d.Width, Scale: d.Scale}
}

// Sign returns -1, 0 or +1.
func (d Decimal) Sign() int { return d.Value.Sign() }

// IsZero reports whether d is zero.
func (d Decimal) IsZero() bool { return d.Value.Sign() == 0 }

// Cmp compares the numeric values of d and o regardless of their scales.
func (d Decimal) Cmp(o Decimal) int {
	return d.apd().Cmp(o.apd())
}

// Int64 returns d truncated toward zero. It fails if the integer part does
// not fit in an int64.
func (d Decimal) Int64() (int64, error) {
	var q apd.Decimal
	if _, err := truncator.Quantize(&q, d.apd(), 0); err != nil {
		return 0, errors.Wrap(err, "truncating decimal")
	}
	v, err := q.Int64()
	if err != nil {
		return 0, errors.Newf(ErrOutOfRange, "value %s is out of range for INT", d.String())
	}
	return v, nil
}

// Float64 returns the nearest float64.
func (d Decimal) Float64() float64 {
	f, _ := d.apd().Float64()
	return f
}

// String formats d with exactly Scale fractional digits.
func (d Decimal) String() string {
	return d.apd().Text('f')
}

// TypeString names d's type, e.g. DECIMAL(38,10).
func (d Decimal) TypeString() string {
	return fmt.Sprintf("DECIMAL(%d,%d)", d.Width, d.Scale)
}

// MarshalJSON writes d as a JSON number.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts a JSON number or string. The intention is to avoid
// float64 anywhere, so the decimal is parsed from the raw bytes.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	o, err := ParseDecimal(s)
	if err != nil {
		return errors.Wrapf(err, "parsing decimal: %s", string(data))
	}
	*d = o
	return nil
}

// UnmarshalYAML is a custom unmarshaller for the Decimal type.
func (d *Decimal) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var data string
	if err := unmarshal(&data); err != nil {
		return err
	}
	o, err := ParseDecimal(data)
	if err != nil {
		return errors.Wrapf(err, "parsing decimal: %s", data)
	}
	*d = o
	return nil
}

// MarshalYAML writes d as a string so no precision is lost to float64.
func (d Decimal) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
