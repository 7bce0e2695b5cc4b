// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package temporal

import (
	"github.com/featurebasedb/sqlcast/errors"
)

const (
	ErrInvalidDate      errors.Code = "ErrInvalidDate"
	ErrInvalidTimestamp errors.Code = "ErrInvalidTimestamp"
	ErrInvalidDuration  errors.Code = "ErrInvalidDuration"
	ErrInvalidTime      errors.Code = "ErrInvalidTime"

	// ErrOutOfRange is returned for syntactically valid values that fall
	// outside the representable range of the target type.
	ErrOutOfRange errors.Code = "ErrTemporalOutOfRange"
)

const (
	dateFormatHint      = "expected format is (YYYY-MM-DD)"
	timestampFormatHint = "expected format is (YYYY-MM-DD HH:MM:SS[.US][±HH:MM])"
	timeFormatHint      = "expected format is (HH:MM[:SS[.US]])"
)

func newErrInvalidDate(s string) error {
	return errors.Newf(ErrInvalidDate, "invalid date %q: %s", s, dateFormatHint)
}

func newErrDateFieldRange(s string) error {
	return errors.Newf(ErrInvalidDate, "date field value out of range: %q", s)
}

func newErrInvalidTimestamp(s string) error {
	return errors.Newf(ErrInvalidTimestamp, "invalid timestamp %q: %s", s, timestampFormatHint)
}

func newErrTimestampFieldRange(s string) error {
	return errors.Newf(ErrInvalidTimestamp, "timestamp field value out of range: %q", s)
}

func newErrInvalidTime(s string) error {
	return errors.Newf(ErrInvalidTime, "invalid time %q: %s", s, timeFormatHint)
}

func newErrTimeFieldRange(s string) error {
	return errors.Newf(ErrInvalidTime, "time field value out of range: %q", s)
}

func newErrInvalidDuration(s string) error {
	return errors.Newf(ErrInvalidDuration, "invalid duration %q: expected a number followed by one of s, ms, us, ns", s)
}

func newErrOutOfRange(typ string, v interface{}) error {
	return errors.Newf(ErrOutOfRange, "%s out of range: %v", typ, v)
}
