// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package decimal

import (
	"github.com/featurebasedb/sqlcast/errors"
)

const (
	ErrInvalidDecimal  errors.Code = "ErrInvalidDecimal"
	ErrOutOfRange      errors.Code = "ErrDecimalOutOfRange"
	ErrInvalidTypeArgs errors.Code = "ErrInvalidDecimalTypeArgs"
)

func newErrInvalidDecimal(s string) error {
	return errors.Newf(ErrInvalidDecimal, "invalid decimal string: %q", s)
}

func newErrOutOfRange(v string, width, scale int64) error {
	return errors.Newf(ErrOutOfRange, "value %s is out of range for DECIMAL(%d,%d)", v, width, scale)
}
