// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package planner

import (
	"fmt"
	"strconv"

	"github.com/featurebasedb/sqlcast/decimal"
	"github.com/featurebasedb/sqlcast/temporal"
)

// FormatValue renders an evaluated value as SQL text. nil is NULL.
func FormatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return v
	case decimal.Decimal:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case temporal.Date:
		return v.String()
	case temporal.Timestamp:
		return v.String()
	case temporal.Time:
		return v.String()
	case temporal.Duration:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
