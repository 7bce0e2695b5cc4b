// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqlcast

import (
	"context"
	"io"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/apache/arrow/go/v10/arrow/array"
	"github.com/apache/arrow/go/v10/arrow/ipc"
	"github.com/apache/arrow/go/v10/arrow/memory"
	"github.com/featurebasedb/sqlcast/decimal"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/sql3/parser"
	"github.com/featurebasedb/sqlcast/sql3/planner/types"
	"github.com/featurebasedb/sqlcast/temporal"
)

// QueryArrow compiles and runs sql, writing the result to w as an Arrow IPC
// stream holding a single record batch. Unlike Query, evaluation errors are
// returned.
func (api *API) QueryArrow(ctx context.Context, sql string, w io.Writer) error {
	query, err := api.CompilePlan(ctx, sql)
	if err != nil {
		CounterQueries.WithLabelValues(outcomeCompileError).Inc()
		countError(err)
		return err
	}
	rows, err := query.Rows(ctx)
	if err != nil {
		CounterQueries.WithLabelValues(outcomeError).Inc()
		countError(err)
		return err
	}

	mem := memory.NewGoAllocator()
	schema := arrowSchema(query.Schema())
	rec, err := arrowRecord(mem, schema, query.Schema(), rows)
	if err != nil {
		return errors.Wrap(err, "building record")
	}
	defer rec.Release()

	wr := ipc.NewWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := wr.Write(rec); err != nil {
		wr.Close()
		return errors.Wrap(err, "writing record")
	}
	if err := wr.Close(); err != nil {
		return errors.Wrap(err, "closing arrow writer")
	}
	CounterQueries.WithLabelValues(outcomeOK).Inc()
	return nil
}

// arrowType maps a column type to its Arrow equivalent. Durations are
// normalized to nanoseconds.
func arrowType(typ parser.ExprDataType) arrow.DataType {
	switch t := typ.(type) {
	case *parser.DataTypeBool:
		return arrow.FixedWidthTypes.Boolean
	case *parser.DataTypeInt:
		return arrow.PrimitiveTypes.Int64
	case *parser.DataTypeDecimal:
		return &arrow.Decimal128Type{Precision: int32(t.Width), Scale: int32(t.Scale)}
	case *parser.DataTypeFloat:
		return arrow.PrimitiveTypes.Float64
	case *parser.DataTypeString:
		return arrow.BinaryTypes.String
	case *parser.DataTypeDate:
		return arrow.FixedWidthTypes.Date32
	case *parser.DataTypeTimestamp:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
	case *parser.DataTypeTime:
		return arrow.FixedWidthTypes.Time64us
	case *parser.DataTypeDuration:
		return &arrow.DurationType{Unit: arrow.Nanosecond}
	default:
		return arrow.Null
	}
}

func arrowSchema(columns types.Schema) *arrow.Schema {
	fields := make([]arrow.Field, len(columns))
	for i, col := range columns {
		fields[i] = arrow.Field{Name: col.ColumnName, Type: arrowType(col.Type), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowRecord(mem memory.Allocator, schema *arrow.Schema, columns types.Schema, rows []types.Row) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for _, row := range rows {
		for i, v := range row {
			if err := appendArrow(b.Field(i), v); err != nil {
				return nil, errors.Wrapf(err, "column '%s'", columns[i].ColumnName)
			}
		}
	}
	return b.NewRecord(), nil
}

func appendArrow(fb array.Builder, v interface{}) error {
	if v == nil {
		fb.AppendNull()
		return nil
	}
	switch fb := fb.(type) {
	case *array.BooleanBuilder:
		if b, ok := v.(bool); ok {
			fb.Append(b)
			return nil
		}
	case *array.Int64Builder:
		if n, ok := v.(int64); ok {
			fb.Append(n)
			return nil
		}
	case *array.Float64Builder:
		if f, ok := v.(float64); ok {
			fb.Append(f)
			return nil
		}
	case *array.Time64Builder:
		if t, ok := v.(temporal.Time); ok {
			fb.Append(arrow.Time64(t.Micros()))
			return nil
		}
	case *array.Decimal128Builder:
		if d, ok := v.(decimal.Decimal); ok {
			fb.Append(d.Value)
			return nil
		}
	case *array.StringBuilder:
		if s, ok := v.(string); ok {
			fb.Append(s)
			return nil
		}
	case *array.Date32Builder:
		if d, ok := v.(temporal.Date); ok {
			fb.Append(arrow.Date32(d))
			return nil
		}
	case *array.TimestampBuilder:
		if ts, ok := v.(temporal.Timestamp); ok {
			fb.Append(arrow.Timestamp(ts.Micros()))
			return nil
		}
	case *array.DurationBuilder:
		if d, ok := v.(temporal.Duration); ok {
			ns, err := d.ConvertTo(temporal.Nanosecond)
			if err != nil {
				return err
			}
			fb.Append(arrow.Duration(ns.Value))
			return nil
		}
	}
	return errors.Errorf("unexpected value %v (%T) for %T", v, v, fb)
}
