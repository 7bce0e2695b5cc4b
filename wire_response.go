// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqlcast

import (
	"bytes"
	"encoding/json"

	"github.com/featurebasedb/sqlcast/decimal"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/sql3/parser"
	"github.com/featurebasedb/sqlcast/sql3/planner/types"
	"github.com/featurebasedb/sqlcast/temporal"
)

// WireQueryResponse is the standard response type which can be serialized
// and sent over the wire.
type WireQueryResponse struct {
	Schema        WireQuerySchema        `json:"schema"`
	Data          [][]interface{}        `json:"data"`
	Error         string                 `json:"error,omitempty"`
	Warnings      []string               `json:"warnings,omitempty"`
	QueryPlan     map[string]interface{} `json:"query-plan,omitempty"`
	ExecutionTime int64                  `json:"execution-time"`
}

// WireQuerySchema is a list of Fields which map to the data columns in the
// Response.
type WireQuerySchema struct {
	Fields []*WireQueryField `json:"fields"`
}

// WireQueryField is a column name along with its BaseType and type
// information.
type WireQueryField struct {
	Name     string                 `json:"name"`
	Type     string                 `json:"type"`      // human readable display (e.g. "decimal(10,2)")
	BaseType string                 `json:"base-type"` // for programmatic switching on type (e.g. "decimal")
	TypeInfo map[string]interface{} `json:"type-info"` // type modifiers (like scale)
}

// wireSchema converts a planner schema into a WireQuerySchema.
func wireSchema(columns types.Schema) WireQuerySchema {
	schema := WireQuerySchema{
		Fields: make([]*WireQueryField, len(columns)),
	}
	for i, col := range columns {
		schema.Fields[i] = &WireQueryField{
			Name:     col.ColumnName,
			Type:     col.Type.TypeDescription(),
			BaseType: col.Type.BaseTypeName(),
			TypeInfo: col.Type.TypeInfo(),
		}
	}
	return schema
}

// wireValue converts an evaluated value into its JSON representation.
// Decimals are sent as JSON numbers; temporal values as strings.
func wireValue(v interface{}) interface{} {
	switch v := v.(type) {
	case temporal.Date:
		return v.String()
	case temporal.Timestamp:
		return v.String()
	case temporal.Time:
		return v.String()
	case temporal.Duration:
		return v.String()
	default:
		return v
	}
}

// UnmarshalJSON is a custom unmarshaller for the WireQueryResponse that
// converts the value types in `Data` based on the types in `Schema`.
func (s *WireQueryResponse) UnmarshalJSON(in []byte) error {
	return s.UnmarshalJSONTyped(in, false)
}

// UnmarshalJSONTyped decodes a response. Integers and decimals are always
// converted to int64 and decimal.Decimal. Temporal values stay strings unless
// typed is set, in which case they are parsed into their temporal types.
func (s *WireQueryResponse) UnmarshalJSONTyped(in []byte, typed bool) error {
	type Alias WireQueryResponse
	var aux Alias

	dec := json.NewDecoder(bytes.NewReader(in))
	dec.UseNumber()
	err := dec.Decode(&aux)
	if err != nil {
		return err
	}
	*s = WireQueryResponse(aux)

	// If the response contains an error, don't bother doing any conversions
	// on the data.
	if s.Error != "" {
		return nil
	}

	// Type info numbers arrive as json.Number.
	for _, fld := range s.Schema.Fields {
		for k, v := range fld.TypeInfo {
			if n, ok := v.(json.Number); ok {
				if x, err := n.Int64(); err == nil {
					fld.TypeInfo[k] = x
				}
			}
		}
	}

	for i := range s.Data {
		if len(s.Data[i]) != len(s.Schema.Fields) {
			return errors.Errorf("row %d has %d values, expected %d", i, len(s.Data[i]), len(s.Schema.Fields))
		}
		for j, hdr := range s.Schema.Fields {
			if s.Data[i][j] == nil {
				continue
			}
			v, err := decodeWireValue(hdr, s.Data[i][j], typed)
			if err != nil {
				return errors.Wrapf(err, "decoding column '%s'", hdr.Name)
			}
			s.Data[i][j] = v
		}
	}

	return nil
}

func decodeWireValue(hdr *WireQueryField, v interface{}, typed bool) (interface{}, error) {
	switch hdr.BaseType {
	case parser.BaseTypeInt:
		n, ok := v.(json.Number)
		if !ok {
			return nil, errors.Errorf("unexpected int value %v", v)
		}
		x, err := n.Int64()
		if err != nil {
			return nil, errors.Wrap(err, "can't be decoded as int64")
		}
		return x, nil

	case parser.BaseTypeFloat:
		n, ok := v.(json.Number)
		if !ok {
			return nil, errors.Errorf("unexpected float value %v", v)
		}
		x, err := n.Float64()
		if err != nil {
			return nil, errors.Wrap(err, "can't be decoded as float64")
		}
		return x, nil

	case parser.BaseTypeDecimal:
		n, ok := v.(json.Number)
		if !ok {
			return nil, errors.Errorf("unexpected decimal value %v", v)
		}
		width, wok := hdr.TypeInfo["width"].(int64)
		scale, sok := hdr.TypeInfo["scale"].(int64)
		if !wok || !sok {
			return nil, errors.Errorf("decimal does not have a width and scale")
		}
		d, err := decimal.ParseDecimalType(n.String(), width, scale)
		if err != nil {
			return nil, errors.Wrap(err, "parsing decimal")
		}
		return d, nil

	case parser.BaseTypeDate:
		if !typed {
			return v, nil
		}
		str, ok := v.(string)
		if !ok {
			return nil, errors.Errorf("unexpected %s value %v", hdr.BaseType, v)
		}
		return temporal.ParseDate(str)

	case parser.BaseTypeTimestamp:
		if !typed {
			return v, nil
		}
		str, ok := v.(string)
		if !ok {
			return nil, errors.Errorf("unexpected %s value %v", hdr.BaseType, v)
		}
		return temporal.ParseTimestamp(str)

	case parser.BaseTypeTime:
		if !typed {
			return v, nil
		}
		str, ok := v.(string)
		if !ok {
			return nil, errors.Errorf("unexpected %s value %v", hdr.BaseType, v)
		}
		return temporal.ParseTime(str)

	case parser.BaseTypeDuration:
		if !typed {
			return v, nil
		}
		str, ok := v.(string)
		if !ok {
			return nil, errors.Errorf("unexpected %s value %v", hdr.BaseType, v)
		}
		return temporal.ParseDuration(str)
	}

	// bool and string need no conversion
	return v, nil
}
