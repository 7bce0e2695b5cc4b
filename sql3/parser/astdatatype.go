// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"fmt"
	"strings"

	"github.com/featurebasedb/sqlcast/decimal"
)

// Base type names.
const (
	BaseTypeVoid      = "void"
	BaseTypeBool      = "bool"
	BaseTypeInt       = "int"
	BaseTypeDecimal   = "decimal"
	BaseTypeFloat     = "float"
	BaseTypeString    = "string"
	BaseTypeDate      = "date"
	BaseTypeTimestamp = "timestamp"
	BaseTypeTime      = "time"
	BaseTypeDuration  = "duration"
)

// typeAliases maps every accepted spelling of a type name to its base type.
var typeAliases = map[string]string{
	"bool":      BaseTypeBool,
	"boolean":   BaseTypeBool,
	"int":       BaseTypeInt,
	"integer":   BaseTypeInt,
	"bigint":    BaseTypeInt,
	"decimal":   BaseTypeDecimal,
	"numeric":   BaseTypeDecimal,
	"float":     BaseTypeFloat,
	"double":    BaseTypeFloat,
	"real":      BaseTypeFloat,
	"string":    BaseTypeString,
	"varchar":   BaseTypeString,
	"text":      BaseTypeString,
	"date":      BaseTypeDate,
	"timestamp": BaseTypeTimestamp,
	"datetime":  BaseTypeTimestamp,
	"time":      BaseTypeTime,
	"duration":  BaseTypeDuration,
}

// IsValidTypeName returns true if typeName names a type, in any accepted
// spelling.
func IsValidTypeName(typeName string) bool {
	_, ok := typeAliases[strings.ToLower(typeName)]
	return ok
}

// ResolveType returns the data type for a type name and its arguments.
func ResolveType(name string, args []int64) (ExprDataType, error) {
	base, ok := typeAliases[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown type '%s'", name)
	}
	switch base {
	case BaseTypeDecimal:
		width, scale := int64(decimal.DefaultWidth), int64(decimal.DefaultScale)
		switch len(args) {
		case 0:
		case 1:
			width, scale = args[0], 0
		case 2:
			width, scale = args[0], args[1]
		default:
			return nil, fmt.Errorf("type '%s' takes at most 2 arguments", strings.ToUpper(name))
		}
		if err := decimal.ValidateType(width, scale); err != nil {
			return nil, err
		}
		return NewDataTypeDecimal(width, scale), nil
	case BaseTypeString:
		// VARCHAR(n) is accepted; the length is not enforced.
		if len(args) > 1 {
			return nil, fmt.Errorf("type '%s' takes at most 1 argument", strings.ToUpper(name))
		}
		return NewDataTypeString(), nil
	}
	if len(args) != 0 {
		return nil, fmt.Errorf("type '%s' does not take arguments", strings.ToUpper(name))
	}
	switch base {
	case BaseTypeBool:
		return NewDataTypeBool(), nil
	case BaseTypeInt:
		return NewDataTypeInt(), nil
	case BaseTypeFloat:
		return NewDataTypeFloat(), nil
	case BaseTypeDate:
		return NewDataTypeDate(), nil
	case BaseTypeTimestamp:
		return NewDataTypeTimestamp(), nil
	case BaseTypeTime:
		return NewDataTypeTime(), nil
	default:
		return NewDataTypeDuration(), nil
	}
}

// ExprDataType is the interface for all language layer types
type ExprDataType interface {
	exprDataType()
	// the base type name e.g. int or decimal
	BaseTypeName() string
	// additional type information, intended for consumers outside the
	// language layer (marshalled over json alongside results)
	TypeInfo() map[string]interface{}
	// the full type specification as a string, intended to be human readable
	TypeDescription() string
}

// TypesAreEqual reports whether a and b are the same type, including type
// arguments.
func TypesAreEqual(a, b ExprDataType) bool {
	return a.TypeDescription() == b.TypeDescription()
}

func (*DataTypeVoid) exprDataType()      {}
func (*DataTypeBool) exprDataType()      {}
func (*DataTypeInt) exprDataType()       {}
func (*DataTypeDecimal) exprDataType()   {}
func (*DataTypeFloat) exprDataType()     {}
func (*DataTypeString) exprDataType()    {}
func (*DataTypeDate) exprDataType()      {}
func (*DataTypeTimestamp) exprDataType() {}
func (*DataTypeTime) exprDataType()      {}
func (*DataTypeDuration) exprDataType()  {}

// DataTypeVoid is the type of a bare NULL.
type DataTypeVoid struct{}

func NewDataTypeVoid() *DataTypeVoid {
	return &DataTypeVoid{}
}

func (*DataTypeVoid) BaseTypeName() string {
	return BaseTypeVoid
}

func (dt *DataTypeVoid) TypeDescription() string {
	return dt.BaseTypeName()
}

func (*DataTypeVoid) TypeInfo() map[string]interface{} {
	return nil
}

type DataTypeBool struct{}

func NewDataTypeBool() *DataTypeBool {
	return &DataTypeBool{}
}

func (*DataTypeBool) BaseTypeName() string {
	return BaseTypeBool
}

func (dt *DataTypeBool) TypeDescription() string {
	return dt.BaseTypeName()
}

func (*DataTypeBool) TypeInfo() map[string]interface{} {
	return nil
}

type DataTypeInt struct{}

func NewDataTypeInt() *DataTypeInt {
	return &DataTypeInt{}
}

func (*DataTypeInt) BaseTypeName() string {
	return BaseTypeInt
}

func (dt *DataTypeInt) TypeDescription() string {
	return dt.BaseTypeName()
}

func (*DataTypeInt) TypeInfo() map[string]interface{} {
	return nil
}

// DataTypeDecimal is DECIMAL(Width, Scale).
type DataTypeDecimal struct {
	Width int64
	Scale int64
}

func NewDataTypeDecimal(width, scale int64) *DataTypeDecimal {
	return &DataTypeDecimal{
		Width: width,
		Scale: scale,
	}
}

func (*DataTypeDecimal) BaseTypeName() string {
	return BaseTypeDecimal
}

func (dt *DataTypeDecimal) TypeDescription() string {
	return fmt.Sprintf("%s(%d,%d)", dt.BaseTypeName(), dt.Width, dt.Scale)
}

func (dt *DataTypeDecimal) TypeInfo() map[string]interface{} {
	return map[string]interface{}{
		"width": dt.Width,
		"scale": dt.Scale,
	}
}

// DataTypeFloat is a 64-bit IEEE 754 float.
type DataTypeFloat struct{}

func NewDataTypeFloat() *DataTypeFloat {
	return &DataTypeFloat{}
}

func (*DataTypeFloat) BaseTypeName() string {
	return BaseTypeFloat
}

func (dt *DataTypeFloat) TypeDescription() string {
	return dt.BaseTypeName()
}

func (*DataTypeFloat) TypeInfo() map[string]interface{} {
	return nil
}

type DataTypeString struct{}

func NewDataTypeString() *DataTypeString {
	return &DataTypeString{}
}

func (*DataTypeString) BaseTypeName() string {
	return BaseTypeString
}

func (dt *DataTypeString) TypeDescription() string {
	return dt.BaseTypeName()
}

func (*DataTypeString) TypeInfo() map[string]interface{} {
	return nil
}

type DataTypeDate struct{}

func NewDataTypeDate() *DataTypeDate {
	return &DataTypeDate{}
}

func (*DataTypeDate) BaseTypeName() string {
	return BaseTypeDate
}

func (dt *DataTypeDate) TypeDescription() string {
	return dt.BaseTypeName()
}

func (*DataTypeDate) TypeInfo() map[string]interface{} {
	return nil
}

type DataTypeTimestamp struct{}

func NewDataTypeTimestamp() *DataTypeTimestamp {
	return &DataTypeTimestamp{}
}

func (*DataTypeTimestamp) BaseTypeName() string {
	return BaseTypeTimestamp
}

func (dt *DataTypeTimestamp) TypeDescription() string {
	return dt.BaseTypeName()
}

func (*DataTypeTimestamp) TypeInfo() map[string]interface{} {
	return map[string]interface{}{
		"timeunit": "us",
	}
}

// DataTypeTime is a time of day without a date.
type DataTypeTime struct{}

func NewDataTypeTime() *DataTypeTime {
	return &DataTypeTime{}
}

func (*DataTypeTime) BaseTypeName() string {
	return BaseTypeTime
}

func (dt *DataTypeTime) TypeDescription() string {
	return dt.BaseTypeName()
}

func (*DataTypeTime) TypeInfo() map[string]interface{} {
	return map[string]interface{}{
		"timeunit": "us",
	}
}

// DataTypeDuration values carry their own unit.
type DataTypeDuration struct{}

func NewDataTypeDuration() *DataTypeDuration {
	return &DataTypeDuration{}
}

func (*DataTypeDuration) BaseTypeName() string {
	return BaseTypeDuration
}

func (dt *DataTypeDuration) TypeDescription() string {
	return dt.BaseTypeName()
}

func (*DataTypeDuration) TypeInfo() map[string]interface{} {
	return nil
}
