package hir

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates literal values.
type ValueKind uint8

const (
	ValueUnknown ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
	ValueString
	ValueChar
)

// Value is the evaluated form of a literal. Unparseable literals carry
// ValueUnknown.
type Value struct {
	Kind   ValueKind
	Int    int64
	Float  float64
	Bool   bool
	String string
	Char   rune
}

func IntValue(v int64) Value     { return Value{Kind: ValueInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: ValueFloat, Float: v} }
func BoolValue(v bool) Value     { return Value{Kind: ValueBool, Bool: v} }
func StringValue(v string) Value { return Value{Kind: ValueString, String: v} }
func CharValue(v rune) Value     { return Value{Kind: ValueChar, Char: v} }

// Render formats the value the way it would be written in source.
func (v Value) Render() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueString:
		return strconv.Quote(v.String)
	case ValueChar:
		return fmt.Sprintf("%q", v.Char)
	default:
		return "?"
	}
}
