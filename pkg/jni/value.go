package jni

import (
	"fmt"

	"github.com/halbersand/jnibridge/pkg/classfile"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindBoolean Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindChar
	KindFloat
	KindDouble
	KindRef
	KindNull
)

// Value is one argument or return value crossing the bridge: any of the
// eight primitive kinds, an object reference, or null.
type Value struct {
	Kind Kind
	num  int64
	flt  float64
	ref  *Object
}

// BooleanValue creates a boolean Value.
func BooleanValue(v bool) Value {
	n := int64(0)
	if v {
		n = 1
	}
	return Value{Kind: KindBoolean, num: n}
}

// ByteValue creates an 8-bit integer Value.
func ByteValue(v int8) Value {
	return Value{Kind: KindByte, num: int64(v)}
}

// ShortValue creates a 16-bit integer Value.
func ShortValue(v int16) Value {
	return Value{Kind: KindShort, num: int64(v)}
}

// IntValue creates a 32-bit integer Value.
func IntValue(v int32) Value {
	return Value{Kind: KindInt, num: int64(v)}
}

// LongValue creates a 64-bit integer Value.
func LongValue(v int64) Value {
	return Value{Kind: KindLong, num: v}
}

// CharValue creates a UTF-16 code unit Value.
func CharValue(v uint16) Value {
	return Value{Kind: KindChar, num: int64(v)}
}

// FloatValue creates a 32-bit float Value.
func FloatValue(v float32) Value {
	return Value{Kind: KindFloat, flt: float64(v)}
}

// DoubleValue creates a 64-bit float Value.
func DoubleValue(v float64) Value {
	return Value{Kind: KindDouble, flt: v}
}

// RefValue creates an object reference Value.
func RefValue(obj *Object) Value {
	if obj == nil {
		return NullValue()
	}
	return Value{Kind: KindRef, ref: obj}
}

// NullValue creates a null reference Value.
func NullValue() Value {
	return Value{Kind: KindNull}
}

// AsBoolean returns the boolean payload, reporting whether the kind matched.
func (v Value) AsBoolean() (bool, bool) {
	return v.num != 0, v.Kind == KindBoolean
}

// AsByte returns the int8 payload, reporting whether the kind matched.
func (v Value) AsByte() (int8, bool) {
	return int8(v.num), v.Kind == KindByte
}

// AsShort returns the int16 payload, reporting whether the kind matched.
func (v Value) AsShort() (int16, bool) {
	return int16(v.num), v.Kind == KindShort
}

// AsInt returns the int32 payload, reporting whether the kind matched.
func (v Value) AsInt() (int32, bool) {
	return int32(v.num), v.Kind == KindInt
}

// AsLong returns the int64 payload, reporting whether the kind matched.
func (v Value) AsLong() (int64, bool) {
	return v.num, v.Kind == KindLong
}

// AsChar returns the uint16 payload, reporting whether the kind matched.
func (v Value) AsChar() (uint16, bool) {
	return uint16(v.num), v.Kind == KindChar
}

// AsFloat returns the float32 payload, reporting whether the kind matched.
func (v Value) AsFloat() (float32, bool) {
	return float32(v.flt), v.Kind == KindFloat
}

// AsDouble returns the float64 payload, reporting whether the kind matched.
func (v Value) AsDouble() (float64, bool) {
	return v.flt, v.Kind == KindDouble
}

// AsRef returns the object reference, reporting whether the kind matched.
// A null value reports true with a nil object.
func (v Value) AsRef() (*Object, bool) {
	switch v.Kind {
	case KindRef:
		return v.ref, true
	case KindNull:
		return nil, true
	default:
		return nil, false
	}
}

// baseType maps a Kind to its descriptor character.
func (k Kind) baseType() classfile.BaseType {
	switch k {
	case KindBoolean:
		return classfile.TypeBoolean
	case KindByte:
		return classfile.TypeByte
	case KindShort:
		return classfile.TypeShort
	case KindInt:
		return classfile.TypeInt
	case KindLong:
		return classfile.TypeLong
	case KindChar:
		return classfile.TypeChar
	case KindFloat:
		return classfile.TypeFloat
	case KindDouble:
		return classfile.TypeDouble
	default:
		return classfile.TypeObject
	}
}

// matches reports whether this value can be passed for the given
// descriptor parameter type. Null matches any reference or array type.
func (v Value) matches(p classfile.ParamType) bool {
	switch v.Kind {
	case KindRef:
		return p.Base == classfile.TypeObject || p.Base == classfile.TypeArray
	case KindNull:
		return p.Base == classfile.TypeObject || p.Base == classfile.TypeArray
	default:
		return v.Kind.baseType() == p.Base
	}
}

// unwrap converts the value to the plain Go representation native binding
// tables consume.
func (v Value) unwrap() any {
	switch v.Kind {
	case KindBoolean:
		return v.num != 0
	case KindByte:
		return int8(v.num)
	case KindShort:
		return int16(v.num)
	case KindInt:
		return int32(v.num)
	case KindLong:
		return v.num
	case KindChar:
		return uint16(v.num)
	case KindFloat:
		return float32(v.flt)
	case KindDouble:
		return v.flt
	case KindRef:
		return v.ref
	default:
		return nil
	}
}

// wrap converts a plain Go value produced by a native binding back into a
// Value.
func wrap(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BooleanValue(t), nil
	case int8:
		return ByteValue(t), nil
	case int16:
		return ShortValue(t), nil
	case int32:
		return IntValue(t), nil
	case int64:
		return LongValue(t), nil
	case uint16:
		return CharValue(t), nil
	case float32:
		return FloatValue(t), nil
	case float64:
		return DoubleValue(t), nil
	case *Object:
		return RefValue(t), nil
	default:
		return Value{}, fmt.Errorf("unsupported native value type %T", x)
	}
}
