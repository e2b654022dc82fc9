// Package boxing constructs boxed java/lang wrapper objects from native
// primitive values, the way a JNI binding layer does: each wrapper's
// constructor identifier is resolved through the env once per process and
// cached, and construction goes through the env's generic object-creation
// facility with the cached identifier.
//
// Failure contract: when resolution fails (the boxed type or its
// constructor is unavailable on the class path), the bridge returns no
// object and the pending exception stays set on the env. The bridge never
// clears, translates or logs it; the caller observes it through
// Env.ExceptionOccurred and owns clearing it.
package boxing

import (
	"fmt"
	"sync/atomic"

	"github.com/halbersand/jnibridge/pkg/classfile"
	"github.com/halbersand/jnibridge/pkg/jni"
)

// methodCache lazily resolves one method identifier and publishes it
// process-wide, write-once. A raced first use may resolve the same
// identifier more than once; it is deterministic for a fixed class and
// signature, so the duplicate publish is harmless. Once published it is
// never invalidated: the class and signature are assumed stable for the
// process lifetime.
type methodCache struct {
	className string
	method    string
	signature string
	id        atomic.Pointer[jni.MethodID]
}

func (c *methodCache) get(env *jni.Env) (*jni.MethodID, error) {
	if id := c.id.Load(); id != nil {
		return id, nil
	}
	cls, err := env.FindClass(c.className)
	if err != nil {
		return nil, err
	}
	id, err := env.GetMethodID(cls, c.method, c.signature)
	if err != nil {
		return nil, err
	}
	c.id.Store(id)
	return id, nil
}

func ctorCache(className, signature string) *methodCache {
	return &methodCache{className: className, method: classfile.ConstructorName, signature: signature}
}

var (
	booleanCtor = ctorCache("java/lang/Boolean", "(Z)V")
	byteCtor    = ctorCache("java/lang/Byte", "(B)V")
	shortCtor   = ctorCache("java/lang/Short", "(S)V")
	intCtor     = ctorCache("java/lang/Integer", "(I)V")
	longCtor    = ctorCache("java/lang/Long", "(J)V")
	charCtor    = ctorCache("java/lang/Character", "(C)V")
	floatCtor   = ctorCache("java/lang/Float", "(F)V")
	doubleCtor  = ctorCache("java/lang/Double", "(D)V")

	booleanAcc = &methodCache{className: "java/lang/Boolean", method: "booleanValue", signature: "()Z"}
	byteAcc    = &methodCache{className: "java/lang/Byte", method: "byteValue", signature: "()B"}
	shortAcc   = &methodCache{className: "java/lang/Short", method: "shortValue", signature: "()S"}
	intAcc     = &methodCache{className: "java/lang/Integer", method: "intValue", signature: "()I"}
	longAcc    = &methodCache{className: "java/lang/Long", method: "longValue", signature: "()J"}
	charAcc    = &methodCache{className: "java/lang/Character", method: "charValue", signature: "()C"}
	floatAcc   = &methodCache{className: "java/lang/Float", method: "floatValue", signature: "()F"}
	doubleAcc  = &methodCache{className: "java/lang/Double", method: "doubleValue", signature: "()D"}
)

// allCaches exists so tests can reset the process-wide state between cases.
var allCaches = []*methodCache{
	booleanCtor, byteCtor, shortCtor, intCtor, longCtor, charCtor, floatCtor, doubleCtor,
	booleanAcc, byteAcc, shortAcc, intAcc, longAcc, charAcc, floatAcc, doubleAcc,
}

// construct resolves the cached constructor and builds the instance. The
// env is borrowed for this call only.
func construct(env *jni.Env, cache *methodCache, arg jni.Value) (*jni.Object, error) {
	id, err := cache.get(env)
	if err != nil {
		return nil, err
	}
	return env.NewObject(id.Class, id, arg)
}

// NewBoolean boxes v as a java/lang/Boolean.
func NewBoolean(env *jni.Env, v bool) (*jni.Object, error) {
	return construct(env, booleanCtor, jni.BooleanValue(v))
}

// NewByte boxes v as a java/lang/Byte.
func NewByte(env *jni.Env, v int8) (*jni.Object, error) {
	return construct(env, byteCtor, jni.ByteValue(v))
}

// NewShort boxes v as a java/lang/Short. On success the returned reference
// is fresh and owned by the caller; on resolution failure it returns nil
// with the pending exception left set on env.
func NewShort(env *jni.Env, v int16) (*jni.Object, error) {
	return construct(env, shortCtor, jni.ShortValue(v))
}

// NewInteger boxes v as a java/lang/Integer.
func NewInteger(env *jni.Env, v int32) (*jni.Object, error) {
	return construct(env, intCtor, jni.IntValue(v))
}

// NewLong boxes v as a java/lang/Long.
func NewLong(env *jni.Env, v int64) (*jni.Object, error) {
	return construct(env, longCtor, jni.LongValue(v))
}

// NewCharacter boxes v as a java/lang/Character.
func NewCharacter(env *jni.Env, v uint16) (*jni.Object, error) {
	return construct(env, charCtor, jni.CharValue(v))
}

// NewFloat boxes v as a java/lang/Float.
func NewFloat(env *jni.Env, v float32) (*jni.Object, error) {
	return construct(env, floatCtor, jni.FloatValue(v))
}

// NewDouble boxes v as a java/lang/Double.
func NewDouble(env *jni.Env, v float64) (*jni.Object, error) {
	return construct(env, doubleCtor, jni.DoubleValue(v))
}

// call resolves the cached accessor and invokes it on obj.
func call(env *jni.Env, cache *methodCache, obj *jni.Object) (jni.Value, error) {
	id, err := cache.get(env)
	if err != nil {
		return jni.Value{}, err
	}
	return env.CallMethod(obj, id)
}

// BooleanValue unboxes a java/lang/Boolean.
func BooleanValue(env *jni.Env, obj *jni.Object) (bool, error) {
	ret, err := call(env, booleanAcc, obj)
	if err != nil {
		return false, err
	}
	v, ok := ret.AsBoolean()
	if !ok {
		return false, fmt.Errorf("booleanValue returned a non-boolean value")
	}
	return v, nil
}

// ByteValue unboxes a java/lang/Byte.
func ByteValue(env *jni.Env, obj *jni.Object) (int8, error) {
	ret, err := call(env, byteAcc, obj)
	if err != nil {
		return 0, err
	}
	v, ok := ret.AsByte()
	if !ok {
		return 0, fmt.Errorf("byteValue returned a non-byte value")
	}
	return v, nil
}

// ShortValue unboxes a java/lang/Short.
func ShortValue(env *jni.Env, obj *jni.Object) (int16, error) {
	ret, err := call(env, shortAcc, obj)
	if err != nil {
		return 0, err
	}
	v, ok := ret.AsShort()
	if !ok {
		return 0, fmt.Errorf("shortValue returned a non-short value")
	}
	return v, nil
}

// IntegerValue unboxes a java/lang/Integer.
func IntegerValue(env *jni.Env, obj *jni.Object) (int32, error) {
	ret, err := call(env, intAcc, obj)
	if err != nil {
		return 0, err
	}
	v, ok := ret.AsInt()
	if !ok {
		return 0, fmt.Errorf("intValue returned a non-int value")
	}
	return v, nil
}

// LongValue unboxes a java/lang/Long.
func LongValue(env *jni.Env, obj *jni.Object) (int64, error) {
	ret, err := call(env, longAcc, obj)
	if err != nil {
		return 0, err
	}
	v, ok := ret.AsLong()
	if !ok {
		return 0, fmt.Errorf("longValue returned a non-long value")
	}
	return v, nil
}

// CharacterValue unboxes a java/lang/Character.
func CharacterValue(env *jni.Env, obj *jni.Object) (uint16, error) {
	ret, err := call(env, charAcc, obj)
	if err != nil {
		return 0, err
	}
	v, ok := ret.AsChar()
	if !ok {
		return 0, fmt.Errorf("charValue returned a non-char value")
	}
	return v, nil
}

// FloatValue unboxes a java/lang/Float.
func FloatValue(env *jni.Env, obj *jni.Object) (float32, error) {
	ret, err := call(env, floatAcc, obj)
	if err != nil {
		return 0, err
	}
	v, ok := ret.AsFloat()
	if !ok {
		return 0, fmt.Errorf("floatValue returned a non-float value")
	}
	return v, nil
}

// DoubleValue unboxes a java/lang/Double.
func DoubleValue(env *jni.Env, obj *jni.Object) (float64, error) {
	ret, err := call(env, doubleAcc, obj)
	if err != nil {
		return 0, err
	}
	v, ok := ret.AsDouble()
	if !ok {
		return 0, fmt.Errorf("doubleValue returned a non-double value")
	}
	return v, nil
}
