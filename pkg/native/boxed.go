// Package native implements well-known java/lang classes as plain Go values.
// The bootstrap class loader serves these bindings so that boxing works
// without a JDK on the class path.
package native

import "fmt"

// NativeBoolean represents a java.lang.Boolean.
type NativeBoolean struct {
	Value bool
}

// NativeByte represents a java.lang.Byte.
type NativeByte struct {
	Value int8
}

// NativeShort represents a java.lang.Short.
type NativeShort struct {
	Value int16
}

// NativeInteger represents a java.lang.Integer.
type NativeInteger struct {
	Value int32
}

// NativeLong represents a java.lang.Long.
type NativeLong struct {
	Value int64
}

// NativeCharacter represents a java.lang.Character.
type NativeCharacter struct {
	Value uint16
}

// NativeFloat represents a java.lang.Float.
type NativeFloat struct {
	Value float32
}

// NativeDouble represents a java.lang.Double.
type NativeDouble struct {
	Value float64
}

// CtorFunc allocates a native instance from constructor arguments.
type CtorFunc func(args []any) (any, error)

// MethodFunc invokes a native instance method.
type MethodFunc func(recv any, args []any) (any, error)

// Binding is the native implementation of one class: its constructor table
// keyed by descriptor and its method table keyed by "name" + descriptor.
type Binding struct {
	ClassName string
	Ctors     map[string]CtorFunc
	Methods   map[string]MethodFunc
}

// arg pulls the i-th constructor argument as type T.
func arg[T any](args []any, i int) (T, error) {
	var zero T
	if i >= len(args) {
		return zero, fmt.Errorf("missing argument %d", i)
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, fmt.Errorf("argument %d: got %T, want %T", i, args[i], zero)
	}
	return v, nil
}

// recvAs casts the method receiver to the native type T.
func recvAs[T any](recv any) (T, error) {
	v, ok := recv.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("receiver: got %T, want %T", recv, zero)
	}
	return v, nil
}

// BootstrapBindings returns the native bindings for the boxed java/lang
// primitive wrappers. Each type carries its one-argument constructor and its
// primitive accessor, mirroring the JDK surface the boxing bridge uses.
func BootstrapBindings() []*Binding {
	return []*Binding{
		{
			ClassName: "java/lang/Boolean",
			Ctors: map[string]CtorFunc{
				"(Z)V": func(args []any) (any, error) {
					v, err := arg[bool](args, 0)
					if err != nil {
						return nil, err
					}
					return &NativeBoolean{Value: v}, nil
				},
			},
			Methods: map[string]MethodFunc{
				"booleanValue()Z": func(recv any, _ []any) (any, error) {
					b, err := recvAs[*NativeBoolean](recv)
					if err != nil {
						return nil, err
					}
					return b.Value, nil
				},
			},
		},
		{
			ClassName: "java/lang/Byte",
			Ctors: map[string]CtorFunc{
				"(B)V": func(args []any) (any, error) {
					v, err := arg[int8](args, 0)
					if err != nil {
						return nil, err
					}
					return &NativeByte{Value: v}, nil
				},
			},
			Methods: map[string]MethodFunc{
				"byteValue()B": func(recv any, _ []any) (any, error) {
					b, err := recvAs[*NativeByte](recv)
					if err != nil {
						return nil, err
					}
					return b.Value, nil
				},
			},
		},
		{
			ClassName: "java/lang/Short",
			Ctors: map[string]CtorFunc{
				"(S)V": func(args []any) (any, error) {
					v, err := arg[int16](args, 0)
					if err != nil {
						return nil, err
					}
					return &NativeShort{Value: v}, nil
				},
			},
			Methods: map[string]MethodFunc{
				"shortValue()S": func(recv any, _ []any) (any, error) {
					s, err := recvAs[*NativeShort](recv)
					if err != nil {
						return nil, err
					}
					return s.Value, nil
				},
			},
		},
		{
			ClassName: "java/lang/Integer",
			Ctors: map[string]CtorFunc{
				"(I)V": func(args []any) (any, error) {
					v, err := arg[int32](args, 0)
					if err != nil {
						return nil, err
					}
					return &NativeInteger{Value: v}, nil
				},
			},
			Methods: map[string]MethodFunc{
				"intValue()I": func(recv any, _ []any) (any, error) {
					n, err := recvAs[*NativeInteger](recv)
					if err != nil {
						return nil, err
					}
					return n.Value, nil
				},
			},
		},
		{
			ClassName: "java/lang/Long",
			Ctors: map[string]CtorFunc{
				"(J)V": func(args []any) (any, error) {
					v, err := arg[int64](args, 0)
					if err != nil {
						return nil, err
					}
					return &NativeLong{Value: v}, nil
				},
			},
			Methods: map[string]MethodFunc{
				"longValue()J": func(recv any, _ []any) (any, error) {
					l, err := recvAs[*NativeLong](recv)
					if err != nil {
						return nil, err
					}
					return l.Value, nil
				},
			},
		},
		{
			ClassName: "java/lang/Character",
			Ctors: map[string]CtorFunc{
				"(C)V": func(args []any) (any, error) {
					v, err := arg[uint16](args, 0)
					if err != nil {
						return nil, err
					}
					return &NativeCharacter{Value: v}, nil
				},
			},
			Methods: map[string]MethodFunc{
				"charValue()C": func(recv any, _ []any) (any, error) {
					c, err := recvAs[*NativeCharacter](recv)
					if err != nil {
						return nil, err
					}
					return c.Value, nil
				},
			},
		},
		{
			ClassName: "java/lang/Float",
			Ctors: map[string]CtorFunc{
				"(F)V": func(args []any) (any, error) {
					v, err := arg[float32](args, 0)
					if err != nil {
						return nil, err
					}
					return &NativeFloat{Value: v}, nil
				},
			},
			Methods: map[string]MethodFunc{
				"floatValue()F": func(recv any, _ []any) (any, error) {
					f, err := recvAs[*NativeFloat](recv)
					if err != nil {
						return nil, err
					}
					return f.Value, nil
				},
			},
		},
		{
			ClassName: "java/lang/Double",
			Ctors: map[string]CtorFunc{
				"(D)V": func(args []any) (any, error) {
					v, err := arg[float64](args, 0)
					if err != nil {
						return nil, err
					}
					return &NativeDouble{Value: v}, nil
				},
			},
			Methods: map[string]MethodFunc{
				"doubleValue()D": func(recv any, _ []any) (any, error) {
					d, err := recvAs[*NativeDouble](recv)
					if err != nil {
						return nil, err
					}
					return d.Value, nil
				},
			},
		},
	}
}
