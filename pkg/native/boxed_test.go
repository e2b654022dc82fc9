package native

import "testing"

func bindingFor(t *testing.T, className string) *Binding {
	t.Helper()
	for _, b := range BootstrapBindings() {
		if b.ClassName == className {
			return b
		}
	}
	t.Fatalf("no bootstrap binding for %s", className)
	return nil
}

func TestShortBinding(t *testing.T) {
	b := bindingFor(t, "java/lang/Short")

	t.Run("construct and unbox roundtrip", func(t *testing.T) {
		ctor := b.Ctors["(S)V"]
		if ctor == nil {
			t.Fatal("(S)V constructor not bound")
		}
		inst, err := ctor([]any{int16(-42)})
		if err != nil {
			t.Fatalf("constructing Short(-42): %v", err)
		}

		got, err := b.Methods["shortValue()S"](inst, nil)
		if err != nil {
			t.Fatalf("shortValue: %v", err)
		}
		if got != int16(-42) {
			t.Errorf("shortValue: got %v, want -42", got)
		}
	})

	t.Run("different values are distinct instances", func(t *testing.T) {
		ctor := b.Ctors["(S)V"]
		a, _ := ctor([]any{int16(10)})
		c, _ := ctor([]any{int16(20)})
		if a == c {
			t.Error("Short(10) and Short(20) should be distinct instances")
		}
		if a.(*NativeShort).Value == c.(*NativeShort).Value {
			t.Error("Short(10) and Short(20) should hold different values")
		}
	})

	t.Run("wrong argument type", func(t *testing.T) {
		if _, err := b.Ctors["(S)V"]([]any{int32(1)}); err == nil {
			t.Error("expected error for int32 argument, got nil")
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		if _, err := b.Ctors["(S)V"](nil); err == nil {
			t.Error("expected error for missing argument, got nil")
		}
	})

	t.Run("wrong receiver type", func(t *testing.T) {
		if _, err := b.Methods["shortValue()S"](&NativeInteger{Value: 1}, nil); err == nil {
			t.Error("expected error for wrong receiver, got nil")
		}
	})
}

func TestAllBoxedBindingsRoundTrip(t *testing.T) {
	cases := []struct {
		class    string
		ctorDesc string
		accessor string
		in       any
	}{
		{"java/lang/Boolean", "(Z)V", "booleanValue()Z", true},
		{"java/lang/Byte", "(B)V", "byteValue()B", int8(-7)},
		{"java/lang/Short", "(S)V", "shortValue()S", int16(32767)},
		{"java/lang/Integer", "(I)V", "intValue()I", int32(1 << 30)},
		{"java/lang/Long", "(J)V", "longValue()J", int64(1 << 60)},
		{"java/lang/Character", "(C)V", "charValue()C", uint16('ツ')},
		{"java/lang/Float", "(F)V", "floatValue()F", float32(2.5)},
		{"java/lang/Double", "(D)V", "doubleValue()D", float64(-0.125)},
	}

	for _, tc := range cases {
		t.Run(tc.class, func(t *testing.T) {
			b := bindingFor(t, tc.class)
			inst, err := b.Ctors[tc.ctorDesc]([]any{tc.in})
			if err != nil {
				t.Fatalf("constructing %s: %v", tc.class, err)
			}
			got, err := b.Methods[tc.accessor](inst, nil)
			if err != nil {
				t.Fatalf("%s: %v", tc.accessor, err)
			}
			if got != tc.in {
				t.Errorf("%s: got %v, want %v", tc.accessor, got, tc.in)
			}
		})
	}
}
