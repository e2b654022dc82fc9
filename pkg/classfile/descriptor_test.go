package classfile

import "testing"

func TestParseDescriptor(t *testing.T) {
	t.Run("boxed short constructor", func(t *testing.T) {
		d, err := ParseDescriptor("(S)V")
		if err != nil {
			t.Fatalf("ParseDescriptor((S)V): %v", err)
		}
		if len(d.Params) != 1 {
			t.Fatalf("params: got %d, want 1", len(d.Params))
		}
		if d.Params[0].Base != TypeShort {
			t.Errorf("param type: got %c, want S", d.Params[0].Base)
		}
		if d.Return.Base != TypeVoid {
			t.Errorf("return type: got %c, want V", d.Return.Base)
		}
	})

	t.Run("no-arg accessor", func(t *testing.T) {
		d, err := ParseDescriptor("()S")
		if err != nil {
			t.Fatalf("ParseDescriptor(()S): %v", err)
		}
		if len(d.Params) != 0 {
			t.Errorf("params: got %d, want 0", len(d.Params))
		}
		if d.Return.Base != TypeShort {
			t.Errorf("return type: got %c, want S", d.Return.Base)
		}
	})

	t.Run("object and array params", func(t *testing.T) {
		d, err := ParseDescriptor("(Ljava/lang/String;[I[[Ljava/lang/Object;J)Ljava/lang/Short;")
		if err != nil {
			t.Fatalf("ParseDescriptor: %v", err)
		}
		if len(d.Params) != 4 {
			t.Fatalf("params: got %d, want 4", len(d.Params))
		}
		if d.Params[0].Base != TypeObject || d.Params[0].ClassName != "java/lang/String" {
			t.Errorf("param 0: got %+v, want java/lang/String object", d.Params[0])
		}
		if d.Params[1].Base != TypeArray || d.Params[1].ClassName != "[I" {
			t.Errorf("param 1: got %+v, want [I array", d.Params[1])
		}
		if d.Params[2].Base != TypeArray || d.Params[2].ClassName != "[[Ljava/lang/Object;" {
			t.Errorf("param 2: got %+v, want [[Ljava/lang/Object; array", d.Params[2])
		}
		if d.Params[3].Base != TypeLong {
			t.Errorf("param 3: got %c, want J", d.Params[3].Base)
		}
		if d.Return.Base != TypeObject || d.Return.ClassName != "java/lang/Short" {
			t.Errorf("return: got %+v, want java/lang/Short object", d.Return)
		}
	})

	t.Run("round trip rendering", func(t *testing.T) {
		d, err := ParseDescriptor("(ZB[S)V")
		if err != nil {
			t.Fatalf("ParseDescriptor: %v", err)
		}
		got := d.Params[0].String() + d.Params[1].String() + d.Params[2].String()
		if got != "ZB[S" {
			t.Errorf("rendered params: got %q, want %q", got, "ZB[S")
		}
	})

	t.Run("malformed descriptors", func(t *testing.T) {
		for _, desc := range []string{
			"", "S", "()", "(S", "(Q)V", "(Ljava/lang/Short)V", "([)V", "(S)VX", "(L;)V",
		} {
			if _, err := ParseDescriptor(desc); err == nil {
				t.Errorf("ParseDescriptor(%q): expected error, got nil", desc)
			}
		}
	})
}
