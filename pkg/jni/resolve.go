package jni

import (
	"fmt"

	"github.com/halbersand/jnibridge/pkg/classfile"
)

// parseMethodSig validates the signature and verifies the method exists on
// the class, in either its native binding tables or its parsed method table.
func parseMethodSig(cls *Class, name, sig string) (*classfile.Descriptor, error) {
	desc, err := classfile.ParseDescriptor(sig)
	if err != nil {
		return nil, err
	}

	if cls.Native != nil {
		if name == classfile.ConstructorName {
			if _, ok := cls.Native.Ctors[sig]; !ok {
				return nil, fmt.Errorf("no native constructor %s on %s", sig, cls.Name)
			}
		} else if _, ok := cls.Native.Methods[name+sig]; !ok {
			return nil, fmt.Errorf("no native method %s%s on %s", name, sig, cls.Name)
		}
		return desc, nil
	}

	if cls.File.FindMethod(name, sig) == nil {
		return nil, fmt.Errorf("no method %s%s on %s", name, sig, cls.Name)
	}
	return desc, nil
}

// checkArgs validates argument arity and kinds against the identifier's
// parsed descriptor.
func checkArgs(id *MethodID, args []Value) *Throwable {
	if len(args) != len(id.desc.Params) {
		return NewThrowable(ClassIllegalArgumentException,
			"%s: got %d arguments, want %d", id, len(args), len(id.desc.Params))
	}
	for i, p := range id.desc.Params {
		if !args[i].matches(p) {
			return NewThrowable(ClassIllegalArgumentException,
				"%s: argument %d does not match %s", id, i, p)
		}
	}
	return nil
}

func unwrapArgs(args []Value) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a.unwrap()
	}
	return out
}
