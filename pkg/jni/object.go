package jni

import (
	"github.com/halbersand/jnibridge/pkg/classfile"
	"github.com/halbersand/jnibridge/pkg/native"
)

// Class is the resolved identity of a loaded class. Exactly one of File and
// Native is set: File for classes parsed off the class path, Native for
// bootstrap bindings backed by Go code.
type Class struct {
	Name   string
	File   *classfile.ClassFile
	Native *native.Binding
}

// MethodID is the opaque, resolved identity of one method overload: the
// class it was resolved against plus name and descriptor. A MethodID stays
// valid for the process lifetime and may be cached by callers.
type MethodID struct {
	Class      *Class
	Name       string
	Descriptor string

	desc *classfile.Descriptor
}

// IsConstructor reports whether this identifier names an instance
// initializer.
func (id *MethodID) IsConstructor() bool {
	return id.Name == classfile.ConstructorName
}

func (id *MethodID) String() string {
	return id.Class.Name + "." + id.Name + id.Descriptor
}

// Object is a constructed instance. Ownership transfers to the caller on
// construction. Boxed holds the native payload for bootstrap-bound classes;
// Fields holds instance state for class-file-backed ones.
type Object struct {
	Class  *Class
	Fields map[string]Value
	Boxed  any
}
