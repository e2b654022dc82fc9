package classfile

import (
	"bytes"
	"testing"

	"github.com/halbersand/jnibridge/pkg/classfile/cftest"
)

func TestParseClassFile(t *testing.T) {
	img := cftest.Class{
		Name: "demo/Point",
		Methods: []cftest.Method{
			{Name: "<init>", Descriptor: "(II)V"},
			{Name: "<init>", Descriptor: "()V"},
			{Name: "norm", Descriptor: "()D"},
		},
	}.Build()

	cf, err := Parse(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("failed to parse class image: %v", err)
	}

	if cf.MajorVersion < 52 {
		t.Errorf("major version: got %d, want >= 52", cf.MajorVersion)
	}

	className, err := cf.ClassName()
	if err != nil {
		t.Fatalf("resolving this_class: %v", err)
	}
	if className != "demo/Point" {
		t.Errorf("this_class: got %q, want %q", className, "demo/Point")
	}

	if got := cf.SuperClassName(); got != "java/lang/Object" {
		t.Errorf("super_class: got %q, want %q", got, "java/lang/Object")
	}

	ctor := cf.FindMethod("<init>", "(II)V")
	if ctor == nil {
		t.Fatal("<init>(II)V not found")
	}
	if ctor.Descriptor != "(II)V" {
		t.Errorf("ctor descriptor: got %q, want %q", ctor.Descriptor, "(II)V")
	}

	if cf.FindMethod("norm", "()D") == nil {
		t.Error("norm()D not found")
	}
	if cf.FindMethod("norm", "()F") != nil {
		t.Error("FindMethod matched a wrong descriptor")
	}

	if got := len(cf.Constructors()); got != 2 {
		t.Errorf("Constructors(): got %d entries, want 2", got)
	}
}

func TestParseInvalidMagic(t *testing.T) {
	img := cftest.Class{Name: "Broken", BadMagic: true}.Build()

	_, err := Parse(bytes.NewReader(img))
	if err == nil {
		t.Error("expected error for invalid magic number, got nil")
	}
}

func TestParseTruncated(t *testing.T) {
	img := cftest.Class{Name: "Cut", Truncated: true}.Build()

	_, err := Parse(bytes.NewReader(img))
	if err == nil {
		t.Error("expected error for truncated class file, got nil")
	}
}

func TestParseRejectsMalformedMethodDescriptor(t *testing.T) {
	img := cftest.Class{
		Name:    "Bad",
		Methods: []cftest.Method{{Name: "f", Descriptor: "(Q)V"}},
	}.Build()

	_, err := Parse(bytes.NewReader(img))
	if err == nil {
		t.Error("expected error for malformed method descriptor, got nil")
	}
}
