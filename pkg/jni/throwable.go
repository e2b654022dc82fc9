package jni

import "fmt"

// Well-known throwable class names raised by the env itself.
const (
	ClassNoClassDefFoundError      = "java/lang/NoClassDefFoundError"
	ClassNoSuchMethodError         = "java/lang/NoSuchMethodError"
	ClassIllegalArgumentException  = "java/lang/IllegalArgumentException"
	ClassInstantiationError        = "java/lang/InstantiationError"
	ClassUnsupportedOperationError = "java/lang/UnsupportedOperationException"
)

// Throwable represents an exception raised inside the modeled runtime. It
// doubles as the error value surfaced to Go callers and the pending state
// observable through the env's exception channel.
type Throwable struct {
	ClassName string
	Message   string
	Cause     error
}

func (t *Throwable) Error() string {
	if t.Message == "" {
		return t.ClassName
	}
	return fmt.Sprintf("%s: %s", t.ClassName, t.Message)
}

func (t *Throwable) Unwrap() error {
	return t.Cause
}

// NewThrowable creates a Throwable of the given class.
func NewThrowable(className, format string, args ...any) *Throwable {
	return &Throwable{
		ClassName: className,
		Message:   fmt.Sprintf(format, args...),
	}
}
