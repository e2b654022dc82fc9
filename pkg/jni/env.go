// Package jni models the runtime-environment surface a JNI binding layer
// consumes: class lookup, method resolution, generic object construction
// and the pending-exception channel. Classes come from a loader chain
// (native bootstrap bindings, a JDK jmod, class-path directories).
package jni

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Registry holds the resolved-class cache shared by every env handle. It is
// safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	loaders []ClassLoader
	classes map[string]*Class
	log     *zap.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLoaders appends loaders to the chain, searched in order.
func WithLoaders(loaders ...ClassLoader) RegistryOption {
	return func(r *Registry) {
		r.loaders = append(r.loaders, loaders...)
	}
}

// WithLogger sets the registry logger. Defaults to a nop logger.
func WithLogger(log *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry creates a Registry over the given loader chain.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		classes: make(map[string]*Class),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// lookup resolves a class through the cache and the loader chain.
func (r *Registry) lookup(name string) (*Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cls, ok := r.classes[name]; ok {
		return cls, nil
	}

	for _, loader := range r.loaders {
		cls, err := loader.LoadClass(name)
		if err == nil {
			r.classes[name] = cls
			r.log.Debug("class resolved",
				zap.String("class", name),
				zap.Bool("native", cls.Native != nil))
			return cls, nil
		}
		if !errors.Is(err, ErrClassNotFound) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%s: %w", name, ErrClassNotFound)
}

// Env is the runtime-environment handle passed into every bridge call. It
// is borrowed for the duration of the call and must not be stored; the
// pending exception state it carries belongs to the caller's session.
type Env struct {
	reg     *Registry
	log     *zap.Logger
	pending *Throwable
}

// Env hands out a fresh environment handle over the registry.
func (r *Registry) Env() *Env {
	return &Env{reg: r, log: r.log}
}

// throw records t as the pending exception and returns it as the error.
func (e *Env) throw(t *Throwable) error {
	e.pending = t
	e.log.Warn("exception raised",
		zap.String("throwable", t.ClassName),
		zap.String("message", t.Message))
	return t
}

// Throw sets the pending exception explicitly.
func (e *Env) Throw(t *Throwable) {
	e.pending = t
}

// ExceptionOccurred returns the pending exception, or nil.
func (e *Env) ExceptionOccurred() *Throwable {
	return e.pending
}

// ExceptionCheck reports whether an exception is pending.
func (e *Env) ExceptionCheck() bool {
	return e.pending != nil
}

// ExceptionClear clears the pending exception. Failed lookups leave the
// exception set; the caller that observes the failure owns clearing it.
func (e *Env) ExceptionClear() {
	e.pending = nil
}

// FindClass resolves a class by its JVM-internal name. On failure it
// raises java/lang/NoClassDefFoundError pending and returns it.
func (e *Env) FindClass(name string) (*Class, error) {
	cls, err := e.reg.lookup(name)
	if err != nil {
		t := NewThrowable(ClassNoClassDefFoundError, "%s", name)
		t.Cause = err
		return nil, e.throw(t)
	}
	return cls, nil
}

// GetMethodID resolves a method of cls by name and descriptor, returning an
// identifier valid for the process lifetime. Constructors are named
// "<init>". On failure it raises java/lang/NoSuchMethodError pending.
func (e *Env) GetMethodID(cls *Class, name, sig string) (*MethodID, error) {
	if cls == nil {
		return nil, e.throw(NewThrowable(ClassNoSuchMethodError, "%s%s on nil class", name, sig))
	}

	desc, err := parseMethodSig(cls, name, sig)
	if err != nil {
		t := NewThrowable(ClassNoSuchMethodError, "%s.%s%s", cls.Name, name, sig)
		t.Cause = err
		return nil, e.throw(t)
	}

	return &MethodID{Class: cls, Name: name, Descriptor: sig, desc: desc}, nil
}

// NewObject constructs a new instance of cls through the given constructor
// identifier. Arguments are checked against the constructor's descriptor.
// Ownership of the returned object transfers to the caller.
func (e *Env) NewObject(cls *Class, id *MethodID, args ...Value) (*Object, error) {
	if cls == nil || id == nil {
		return nil, e.throw(NewThrowable(ClassInstantiationError, "nil class or method ID"))
	}
	if !id.IsConstructor() {
		return nil, e.throw(NewThrowable(ClassIllegalArgumentException,
			"%s is not a constructor", id))
	}
	if id.Class.Name != cls.Name {
		return nil, e.throw(NewThrowable(ClassIllegalArgumentException,
			"method ID %s does not belong to %s", id, cls.Name))
	}
	if err := checkArgs(id, args); err != nil {
		return nil, e.throw(err)
	}

	if cls.Native != nil {
		ctor := cls.Native.Ctors[id.Descriptor]
		payload, err := ctor(unwrapArgs(args))
		if err != nil {
			t := NewThrowable(ClassInstantiationError, "%s: %v", id, err)
			t.Cause = err
			return nil, e.throw(t)
		}
		return &Object{Class: cls, Boxed: payload}, nil
	}

	// Class-file-backed classes are allocated with zeroed fields; the
	// constructor body is not interpreted.
	return &Object{Class: cls, Fields: make(map[string]Value)}, nil
}

// CallMethod invokes an instance method through the given identifier and
// returns its result. Only native-bound classes support invocation.
func (e *Env) CallMethod(recv *Object, id *MethodID, args ...Value) (Value, error) {
	if id == nil {
		return Value{}, e.throw(NewThrowable(ClassNoSuchMethodError, "nil method ID"))
	}
	if recv == nil {
		return Value{}, e.throw(NewThrowable("java/lang/NullPointerException", "calling %s on null", id))
	}
	if id.IsConstructor() {
		return Value{}, e.throw(NewThrowable(ClassIllegalArgumentException,
			"%s: constructors are invoked through NewObject", id))
	}
	if recv.Class.Name != id.Class.Name {
		return Value{}, e.throw(NewThrowable(ClassIllegalArgumentException,
			"method ID %s does not belong to %s", id, recv.Class.Name))
	}
	if err := checkArgs(id, args); err != nil {
		return Value{}, e.throw(err)
	}

	if recv.Class.Native == nil {
		return Value{}, e.throw(NewThrowable(ClassUnsupportedOperationError,
			"%s: bytecode execution is not supported", id))
	}

	fn := recv.Class.Native.Methods[id.Name+id.Descriptor]
	result, err := fn(recv.Boxed, unwrapArgs(args))
	if err != nil {
		t := NewThrowable(ClassIllegalArgumentException, "%s: %v", id, err)
		t.Cause = err
		return Value{}, e.throw(t)
	}

	ret, err := wrap(result)
	if err != nil {
		t := NewThrowable(ClassIllegalArgumentException, "%s: %v", id, err)
		t.Cause = err
		return Value{}, e.throw(t)
	}
	return ret, nil
}
