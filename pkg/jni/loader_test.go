package jni

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halbersand/jnibridge/pkg/classfile/cftest"
	"github.com/halbersand/jnibridge/pkg/native"
)

func TestBootstrapLoader(t *testing.T) {
	cl := NewBootstrapLoader(native.BootstrapBindings()...)

	cls, err := cl.LoadClass("java/lang/Double")
	require.NoError(t, err)
	assert.Equal(t, "java/lang/Double", cls.Name)
	assert.NotNil(t, cls.Native)

	_, err = cl.LoadClass("java/util/HashMap")
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	img := cftest.Class{
		Name:    "demo/Thing",
		Methods: []cftest.Method{{Name: "<init>", Descriptor: "()V"}},
	}.Build()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "demo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo", "Thing.class"), img, 0o644))

	cl := NewDirLoader(dir)

	t.Run("loads class from directory", func(t *testing.T) {
		cls, err := cl.LoadClass("demo/Thing")
		require.NoError(t, err)
		require.NotNil(t, cls.File)

		name, err := cls.File.ClassName()
		require.NoError(t, err)
		assert.Equal(t, "demo/Thing", name)
	})

	t.Run("missing class falls through", func(t *testing.T) {
		_, err := cl.LoadClass("demo/Nope")
		require.ErrorIs(t, err, ErrClassNotFound)
	})

	t.Run("corrupt class file does not fall through", func(t *testing.T) {
		bad := cftest.Class{Name: "demo/Bad", BadMagic: true}.Build()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "demo", "Bad.class"), bad, 0o644))

		_, err := cl.LoadClass("demo/Bad")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrClassNotFound)
	})
}

// writeJmod builds a fake java.base.jmod: the 4-byte jmod header followed by
// a zip whose entries live under classes/.
func writeJmod(t *testing.T, path string, classes map[string][]byte) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range classes {
		w, err := zw.Create("classes/" + name + ".class")
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	out := append([]byte("JM\x01\x00"), buf.Bytes()...)
	require.NoError(t, os.WriteFile(path, out, 0o644))
}

func TestJmodLoader(t *testing.T) {
	jmod := filepath.Join(t.TempDir(), "java.base.jmod")
	img := cftest.Class{
		Name:    "java/lang/Number",
		Methods: []cftest.Method{{Name: "<init>", Descriptor: "()V"}},
	}.Build()
	writeJmod(t, jmod, map[string][]byte{"java/lang/Number": img})

	cl := NewJmodLoader(jmod)

	t.Run("loads class from jmod", func(t *testing.T) {
		cls, err := cl.LoadClass("java/lang/Number")
		require.NoError(t, err)
		require.NotNil(t, cls.File)
	})

	t.Run("missing class falls through", func(t *testing.T) {
		_, err := cl.LoadClass("java/lang/Void")
		require.ErrorIs(t, err, ErrClassNotFound)
	})

	t.Run("missing jmod file errors", func(t *testing.T) {
		missing := NewJmodLoader(filepath.Join(t.TempDir(), "nope.jmod"))
		_, err := missing.LoadClass("java/lang/Number")
		require.Error(t, err)
	})
}

// countingLoader counts LoadClass calls; used to observe resolution caching.
type countingLoader struct {
	inner ClassLoader
	calls int
}

func (cl *countingLoader) LoadClass(name string) (*Class, error) {
	cl.calls++
	return cl.inner.LoadClass(name)
}

func TestRegistryCachesResolvedClasses(t *testing.T) {
	counter := &countingLoader{inner: NewBootstrapLoader(native.BootstrapBindings()...)}
	reg := NewRegistry(WithLoaders(counter))
	env := reg.Env()

	first, err := env.FindClass("java/lang/Short")
	require.NoError(t, err)
	second, err := env.FindClass("java/lang/Short")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, counter.calls)
}

func TestRegistryLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	img := cftest.Class{
		Name:    "java/lang/Short",
		Methods: []cftest.Method{{Name: "<init>", Descriptor: "(S)V"}},
	}.Build()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "java", "lang"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "java", "lang", "Short.class"), img, 0o644))

	// Bootstrap bindings shadow class-path files of the same name.
	reg := NewRegistry(WithLoaders(
		NewBootstrapLoader(native.BootstrapBindings()...),
		NewDirLoader(dir),
	))
	cls, err := reg.Env().FindClass("java/lang/Short")
	require.NoError(t, err)
	assert.NotNil(t, cls.Native)
	assert.Nil(t, cls.File)
}
