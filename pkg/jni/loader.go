package jni

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/halbersand/jnibridge/pkg/classfile"
	"github.com/halbersand/jnibridge/pkg/native"
)

// ErrClassNotFound is returned by loaders when a class is not on their
// portion of the class path; the registry then falls through to the next
// loader in the chain.
var ErrClassNotFound = errors.New("class not found")

// ClassLoader loads classes by fully qualified JVM-internal name
// ("java/lang/Short").
type ClassLoader interface {
	LoadClass(name string) (*Class, error)
}

// BootstrapLoader serves classes implemented natively in Go. It sits first
// in the loader chain so that java/lang bindings win over class-path files.
type BootstrapLoader struct {
	bindings map[string]*native.Binding
}

// NewBootstrapLoader creates a BootstrapLoader over the given bindings.
func NewBootstrapLoader(bindings ...*native.Binding) *BootstrapLoader {
	m := make(map[string]*native.Binding, len(bindings))
	for _, b := range bindings {
		m[b.ClassName] = b
	}
	return &BootstrapLoader{bindings: m}
}

func (cl *BootstrapLoader) LoadClass(name string) (*Class, error) {
	b, ok := cl.bindings[name]
	if !ok {
		return nil, fmt.Errorf("bootstrap: %s: %w", name, ErrClassNotFound)
	}
	return &Class{Name: name, Native: b}, nil
}

// JmodLoader loads classes from a JDK jmod file.
type JmodLoader struct {
	JmodPath string

	mu        sync.Mutex
	zipReader *zip.Reader
}

// NewJmodLoader creates a JmodLoader for the given java.base.jmod path.
func NewJmodLoader(jmodPath string) *JmodLoader {
	return &JmodLoader{JmodPath: jmodPath}
}

func (cl *JmodLoader) ensureZipReader() error {
	if cl.zipReader != nil {
		return nil
	}

	f, err := os.Open(cl.JmodPath)
	if err != nil {
		return fmt.Errorf("jmod: opening %s: %w", cl.JmodPath, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("jmod: stat %s: %w", cl.JmodPath, err)
	}

	data := make([]byte, stat.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return fmt.Errorf("jmod: reading %s: %w", cl.JmodPath, err)
	}

	if len(data) < 4 {
		return fmt.Errorf("jmod: %s too short", cl.JmodPath)
	}
	data = data[4:] // Skip "JM\x01\x00" header
	cl.zipReader, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("jmod: opening zip: %w", err)
	}
	return nil
}

func (cl *JmodLoader) LoadClass(name string) (*Class, error) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if err := cl.ensureZipReader(); err != nil {
		return nil, err
	}

	target := "classes/" + name + ".class"
	for _, file := range cl.zipReader.File {
		if file.Name == target {
			rc, err := file.Open()
			if err != nil {
				return nil, fmt.Errorf("jmod: opening %s: %w", target, err)
			}
			defer rc.Close()

			cf, err := classfile.Parse(rc)
			if err != nil {
				return nil, fmt.Errorf("jmod: parsing %s: %w", name, err)
			}
			return &Class{Name: name, File: cf}, nil
		}
	}

	return nil, fmt.Errorf("jmod: %s not in %s: %w", name, cl.JmodPath, ErrClassNotFound)
}

// DirLoader loads classes from a class-path directory.
type DirLoader struct {
	ClassPath string
}

// NewDirLoader creates a DirLoader rooted at the given directory.
func NewDirLoader(classPath string) *DirLoader {
	return &DirLoader{ClassPath: classPath}
}

func (cl *DirLoader) LoadClass(name string) (*Class, error) {
	path := filepath.Join(cl.ClassPath, filepath.FromSlash(name)+".class")
	cf, err := classfile.ParseFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("classpath: %s: %w", name, ErrClassNotFound)
		}
		return nil, fmt.Errorf("classpath: parsing %s: %w", name, err)
	}
	return &Class{Name: name, File: cf}, nil
}
