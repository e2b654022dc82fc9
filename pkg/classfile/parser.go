package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const classMagic = 0xCAFEBABE

// ParseFile opens and parses a .class file from the given path.
func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a .class file from the given reader and returns a ClassFile.
// Method bodies and class-level attributes are retained raw, not decoded.
func Parse(r io.Reader) (*ClassFile, error) {
	cf := &ClassFile{}

	// Magic number
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("reading magic number: %w", err)
	}
	if magic != classMagic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	// Version
	if err := binary.Read(r, binary.BigEndian, &cf.MinorVersion); err != nil {
		return nil, fmt.Errorf("reading minor version: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &cf.MajorVersion); err != nil {
		return nil, fmt.Errorf("reading major version: %w", err)
	}

	// Constant pool
	var cpCount uint16
	if err := binary.Read(r, binary.BigEndian, &cpCount); err != nil {
		return nil, fmt.Errorf("reading constant pool count: %w", err)
	}
	pool, err := parseConstantPool(r, cpCount)
	if err != nil {
		return nil, fmt.Errorf("parsing constant pool: %w", err)
	}
	cf.ConstantPool = pool

	// Access flags, this_class, super_class
	if err := binary.Read(r, binary.BigEndian, &cf.AccessFlags); err != nil {
		return nil, fmt.Errorf("reading access flags: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &cf.ThisClass); err != nil {
		return nil, fmt.Errorf("reading this_class: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &cf.SuperClass); err != nil {
		return nil, fmt.Errorf("reading super_class: %w", err)
	}

	// Interfaces
	var interfacesCount uint16
	if err := binary.Read(r, binary.BigEndian, &interfacesCount); err != nil {
		return nil, fmt.Errorf("reading interfaces count: %w", err)
	}
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := uint16(0); i < interfacesCount; i++ {
		if err := binary.Read(r, binary.BigEndian, &cf.Interfaces[i]); err != nil {
			return nil, fmt.Errorf("reading interface %d: %w", i, err)
		}
	}

	// Fields and methods share the member_info layout.
	var fieldsCount uint16
	if err := binary.Read(r, binary.BigEndian, &fieldsCount); err != nil {
		return nil, fmt.Errorf("reading fields count: %w", err)
	}
	for i := uint16(0); i < fieldsCount; i++ {
		flags, name, desc, attrs, err := parseMember(r, cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("parsing field %d: %w", i, err)
		}
		cf.Fields = append(cf.Fields, FieldInfo{
			AccessFlags: flags,
			Name:        name,
			Descriptor:  desc,
			Attributes:  attrs,
		})
	}

	var methodsCount uint16
	if err := binary.Read(r, binary.BigEndian, &methodsCount); err != nil {
		return nil, fmt.Errorf("reading methods count: %w", err)
	}
	for i := uint16(0); i < methodsCount; i++ {
		flags, name, desc, attrs, err := parseMember(r, cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("parsing method %d: %w", i, err)
		}
		if _, err := ParseDescriptor(desc); err != nil {
			return nil, fmt.Errorf("method %s has malformed descriptor: %w", name, err)
		}
		cf.Methods = append(cf.Methods, MethodInfo{
			AccessFlags: flags,
			Name:        name,
			Descriptor:  desc,
			Attributes:  attrs,
		})
	}

	// Class-level attributes are skipped.
	if err := skipClassAttributes(r); err != nil {
		return nil, fmt.Errorf("skipping class attributes: %w", err)
	}

	return cf, nil
}

// parseMember reads one field_info or method_info structure.
func parseMember(r io.Reader, pool []ConstantPoolEntry) (flags uint16, name, desc string, attrs []AttributeInfo, err error) {
	var nameIndex, descIndex, attrCount uint16
	if err = binary.Read(r, binary.BigEndian, &flags); err != nil {
		return 0, "", "", nil, fmt.Errorf("reading access flags: %w", err)
	}
	if err = binary.Read(r, binary.BigEndian, &nameIndex); err != nil {
		return 0, "", "", nil, fmt.Errorf("reading name index: %w", err)
	}
	if err = binary.Read(r, binary.BigEndian, &descIndex); err != nil {
		return 0, "", "", nil, fmt.Errorf("reading descriptor index: %w", err)
	}
	if err = binary.Read(r, binary.BigEndian, &attrCount); err != nil {
		return 0, "", "", nil, fmt.Errorf("reading attributes count: %w", err)
	}

	if name, err = GetUtf8(pool, nameIndex); err != nil {
		return 0, "", "", nil, fmt.Errorf("resolving name: %w", err)
	}
	if desc, err = GetUtf8(pool, descIndex); err != nil {
		return 0, "", "", nil, fmt.Errorf("resolving descriptor: %w", err)
	}

	if attrs, err = parseAttributeInfos(r, pool, attrCount); err != nil {
		return 0, "", "", nil, fmt.Errorf("parsing attributes: %w", err)
	}
	return flags, name, desc, attrs, nil
}

func parseAttributeInfos(r io.Reader, pool []ConstantPoolEntry, count uint16) ([]AttributeInfo, error) {
	attrs := make([]AttributeInfo, count)
	for i := uint16(0); i < count; i++ {
		var nameIndex uint16
		if err := binary.Read(r, binary.BigEndian, &nameIndex); err != nil {
			return nil, fmt.Errorf("reading attribute %d name index: %w", i, err)
		}
		var length uint32
		if err := binary.Read(r, binary.BigEndian, &length); err != nil {
			return nil, fmt.Errorf("reading attribute %d length: %w", i, err)
		}
		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("reading attribute %d data: %w", i, err)
		}

		name, err := GetUtf8(pool, nameIndex)
		if err != nil {
			return nil, fmt.Errorf("resolving attribute %d name: %w", i, err)
		}

		attrs[i] = AttributeInfo{Name: name, Data: data}
	}
	return attrs, nil
}

func skipClassAttributes(r io.Reader) error {
	var count uint16
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		// A class file without the trailing attributes_count is malformed,
		// but trailing EOF here is tolerated for hand-built test fixtures.
		if err == io.EOF {
			return nil
		}
		return err
	}
	for i := uint16(0); i < count; i++ {
		var nameIndex uint16
		if err := binary.Read(r, binary.BigEndian, &nameIndex); err != nil {
			return err
		}
		var length uint32
		if err := binary.Read(r, binary.BigEndian, &length); err != nil {
			return err
		}
		if err := skipBytes(r, int(length)); err != nil {
			return err
		}
	}
	return nil
}
