// Package cftest builds minimal .class file images for tests. The emitted
// bytes carry a real constant pool, this/super class entries and a method
// table, which is everything the resolution path reads.
package cftest

import (
	"bytes"
	"encoding/binary"
)

// Method is one method entry to emit.
type Method struct {
	Name       string
	Descriptor string
	Flags      uint16
}

// Class describes the class file to build.
type Class struct {
	Name      string
	Super     string // defaults to java/lang/Object
	Methods   []Method
	BadMagic  bool // emit a corrupted magic number
	Truncated bool // cut the image short after the constant pool
}

// Build serializes the class description into class-file bytes.
func (c Class) Build() []byte {
	super := c.Super
	if super == "" {
		super = "java/lang/Object"
	}

	var pool bytes.Buffer
	var count uint16 = 1 // constant pool is 1-indexed

	utf8 := func(s string) uint16 {
		pool.WriteByte(1) // CONSTANT_Utf8
		binary.Write(&pool, binary.BigEndian, uint16(len(s)))
		pool.WriteString(s)
		count++
		return count - 1
	}
	classEntry := func(nameIndex uint16) uint16 {
		pool.WriteByte(7) // CONSTANT_Class
		binary.Write(&pool, binary.BigEndian, nameIndex)
		count++
		return count - 1
	}

	thisName := utf8(c.Name)
	thisClass := classEntry(thisName)
	superName := utf8(super)
	superClass := classEntry(superName)

	type methodIdx struct{ name, desc uint16 }
	idx := make([]methodIdx, len(c.Methods))
	for i, m := range c.Methods {
		idx[i] = methodIdx{name: utf8(m.Name), desc: utf8(m.Descriptor)}
	}

	var out bytes.Buffer
	if c.BadMagic {
		binary.Write(&out, binary.BigEndian, uint32(0xDEADBEEF))
	} else {
		binary.Write(&out, binary.BigEndian, uint32(0xCAFEBABE))
	}
	binary.Write(&out, binary.BigEndian, uint16(0))  // minor
	binary.Write(&out, binary.BigEndian, uint16(61)) // major (Java 17)
	binary.Write(&out, binary.BigEndian, count)
	out.Write(pool.Bytes())

	if c.Truncated {
		return out.Bytes()
	}

	binary.Write(&out, binary.BigEndian, uint16(0x0021)) // ACC_PUBLIC|ACC_SUPER
	binary.Write(&out, binary.BigEndian, thisClass)
	binary.Write(&out, binary.BigEndian, superClass)
	binary.Write(&out, binary.BigEndian, uint16(0)) // interfaces
	binary.Write(&out, binary.BigEndian, uint16(0)) // fields

	binary.Write(&out, binary.BigEndian, uint16(len(c.Methods)))
	for i, m := range c.Methods {
		flags := m.Flags
		if flags == 0 {
			flags = 0x0001 // ACC_PUBLIC
		}
		binary.Write(&out, binary.BigEndian, flags)
		binary.Write(&out, binary.BigEndian, idx[i].name)
		binary.Write(&out, binary.BigEndian, idx[i].desc)
		binary.Write(&out, binary.BigEndian, uint16(0)) // attributes
	}

	binary.Write(&out, binary.BigEndian, uint16(0)) // class attributes
	return out.Bytes()
}
