package classfile

import "fmt"

// BaseType is the leading character of a JVM type descriptor.
type BaseType byte

const (
	TypeByte    BaseType = 'B'
	TypeChar    BaseType = 'C'
	TypeDouble  BaseType = 'D'
	TypeFloat   BaseType = 'F'
	TypeInt     BaseType = 'I'
	TypeLong    BaseType = 'J'
	TypeShort   BaseType = 'S'
	TypeBoolean BaseType = 'Z'
	TypeObject  BaseType = 'L'
	TypeArray   BaseType = '['
	TypeVoid    BaseType = 'V'
)

// ParamType is one parsed parameter or return type of a method descriptor.
type ParamType struct {
	Base BaseType
	// ClassName is set for TypeObject ("java/lang/String" for
	// "Ljava/lang/String;"). For TypeArray it is the full element
	// descriptor including leading '[' runs.
	ClassName string
}

// String renders the type back in descriptor form.
func (p ParamType) String() string {
	switch p.Base {
	case TypeObject:
		return "L" + p.ClassName + ";"
	case TypeArray:
		return p.ClassName
	default:
		return string(p.Base)
	}
}

// Descriptor is a fully parsed method descriptor such as "(S)V".
type Descriptor struct {
	Raw    string
	Params []ParamType
	Return ParamType
}

// ParseDescriptor parses a JVM method descriptor into its parameter and
// return types, so callers can validate argument kinds and not just arity.
func ParseDescriptor(desc string) (*Descriptor, error) {
	if len(desc) < 3 || desc[0] != '(' {
		return nil, fmt.Errorf("invalid method descriptor: %q", desc)
	}

	d := &Descriptor{Raw: desc}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		p, next, err := parseFieldType(desc, i)
		if err != nil {
			return nil, fmt.Errorf("invalid method descriptor %q: %w", desc, err)
		}
		d.Params = append(d.Params, p)
		i = next
	}
	if i >= len(desc) || desc[i] != ')' {
		return nil, fmt.Errorf("invalid method descriptor %q: missing ')'", desc)
	}
	i++ // skip ')'

	if i >= len(desc) {
		return nil, fmt.Errorf("invalid method descriptor %q: missing return type", desc)
	}
	if desc[i] == 'V' {
		d.Return = ParamType{Base: TypeVoid}
		i++
	} else {
		ret, next, err := parseFieldType(desc, i)
		if err != nil {
			return nil, fmt.Errorf("invalid method descriptor %q: %w", desc, err)
		}
		d.Return = ret
		i = next
	}
	if i != len(desc) {
		return nil, fmt.Errorf("invalid method descriptor %q: trailing characters", desc)
	}
	return d, nil
}

// parseFieldType parses one field type starting at offset i, returning the
// type and the offset just past it.
func parseFieldType(desc string, i int) (ParamType, int, error) {
	switch desc[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return ParamType{Base: BaseType(desc[i])}, i + 1, nil

	case 'L':
		end := i + 1
		for end < len(desc) && desc[end] != ';' {
			end++
		}
		if end >= len(desc) {
			return ParamType{}, 0, fmt.Errorf("unterminated class type at offset %d", i)
		}
		if end == i+1 {
			return ParamType{}, 0, fmt.Errorf("empty class name at offset %d", i)
		}
		return ParamType{Base: TypeObject, ClassName: desc[i+1 : end]}, end + 1, nil

	case '[':
		start := i
		for i < len(desc) && desc[i] == '[' {
			i++
		}
		if i >= len(desc) {
			return ParamType{}, 0, fmt.Errorf("unterminated array type at offset %d", start)
		}
		_, next, err := parseFieldType(desc, i)
		if err != nil {
			return ParamType{}, 0, err
		}
		return ParamType{Base: TypeArray, ClassName: desc[start:next]}, next, nil

	default:
		return ParamType{}, 0, fmt.Errorf("invalid type descriptor char %q at offset %d", desc[i], i)
	}
}
