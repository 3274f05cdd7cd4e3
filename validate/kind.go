package validate

import "reflect"

// Kind is the expected shape of a parameter value.
type Kind int

const (
	// String expects a string value.
	String Kind = iota
	// Int expects any integer value, signed or unsigned.
	Int
	// Float expects a floating-point value.
	Float
	// Bool expects a boolean value.
	Bool
	// Slice expects a slice or array value.
	Slice
	// Map expects a map value.
	Map
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Slice:
		return "slice"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// Matches reports whether the value satisfies the kind. A nil value
// matches no kind.
func (k Kind) Matches(v any) bool {
	if v == nil {
		return false
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.String:
		return k == String
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return k == Int
	case reflect.Float32, reflect.Float64:
		return k == Float
	case reflect.Bool:
		return k == Bool
	case reflect.Slice, reflect.Array:
		return k == Slice
	case reflect.Map:
		return k == Map
	default:
		return false
	}
}
