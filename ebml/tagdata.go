package ebml

// Type identifies how an element's content is interpreted.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeMaster
	TypeUint
	TypeInt
	TypeFloat
	TypeString
	TypeBinary
)

func (t Type) String() string {
	switch t {
	case TypeMaster:
		return "master"
	case TypeUint:
		return "uint"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBinary:
		return "binary"
	}
	return "unknown"
}

// Child is one (id, value) pair inside a master element.
type Child struct {
	ID   uint32
	Data TagData
}

// TagData is the generic value of a single element: exactly one of the
// payload fields is meaningful, selected by Type. Master elements hold
// their children in document order.
type TagData struct {
	Type     Type
	Bytes    []byte
	Uint     uint64
	Int      int64
	Float    float64
	Str      string
	Children []Child
}

func Binary(b []byte) TagData     { return TagData{Type: TypeBinary, Bytes: b} }
func Uint(v uint64) TagData       { return TagData{Type: TypeUint, Uint: v} }
func Int(v int64) TagData         { return TagData{Type: TypeInt, Int: v} }
func Float(v float64) TagData     { return TagData{Type: TypeFloat, Float: v} }
func String(s string) TagData     { return TagData{Type: TypeString, Str: s} }
func Master(kids []Child) TagData { return TagData{Type: TypeMaster, Children: kids} }
