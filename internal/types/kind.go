package types

import "fmt"

// Kind classifies a Type.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindClass
	KindInterface
	KindEnum
	KindRecord
	KindAnnotation
	KindPrimitive
	KindVoid
	KindArray
	KindTypeVar
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindRecord:
		return "record"
	case KindAnnotation:
		return "annotation"
	case KindPrimitive:
		return "primitive"
	case KindVoid:
		return "void"
	case KindArray:
		return "array"
	case KindTypeVar:
		return "type-variable"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}
