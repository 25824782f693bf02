package ast

import "fmt"

// Kind tags every node variant the engine understands. Consumers switch on it
// explicitly; there is no per-node dynamic dispatch.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindCompilationUnit
	KindImport
	KindClass
	KindInterface
	KindEnum
	KindRecord
	KindAnnotationType
	KindMethod
	KindConstructor
	KindParameter
	KindTypeRef
	KindTypeParam
	KindAnnotation
	KindField
	KindLocalVariable
	KindNewObject
	KindMethodCall
	KindFieldAccess
	KindClassLiteral
	KindStringLiteral
	KindTextBlock
	KindCharLiteral
	KindNumberLiteral
	KindBoolLiteral
	KindNullLiteral
	KindBinary
	KindLambda
	KindIdentifier
	KindBlock
	KindOther
)

var kindNames = [...]string{
	KindInvalid:         "invalid",
	KindCompilationUnit: "compilation_unit",
	KindImport:          "import",
	KindClass:           "class",
	KindInterface:       "interface",
	KindEnum:            "enum",
	KindRecord:          "record",
	KindAnnotationType:  "annotation_type",
	KindMethod:          "method",
	KindConstructor:     "constructor",
	KindParameter:       "parameter",
	KindTypeRef:         "type_ref",
	KindTypeParam:       "type_param",
	KindAnnotation:      "annotation",
	KindField:           "field",
	KindLocalVariable:   "local_variable",
	KindNewObject:       "new_object",
	KindMethodCall:      "method_call",
	KindFieldAccess:     "field_access",
	KindClassLiteral:    "class_literal",
	KindStringLiteral:   "string_literal",
	KindTextBlock:       "text_block",
	KindCharLiteral:     "char_literal",
	KindNumberLiteral:   "number_literal",
	KindBoolLiteral:     "bool_literal",
	KindNullLiteral:     "null_literal",
	KindBinary:          "binary",
	KindLambda:          "lambda",
	KindIdentifier:      "identifier",
	KindBlock:           "block",
	KindOther:           "other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsTypeDecl reports whether the kind declares a type.
func (k Kind) IsTypeDecl() bool {
	switch k {
	case KindClass, KindInterface, KindEnum, KindRecord, KindAnnotationType:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether the kind is any literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case KindStringLiteral, KindTextBlock, KindCharLiteral, KindNumberLiteral, KindBoolLiteral, KindNullLiteral:
		return true
	default:
		return false
	}
}

// Modifiers is a bit set of Java declaration modifiers.
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModAbstract
	ModFinal
	ModDefault
	ModNative
	ModSynchronized
)

// Has reports whether every bit of m2 is set.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// ParseModifier maps a keyword to its bit; unknown keywords yield 0.
func ParseModifier(word string) Modifiers {
	switch word {
	case "public":
		return ModPublic
	case "protected":
		return ModProtected
	case "private":
		return ModPrivate
	case "static":
		return ModStatic
	case "abstract":
		return ModAbstract
	case "final":
		return ModFinal
	case "default":
		return ModDefault
	case "native":
		return ModNative
	case "synchronized":
		return ModSynchronized
	default:
		return 0
	}
}
