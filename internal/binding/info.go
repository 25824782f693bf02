package binding

import (
	"jsema/internal/ast"
	"jsema/internal/source"
)

// TypeKind classifies a type handle.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeClass
	TypeInterface
	TypeEnum
	TypeRecord
	TypeAnnotation
	TypePrimitive
	TypeVoid
	TypeArray
	TypeVariable
	// TypeRecovered is a name the binder could not resolve.
	TypeRecovered
)

func (k TypeKind) String() string {
	switch k {
	case TypeClass:
		return "class"
	case TypeInterface:
		return "interface"
	case TypeEnum:
		return "enum"
	case TypeRecord:
		return "record"
	case TypeAnnotation:
		return "annotation"
	case TypePrimitive:
		return "primitive"
	case TypeVoid:
		return "void"
	case TypeArray:
		return "array"
	case TypeVariable:
		return "type-variable"
	case TypeRecovered:
		return "recovered"
	default:
		return "invalid"
	}
}

// IsDeclared reports whether the kind is a class-like declared type.
func (k TypeKind) IsDeclared() bool {
	switch k {
	case TypeClass, TypeInterface, TypeEnum, TypeRecord, TypeAnnotation:
		return true
	default:
		return false
	}
}

// DeclRef points at the syntax node a binding was created from.
type DeclRef struct {
	File source.FileID
	Node ast.NodeID
}

// IsValid reports whether the reference points at a node.
func (d DeclRef) IsValid() bool { return d.Node.IsValid() }

// TypeInfo is the raw data behind a TypeID.
type TypeInfo struct {
	Kind          TypeKind
	QualifiedName string // java.util.Map.Entry, int, java.lang.String[], T
	BinaryName    string // java.util.Map$Entry
	Package       string
	Mods          ast.Modifiers
	Elem          TypeID // arrays
	Erasure       TypeID // type variables
	Superclass    TypeID
	Interfaces    []TypeID
	Methods       []MethodID
	Decl          DeclRef
}

// SimpleName returns the part of the qualified name after the last dot.
func (ti *TypeInfo) SimpleName() string {
	name := ti.QualifiedName
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}

// MethodInfo is the raw data behind a MethodID.
type MethodInfo struct {
	Name        string
	Owner       TypeID
	Params      []TypeID
	Return      TypeID
	Thrown      []TypeID
	TypeParams  []TypeID
	Mods        ast.Modifiers
	Constructor bool
	Decl        DeclRef
}

// IsStatic reports whether the method is static.
func (mi *MethodInfo) IsStatic() bool { return mi.Mods.Has(ast.ModStatic) }

// IsPrivate reports whether the method is private.
func (mi *MethodInfo) IsPrivate() bool { return mi.Mods.Has(ast.ModPrivate) }

// IsPackagePrivate reports whether no access modifier was declared.
func (mi *MethodInfo) IsPackagePrivate() bool {
	return mi.Mods&(ast.ModPublic|ast.ModProtected|ast.ModPrivate) == 0
}
