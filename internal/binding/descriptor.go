package binding

import (
	"strings"
)

var primitiveDescriptors = map[string]string{
	"boolean": "Z",
	"byte":    "B",
	"char":    "C",
	"short":   "S",
	"int":     "I",
	"long":    "J",
	"float":   "F",
	"double":  "D",
	"void":    "V",
}

// Erase follows type variables to their bound; other types are returned as is.
func Erase(o Oracle, id TypeID) TypeID {
	for range 32 {
		ti := o.Type(id)
		if ti == nil || ti.Kind != TypeVariable {
			break
		}
		id = ti.Erasure
	}
	return id
}

// ErasedName renders the erasure of id as a qualified name ("" if absent).
func ErasedName(o Oracle, id TypeID) string {
	var sb strings.Builder
	depth := 0
	for range 255 {
		ti := o.Type(id)
		if ti == nil {
			return ""
		}
		switch ti.Kind {
		case TypeArray:
			depth++
			id = ti.Elem
			continue
		case TypeVariable:
			id = ti.Erasure
			continue
		}
		sb.WriteString(ti.QualifiedName)
		break
	}
	for range depth {
		sb.WriteString("[]")
	}
	return sb.String()
}

// Descriptor renders the JVM field descriptor of the erasure of id.
// Unresolved types render as their written name in L...; form.
func Descriptor(o Oracle, id TypeID) string {
	var sb strings.Builder
	writeDescriptor(o, &sb, id, 0)
	return sb.String()
}

func writeDescriptor(o Oracle, sb *strings.Builder, id TypeID, depth int) {
	ti := o.Type(id)
	if ti == nil || depth > 255 {
		sb.WriteString("Ljava/lang/Object;")
		return
	}
	switch ti.Kind {
	case TypePrimitive, TypeVoid:
		sb.WriteString(primitiveDescriptors[ti.QualifiedName])
	case TypeArray:
		sb.WriteByte('[')
		writeDescriptor(o, sb, ti.Elem, depth+1)
	case TypeVariable:
		writeDescriptor(o, sb, ti.Erasure, depth+1)
	default:
		sb.WriteByte('L')
		sb.WriteString(strings.ReplaceAll(ti.BinaryName, ".", "/"))
		sb.WriteByte(';')
	}
}

// MethodDescriptor renders "(params)ret" for m.
func MethodDescriptor(o Oracle, m MethodID) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range o.ParameterTypes(m) {
		writeDescriptor(o, &sb, p, 0)
	}
	sb.WriteByte(')')
	ret := o.ReturnType(m)
	if !ret.IsValid() {
		sb.WriteByte('V')
	} else {
		writeDescriptor(o, &sb, ret, 0)
	}
	return sb.String()
}

// Signature renders the stable identity of m:
// ownerBinaryName#name(descriptor)ret, with constructors named <init>.
// For example "java.lang.Object#equals(Ljava/lang/Object;)Z".
func Signature(o Oracle, m MethodID) string {
	mi := o.Method(m)
	if mi == nil {
		return ""
	}
	owner := "?"
	if ti := o.Type(mi.Owner); ti != nil {
		owner = ti.BinaryName
	}
	name := mi.Name
	if mi.Constructor {
		name = "<init>"
	}
	return owner + "#" + name + MethodDescriptor(o, m)
}
