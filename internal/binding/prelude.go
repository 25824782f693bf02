package binding

import (
	"strings"

	"jsema/internal/ast"
)

const pub = ast.ModPublic

// preludeBuilder declares JDK types by name so that member signatures can be
// written as short strings ("java.lang.Object", "int", "T", "byte[]").
type preludeBuilder struct {
	t      *Table
	tvars  map[string]TypeID
	object TypeID
}

func seedPrelude(t *Table) {
	b := &preludeBuilder{t: t, tvars: map[string]TypeID{}}

	for _, p := range []string{"boolean", "byte", "char", "short", "int", "long", "float", "double"} {
		t.NewType(TypeInfo{Kind: TypePrimitive, QualifiedName: p, Mods: pub})
	}
	t.NewType(TypeInfo{Kind: TypeVoid, QualifiedName: "void", Mods: pub})

	b.object = b.class(ObjectName, "")
	b.iface("java.lang.CharSequence")
	b.iface("java.lang.Comparable")
	b.iface("java.lang.Iterable")
	b.iface("java.lang.Runnable")
	b.iface("java.lang.AutoCloseable")
	b.iface("java.lang.Cloneable")
	b.iface("java.io.Serializable")
	b.iface("java.lang.annotation.Annotation")
	b.iface("java.util.Collection", "java.lang.Iterable")
	b.iface("java.util.List", "java.util.Collection")
	b.iface("java.util.Map")
	b.class("java.lang.String", ObjectName, "java.io.Serializable", "java.lang.Comparable", "java.lang.CharSequence")
	b.class("java.lang.Class", ObjectName)
	b.class("java.lang.Number", ObjectName, "java.io.Serializable")
	for _, boxed := range []string{"Integer", "Long", "Short", "Byte", "Double", "Float"} {
		b.class("java.lang."+boxed, "java.lang.Number", "java.lang.Comparable")
	}
	b.class("java.lang.Boolean", ObjectName, "java.io.Serializable", "java.lang.Comparable")
	b.class("java.lang.Character", ObjectName, "java.io.Serializable", "java.lang.Comparable")
	b.class("java.lang.Enum", ObjectName, "java.lang.Comparable", "java.io.Serializable")
	b.class("java.lang.Record", ObjectName)
	b.class("java.lang.Throwable", ObjectName, "java.io.Serializable")
	b.class("java.lang.Exception", "java.lang.Throwable")
	b.class("java.lang.Error", "java.lang.Throwable")
	b.class("java.lang.RuntimeException", "java.lang.Exception")
	b.class("java.lang.IllegalArgumentException", "java.lang.RuntimeException")
	b.class("java.lang.IllegalStateException", "java.lang.RuntimeException")
	b.class("java.lang.CloneNotSupportedException", "java.lang.Exception")
	b.class("java.lang.InterruptedException", "java.lang.Exception")
	b.class("java.util.regex.Pattern", ObjectName, "java.io.Serializable")

	obj := ObjectName
	b.method(obj, pub, "equals", "boolean", nil, "java.lang.Object")
	b.method(obj, pub, "hashCode", "int", nil)
	b.method(obj, pub, "toString", "java.lang.String", nil)
	b.method(obj, ast.ModProtected, "clone", "java.lang.Object", []string{"java.lang.CloneNotSupportedException"})
	b.method(obj, ast.ModProtected, "finalize", "void", []string{"java.lang.Throwable"})
	b.method(obj, pub|ast.ModFinal, "getClass", "java.lang.Class", nil)
	b.method(obj, pub|ast.ModFinal, "notify", "void", nil)
	b.method(obj, pub|ast.ModFinal, "wait", "void", []string{"java.lang.InterruptedException"})

	b.method("java.lang.CharSequence", pub|ast.ModAbstract, "length", "int", nil)
	b.method("java.lang.CharSequence", pub|ast.ModAbstract, "charAt", "char", nil, "int")
	b.method("java.lang.CharSequence", pub|ast.ModAbstract, "toString", "java.lang.String", nil)

	b.withTypeVar("T", func() {
		b.method("java.lang.Comparable", pub|ast.ModAbstract, "compareTo", "int", nil, "T")
	})
	b.method("java.lang.Runnable", pub|ast.ModAbstract, "run", "void", nil)
	b.method("java.lang.AutoCloseable", pub|ast.ModAbstract, "close", "void", []string{"java.lang.Exception"})
	b.method("java.lang.Iterable", pub|ast.ModAbstract, "iterator", "java.lang.Object", nil)
	b.method("java.util.Collection", pub|ast.ModAbstract, "size", "int", nil)
	b.method("java.util.Collection", pub|ast.ModAbstract, "isEmpty", "boolean", nil)
	b.withTypeVar("E", func() {
		b.method("java.util.Collection", pub|ast.ModAbstract, "add", "boolean", nil, "E")
	})
	b.withTypeVar("E", func() {
		b.method("java.util.List", pub|ast.ModAbstract, "get", "E", nil, "int")
	})
	b.method("java.util.Map", pub|ast.ModAbstract, "size", "int", nil)
	b.method("java.util.Map", pub|ast.ModAbstract, "get", "java.lang.Object", nil, "java.lang.Object")

	str := "java.lang.String"
	b.method(str, pub, "length", "int", nil)
	b.method(str, pub, "charAt", "char", nil, "int")
	b.method(str, pub, "equals", "boolean", nil, "java.lang.Object")
	b.method(str, pub, "hashCode", "int", nil)
	b.method(str, pub, "toString", "java.lang.String", nil)
	b.method(str, pub, "compareTo", "int", nil, str)
	b.method(str, pub, "isEmpty", "boolean", nil)
	b.method(str, pub, "matches", "boolean", nil, str)
	b.method(str, pub, "replaceAll", str, nil, str, str)
	b.method(str, pub, "replaceFirst", str, nil, str, str)
	b.method(str, pub, "split", "java.lang.String[]", nil, str)
	b.method(str, pub, "split", "java.lang.String[]", nil, str, "int")

	b.method("java.lang.Class", pub|ast.ModNative, "isInstance", "boolean", nil, "java.lang.Object")
	b.method("java.lang.Class", pub, "getName", str, nil)
	b.method("java.lang.Throwable", pub, "getMessage", str, nil)
	b.method("java.lang.Enum", pub|ast.ModFinal, "name", str, nil)
	b.method("java.lang.Enum", pub|ast.ModFinal, "ordinal", "int", nil)

	pat := "java.util.regex.Pattern"
	b.method(pat, pub|ast.ModStatic, "compile", pat, nil, str)
	b.method(pat, pub|ast.ModStatic, "compile", pat, nil, str, "int")
	b.method(pat, pub|ast.ModStatic, "matches", "boolean", nil, str, "java.lang.CharSequence")
	b.method(pat, pub, "split", "java.lang.String[]", nil, "java.lang.CharSequence")
}

func packageOf(fqn string) string {
	if i := strings.LastIndexByte(fqn, '.'); i >= 0 {
		return fqn[:i]
	}
	return ""
}

func (b *preludeBuilder) class(name, super string, ifaces ...string) TypeID {
	id := b.t.NewType(TypeInfo{Kind: TypeClass, QualifiedName: name, Package: packageOf(name), Mods: pub})
	if super != "" {
		b.t.SetSuperclass(id, b.ref(super))
	}
	for _, i := range ifaces {
		b.t.AddInterface(id, b.ref(i))
	}
	return id
}

func (b *preludeBuilder) iface(name string, supers ...string) TypeID {
	id := b.t.NewType(TypeInfo{Kind: TypeInterface, QualifiedName: name, Package: packageOf(name), Mods: pub | ast.ModAbstract})
	for _, s := range supers {
		b.t.AddInterface(id, b.ref(s))
	}
	return id
}

func (b *preludeBuilder) withTypeVar(name string, fn func()) {
	b.tvars[name] = b.t.NewTypeVar(name, b.object)
	fn()
	delete(b.tvars, name)
}

// ref resolves a prelude type name, declaring unknown JDK classes on demand.
func (b *preludeBuilder) ref(name string) TypeID {
	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		return b.t.ArrayOf(b.ref(elem))
	}
	if id, ok := b.tvars[name]; ok {
		return id
	}
	if id := b.t.Lookup(name); id.IsValid() {
		return id
	}
	return b.class(name, ObjectName)
}

func (b *preludeBuilder) method(owner string, mods ast.Modifiers, name, ret string, thrown []string, params ...string) MethodID {
	info := MethodInfo{
		Name:   name,
		Owner:  b.ref(owner),
		Return: b.ref(ret),
		Mods:   mods,
	}
	for _, p := range params {
		info.Params = append(info.Params, b.ref(p))
	}
	for _, th := range thrown {
		info.Thrown = append(info.Thrown, b.ref(th))
	}
	return b.t.NewMethod(info)
}
