package binding

import (
	"testing"

	"jsema/internal/ast"
	"jsema/internal/testkit"
)

func TestPreludeSignatures(t *testing.T) {
	tbl := NewTable()
	obj := tbl.Lookup(ObjectName)
	if !obj.IsValid() {
		t.Fatal("java.lang.Object missing from prelude")
	}
	want := map[string]string{
		"equals":   "java.lang.Object#equals(Ljava/lang/Object;)Z",
		"hashCode": "java.lang.Object#hashCode()I",
		"toString": "java.lang.Object#toString()Ljava/lang/String;",
		"finalize": "java.lang.Object#finalize()V",
	}
	for _, m := range tbl.DeclaredMethods(obj) {
		name := tbl.Method(m).Name
		if w, ok := want[name]; ok {
			if got := Signature(tbl, m); got != w {
				t.Errorf("Signature(%s) = %q, want %q", name, got, w)
			}
			delete(want, name)
		}
	}
	if len(want) != 0 {
		t.Errorf("missing Object methods: %v", want)
	}
	if tbl.Superclass(obj).IsValid() {
		t.Error("Object must not have a superclass")
	}
}

func TestSignatureErasesTypeVariables(t *testing.T) {
	tbl := NewTable()
	cmp := tbl.Lookup("java.lang.Comparable")
	var compareTo MethodID
	for _, m := range tbl.DeclaredMethods(cmp) {
		if tbl.Method(m).Name == "compareTo" {
			compareTo = m
		}
	}
	if got, want := Signature(tbl, compareTo), "java.lang.Comparable#compareTo(Ljava/lang/Object;)I"; got != want {
		t.Fatalf("Signature = %q, want %q", got, want)
	}
}

func TestDescriptorArrays(t *testing.T) {
	tbl := NewTable()
	str := tbl.Lookup("java.lang.String")
	arr := tbl.ArrayOf(tbl.ArrayOf(str))
	if got := Descriptor(tbl, arr); got != "[[Ljava/lang/String;" {
		t.Fatalf("Descriptor = %q", got)
	}
	if tbl.ArrayOf(str) != tbl.ArrayOf(str) {
		t.Fatal("array types must be memoized")
	}
	if got := ErasedName(tbl, arr); got != "java.lang.String[][]" {
		t.Fatalf("ErasedName = %q", got)
	}
}

func TestFrozenTablePanics(t *testing.T) {
	tbl := NewTable()
	tbl.Freeze()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on mutation of frozen table")
		}
	}()
	tbl.NewType(TypeInfo{Kind: TypeClass, QualifiedName: "p.X"})
}

func findMethod(t *testing.T, tbl *Table, owner TypeID, name string) MethodID {
	t.Helper()
	for _, m := range tbl.DeclaredMethods(owner) {
		if tbl.Method(m).Name == name {
			return m
		}
	}
	t.Fatalf("method %s not found", name)
	return NoMethodID
}

func TestBindHierarchyAndMembers(t *testing.T) {
	j := testkit.NewJava(1, "p/A.java")
	run := j.Method(ast.ModPublic, "run", j.Ref("void"))
	eq := j.Method(ast.ModPublic, "equals", j.Ref("boolean"), j.Param("o", j.Ref("Object")))
	inner := j.Class("Inner", ast.NoNodeID, nil)
	a := j.Class("A", j.Ref("Base"), []ast.NodeID{j.Ref("Runnable")}, run, eq, inner)
	ctor := j.Ctor(ast.ModPublic, "Base")
	base := j.Type(ast.KindClass, ast.ModAbstract, "Base", ast.NoNodeID, nil, ctor)
	tree := j.Unit("p", nil, a, base)

	tbl, b := Bind([]*ast.Tree{tree})
	if !tbl.Frozen() {
		t.Fatal("Bind must freeze the table")
	}
	aID := b.TypeOf(tree.File, a)
	if got := tbl.Type(aID).QualifiedName; got != "p.A" {
		t.Fatalf("qualified name = %q", got)
	}
	if got := tbl.Type(b.TypeOf(tree.File, inner)).BinaryName; got != "p.A$Inner" {
		t.Fatalf("binary name = %q", got)
	}
	if got := tbl.Superclass(aID); got != b.TypeOf(tree.File, base) {
		t.Fatalf("superclass = %d", got)
	}
	if got := tbl.Superclass(b.TypeOf(tree.File, base)); got != tbl.Lookup(ObjectName) {
		t.Fatalf("implicit superclass = %d, want Object", got)
	}
	ifaces := tbl.Interfaces(aID)
	if len(ifaces) != 1 || ifaces[0] != tbl.Lookup("java.lang.Runnable") {
		t.Fatalf("interfaces = %v", ifaces)
	}
	eqID := b.MethodOf(tree.File, eq)
	if got := Signature(tbl, eqID); got != "p.A#equals(Ljava/lang/Object;)Z" {
		t.Fatalf("Signature = %q", got)
	}
	if got := Signature(tbl, b.MethodOf(tree.File, ctor)); got != "p.Base#<init>()V" {
		t.Fatalf("constructor Signature = %q", got)
	}
	objEq := findMethod(t, tbl, tbl.Lookup(ObjectName), "equals")
	if !tbl.Overrides(eqID, objEq) {
		t.Fatal("A.equals(Object) must override Object.equals")
	}
	runnableRun := findMethod(t, tbl, tbl.Lookup("java.lang.Runnable"), "run")
	if !tbl.Overrides(b.MethodOf(tree.File, run), runnableRun) {
		t.Fatal("A.run() must override Runnable.run")
	}
}

func TestBindResolution(t *testing.T) {
	j := testkit.NewJava(1, "q/B.java")
	refs := map[string]ast.NodeID{
		"int":           j.Ref("int"),
		"String":        j.Ref("String"),
		"List":          j.Ref("List"),
		"Pattern":       j.Ref("Pattern"),
		"Missing":       j.Ref("Missing"),
		"org.junit.Foo": j.Ref("Foo"),
		"String[]":      j.ArrayRef("String", 1),
		"var":           j.Ref("var"),
		"T":             j.Ref("T"),
	}
	params := []ast.NodeID{}
	for name, r := range refs {
		params = append(params, j.Param("p_"+name, r))
	}
	m := j.Generic(j.Method(ast.ModPublic, "m", j.Ref("void"), params...), j.TypeParam("T", j.Ref("CharSequence")))
	bcls := j.Class("B", ast.NoNodeID, nil, m)
	tree := j.Unit("q", []string{"java.util.List", "java.util.regex.*", "org.junit.Foo"}, bcls)

	tbl, b := Bind([]*ast.Tree{tree})
	check := func(key, want string) {
		t.Helper()
		got := ErasedName(tbl, b.ResolveTypeRef(tree.File, refs[key]))
		if got != want {
			t.Errorf("%s resolved to %q, want %q", key, got, want)
		}
	}
	check("int", "int")
	check("String", "java.lang.String")
	check("List", "java.util.List")
	check("Pattern", "java.util.regex.Pattern")
	check("String[]", "java.lang.String[]")
	check("T", "java.lang.CharSequence")
	check("org.junit.Foo", "org.junit.Foo")
	check("var", "")

	missing := b.ResolveTypeRef(tree.File, refs["Missing"])
	if tbl.IsResolved(missing) {
		t.Error("unknown name must bind to a recovered type")
	}
	if tbl.Type(missing).QualifiedName != "Missing" {
		t.Errorf("recovered name = %q", tbl.Type(missing).QualifiedName)
	}
}

func TestBindCrossUnitAndAnonymous(t *testing.T) {
	j1 := testkit.NewJava(1, "a/I.java")
	iface := j1.Interface("I", nil, j1.Abstract(0, "go", j1.Ref("void")))
	t1 := j1.Unit("a", nil, iface)

	j2 := testkit.NewJava(2, "b/C.java")
	anonGo := j2.Method(ast.ModPublic, "go", j2.Ref("void"))
	anon := j2.Anonymous(j2.Ref("I"), anonGo)
	body := j2.Block(j2.Local(j2.Ref("I"), "x", anon))
	user := j2.MethodWithBody(0, "use", j2.Ref("void"), body)
	c := j2.Class("C", ast.NoNodeID, nil, user)
	t2 := j2.Unit("b", []string{"a.I"}, c)

	tbl, b := Bind([]*ast.Tree{t1, t2})
	iID := b.TypeOf(t1.File, iface)
	if !tbl.IsInterface(iID) {
		t.Fatal("I must be an interface")
	}
	ifaceGo := tbl.DeclaredMethods(iID)[0]
	if !tbl.Method(ifaceGo).Mods.Has(ast.ModPublic | ast.ModAbstract) {
		t.Fatalf("interface method mods = %b", tbl.Method(ifaceGo).Mods)
	}
	anonID := b.TypeOf(t2.File, anon)
	if got := tbl.Type(anonID).BinaryName; got != "b.C$1" {
		t.Fatalf("anonymous binary name = %q", got)
	}
	if got := tbl.Interfaces(anonID); len(got) != 1 || got[0] != iID {
		t.Fatalf("anonymous interfaces = %v", got)
	}
	if !tbl.Overrides(b.MethodOf(t2.File, anonGo), ifaceGo) {
		t.Fatal("anonymous go() must override I.go()")
	}
}

func TestOverridesRules(t *testing.T) {
	j := testkit.NewJava(1, "p/X.java")
	superM := j.Method(0, "pkg", j.Ref("void"))
	superPriv := j.Method(ast.ModPrivate, "priv", j.Ref("void"))
	superStatic := j.Method(ast.ModStatic|ast.ModPublic, "st", j.Ref("void"))
	superArity := j.Method(ast.ModPublic, "ar", j.Ref("void"), j.Param("i", j.Ref("int")))
	sup := j.Class("Sup", ast.NoNodeID, nil, superM, superPriv, superStatic, superArity)
	subM := j.Method(0, "pkg", j.Ref("void"))
	subPriv := j.Method(0, "priv", j.Ref("void"))
	subStatic := j.Method(ast.ModStatic|ast.ModPublic, "st", j.Ref("void"))
	subArity := j.Method(ast.ModPublic, "ar", j.Ref("void"), j.Param("i", j.Ref("long")))
	sub := j.Class("Sub", j.Ref("Sup"), nil, subM, subPriv, subStatic, subArity)
	tree := j.Unit("p", nil, sup, sub)

	tbl, b := Bind([]*ast.Tree{tree})
	m := func(id ast.NodeID) MethodID { return b.MethodOf(tree.File, id) }
	cases := []struct {
		name      string
		m, c      ast.NodeID
		overrides bool
	}{
		{"package-private same package", subM, superM, true},
		{"private candidate", subPriv, superPriv, false},
		{"static", subStatic, superStatic, false},
		{"different erased parameters", subArity, superArity, false},
		{"self", superM, superM, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tbl.Overrides(m(tc.m), m(tc.c)); got != tc.overrides {
				t.Fatalf("Overrides = %v, want %v", got, tc.overrides)
			}
		})
	}
}

func TestReceiverTypeNames(t *testing.T) {
	j := testkit.NewJava(1, "p/R.java")
	recv := j.Ident("Pattern")
	call := j.Call(recv, "compile", j.Str(`"a|"`, 3, 10))
	shadow := j.Ident("String")
	call2 := j.Call(shadow, "length")
	body := j.Block(j.Local(j.Ref("String"), "String", ast.NoNodeID), call2, call)
	m := j.MethodWithBody(0, "m", j.Ref("void"), body)
	tree := j.Unit("p", []string{"java.util.regex.Pattern"}, j.Class("R", ast.NoNodeID, nil, m))

	tbl, b := Bind([]*ast.Tree{tree})
	if got := b.TypeName(tree.File, recv); got != tbl.Lookup("java.util.regex.Pattern") {
		t.Fatalf("receiver type = %d", got)
	}
	if got := b.TypeName(tree.File, shadow); got.IsValid() {
		t.Fatalf("shadowed receiver must not bind to a type, got %d", got)
	}
	_ = call
}
