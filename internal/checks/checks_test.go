package checks

import (
	"strings"
	"testing"

	"jsema/internal/ast"
	"jsema/internal/binding"
	"jsema/internal/diag"
	"jsema/internal/source"
	"jsema/internal/symbols"
	"jsema/internal/testkit"
)

func newContext(tree *ast.Tree, src *source.File) (*Context, *diag.Bag) {
	tbl, b := binding.Bind([]*ast.Tree{tree})
	s := symbols.New(tbl, b, tree.File)
	bag := diag.NewBag(0)
	return NewContext(s, diag.BagReporter{Bag: bag}, src), bag
}

func check(t *testing.T, rule Rule, tree *ast.Tree) []diag.Diagnostic {
	t.Helper()
	ctx, bag := newContext(tree, nil)
	rule.Check(ctx)
	return bag.Items()
}

func TestMissingOverride(t *testing.T) {
	j := testkit.NewJava(0, "p/A.java")
	baseRun := j.Method(ast.ModPublic, "run", j.Ref("void"))
	baseName := j.Method(ast.ModPublic, "name", j.Ref("String"))
	base := j.Class("Base", ast.NoNodeID, nil, baseRun, baseName)

	run := j.Method(ast.ModPublic, "run", j.Ref("void"))
	name := j.Annotate(j.Method(ast.ModPublic, "name", j.Ref("String")), "Override")
	fresh := j.Method(ast.ModPublic, "fresh", j.Ref("void"))
	ctor := j.Ctor(ast.ModPublic, "A")
	a := j.Class("A", j.Ref("Base"), nil, run, name, fresh, ctor)

	task := j.Method(ast.ModPublic, "run", j.Ref("void"))
	hidden := j.Method(ast.ModPrivate, "toString", j.Ref("String"))
	r := j.Class("Task", ast.NoNodeID, []ast.NodeID{j.Ref("Runnable")}, task, hidden)
	tree := j.Unit("p", nil, base, a, r)

	got := check(t, MissingOverride{}, tree)
	if len(got) != 2 {
		t.Fatalf("want 2 diagnostics, got %d: %+v", len(got), got)
	}
	first := got[0]
	if first.Code != diag.MissingOverride || first.Severity != diag.SevWarning {
		t.Fatalf("unexpected diagnostic %+v", first)
	}
	if first.Primary.Span != tree.Get(run).Span {
		t.Fatalf("primary = %v, want the A.run declaration", first.Primary.Span)
	}
	if len(first.Notes) != 1 || first.Notes[0].Loc.Span != tree.Get(baseRun).Span {
		t.Fatalf("want a note at Base.run, got %+v", first.Notes)
	}
	if !strings.Contains(first.Notes[0].Msg, "run()") {
		t.Fatalf("note %q should name the overridden signature", first.Notes[0].Msg)
	}
	if len(first.Fixes) != 1 || first.Fixes[0].Edits[0].NewText != "@Override " {
		t.Fatalf("want an insert fix, got %+v", first.Fixes)
	}

	// Runnable.run lives in the prelude: no declaration to point at.
	if got[1].Primary.Span != tree.Get(task).Span || len(got[1].Notes) != 0 {
		t.Fatalf("unexpected second diagnostic %+v", got[1])
	}
}

func TestVarCanBeUsed(t *testing.T) {
	j := testkit.NewJava(0, "p/V.java")
	foo := j.Class("Foo", ast.NoNodeID, nil)
	bar := j.Class("Bar", j.Ref("Foo"), nil)
	getObject := j.Method(ast.ModPublic, "getObject", j.Ref("Object"))

	str := j.Local(j.Ref("String"), "s", j.Str(`"ABC"`, 40, 20))
	sameNew := j.Local(j.Ref("Foo"), "f", j.New(j.Ref("Foo")))
	subNew := j.Local(j.Ref("Foo"), "g", j.New(j.Ref("Bar")))
	already := j.Local(j.Ref("var"), "v", j.New(j.Ref("Foo")))
	intLit := j.Local(j.Ref("int"), "i", j.Lit(ast.KindNumberLiteral, "10"))
	widened := j.Local(j.Ref("long"), "l", j.Lit(ast.KindNumberLiteral, "10"))
	longLit := j.Local(j.Ref("long"), "m", j.Lit(ast.KindNumberLiteral, "10L"))
	call := j.Local(j.Ref("Object"), "o", j.Call(ast.NoNodeID, "getObject"))
	noInit := j.Local(j.Ref("String"), "n", ast.NoNodeID)
	concat := j.Local(j.Ref("String"), "c", j.Binary("+", j.Ident("s"), j.Lit(ast.KindNumberLiteral, "1")))
	copied := j.Local(j.Ref("Foo"), "h", j.Ident("f"))

	body := j.Block(str, sameNew, subNew, already, intLit, widened, longLit, call, noInit, concat, copied)
	user := j.Class("User", ast.NoNodeID, nil, getObject, j.MethodWithBody(ast.ModPublic, "f", j.Ref("void"), body))
	tree := j.Unit("p", nil, foo, bar, user)

	got := check(t, VarCanBeUsed{}, tree)
	want := []ast.NodeID{str, sameNew, intLit, longLit, call, concat, copied}
	if len(got) != len(want) {
		t.Fatalf("want %d diagnostics, got %d: %+v", len(want), len(got), got)
	}
	for i, id := range want {
		if got[i].Primary.Span != tree.Get(id).Span {
			t.Errorf("diagnostic %d at %v, want local %q", i, got[i].Primary.Span, tree.Get(id).Name)
		}
		if got[i].Message != `Declare this local variable with "var" instead.` {
			t.Errorf("message = %q", got[i].Message)
		}
	}
}

func TestIsInstanceMethod(t *testing.T) {
	content := "class A {\n  boolean f(Object o) { return String.class.isInstance(o); }\n}\n"
	fs := source.NewFileSet()
	fid := fs.AddVirtual("A.java", []byte(content))

	j := testkit.NewJava(fid, "A.java")
	arg := j.Ident("o")
	j.Node(arg).Span = source.LineSpan(2, 55, 56)
	call := j.Call(j.ClassLit(j.Ref("String")), "isInstance", arg)
	j.Node(call).Span = source.LineSpan(2, 31, 57)
	prim := j.Call(j.ClassLit(j.Ref("int")), "isInstance", j.Ident("o"))
	dynamic := j.Call(j.Ident("clazz"), "isInstance", j.Ident("o"))
	body := j.Block(call, prim, dynamic)
	m := j.MethodWithBody(0, "f", j.Ref("boolean"), body, j.Param("o", j.Ref("Object")), j.Param("clazz", j.Ref("Class")))
	tree := j.Unit("", nil, j.Class("A", ast.NoNodeID, nil, m))

	ctx, bag := newContext(tree, fs.Get(fid))
	IsInstanceMethod{}.Check(ctx)
	got := bag.Items()
	if len(got) != 1 {
		t.Fatalf("want 1 diagnostic, got %d: %+v", len(got), got)
	}
	d := got[0]
	if d.Message != `Replace this usage of "String.class.isInstance()" with "instanceof String".` {
		t.Fatalf("message = %q", d.Message)
	}
	if len(d.Fixes) != 1 {
		t.Fatalf("want a fix, got %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != "o instanceof String" || edit.OldText != "String.class.isInstance(o)" {
		t.Fatalf("unexpected edit %+v", edit)
	}
}

func textBlock(lines int) string {
	var sb strings.Builder
	sb.WriteString(`"""` + "\n")
	for i := 0; i < lines-2; i++ {
		sb.WriteString("  line\n")
	}
	sb.WriteString(`  """`)
	return sb.String()
}

func TestTextBlockInLambda(t *testing.T) {
	j := testkit.NewJava(0, "p/L.java")
	long := j.TextBlock(textBlock(7), 10, 8)
	short := j.TextBlock(textBlock(5), 20, 8)
	outside := j.TextBlock(textBlock(9), 30, 8)
	l1 := j.Lambda(j.Block(j.Local(j.Ref("String"), "a", long)))
	l2 := j.Lambda(j.Block(j.Local(j.Ref("String"), "b", short)))
	body := j.Block(
		j.Local(j.Ref("Runnable"), "r1", l1),
		j.Local(j.Ref("Runnable"), "r2", l2),
		j.Local(j.Ref("String"), "c", outside),
	)
	tree := j.Unit("p", nil, j.Class("L", ast.NoNodeID, nil, j.MethodWithBody(0, "f", j.Ref("void"), body)))

	got := check(t, TextBlockInLambda{}, tree)
	if len(got) != 1 || got[0].Primary.Span != tree.Get(long).Span {
		t.Fatalf("want one diagnostic on the 7-line block, got %+v", got)
	}

	ctx, bag := newContext(tree, nil)
	ctx.Options.TextBlockMaxLines = 10
	TextBlockInLambda{}.Check(ctx)
	if bag.Len() != 0 {
		t.Fatalf("limit 10 should accept every block, got %+v", bag.Items())
	}
}

func TestEmptyRegexAlternativeAcrossLiterals(t *testing.T) {
	j := testkit.NewJava(0, "p/R.java")
	left := j.Str(`"a|"`, 10, 20)
	right := j.Str(`"|b"`, 10, 27)
	compile := j.Call(j.Ident("Pattern"), "compile", j.Binary("+", left, right))
	body := j.Block(compile)
	m := j.MethodWithBody(0, "f", j.Ref("void"), body)
	tree := j.Unit("p", []string{"java.util.regex.Pattern"}, j.Class("R", ast.NoNodeID, nil, m))

	got := check(t, EmptyRegexAlternative{}, tree)
	if len(got) != 1 {
		t.Fatalf("want 1 diagnostic, got %d: %+v", len(got), got)
	}
	d := got[0]
	if d.Message != "Remove this empty alternative." {
		t.Fatalf("message = %q", d.Message)
	}
	if want := source.LineSpan(10, 22, 23); d.Primary.Span != want {
		t.Fatalf("primary = %v, want %v", d.Primary.Span, want)
	}
	if len(d.Notes) != 1 || d.Notes[0].Loc.Span != source.LineSpan(10, 28, 29) {
		t.Fatalf("want the continuation in the second literal, got %+v", d.Notes)
	}
}

func TestEmptyRegexAlternativeReceivers(t *testing.T) {
	j := testkit.NewJava(0, "p/S.java")
	onParam := j.Call(j.Ident("s"), "matches", j.Str(`"(|a)"`, 10, 20))
	onLiteral := j.Call(j.Str(`"text"`, 11, 4), "split", j.Str(`"x|"`, 11, 20))
	notRegex := j.Call(j.Ident("s"), "equals", j.Str(`"a||b"`, 12, 20))
	clean := j.Call(j.Ident("s"), "matches", j.Str(`"a|b"`, 13, 20))
	re := j.Local(j.Ref("String"), "re", j.Str(`"a||b"`, 14, 20))
	viaLocal := j.Call(j.Ident("Pattern"), "matches", j.Ident("re"), j.Ident("s"))
	body := j.Block(onParam, onLiteral, notRegex, clean, re, viaLocal)
	m := j.MethodWithBody(0, "f", j.Ref("void"), body, j.Param("s", j.Ref("String")))
	tree := j.Unit("p", []string{"java.util.regex.Pattern"}, j.Class("S", ast.NoNodeID, nil, m))

	got := check(t, EmptyRegexAlternative{}, tree)
	want := []source.TextSpan{
		source.LineSpan(10, 21, 23),
		source.LineSpan(11, 22, 23),
		source.LineSpan(14, 22, 24),
	}
	if len(got) != len(want) {
		t.Fatalf("want %d diagnostics, got %d: %+v", len(want), len(got), got)
	}
	for i, span := range want {
		if got[i].Primary.Span != span {
			t.Errorf("diagnostic %d at %v, want %v", i, got[i].Primary.Span, span)
		}
	}
}

func TestEmptyAlternatives(t *testing.T) {
	tests := []struct {
		re   string
		want []altRange
	}{
		{"a|b", nil},
		{"a||b", []altRange{{1, 3}}},
		{"|a", []altRange{{0, 1}}},
		{"a|", []altRange{{1, 2}}},
		{"|", []altRange{{0, 1}}},
		{"(|a)", []altRange{{0, 2}}},
		{"(a|)", []altRange{{2, 4}}},
		{"(?:a|)", []altRange{{4, 6}}},
		{"(?<name>|a)", []altRange{{7, 9}}},
		{"(?i)a|b", nil},
		{"[|]|a", nil},
		{`a\||b`, nil},
		{`\Q||\E`, nil},
		{"()", nil},
		{"(a|b)|(c||d)", []altRange{{8, 10}}},
	}
	for _, tt := range tests {
		got := emptyAlternatives([]rune(tt.re))
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.re, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: got %v, want %v", tt.re, got, tt.want)
				break
			}
		}
	}
}

func TestNumberType(t *testing.T) {
	tests := map[string]string{
		"10":    "int",
		"1_000": "int",
		"0x1F":  "int",
		"0b101": "int",
		"10L":   "long",
		"0xFFl": "long",
		"1.5":   "double",
		"1e3":   "double",
		"2d":    "double",
		"2.5f":  "float",
		"0x1p3": "double",
		"3F":    "float",
	}
	for text, want := range tests {
		if got := numberType(text); got != want {
			t.Errorf("numberType(%q) = %q, want %q", text, got, want)
		}
	}
}

type stubRule struct{ code diag.Code }

func (r stubRule) Code() diag.Code { return r.code }
func (stubRule) Check(*Context)    {}

func TestRegistry(t *testing.T) {
	reg := Default()
	rules := reg.Rules()
	if len(rules) != 5 {
		t.Fatalf("want 5 built-in rules, got %d", len(rules))
	}
	for i := 1; i < len(rules); i++ {
		if rules[i-1].Code() >= rules[i].Code() {
			t.Fatalf("rules not sorted: %v before %v", rules[i-1].Code(), rules[i].Code())
		}
	}

	reg.Register(stubRule{code: diag.MissingOverride})
	if r, ok := reg.Lookup(diag.MissingOverride); !ok || r != (stubRule{code: diag.MissingOverride}) {
		t.Fatalf("Register should replace the rule with the same code, got %T", r)
	}
	if len(reg.Rules()) != 5 {
		t.Fatalf("replacement must not grow the registry")
	}

	kept := reg.Filter(func(c diag.Code) bool { return c != diag.TextBlockInLambda })
	if len(kept) != 4 {
		t.Fatalf("want 4 rules after filtering, got %d", len(kept))
	}
	for _, r := range kept {
		if r.Code() == diag.TextBlockInLambda {
			t.Fatalf("filtered rule still present")
		}
	}
}
