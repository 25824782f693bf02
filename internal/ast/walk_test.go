package ast

import (
	"reflect"
	"testing"

	"jsema/internal/source"
)

// buildSample builds:
//
//	package p;
//	class A { @Override void m() { call(() -> "x"); } }
func buildSample(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()
	tr := NewTree(0, "A.java", 0)
	ids := map[string]NodeID{}

	root := tr.New(KindCompilationUnit, source.NewTextSpan(1, 0, 3, 0))
	tr.Root = root
	tr.Get(root).Name = "p"

	class := tr.New(KindClass, source.NewTextSpan(2, 0, 2, 60))
	tr.Get(class).Name = "A"
	method := tr.New(KindMethod, source.LineSpan(2, 10, 58))
	tr.Get(method).Name = "m"
	ann := tr.New(KindAnnotation, source.LineSpan(2, 10, 19))
	tr.Get(ann).Name = "Override"
	ret := tr.New(KindTypeRef, source.LineSpan(2, 20, 24))
	tr.Get(ret).Name = "void"
	body := tr.New(KindBlock, source.LineSpan(2, 29, 58))
	call := tr.New(KindMethodCall, source.LineSpan(2, 31, 55))
	tr.Get(call).Name = "call"
	lambda := tr.New(KindLambda, source.LineSpan(2, 36, 45))
	lit := tr.New(KindStringLiteral, source.LineSpan(2, 42, 45))
	tr.Get(lit).Text = `"x"`

	tr.Get(root).Members = []NodeID{class}
	tr.Adopt(root, class)
	tr.Get(class).Members = []NodeID{method}
	tr.Adopt(class, method)
	mn := tr.Get(method)
	mn.Annotations = []NodeID{ann}
	mn.Type = ret
	mn.Body = body
	tr.Adopt(method, ann, ret, body)
	tr.Get(body).Children = []NodeID{call}
	tr.Adopt(body, call)
	tr.Get(call).Args = []NodeID{lambda}
	tr.Adopt(call, lambda)
	tr.Get(lambda).Body = lit
	tr.Adopt(lambda, lit)

	ids["class"], ids["method"], ids["lambda"], ids["lit"], ids["call"] = class, method, lambda, lit, call
	return tr, ids
}

func TestWalkPreOrder(t *testing.T) {
	tr, _ := buildSample(t)
	var kinds []Kind
	tr.Walk(tr.Root, func(_ NodeID, n *Node) bool {
		kinds = append(kinds, n.Kind)
		return true
	})
	want := []Kind{
		KindCompilationUnit, KindClass, KindMethod, KindAnnotation, KindTypeRef,
		KindBlock, KindMethodCall, KindLambda, KindStringLiteral,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("walk order = %v, want %v", kinds, want)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	tr, _ := buildSample(t)
	count := 0
	tr.Walk(tr.Root, func(_ NodeID, n *Node) bool {
		count++
		return n.Kind != KindMethod
	})
	if count != 3 {
		t.Fatalf("visited %d nodes, want 3", count)
	}
}

func TestAncestorAndCollect(t *testing.T) {
	tr, ids := buildSample(t)

	if got := tr.Ancestor(ids["lit"], KindLambda); got != ids["lambda"] {
		t.Errorf("Ancestor(lit, lambda) = %d, want %d", got, ids["lambda"])
	}
	if got := tr.Ancestor(ids["lit"], KindMethod, KindConstructor); got != ids["method"] {
		t.Errorf("Ancestor(lit, method) = %d, want %d", got, ids["method"])
	}
	if got := tr.EnclosingType(ids["call"]); got != ids["class"] {
		t.Errorf("EnclosingType = %d, want %d", got, ids["class"])
	}
	if got := tr.Ancestor(ids["class"], KindLambda); got.IsValid() {
		t.Errorf("unexpected lambda ancestor %d", got)
	}

	lits := tr.Collect(tr.Root, KindStringLiteral, KindTextBlock)
	if len(lits) != 1 || lits[0] != ids["lit"] {
		t.Errorf("Collect literals = %v", lits)
	}
}

func TestHasAnnotation(t *testing.T) {
	tr, ids := buildSample(t)
	if !tr.HasAnnotation(ids["method"], "Override") {
		t.Error("expected @Override")
	}
	tr.Get(tr.Get(ids["method"]).Annotations[0]).Name = "java.lang.Override"
	if !tr.HasAnnotation(ids["method"], "Override") {
		t.Error("qualified annotation name must match by simple name")
	}
	if tr.HasAnnotation(ids["class"], "Override") {
		t.Error("class has no annotations")
	}
}

func TestModifiers(t *testing.T) {
	m := ParseModifier("public") | ParseModifier("static")
	if !m.Has(ModPublic) || !m.Has(ModStatic) || m.Has(ModPrivate) {
		t.Fatalf("unexpected modifiers %b", m)
	}
	if ParseModifier("transient") != 0 {
		t.Error("unknown modifier must map to 0")
	}
	if KindTextBlock.String() != "text_block" || !KindTextBlock.IsLiteral() {
		t.Error("text block kind metadata")
	}
}

func TestAddAdoptsChildren(t *testing.T) {
	tr := NewTree(0, "B.java", 0)
	ret := tr.Add(Node{Kind: KindTypeRef, Name: "int"})
	p := tr.Add(Node{Kind: KindParameter, Name: "x"})
	m := tr.Add(Node{Kind: KindMethod, Name: "m", Type: ret, Params: []NodeID{p}})
	if tr.Get(ret).Parent != m || tr.Get(p).Parent != m {
		t.Fatalf("children not adopted: ret.Parent=%d p.Parent=%d want %d", tr.Get(ret).Parent, tr.Get(p).Parent, m)
	}
}
