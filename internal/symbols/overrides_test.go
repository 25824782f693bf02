package symbols

import (
	"reflect"
	"testing"

	"jsema/internal/ast"
	"jsema/internal/binding"
)

// countingOracle counts Overrides calls and can replace the predicate.
type countingOracle struct {
	*binding.Table
	calls     int
	predicate func(m, c binding.MethodID) bool
}

func (o *countingOracle) Overrides(m, c binding.MethodID) bool {
	o.calls++
	if o.predicate != nil {
		return o.predicate(m, c)
	}
	return o.Table.Overrides(m, c)
}

type hierarchy struct {
	t      *binding.Table
	object binding.TypeID
	void   binding.TypeID
}

func newHierarchy() *hierarchy {
	t := binding.NewTable()
	return &hierarchy{t: t, object: t.Lookup(binding.ObjectName), void: t.Lookup("void")}
}

func (h *hierarchy) class(name string, super binding.TypeID, ifaces ...binding.TypeID) binding.TypeID {
	id := h.t.NewType(binding.TypeInfo{Kind: binding.TypeClass, QualifiedName: "p." + name, Package: "p"})
	if !super.IsValid() {
		super = h.object
	}
	h.t.SetSuperclass(id, super)
	for _, i := range ifaces {
		h.t.AddInterface(id, i)
	}
	return id
}

func (h *hierarchy) iface(name string, supers ...binding.TypeID) binding.TypeID {
	id := h.t.NewType(binding.TypeInfo{Kind: binding.TypeInterface, QualifiedName: "p." + name, Package: "p"})
	for _, s := range supers {
		h.t.AddInterface(id, s)
	}
	return id
}

func (h *hierarchy) method(owner binding.TypeID, name string, params ...binding.TypeID) binding.MethodID {
	return h.t.NewMethod(binding.MethodInfo{Name: name, Owner: owner, Params: params, Return: h.void, Mods: ast.ModPublic})
}

func (h *hierarchy) sema() (*Sema, *countingOracle) {
	h.t.Freeze()
	o := &countingOracle{Table: h.t}
	return New(o, nil, 0), o
}

func ids(syms []*MethodSymbol) []binding.MethodID {
	out := make([]binding.MethodID, 0, len(syms))
	for _, s := range syms {
		out = append(out, s.ID())
	}
	return out
}

func TestOverridesIndirectAncestor(t *testing.T) {
	h := newHierarchy()
	a := h.class("A", 0)
	am := h.method(a, "m")
	b := h.class("B", a)
	c := h.class("C", b)
	cm := h.method(c, "m")
	s, _ := h.sema()

	got := ids(s.Method(cm).OverriddenSymbols())
	if !reflect.DeepEqual(got, []binding.MethodID{am}) {
		t.Fatalf("overridden = %v, want [%d]", got, am)
	}
}

func TestInterfaceMethodsSeeObject(t *testing.T) {
	h := newHierarchy()
	i := h.iface("I")
	eq := h.t.NewMethod(binding.MethodInfo{
		Name: "equals", Owner: i, Mods: ast.ModPublic | ast.ModAbstract,
		Params: []binding.TypeID{h.object}, Return: h.t.Lookup("boolean"),
	})
	s, _ := h.sema()

	over := s.Method(eq).OverriddenSymbol()
	if over == nil {
		t.Fatal("interface equals must override Object.equals")
	}
	if got := over.Signature(); got != "java.lang.Object#equals(Ljava/lang/Object;)Z" {
		t.Fatalf("overridden signature = %q", got)
	}
}

func TestFirstMatchPerTypeButWalkContinues(t *testing.T) {
	h := newHierarchy()
	a := h.class("A", 0)
	a1 := h.method(a, "x")
	h.method(a, "y")
	b := h.class("B", a)
	b1 := h.method(b, "x")
	b2 := h.method(b, "y")
	c := h.class("C", b)
	cm := h.method(c, "m")
	s, o := h.sema()
	// every candidate matches: one per visited type is taken
	o.predicate = func(m, cand binding.MethodID) bool { return cand != m }

	got := ids(s.Method(cm).OverriddenSymbols())
	want := []binding.MethodID{b1, a1}
	if len(got) < 2 || !reflect.DeepEqual(got[:2], want) {
		t.Fatalf("overridden = %v, want prefix %v", got, want)
	}
	for _, id := range got {
		if id == b2 {
			t.Fatal("only the first matching method per type may be taken")
		}
	}
}

func TestOrderAndDedup(t *testing.T) {
	h := newHierarchy()
	i := h.iface("I")
	im := h.method(i, "m")
	b := h.class("B", 0, i)
	bm := h.method(b, "m")
	c := h.class("C", b, i)
	cm := h.method(c, "m")
	s, _ := h.sema()

	got := ids(s.Method(cm).OverriddenSymbols())
	if want := []binding.MethodID{bm, im}; !reflect.DeepEqual(got, want) {
		t.Fatalf("overridden = %v, want %v", got, want)
	}
}

func TestDiamond(t *testing.T) {
	h := newHierarchy()
	l := h.iface("L")
	lm := h.method(l, "m")
	j := h.iface("J", l)
	jm := h.method(j, "m")
	k := h.iface("K", l)
	km := h.method(k, "m")
	d := h.class("D", 0, j, k)
	dm := h.method(d, "m")
	s, _ := h.sema()

	got := ids(s.Method(dm).OverriddenSymbols())
	if want := []binding.MethodID{jm, lm, km}; !reflect.DeepEqual(got, want) {
		t.Fatalf("overridden = %v, want %v", got, want)
	}
}

func TestCyclicHierarchyTerminates(t *testing.T) {
	h := newHierarchy()
	a := h.class("A", 0)
	am := h.method(a, "m")
	b := h.class("B", a)
	bm := h.method(b, "m")
	h.t.SetSuperclass(a, b)
	s, _ := h.sema()

	got := ids(s.Method(am).OverriddenSymbols())
	if want := []binding.MethodID{bm}; !reflect.DeepEqual(got, want) {
		t.Fatalf("overridden = %v, want %v", got, want)
	}
}

func TestUnresolvedAncestorContributesNothing(t *testing.T) {
	h := newHierarchy()
	missing := h.t.Recovered("q.Missing")
	i := h.iface("I")
	im := h.method(i, "m")
	c := h.class("C", missing, i)
	cm := h.method(c, "m")
	s, _ := h.sema()

	got := ids(s.Method(cm).OverriddenSymbols())
	if want := []binding.MethodID{im}; !reflect.DeepEqual(got, want) {
		t.Fatalf("overridden = %v, want %v", got, want)
	}
	if s.Method(cm).DeclaringType().SuperClass() != nil {
		t.Fatal("unresolved superclass must surface as nil")
	}
}

func TestUnknownMethodDegrades(t *testing.T) {
	h := newHierarchy()
	s, o := h.sema()
	m := s.Method(binding.NoMethodID)
	if !m.IsUnknown() || m.Kind() != SymbolUnknown {
		t.Fatal("absent binding must give the unknown symbol")
	}
	if m.ParameterTypes() != nil || m.ThrownTypes() != nil || m.OverriddenSymbols() != nil {
		t.Fatal("sequences must be empty")
	}
	if m.OverriddenSymbol() != nil || m.DeclaringType() != nil || m.Owner() != nil {
		t.Fatal("optionals must be absent")
	}
	if !m.ReturnType().IsUnknown() {
		t.Fatalf("return type = %v, want unknown", m.ReturnType())
	}
	if o.calls != 0 {
		t.Fatalf("unknown method must not walk, got %d predicate calls", o.calls)
	}
}

func TestOverrideResolutionIsMemoized(t *testing.T) {
	h := newHierarchy()
	a := h.class("A", 0)
	h.method(a, "toString")
	b := h.class("B", a)
	bm := h.t.NewMethod(binding.MethodInfo{Name: "toString", Owner: b, Mods: ast.ModPublic, Return: h.t.Lookup("java.lang.String")})
	s, o := h.sema()

	m := s.Method(bm)
	if m != s.Method(bm) {
		t.Fatal("one symbol per binding")
	}
	if m.Signature() != "p.B#toString()Ljava/lang/String;" {
		t.Fatalf("signature = %q", m.Signature())
	}
	if s.Stats().OverrideWalks != 0 || m.overridden.ready() {
		t.Fatal("Signature must not trigger override resolution")
	}

	first := m.OverriddenSymbol()
	calls := o.calls
	all := m.OverriddenSymbols()
	_ = m.OverriddenSymbol()
	if s.Stats().OverrideWalks != 1 || o.calls != calls {
		t.Fatalf("walks = %d, predicate calls %d -> %d", s.Stats().OverrideWalks, calls, o.calls)
	}
	if first != all[0] || len(all) != 2 {
		t.Fatalf("overridden = %v", ids(all))
	}
	if all[1].DeclaringType().Type().FullyQualifiedName() != binding.ObjectName {
		t.Fatalf("second override must be Object.toString, got %s", all[1].Signature())
	}
}

func TestConstructorReturnsVoid(t *testing.T) {
	h := newHierarchy()
	a := h.class("A", 0)
	ctor := h.t.NewMethod(binding.MethodInfo{Name: "A", Owner: a, Constructor: true, Params: []binding.TypeID{h.t.Lookup("int")}})
	s, _ := h.sema()

	m := s.Method(ctor)
	if !m.ReturnType().IsVoid() {
		t.Fatalf("constructor return = %v", m.ReturnType())
	}
	if m.Signature() != "p.A#<init>(I)V" {
		t.Fatalf("signature = %q", m.Signature())
	}
	if m.OverriddenSymbols() != nil {
		t.Fatal("constructors override nothing")
	}
	if got := m.ParameterTypes(); len(got) != 1 || !got[0].Is("int") {
		t.Fatalf("params = %v", got)
	}
}
