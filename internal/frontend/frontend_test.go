//go:build cgo

package frontend

import (
	"context"
	"testing"

	"jsema/internal/ast"
	"jsema/internal/source"
)

const sample = `package demo;

import java.util.regex.Pattern;
import java.util.*;

public class Greeter extends Base implements Runnable {
    private static final String RE = "a|" + "|b";

    @Override
    public void run() {
        String s = "héllo", t = """
            block
            """;
        Runnable r = () -> System.out.println(s);
        boolean ok = String.class.isInstance(t);
    }

    static void sum(int... xs) {}
}
`

func parseSample(t *testing.T, src string) (*source.FileSet, *Result) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("Greeter.java", []byte(src))
	res, err := Parse(context.Background(), fs.Get(id))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return fs, res
}

func TestParseUnit(t *testing.T) {
	_, res := parseSample(t, sample)
	tree := res.Tree
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected syntax errors: %+v", res.Errors)
	}
	if tree.Package() != "demo" {
		t.Fatalf("package = %q", tree.Package())
	}
	var imports []string
	for _, id := range tree.Imports() {
		imports = append(imports, tree.Get(id).Name)
	}
	if len(imports) != 2 || imports[0] != "java.util.regex.Pattern" || imports[1] != "java.util.*" {
		t.Fatalf("imports = %v", imports)
	}

	decls := tree.TypeDecls()
	if len(decls) != 1 {
		t.Fatalf("want one type, got %d", len(decls))
	}
	cls := tree.Get(decls[0])
	if cls.Kind != ast.KindClass || cls.Name != "Greeter" || !cls.Mods.Has(ast.ModPublic) {
		t.Fatalf("unexpected class %+v", cls)
	}
	if sup := tree.Get(cls.Superclass); sup == nil || sup.Name != "Base" {
		t.Fatalf("superclass = %+v", sup)
	}
	if len(cls.Interfaces) != 1 || tree.Get(cls.Interfaces[0]).Name != "Runnable" {
		t.Fatalf("interfaces = %v", cls.Interfaces)
	}

	methods := tree.Collect(tree.Root, ast.KindMethod)
	if len(methods) != 2 {
		t.Fatalf("want 2 methods, got %d", len(methods))
	}
	if !tree.HasAnnotation(methods[0], "Override") {
		t.Fatalf("run() should carry @Override")
	}
	sum := tree.Get(methods[1])
	if !sum.Mods.Has(ast.ModStatic) || len(sum.Params) != 1 {
		t.Fatalf("unexpected sum %+v", sum)
	}
	xs := tree.Get(sum.Params[0])
	if ref := tree.Get(xs.Type); ref.Name != "int" || ref.Dims != 1 {
		t.Fatalf("varargs parameter type = %+v", ref)
	}
}

func TestParseLocalsAndLiterals(t *testing.T) {
	_, res := parseSample(t, sample)
	tree := res.Tree

	locals := tree.Collect(tree.Root, ast.KindLocalVariable)
	var names []string
	for _, id := range locals {
		names = append(names, tree.Get(id).Name)
	}
	if len(names) != 4 || names[0] != "s" || names[1] != "t" || names[2] != "r" || names[3] != "ok" {
		t.Fatalf("locals = %v", names)
	}

	// "héllo" starts after `String s = ` on line 11; columns count runes.
	s := tree.Get(tree.Get(locals[0]).Value)
	if s.Kind != ast.KindStringLiteral || s.Text != `"héllo"` {
		t.Fatalf("s = %+v", s)
	}
	if want := source.LineSpan(11, 19, 26); s.Span != want {
		t.Fatalf("span = %v, want %v", s.Span, want)
	}
	if tb := tree.Get(tree.Get(locals[1]).Value); tb.Kind != ast.KindTextBlock || tb.Span.StartLine != 11 || tb.Span.EndLine != 13 {
		t.Fatalf("text block = %+v", tb)
	}
	if l := tree.Get(tree.Get(locals[2]).Value); l.Kind != ast.KindLambda {
		t.Fatalf("want a lambda, got %v", l.Kind)
	}

	call := tree.Get(tree.Get(locals[3]).Value)
	if call.Kind != ast.KindMethodCall || call.Name != "isInstance" {
		t.Fatalf("call = %+v", call)
	}
	if lit := tree.Get(call.Object); lit.Kind != ast.KindClassLiteral || tree.Get(lit.Type).Name != "String" {
		t.Fatalf("receiver = %+v", lit)
	}

	fields := tree.Collect(tree.Root, ast.KindField)
	if len(fields) != 1 {
		t.Fatalf("want 1 field, got %d", len(fields))
	}
	re := tree.Get(fields[0])
	if !re.Mods.Has(ast.ModStatic|ast.ModFinal) || tree.Get(re.Value).Kind != ast.KindBinary {
		t.Fatalf("field = %+v", re)
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	_, res := parseSample(t, "class Broken { void f( { }\n")
	if res.Tree == nil || !res.Tree.Root.IsValid() {
		t.Fatalf("a tree must be produced for broken input")
	}
	if len(res.Errors) == 0 {
		t.Fatalf("want syntax errors")
	}
	for _, e := range res.Errors {
		if e.Message() == "" {
			t.Fatalf("empty message for %+v", e)
		}
	}
}

func TestStripTypeArgs(t *testing.T) {
	tests := map[string]string{
		"List":                  "List",
		"Outer<String>.Inner":   "Outer.Inner",
		"Map<K, List<V>>":       "Map",
		"java.util.Map . Entry": "java.util.Map.Entry",
		"@NonNull String":       "String",
	}
	for in, want := range tests {
		if got := stripTypeArgs(in); got != want {
			t.Errorf("stripTypeArgs(%q) = %q, want %q", in, got, want)
		}
	}
}
