package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// literalBodies are string literal and text block bodies without delimiters.
var literalBodies = []string{
	"",
	"abc",
	`a\tb`,
	`\u00e9t\u00e9`,
	`\\u0041`,
	`\0\12\377`,
	`say \"hi\"`,
	"héllo wörld",
	`a|b||c`,
	`\s\s`,
}

// textBlockBodies follow the opening delimiter's line break.
var textBlockBodies = []string{
	"",
	"    one\n    two\n",
	"  a|\n    |b\n  ",
	"\tx\n\ty\\\n\tz",
	"  keep \\s\n  trailing   \n  ",
	"  héllo\n\n  wörld",
}

var javaSeeds = []string{
	"class A {}\n",
	"package p;\n\npublic class A extends B implements Runnable {\n    public void run() {}\n}\n",
	"class A {\n    void f() {\n        String s = \"a\" + \"b\";\n        var t = \"\"\"\n            x\n            \"\"\";\n    }\n}\n",
	"import java.util.regex.Pattern;\nclass R {\n    Object p = Pattern.compile(\"a||b\");\n    boolean m(String s) { return s.matches(\"x|\" + \"|y\"); }\n}\n",
	"class L {\n    Runnable r = () -> {\n        String q = \"\"\"\n            1\n            2\n            3\n            4\n            5\n            6\n            \"\"\";\n    };\n}\n",
	"class I { boolean f(Object o) { return String.class.isInstance(o); } }\n",
	"interface Shape { double area(); }\nrecord Circle(double r) implements Shape { public double area() { return r * r; } }\n",
	"enum E { X { void f() {} }; void f() {} }\n",
	"class Broken { void f( { \"unterminated }\n",
}

func addLiteralSeeds(f *testing.F) {
	for _, s := range literalBodies {
		f.Add(s)
	}
}

func addTextBlockSeeds(f *testing.F) {
	for _, s := range textBlockBodies {
		f.Add(s)
	}
}

func addJavaSeeds(f *testing.F) {
	for _, s := range javaSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.java файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".java" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
