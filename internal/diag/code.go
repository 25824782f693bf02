package diag

import (
	"fmt"
	"strconv"
	"strings"
)

// Code identifies a diagnostic kind. Values from 1000 up are rule numbers and
// render as "S<number>"; lower values are engine codes rendered as "JS<number>".
type Code uint16

const (
	UnknownCode Code = 0
	// SyntaxError marks source the parser had to recover from.
	SyntaxError Code = 1
	// ReadError marks a file that could not be loaded.
	ReadError Code = 2
	// LiteralError marks a string literal the engine could not decode.
	LiteralError Code = 3
	// CyclicInheritance marks a type that is its own ancestor.
	CyclicInheritance Code = 4

	MissingOverride       Code = 1161
	IsInstanceMethod      Code = 6202
	UseVarForLocal        Code = 6212
	TextBlockInLambda     Code = 6126
	EmptyRegexAlternative Code = 6323
)

const ruleCodeBase = 1000

var codeTitles = map[Code]string{
	UnknownCode:           "unknown",
	SyntaxError:           "syntax error",
	ReadError:             "cannot read file",
	LiteralError:          "malformed literal",
	CyclicInheritance:     "cyclic inheritance",
	MissingOverride:       "\"@Override\" should be used on overriding and implementing methods",
	IsInstanceMethod:      "\"instanceof\" should be used instead of \"Class.isInstance\"",
	UseVarForLocal:        "Redundant local variable type should be replaced with \"var\"",
	TextBlockInLambda:     "Long text blocks should not be used in lambdas",
	EmptyRegexAlternative: "Alternatives in regular expressions should not be empty",
}

// IsRule reports whether c is a rule code.
func (c Code) IsRule() bool { return c >= ruleCodeBase }

// ID returns the stable textual identifier ("S1161", "JS0001").
func (c Code) ID() string {
	if c.IsRule() {
		return "S" + strconv.Itoa(int(c))
	}
	return fmt.Sprintf("JS%04d", uint16(c))
}

// Title returns a short human description.
func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return c.ID()
}

func (c Code) String() string { return c.ID() }

// ParseCode converts an identifier produced by ID back into a Code.
func ParseCode(id string) (Code, bool) {
	var digits string
	switch {
	case strings.HasPrefix(id, "JS"):
		digits = id[2:]
	case strings.HasPrefix(id, "S"):
		digits = id[1:]
	default:
		return UnknownCode, false
	}
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return UnknownCode, false
	}
	c := Code(n)
	if _, ok := codeTitles[c]; !ok {
		return UnknownCode, false
	}
	if c.IsRule() != strings.HasPrefix(id, "S") {
		return UnknownCode, false
	}
	return c, true
}
