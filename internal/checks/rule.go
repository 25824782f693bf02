package checks

import (
	"slices"

	"jsema/internal/diag"
)

// Rule is one check. Check must only report, never mutate the context.
type Rule interface {
	Code() diag.Code
	Check(ctx *Context)
}

// Registry is an ordered set of rules keyed by code.
type Registry struct {
	rules []Rule
}

func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{}
	for _, rule := range rules {
		r.Register(rule)
	}
	return r
}

// Default returns a registry with every built-in rule.
func Default() *Registry {
	return NewRegistry(
		MissingOverride{},
		VarCanBeUsed{},
		IsInstanceMethod{},
		TextBlockInLambda{},
		EmptyRegexAlternative{},
	)
}

// Register adds rule, replacing a rule with the same code.
func (r *Registry) Register(rule Rule) {
	if i := slices.IndexFunc(r.rules, func(x Rule) bool { return x.Code() == rule.Code() }); i >= 0 {
		r.rules[i] = rule
		return
	}
	r.rules = append(r.rules, rule)
}

// Rules returns the rules sorted by code.
func (r *Registry) Rules() []Rule {
	out := slices.Clone(r.rules)
	slices.SortFunc(out, func(a, b Rule) int { return int(a.Code()) - int(b.Code()) })
	return out
}

// Lookup finds a rule by code.
func (r *Registry) Lookup(code diag.Code) (Rule, bool) {
	for _, rule := range r.rules {
		if rule.Code() == code {
			return rule, true
		}
	}
	return nil, false
}

// Filter returns the rules keep accepts, sorted by code.
func (r *Registry) Filter(keep func(diag.Code) bool) []Rule {
	var out []Rule
	for _, rule := range r.Rules() {
		if keep == nil || keep(rule.Code()) {
			out = append(out, rule)
		}
	}
	return out
}

// Run applies rules to ctx in order.
func Run(ctx *Context, rules []Rule) {
	for _, rule := range rules {
		rule.Check(ctx)
	}
}
