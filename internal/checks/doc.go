// Package checks holds the rules run over each compilation unit.
//
// A rule reads the unit's syntax tree and its symbols.Sema and reports
// through a diag.Reporter. Rules keep no state between units, so one
// Registry serves every worker.
package checks
