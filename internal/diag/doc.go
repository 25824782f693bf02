// Package diag defines the diagnostic model shared by the frontend, the rules
// and the driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see code.go) with a stable string form;
//     rule codes render as "S<number>".
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the source.Location pointing to the issue.
//   - Notes – secondary locations. Rules that report on text synthesized from
//     several literals put every extra source span here.
//   - Fixes – optional structured edits.
//
// # Emitting diagnostics
//
// Producers use a Reporter so emission is decoupled from storage, typically
// through ReportWarning(...).WithNote(...).Emit(). BagReporter collects into a
// Bag, which supports limits, sorting and deduplication.
//
// Package diag does not format anything; rendering lives in internal/diagfmt.
package diag
