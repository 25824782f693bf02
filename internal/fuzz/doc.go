// Package fuzztests houses Go fuzz harnesses for the literal pipeline
// (raw literal -> decoded value -> span index) and, with cgo, for the whole
// per-file analysis (source -> tree-sitter -> binding -> rules). The goal is
// to catch panics and broken span index invariants on arbitrary input.
//
// Назначение: прогонять произвольные байты через декодер литералов,
// построение индекса спанов и правила.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
