// Package literal decodes Java string literals and text blocks.
//
// Decoding follows the language rules closely enough for diagnostics: escape
// sequences (including octal and unicode escapes) are interpreted, and text
// blocks have their incidental indentation and trailing spaces stripped
// before escapes are processed. Counts and widths are in runes.
package literal
