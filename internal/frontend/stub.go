//go:build !cgo

package frontend

import (
	"context"

	"jsema/internal/source"
)

// Available reports whether Parse can work in this build.
func Available() bool { return false }

// Parse always fails without cgo.
func Parse(ctx context.Context, file *source.File) (*Result, error) {
	return nil, ErrNoCGO
}
