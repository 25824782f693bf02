package driver

import (
	"fmt"
	"slices"
	"strings"

	"jsema/internal/project"
	"jsema/internal/source"
)

// engineSchema changes whenever rule behaviour changes in a way that makes
// older cached results wrong.
const engineSchema = "jsema-engine-1"

// configDigest covers every setting that changes which diagnostics a run
// produces. Include/exclude globs are covered by the file list.
func configDigest(opts Options) project.Digest {
	disabled := slices.Clone(opts.Config.Rules.Disabled)
	slices.Sort(disabled)
	return project.StringDigest(fmt.Sprintf("%s|disabled=%s|max_lines=%d|max=%d",
		engineSchema,
		strings.Join(disabled, ","),
		opts.Config.Rules.TextBlocks.MaxLines,
		opts.MaxDiagnostics,
	))
}

// runKey: H(config || H(path1) || hash1 || H(path2) || hash2 ...). files уже
// в детерминированном порядке.
func runKey(opts Options, files []*source.File) project.Digest {
	parts := make([]project.Digest, 0, 1+2*len(files))
	parts = append(parts, configDigest(opts))
	for _, f := range files {
		parts = append(parts, project.StringDigest(f.Path), project.Digest(f.Hash))
	}
	return project.Combine(parts...)
}
