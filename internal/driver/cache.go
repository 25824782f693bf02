package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"jsema/internal/diag"
	"jsema/internal/project"
	"jsema/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты анализа по ключу запуска на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of one run over an unchanged set of
// files and configuration. Locations are stored by path, not FileID.
type DiskPayload struct {
	Schema      uint16
	Key         project.Digest
	Files       []string
	Diagnostics []cachedDiagnostic
	Created     int64 // unix seconds
	RunID       string
}

type cachedLoc struct {
	Path      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

type cachedNote struct {
	Loc cachedLoc
	Msg string
}

type cachedEdit struct {
	Loc     cachedLoc
	NewText string
	OldText string
}

type cachedFix struct {
	Title string
	Edits []cachedEdit
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  cachedLoc
	Notes    []cachedNote
	Fixes    []cachedFix
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as the cache root.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// подкаталог "runs" для удобства очистки
	return filepath.Join(c.dir, "runs", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. Entries with a
// different schema or key count as misses.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion || out.Key != key {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func toCachedLoc(fs *source.FileSet, loc source.Location) cachedLoc {
	out := cachedLoc{
		StartLine: loc.Span.StartLine,
		StartCol:  loc.Span.StartColumn,
		EndLine:   loc.Span.EndLine,
		EndCol:    loc.Span.EndColumn,
	}
	if f := fs.Get(loc.File); f != nil {
		out.Path = f.Path
	}
	return out
}

func fromCachedLoc(fs *source.FileSet, loc cachedLoc) (source.Location, bool) {
	id, ok := fs.GetLatest(loc.Path)
	if !ok {
		return source.Location{}, false
	}
	return source.Location{
		File: id,
		Span: source.NewTextSpan(loc.StartLine, loc.StartCol, loc.EndLine, loc.EndCol),
	}, true
}

// diagnosticsToPayload converts a finished bag into a cache entry.
func diagnosticsToPayload(key project.Digest, fs *source.FileSet, files []string, diags []diag.Diagnostic) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Key:         key,
		Files:       files,
		Diagnostics: make([]cachedDiagnostic, 0, len(diags)),
		Created:     time.Now().Unix(),
	}
	for _, d := range diags {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  toCachedLoc(fs, d.Primary),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Loc: toCachedLoc(fs, n.Loc), Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := cachedFix{Title: f.Title}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{Loc: toCachedLoc(fs, e.Loc), NewText: e.NewText, OldText: e.OldText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

// payloadToDiagnostics restores cached diagnostics against fs. Entries whose
// files are no longer loaded are dropped.
func payloadToDiagnostics(fs *source.FileSet, payload *DiskPayload) []diag.Diagnostic {
	if payload == nil || payload.Schema != diskCacheSchemaVersion {
		return nil
	}
	out := make([]diag.Diagnostic, 0, len(payload.Diagnostics))
	for _, cd := range payload.Diagnostics {
		primary, ok := fromCachedLoc(fs, cd.Primary)
		if !ok {
			continue
		}
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), primary, cd.Message)
		for _, n := range cd.Notes {
			if loc, ok := fromCachedLoc(fs, n.Loc); ok {
				d = d.WithNote(loc, n.Msg)
			}
		}
		for _, cf := range cd.Fixes {
			edits := make([]diag.FixEdit, 0, len(cf.Edits))
			for _, e := range cf.Edits {
				if loc, ok := fromCachedLoc(fs, e.Loc); ok {
					edits = append(edits, diag.FixEdit{Loc: loc, NewText: e.NewText, OldText: e.OldText})
				}
			}
			d = d.WithFix(cf.Title, edits...)
		}
		out = append(out, d)
	}
	return out
}
