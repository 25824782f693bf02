// Package driver runs the analysis pipeline over a set of Java files:
// discover, load, parse, bind, analyze. Every unit is analysed with its own
// symbols.Sema over one shared, frozen binding table.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jsema/internal/ast"
	"jsema/internal/binding"
	"jsema/internal/checks"
	"jsema/internal/diag"
	"jsema/internal/frontend"
	"jsema/internal/hierarchy"
	"jsema/internal/observ"
	"jsema/internal/project"
	"jsema/internal/source"
	"jsema/internal/symbols"
	"jsema/internal/trace"
)

// Options configure one run.
type Options struct {
	Config project.Config
	// Paths are files or directories to analyse; empty means Config.Root.
	Paths []string
	// Jobs bounds parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics truncates the sorted result; <= 0 means unlimited.
	MaxDiagnostics int
	// Cache is consulted and filled by Check; nil disables caching.
	Cache    *DiskCache
	Rules    *checks.Registry
	Progress ProgressSink
	Timer    *observ.Timer
}

// Unit is one analysed compilation unit.
type Unit struct {
	File *source.File
	Tree *ast.Tree
	Sema *symbols.Sema
	Bag  *diag.Bag
}

// Result is the outcome of Load or Check. On a cache hit only FileSet,
// Files, Key and Bag are set.
type Result struct {
	FileSet   *source.FileSet
	Files     []string
	Units     []*Unit
	Table     *binding.Table
	Bindings  *binding.Bindings
	Hierarchy *hierarchy.Topo
	Bag       *diag.Bag
	Key       project.Digest
	CacheHit  bool
	// RunID is a fresh UUID per Check or Load. CachedFrom is the RunID of
	// the run that filled the cache entry on a hit.
	RunID      string
	CachedFrom string
}

// Diagnostics returns the merged, sorted diagnostics.
func (r *Result) Diagnostics() []diag.Diagnostic {
	if r == nil || r.Bag == nil {
		return nil
	}
	return r.Bag.Items()
}

// Unit returns the unit for a loaded path.
func (r *Result) Unit(path string) (*Unit, bool) {
	if r == nil || r.FileSet == nil {
		return nil, false
	}
	id, ok := r.FileSet.GetLatest(path)
	if !ok {
		return nil, false
	}
	for _, u := range r.Units {
		if u.File.ID == id {
			return u, true
		}
	}
	return nil, false
}

type run struct {
	opts   Options
	tracer trace.Tracer
	span   *trace.Span
	res    *Result
	files  []*source.File
}

func (r *run) phase(name string) func(note string) {
	sp := trace.Begin(r.tracer, trace.ScopePass, name, r.span.ID())
	var done func(string)
	if r.opts.Timer != nil {
		done = r.opts.Timer.Track(name)
	}
	return func(note string) {
		sp.End(note)
		if done != nil {
			done(note)
		}
	}
}

func (r *run) jobs() int {
	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, len(r.files)))
}

// Check runs the full pipeline and the configured rules.
func Check(ctx context.Context, opts Options) (*Result, error) {
	r := newRun(ctx, opts, "check")
	defer r.span.End("")

	if err := r.load(); err != nil {
		return nil, err
	}
	r.res.Key = runKey(opts, r.files)
	if r.fromCache() {
		return r.res, nil
	}
	if err := r.analyzeAll(ctx, true); err != nil {
		return nil, err
	}
	r.merge()
	r.store()
	return r.res, nil
}

// Load parses and binds without running rules. Units carry a Sema and an
// empty-of-rules bag holding only engine diagnostics.
func Load(ctx context.Context, opts Options) (*Result, error) {
	r := newRun(ctx, opts, "load")
	defer r.span.End("")

	if err := r.load(); err != nil {
		return nil, err
	}
	if err := r.analyzeAll(ctx, false); err != nil {
		return nil, err
	}
	r.merge()
	return r.res, nil
}

func newRun(ctx context.Context, opts Options, name string) *run {
	if opts.Rules == nil {
		opts.Rules = checks.Default()
	}
	tr := trace.FromContext(ctx)
	id := uuid.NewString()
	return &run{
		opts:   opts,
		tracer: tr,
		span:   trace.Begin(tr, trace.ScopeDriver, name, trace.ParentSpan(ctx)).WithExtra("run", id),
		res:    &Result{RunID: id},
	}
}

func (r *run) analyzeAll(ctx context.Context, withRules bool) error {
	if err := r.parse(ctx); err != nil {
		return err
	}
	r.bind()
	if !withRules {
		r.attachSema()
		return nil
	}
	return r.analyze(ctx)
}

// load discovers and reads files. Unreadable files become ReadError
// diagnostics on an empty placeholder file.
func (r *run) load() error {
	done := r.phase("load")
	cfg := r.opts.Config
	walker, err := project.NewWalker(cfg.Analysis.Include, cfg.Analysis.Exclude)
	if err != nil {
		done("error")
		return err
	}
	roots := r.opts.Paths
	if len(roots) == 0 {
		roots = []string{cfg.Root}
	}
	var paths []string
	seen := make(map[string]bool)
	for _, root := range roots {
		found, err := walker.Walk(root)
		if err != nil {
			done("error")
			return fmt.Errorf("discover %s: %w", root, err)
		}
		for _, p := range found {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}

	fs := source.NewFileSetWithBase(cfg.Root)
	r.res.FileSet = fs
	r.res.Bag = diag.NewBag(0)
	emitQueued(r.opts.Progress, paths)

	var readErrs []diag.Diagnostic
	for _, p := range paths {
		id, err := fs.Load(p)
		if err != nil {
			id = fs.Add(p, nil, 0)
			loc := source.Location{File: id, Span: source.LineSpan(1, 0, 0)}
			readErrs = append(readErrs, diag.NewError(diag.ReadError, loc, "failed to load file: "+err.Error()))
			emit(r.opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		r.files = append(r.files, fs.Get(id))
	}
	// fs.Get pointers are only stable once loading is over
	for i, f := range r.files {
		r.files[i] = fs.Get(f.ID)
		r.res.Files = append(r.res.Files, r.files[i].Path)
	}
	for _, d := range readErrs {
		r.res.Bag.Add(d)
	}
	done(fmt.Sprintf("files=%d", len(r.files)))
	return nil
}

func (r *run) fromCache() bool {
	if r.opts.Cache == nil {
		return false
	}
	var payload DiskPayload
	ok, err := r.opts.Cache.Get(r.res.Key, &payload)
	if err != nil || !ok {
		trace.Point(r.tracer, trace.ScopePass, "cache", "miss", r.span.ID())
		return false
	}
	trace.Point(r.tracer, trace.ScopePass, "cache", "hit", r.span.ID())
	for _, d := range payloadToDiagnostics(r.res.FileSet, &payload) {
		r.res.Bag.Add(d)
	}
	r.res.CacheHit = true
	r.res.CachedFrom = payload.RunID
	for _, f := range r.files {
		emit(r.opts.Progress, Event{File: f.Path, Stage: StageAnalyze, Status: StatusCached})
	}
	r.finish()
	return true
}

func (r *run) store() {
	if r.opts.Cache == nil {
		return
	}
	payload := diagnosticsToPayload(r.res.Key, r.res.FileSet, r.res.Files, r.res.Bag.Items())
	payload.RunID = r.res.RunID
	if err := r.opts.Cache.Put(r.res.Key, payload); err != nil {
		trace.Point(r.tracer, trace.ScopePass, "cache", "store failed: "+err.Error(), r.span.ID())
	}
}

func (r *run) parse(ctx context.Context) error {
	done := r.phase("parse")
	start := time.Now()
	units := make([]*Unit, len(r.files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs())
	for i, f := range r.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(r.opts.Progress, Event{File: f.Path, Stage: StageParse, Status: StatusWorking})
			began := time.Now()
			parsed, err := frontend.Parse(gctx, f)
			if err != nil {
				emit(r.opts.Progress, Event{File: f.Path, Stage: StageParse, Status: StatusError, Err: err})
				return err
			}
			bag := diag.NewBag(0)
			for _, se := range parsed.Errors {
				bag.Add(diag.NewError(diag.SyntaxError, source.Location{File: f.ID, Span: se.Span}, se.Message()))
			}
			units[i] = &Unit{File: f, Tree: parsed.Tree, Bag: bag}
			emit(r.opts.Progress, Event{File: f.Path, Stage: StageParse, Status: StatusDone, Elapsed: time.Since(began)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		done("error")
		return err
	}
	r.res.Units = units
	emit(r.opts.Progress, Event{Stage: StageParse, Status: StatusDone, Elapsed: time.Since(start)})
	done(fmt.Sprintf("units=%d", len(units)))
	return nil
}

func (r *run) bind() {
	done := r.phase("bind")
	start := time.Now()
	emitStage(r.opts.Progress, r.res.Files, StageBind, StatusWorking, 0)

	trees := make([]*ast.Tree, len(r.res.Units))
	for i, u := range r.res.Units {
		trees[i] = u.Tree
	}
	r.res.Table, r.res.Bindings = binding.Bind(trees)

	g := hierarchy.Build(r.res.Table, true)
	topo := hierarchy.ToposortKahn(g)
	r.res.Hierarchy = topo
	if topo.Cyclic {
		r.reportCycles(hierarchy.OnCycle(g, topo.Cycles))
	}

	emitStage(r.opts.Progress, r.res.Files, StageBind, StatusDone, time.Since(start))
	done(fmt.Sprintf("types=%d methods=%d", r.res.Table.TypeCount(), r.res.Table.MethodCount()))
}

func (r *run) reportCycles(ids []binding.TypeID) {
	for _, id := range ids {
		ti := r.res.Table.Type(id)
		if ti == nil {
			continue
		}
		tree, node := r.res.Bindings.Node(ti.Decl)
		if node == nil {
			continue
		}
		loc := source.Location{File: tree.File, Span: node.Span}
		r.res.Bag.Add(diag.NewError(diag.CyclicInheritance, loc,
			fmt.Sprintf("cyclic inheritance involving %q", ti.QualifiedName)))
	}
}

func (r *run) attachSema() {
	for _, u := range r.res.Units {
		u.Sema = symbols.New(r.res.Table, r.res.Bindings, u.File.ID)
	}
}

// analyze runs the enabled rules over every unit. Cancellation is observed
// between units.
func (r *run) analyze(ctx context.Context) error {
	done := r.phase("analyze")
	start := time.Now()
	rules := r.opts.Rules.Filter(r.opts.Config.RuleEnabled)
	maxLines := r.opts.Config.Rules.TextBlocks.MaxLines

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs())
	for _, u := range r.res.Units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(r.opts.Progress, Event{File: u.File.Path, Stage: StageAnalyze, Status: StatusWorking})
			began := time.Now()
			us := trace.Begin(r.tracer, trace.ScopeUnit, u.File.Path, r.span.ID())

			u.Sema = symbols.New(r.res.Table, r.res.Bindings, u.File.ID)
			reporter := diag.NewDedupReporter(diag.BagReporter{Bag: u.Bag})
			cctx := checks.NewContext(u.Sema, reporter, u.File)
			if maxLines > 0 {
				cctx.Options.TextBlockMaxLines = maxLines
			}
			for _, rule := range rules {
				rs := trace.Begin(r.tracer, trace.ScopeRule, rule.Code().ID(), us.ID())
				before := u.Bag.Len()
				rule.Check(cctx)
				rs.End(strconv.Itoa(u.Bag.Len() - before))
			}

			us.WithExtra("diags", strconv.Itoa(u.Bag.Len())).End("")
			emit(r.opts.Progress, Event{File: u.File.Path, Stage: StageAnalyze, Status: StatusDone, Elapsed: time.Since(began)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		done("error")
		return err
	}
	emit(r.opts.Progress, Event{Stage: StageAnalyze, Status: StatusDone, Elapsed: time.Since(start)})
	done(fmt.Sprintf("rules=%d", len(rules)))
	return nil
}

// merge folds unit bags into the run bag in file order.
func (r *run) merge() {
	for _, u := range r.res.Units {
		r.res.Bag.Merge(u.Bag)
	}
	r.finish()
}

func (r *run) finish() {
	r.res.Bag.Sort()
	r.res.Bag.Dedup()
	if r.opts.MaxDiagnostics > 0 {
		r.res.Bag.Truncate(r.opts.MaxDiagnostics)
	}
}
