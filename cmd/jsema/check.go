package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jsema/internal/diagfmt"
	"jsema/internal/driver"
	"jsema/internal/fix"
	"jsema/internal/observ"
	"jsema/internal/project"
	"jsema/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Analyse Java files or directories",
	Long: `Analyse the given Java files and directories, or the project root when
none are given. The nearest jsema.toml above the first path configures the run.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().String("config", "", "path to jsema.toml (default: discovered)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=config or auto)")
	checkCmd.Flags().Int("max-diagnostics", 0, "maximum number of diagnostics to report (0=config or unlimited)")
	checkCmd.Flags().Bool("no-cache", false, "skip the on-disk result cache")
	checkCmd.Flags().Bool("fix", false, "apply available fixes to the source files")
	checkCmd.Flags().Bool("dry-run", false, "with --fix, list fixes without writing files")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().String("paths", "auto", "path display (auto|absolute|relative|basename)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

type checkFlags struct {
	format         string
	configPath     string
	jobs           int
	maxDiagnostics int
	noCache        bool
	fix            bool
	dryRun         bool
	withNotes      bool
	suggest        bool
	pathMode       diagfmt.PathMode
	ui             uiMode
	timings        bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var (
		f   checkFlags
		err error
	)
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	f.format = strings.ToLower(f.format)
	switch f.format {
	case "pretty", "short", "json", "sarif":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.configPath, err = cmd.Flags().GetString("config"); err != nil {
		return f, fmt.Errorf("failed to get config flag: %w", err)
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.maxDiagnostics, err = cmd.Flags().GetInt("max-diagnostics"); err != nil {
		return f, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if f.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return f, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if f.fix, err = cmd.Flags().GetBool("fix"); err != nil {
		return f, fmt.Errorf("failed to get fix flag: %w", err)
	}
	if f.dryRun, err = cmd.Flags().GetBool("dry-run"); err != nil {
		return f, fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	if f.dryRun && !f.fix {
		return f, errors.New("--dry-run requires --fix")
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	paths, err := cmd.Flags().GetString("paths")
	if err != nil {
		return f, fmt.Errorf("failed to get paths flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(paths)
	if !ok {
		return f, fmt.Errorf("invalid --paths value %q", paths)
	}
	f.pathMode = mode
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return f, nil
}

// resolveConfig loads explicit or discovered configuration. Discovery starts
// at the first path, or its directory when it names a file.
func resolveConfig(configPath string, paths []string) (project.Config, error) {
	if configPath != "" {
		cfg, err := project.Load(configPath)
		if err != nil {
			return project.Config{}, err
		}
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return project.Config{}, err
		}
		cfg.Root = filepath.Dir(abs)
		return cfg, nil
	}
	start := "."
	if len(paths) > 0 {
		start = paths[0]
		if info, err := os.Stat(start); err == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return project.Config{}, err
	}
	return project.Discover(abs)
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(flags.configPath, args)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Config:         cfg,
		Paths:          args,
		Jobs:           cfg.Analysis.Jobs,
		MaxDiagnostics: cfg.Analysis.MaxDiagnostics,
	}
	if flags.jobs > 0 {
		opts.Jobs = flags.jobs
	}
	if flags.maxDiagnostics > 0 {
		opts.MaxDiagnostics = flags.maxDiagnostics
	}
	if !flags.noCache && !flags.fix && cfg.CacheEnabled() {
		cache, err := driver.OpenDiskCache("jsema")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}
	var timer *observ.Timer
	if flags.timings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	var res *driver.Result
	if shouldUseTUI(flags.ui) {
		res, err = runCheckWithUI(cmd.Context(), "jsema check", opts)
	} else {
		res, err = driver.Check(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch flags.format {
	case "pretty":
		err = diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(),
			PathMode:  flags.pathMode,
			ShowNotes: flags.withNotes,
			ShowFixes: flags.suggest,
		})
	case "short":
		err = diagfmt.Short(out, res.Bag, res.FileSet, flags.withNotes)
	case "json":
		err = diagfmt.JSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			PathMode:     flags.pathMode,
			IncludeNotes: flags.withNotes,
			IncludeFixes: flags.suggest,
		})
	case "sarif":
		err = diagfmt.Sarif(out, res.Bag, res.FileSet, diagfmt.SarifRunMeta{
			ToolName:    "jsema",
			ToolVersion: version.Version,
			RunGUID:     res.RunID,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	if flags.fix {
		if err := applyFixes(cmd, res, flags.dryRun); err != nil {
			return err
		}
	}
	if flags.timings {
		asJSON := flags.format == "json" || flags.format == "sarif"
		if err := printTimings(cmd.ErrOrStderr(), timer, asJSON); err != nil {
			return err
		}
	}

	if res.Bag.HasErrors() {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}

// errDiagnostics is returned after diagnostics with errors were printed.
var errDiagnostics = errors.New("errors reported")

func applyFixes(cmd *cobra.Command, res *driver.Result, dryRun bool) error {
	result, err := fix.Apply(res.FileSet, res.Diagnostics(), fix.ApplyOptions{DryRun: dryRun})
	errOut := cmd.ErrOrStderr()
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(errOut, "no applicable fixes found")
		return nil
	}
	if err != nil {
		return err
	}
	verb := "applied"
	if dryRun {
		verb = "would apply"
	}
	for _, a := range result.Applied {
		fmt.Fprintf(errOut, "%s %s: %s (%s)\n", verb, a.Code.ID(), a.Title, a.PrimaryPath)
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(errOut, "skipped %s: %s (%s)\n", s.Code.ID(), s.Title, s.Reason)
	}
	fmt.Fprintf(errOut, "%d fix(es) in %d file(s)\n", len(result.Applied), len(result.FileChanges))
	return nil
}
