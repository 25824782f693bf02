package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"jsema/internal/driver"
)

var overridesCmd = &cobra.Command{
	Use:   "overrides [flags] <file.java>",
	Short: "List the methods of a file and what each one overrides",
	Long: `Bind the project containing the file and print, for every method it
declares, the supertype methods it overrides in lookup order: the superclass
chain first, then interfaces.`,
	Args: cobra.ExactArgs(1),
	RunE: runOverrides,
}

func init() {
	overridesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	overridesCmd.Flags().String("config", "", "path to jsema.toml (default: discovered)")
	overridesCmd.Flags().Bool("types", false, "also list project types, supertypes first")
}

type overriddenJSON struct {
	Owner     string    `json:"owner"`
	Signature string    `json:"signature"`
	Path      string    `json:"path,omitempty"`
	Span      *spanJSON `json:"span,omitempty"`
}

type methodJSON struct {
	Owner      string           `json:"owner"`
	Signature  string           `json:"signature"`
	Span       spanJSON         `json:"span"`
	Overridden []overriddenJSON `json:"overrides"`
}

type overridesJSON struct {
	File    string       `json:"file"`
	Methods []methodJSON `json:"methods"`
	Types   []string     `json:"types,omitempty"`
}

func runOverrides(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	withTypes, err := cmd.Flags().GetBool("types")
	if err != nil {
		return fmt.Errorf("failed to get types flag: %w", err)
	}

	file, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(configPath, []string{file})
	if err != nil {
		return err
	}
	// корень проекта даёт супертипы, сам файл добавляется даже если исключён
	res, err := driver.Load(cmd.Context(), driver.Options{Config: cfg, Paths: []string{cfg.Root, file}})
	if err != nil {
		return err
	}
	unit, ok := res.Unit(file)
	if !ok {
		return fmt.Errorf("%s: not loaded", args[0])
	}

	report := overridesJSON{File: unit.File.Path}
	for _, m := range res.Overrides(unit) {
		mj := methodJSON{Owner: m.Owner, Signature: m.Signature, Span: toSpanJSON(m.Span), Overridden: []overriddenJSON{}}
		for _, o := range m.Overridden {
			oj := overriddenJSON{Owner: o.Owner, Signature: o.Signature}
			if o.Loc != nil {
				if f := res.FileSet.Get(o.Loc.File); f != nil {
					oj.Path = f.Path
				}
				s := toSpanJSON(o.Loc.Span)
				oj.Span = &s
			}
			mj.Overridden = append(mj.Overridden, oj)
		}
		report.Methods = append(report.Methods, mj)
	}
	if withTypes {
		for _, id := range res.TypeOrder() {
			if ti := res.Table.Type(id); ti != nil {
				report.Types = append(report.Types, ti.QualifiedName)
			}
		}
	}

	w := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	for _, m := range report.Methods {
		fmt.Fprintf(w, "%d: %s.%s\n", m.Span.StartLine, m.Owner, m.Signature)
		if len(m.Overridden) == 0 {
			fmt.Fprintln(w, "    overrides nothing")
			continue
		}
		for _, o := range m.Overridden {
			where := "library"
			if o.Span != nil {
				where = fmt.Sprintf("%s:%d", relPath(cfg.Root, o.Path), o.Span.StartLine)
			}
			fmt.Fprintf(w, "    overrides %s.%s (%s)\n", o.Owner, o.Signature, where)
		}
	}
	if withTypes {
		fmt.Fprintln(w, "\ntypes, supertypes first:")
		for _, name := range report.Types {
			fmt.Fprintf(w, "    %s\n", name)
		}
	}
	return nil
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
