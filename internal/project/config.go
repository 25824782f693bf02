package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"jsema/internal/diag"
)

// DefaultTextBlockMaxLines is the S6126 threshold when none is configured.
const DefaultTextBlockMaxLines = 5

type Config struct {
	Analysis AnalysisConfig `toml:"analysis" yaml:"analysis"`
	Rules    RulesConfig    `toml:"rules" yaml:"rules"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
	// Root is the directory globs are matched against.
	Root string `toml:"-" yaml:"-"`
}

type AnalysisConfig struct {
	Include        []string `toml:"include" yaml:"include"`
	Exclude        []string `toml:"exclude" yaml:"exclude"`
	Jobs           int      `toml:"jobs" yaml:"jobs"`
	MaxDiagnostics int      `toml:"max_diagnostics" yaml:"max_diagnostics"`
	Cache          *bool    `toml:"cache" yaml:"cache"`
}

type RulesConfig struct {
	Disabled   []string         `toml:"disabled" yaml:"disabled"`
	TextBlocks TextBlocksConfig `toml:"text_blocks" yaml:"text_blocks"`
}

type TextBlocksConfig struct {
	MaxLines int `toml:"max_lines" yaml:"max_lines"`
}

// Default returns the configuration used without a config file.
func Default(root string) Config {
	return Config{
		Analysis: AnalysisConfig{Include: []string{"**/*.java"}},
		Rules:    RulesConfig{TextBlocks: TextBlocksConfig{MaxLines: DefaultTextBlockMaxLines}},
		Root:     root,
	}
}

// CacheEnabled reports analysis.cache, true when unset.
func (c Config) CacheEnabled() bool {
	return c.Analysis.Cache == nil || *c.Analysis.Cache
}

// RuleEnabled reports whether code is not listed in rules.disabled.
func (c Config) RuleEnabled(code diag.Code) bool {
	return !slices.Contains(c.Rules.Disabled, code.ID())
}

// Load decodes path as TOML, or as YAML for .yaml/.yml files. Missing values
// keep their defaults; unknown keys are an error in both formats.
func Load(path string) (Config, error) {
	cfg := Default("")
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(path, &cfg)
	default:
		err = decodeTOML(path, &cfg)
	}
	if err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func decodeTOML(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	// пустой файл даёт io.EOF, это значения по умолчанию
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		if strings.Contains(err.Error(), "not found in type") {
			return fmt.Errorf("%s: unknown keys: %w", path, err)
		}
		return fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if len(c.Analysis.Include) == 0 {
		c.Analysis.Include = []string{"**/*.java"}
	}
	if c.Rules.TextBlocks.MaxLines < 1 {
		return errors.New("[rules.text_blocks].max_lines must be positive")
	}
	if c.Analysis.Jobs < 0 {
		return errors.New("[analysis].jobs must not be negative")
	}
	for _, key := range c.Rules.Disabled {
		if _, ok := diag.ParseCode(key); !ok {
			return fmt.Errorf("[rules].disabled: unknown rule %q", key)
		}
	}
	return nil
}

// Discover loads the nearest config file above startDir, or defaults rooted at startDir.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(startDir), nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	root, _, err := FindProjectRoot(startDir)
	if err != nil {
		return Config{}, err
	}
	cfg.Root = root
	return cfg, nil
}
