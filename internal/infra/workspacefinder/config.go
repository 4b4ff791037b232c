package workspacefinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/bracefix/internal/domain"
)

const ConfigFile = "bracefix.yaml"

// LoadConfig loads bracefix.yaml from the workspace root and applies it on top
// of domain.DefaultConfig.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	y.Bracefix.apply(&cfg)

	if err := validate(cfg); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

type yamlConfig struct {
	Bracefix yamlBracefix `yaml:"bracefix"`
}

type yamlRange struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

type yamlBracefix struct {
	Target string `yaml:"target"`

	Check struct {
		Range yamlRange `yaml:",inline"`
	} `yaml:"check"`

	Insert struct {
		Anchor string    `yaml:"anchor"`
		Search yamlRange `yaml:"search"`
		Offset *int      `yaml:"offset"`
		Text   *string   `yaml:"text"`
		Guard  *string   `yaml:"guard"`
		Before yamlRange `yaml:"before"`
		After  yamlRange `yaml:"after"`
	} `yaml:"insert"`

	Remove struct {
		Line    int       `yaml:"line"`
		Expect  *string   `yaml:"expect"`
		Context yamlRange `yaml:"context"`
	} `yaml:"remove"`

	Journal struct {
		Enabled *bool  `yaml:"enabled"`
		Dir     string `yaml:"dir"`
	} `yaml:"journal"`
}

func (y yamlBracefix) apply(cfg *domain.Config) {
	if y.Target != "" {
		cfg.Target = y.Target
	}

	applyRange(&cfg.Check.Range, y.Check.Range)

	if y.Insert.Anchor != "" {
		cfg.Insert.Anchor = y.Insert.Anchor
	}
	if y.Insert.Search != (yamlRange{}) {
		applyRange(&cfg.Insert.Search, y.Insert.Search)
		cfg.Insert.Before, cfg.Insert.After = domain.InsertWindows(cfg.Insert.Search)
	}
	if y.Insert.Offset != nil {
		cfg.Insert.Offset = *y.Insert.Offset
	}
	if y.Insert.Text != nil {
		cfg.Insert.Text = *y.Insert.Text
	}
	if y.Insert.Guard != nil {
		cfg.Insert.Guard = *y.Insert.Guard
	}
	applyRange(&cfg.Insert.Before, y.Insert.Before)
	applyRange(&cfg.Insert.After, y.Insert.After)

	// Windows follow a moved search range or line unless set explicitly.
	if y.Remove.Line != 0 {
		cfg.Remove.Line = y.Remove.Line
		cfg.Remove.Context = domain.RemoveContext(y.Remove.Line)
	}
	if y.Remove.Expect != nil {
		cfg.Remove.Expect = *y.Remove.Expect
	}
	applyRange(&cfg.Remove.Context, y.Remove.Context)

	if y.Journal.Enabled != nil {
		cfg.Journal.Enabled = *y.Journal.Enabled
	}
	if y.Journal.Dir != "" {
		cfg.Journal.Dir = y.Journal.Dir
	}
}

func applyRange(dst *domain.Range, src yamlRange) {
	if src.From != 0 {
		dst.From = src.From
	}
	if src.To != 0 {
		dst.To = src.To
	}
}

func validate(cfg domain.Config) error {
	if err := cfg.Check.Range.Validate(); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if err := cfg.Insert.Search.Validate(); err != nil {
		return fmt.Errorf("insert.search: %w", err)
	}
	if cfg.Remove.Line < 1 {
		return fmt.Errorf("remove.line must be >= 1, got %d", cfg.Remove.Line)
	}
	return nil
}
