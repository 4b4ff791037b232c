package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/infra/workspacefinder"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertExists(t, filepath.Join(tmp, "bracefix.yaml"))
	assertExists(t, filepath.Join(tmp, ".bracefix", "journal"))
	assertExists(t, filepath.Join(tmp, ".bracefix", "logs"))
	assertExists(t, filepath.Join(tmp, ".gitignore"))
}

func TestInitializer_TemplateMatchesDefaults(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	def := domain.DefaultConfig()
	if cfg.Target != def.Target || cfg.Insert != def.Insert || cfg.Remove != def.Remove || cfg.Check != def.Check {
		t.Fatalf("template drifted from defaults:\n got=%+v\nwant=%+v", cfg, def)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "bracefix.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing bracefix.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read bracefix.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected bracefix.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}
	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read bracefix.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "bracefix:") {
		t.Fatalf("expected bracefix.yaml overwritten with template, got %q", string(b))
	}
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s, stat err=%v", path, err)
	}
}
