package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/infra/journal"
	"github.com/aalvaropc/bracefix/internal/infra/linefile"
	"github.com/aalvaropc/bracefix/internal/infra/workspacefinder"
	"github.com/aalvaropc/bracefix/internal/ports"
)

var locator ports.WorkspaceLocator = workspacefinder.NewFinder()

type workspaceCtx struct {
	root  string
	cfg   domain.Config
	found bool

	store   ports.LineStore
	journal ports.Journal
}

// loadWorkspace resolves the workspace and its config. Without a
// bracefix.yaml the working directory is used with default settings.
func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, found, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultConfig()
	if found {
		cfg, err = workspacefinder.LoadConfig(root)
		if err != nil {
			return nil, err
		}
	}

	ws := &workspaceCtx{
		root:  root,
		cfg:   cfg,
		found: found,
		store: linefile.NewStore(),
	}
	if cfg.Journal.Enabled {
		ws.journal = journal.NewJSONStore(root, cfg.Journal)
	}
	return ws, nil
}

// resolveWorkspaceRoot returns the explicit --workspace, else the nearest
// directory with bracefix.yaml, else the working directory.
func resolveWorkspaceRoot(workspaceFlag string) (string, bool, error) {
	if w := strings.TrimSpace(workspaceFlag); w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", false, fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, fileExists(filepath.Join(abs, workspacefinder.ConfigFile)), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}

	root, err := locator.FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return wd, false, nil
		}
		return "", false, err
	}
	return root, true, nil
}

// resolveTarget picks the file to operate on: the argument when given,
// otherwise the configured target. Arguments are relative to the working
// directory, the configured target to the workspace root.
func resolveTarget(ws *workspaceCtx, args []string) string {
	p := ws.cfg.Target
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		p = strings.TrimSpace(args[0])
		if !filepath.IsAbs(p) {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(ws.root, p)
	}
	return filepath.Clean(p)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
