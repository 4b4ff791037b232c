package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/infra/logger"
	"github.com/aalvaropc/bracefix/internal/usecase"
)

func checkCmd(opts *rootOptions) *cobra.Command {
	var from, to int
	var format string

	c := &cobra.Command{
		Use:   "check [file...]",
		Short: "Print the running brace count over a line range",
		Long: "Counts '{' minus '}' line by line over --from..--to (1-based, inclusive)\n" +
			"and stops at the first line where the count goes negative.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}

			r := checkRange(cmd, ws.cfg.Check.Range, from, to)
			uc := usecase.NewCheckBraces(ws.store, logger.L())

			paths := resolveTargets(ws, args)
			reps, checkErr := uc.ExecuteMany(cmd.Context(), paths, r)

			for i := range reps {
				reps[i].Path = displayPath(ws, reps[i].Path)
			}
			if len(reps) > 0 {
				if err := printReports(cmd.OutOrStdout(), reps, format); err != nil {
					return err
				}
			}
			if checkErr != nil {
				return checkErr
			}

			for _, rep := range reps {
				if rep.Negative {
					return fmt.Errorf("%s: negative brace count at line %d", rep.Path, rep.NegativeLine)
				}
			}
			return nil
		},
	}

	c.Flags().IntVar(&from, "from", 0, "First line to scan (default from bracefix.yaml, 400)")
	c.Flags().IntVar(&to, "to", 0, "Last line to scan (default from bracefix.yaml, 430)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func checkRange(cmd *cobra.Command, base domain.Range, from, to int) domain.Range {
	r := base
	if cmd.Flags().Changed("from") {
		r.From = from
	}
	if cmd.Flags().Changed("to") {
		r.To = to
	}
	return r
}

func resolveTargets(ws *workspaceCtx, args []string) []string {
	if len(args) == 0 {
		return []string{resolveTarget(ws, nil)}
	}
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, resolveTarget(ws, []string{a}))
	}
	return out
}

// displayPath shortens p to be relative to the workspace when possible.
func displayPath(ws *workspaceCtx, p string) string {
	if rel, err := filepath.Rel(ws.root, p); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return p
}
