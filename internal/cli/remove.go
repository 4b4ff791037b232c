package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/infra/logger"
	"github.com/aalvaropc/bracefix/internal/usecase"
)

func removeCmd(opts *rootOptions) *cobra.Command {
	var (
		line   int
		expect string
		dryRun bool
		format string
	)

	c := &cobra.Command{
		Use:   "remove [file]",
		Short: "Remove one line (default: line 420, the extra closing brace)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}

			spec := ws.cfg.Remove
			if cmd.Flags().Changed("line") {
				spec.Line = line
				spec.Context = domain.RemoveContext(line)
			}
			if cmd.Flags().Changed("expect") {
				spec.Expect = expect
			}

			path := resolveTarget(ws, args)
			uc := usecase.NewRemoveLine(ws.store, ws.journal, logger.L())

			res, err := uc.Execute(cmd.Context(), path, spec, dryRun)
			res.Path = displayPath(ws, path)
			if err != nil && len(res.Before) == 0 {
				return err
			}
			if perr := printPatch(cmd.OutOrStdout(), res, format); perr != nil {
				return perr
			}
			return err
		},
	}

	c.Flags().IntVar(&line, "line", domain.DefaultConfig().Remove.Line, "1-based line to remove")
	c.Flags().StringVar(&expect, "expect", "", "Only remove when the trimmed line equals this")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Show the result without writing")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}
