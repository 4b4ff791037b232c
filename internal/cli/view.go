package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/infra/logger"
	"github.com/aalvaropc/bracefix/internal/ui/tui"
	"github.com/aalvaropc/bracefix/internal/usecase"
)

func viewCmd(opts *rootOptions) *cobra.Command {
	var from, to int

	c := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse the brace trace interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}

			r := checkRange(cmd, ws.cfg.Check.Range, from, to)
			path := resolveTarget(ws, args)
			uc := usecase.NewCheckBraces(ws.store, logger.L())

			return tui.Run(tui.Deps{
				Path:  displayPath(ws, path),
				Range: r,
				Check: func(ctx context.Context) (domain.BraceReport, error) {
					return uc.Execute(ctx, path, r)
				},
				Logger:  logger.L(),
				Debug:   opts.debug,
				LogPath: logger.Path(),
			})
		},
	}

	c.Flags().IntVar(&from, "from", 0, "First line to scan (default from bracefix.yaml, 400)")
	c.Flags().IntVar(&to, "to", 0, "Last line to scan (default from bracefix.yaml, 430)")
	return c
}
