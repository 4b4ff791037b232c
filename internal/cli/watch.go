package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/infra/logger"
	"github.com/aalvaropc/bracefix/internal/infra/watcher"
	"github.com/aalvaropc/bracefix/internal/usecase"
)

func watchCmd(opts *rootOptions) *cobra.Command {
	var from, to int
	var format string
	var debounce time.Duration

	c := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-run the brace check every time the file changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}

			r := checkRange(cmd, ws.cfg.Check.Range, from, to)
			path := resolveTarget(ws, args)
			out := cmd.OutOrStdout()

			w := watcher.New(watcher.WithDebounce(debounce), watcher.WithLogger(logger.L()))
			uc := usecase.NewWatchBraces(usecase.NewCheckBraces(ws.store, logger.L()), w)

			err = uc.Execute(cmd.Context(), path, r, func(rep domain.BraceReport, cerr error) {
				printWatchResult(out, ws, rep, cerr, format)
			})
			if err != nil && cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}

	c.Flags().IntVar(&from, "from", 0, "First line to scan (default from bracefix.yaml, 400)")
	c.Flags().IntVar(&to, "to", 0, "Last line to scan (default from bracefix.yaml, 430)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().DurationVar(&debounce, "debounce", 150*time.Millisecond, "Quiet period before re-checking")
	return c
}

func printWatchResult(w io.Writer, ws *workspaceCtx, rep domain.BraceReport, err error, format string) {
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("check failed: "+err.Error()))
		return
	}
	rep.Path = displayPath(ws, rep.Path)
	if format == "pretty" {
		fmt.Fprintln(w, faintStyle.Render(time.Now().Format("15:04:05")+" "+rep.Path))
	}
	_ = printReports(w, []domain.BraceReport{rep}, format)
}
