package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/infra/logger"
	"github.com/aalvaropc/bracefix/internal/usecase"
)

func insertCmd(opts *rootOptions) *cobra.Command {
	var (
		anchor     string
		searchFrom int
		searchTo   int
		offset     int
		text       string
		guard      string
		dryRun     bool
		format     string
	)

	c := &cobra.Command{
		Use:   "insert [file]",
		Short: "Insert a line relative to an anchor (default: the missing closing brace)",
		Long: "Searches --search-from..--search-to for the first line containing --anchor.\n" +
			"The line --offset lines below it must contain --guard; --text is inserted before it.\n" +
			"Nothing is written when no such line exists.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}

			spec := ws.cfg.Insert
			flags := cmd.Flags()
			if flags.Changed("anchor") {
				spec.Anchor = anchor
			}
			if flags.Changed("search-from") {
				spec.Search.From = searchFrom
			}
			if flags.Changed("search-to") {
				spec.Search.To = searchTo
			}
			if flags.Changed("search-from") || flags.Changed("search-to") {
				spec.Before, spec.After = domain.InsertWindows(spec.Search)
			}
			if flags.Changed("offset") {
				spec.Offset = offset
			}
			if flags.Changed("text") {
				spec.Text = text
			}
			if flags.Changed("guard") {
				spec.Guard = guard
			}

			path := resolveTarget(ws, args)
			uc := usecase.NewInsertLine(ws.store, ws.journal, logger.L())

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

	def := domain.DefaultConfig().Insert
	c.Flags().StringVar(&anchor, "anchor", def.Anchor, "Substring that marks the anchor line")
	c.Flags().IntVar(&searchFrom, "search-from", def.Search.From, "First line searched for the anchor")
	c.Flags().IntVar(&searchTo, "search-to", def.Search.To, "Last line searched for the anchor")
	c.Flags().IntVar(&offset, "offset", def.Offset, "Lines below the anchor where the text goes")
	c.Flags().StringVar(&text, "text", def.Text, "Line to insert")
	c.Flags().StringVar(&guard, "guard", def.Guard, "Substring the displaced line must contain (empty: any)")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Show the result without writing")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}
