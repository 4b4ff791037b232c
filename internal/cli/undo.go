package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bracefix/internal/infra/logger"
	"github.com/aalvaropc/bracefix/internal/usecase"
)

func undoCmd(opts *rootOptions) *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "undo [journal-id]",
		Short: "Restore the file content from before a recorded patch",
		Long:  "Without an id the latest patch (optionally for --file) is reverted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}
			if ws.journal == nil {
				return fmt.Errorf("journal is disabled in %s; nothing to undo", ws.root)
			}

			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			path := ""
			if file != "" {
				path = resolveTarget(ws, []string{file})
			}

			rec, err := usecase.NewUndoPatch(ws.store, ws.journal, logger.L()).Execute(cmd.Context(), id, path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("Restored %s (reverted %s)", displayPath(ws, rec.Path), rec.RevertOf)))
			fmt.Fprintln(out, faintStyle.Render("journal: "+rec.ID))
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "Only consider patches of this file")
	return c
}
