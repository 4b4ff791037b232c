package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bracefix/internal/usecase"
)

func historyCmd(opts *rootOptions) *cobra.Command {
	var query string

	c := &cobra.Command{
		Use:   "history",
		Short: "List recorded patches",
		Long: "Lists the patch journal. --query evaluates a JSONPath expression over the\n" +
			"entries (keys: id, op, path, line, text, applied_at, revert_of), e.g.\n" +
			`  bracefix history --query '$[?(@.op=="remove")].id'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}
			if ws.journal == nil {
				return fmt.Errorf("journal is disabled in %s", ws.root)
			}

			uc := usecase.NewHistory(ws.journal)
			if query != "" {
				val, err := uc.Query(cmd.Context(), query)
				if err != nil {
					return err
				}
				return encodeJSON(cmd.OutOrStdout(), val)
			}

			entries, err := uc.List(cmd.Context())
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	c.Flags().StringVarP(&query, "query", "q", "", "JSONPath expression over the journal")
	return c
}
