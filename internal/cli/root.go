package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bracefix/internal/infra/logger"
)

type rootOptions struct {
	workspace string
	debug     bool

	closeLog func() error
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &rootOptions{}
	err := newRootCmdWith(opts).ExecuteContext(ctx)
	if opts.closeLog != nil {
		_ = opts.closeLog()
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootOptions{})
}

func newRootCmdWith(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bracefix",
		Short:        "bracefix: trace and repair brace depth in a source file",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			root, _, err := resolveWorkspaceRoot(opts.workspace)
			if err != nil {
				return err
			}
			// Logging is best-effort: a read-only tree still gets its diagnostics.
			cleanup, _ := logger.Setup(logger.Config{Root: root, Debug: opts.debug})
			opts.closeLog = cleanup

			if opts.debug {
				if err := logger.IsReady(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: debug log unavailable:", err)
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), "debug log:", logger.Path())
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "", "Workspace root (optional; autodetected from bracefix.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to .bracefix/logs/bracefix.log")

	cmd.AddCommand(
		checkCmd(opts),
		insertCmd(opts),
		removeCmd(opts),
		undoCmd(opts),
		historyCmd(opts),
		watchCmd(opts),
		viewCmd(opts),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
