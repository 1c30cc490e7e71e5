package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/mender/internal/domain"
	m "github.com/mouse-blink/mender/internal/model"
)

var rollbackSnapshotFlag string

// rollbackCmd represents the rollback command.
var rollbackCmd = newRollbackCmd()

func newRollbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Restore the most recent snapshot of the root",
		Long: `Restore the root from its most recent snapshot, or from --snapshot. The
restore is all-or-nothing: a damaged snapshot aborts before anything is
removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := workflow.Rollback(cmd.Context(), domain.RollbackArgs{
				Root:     m.Path(cfg.Root),
				Snapshot: rollbackSnapshotFlag,
			})
			if err != nil {
				return err
			}

			return exitFor(report)
		},
	}
	cmd.Flags().StringVarP(&rollbackSnapshotFlag, "snapshot", "s", "", "snapshot timestamp to restore")

	return cmd
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}
