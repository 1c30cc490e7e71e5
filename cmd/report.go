package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/mender/internal/domain"
	m "github.com/mouse-blink/mender/internal/model"
)

var reportListFlag bool
var reportHistoryFlag bool
var reportLimitFlag int

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [id]",
		Short: "View previously persisted run reports",
		Long: `Show the latest persisted run report, or the one whose id starts with the
given prefix. --list lists all reports; --history shows the audit history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}

			return workflow.Report(cmd.Context(), domain.ReportArgs{
				Reports: m.Path(cfg.Reports.Dir),
				ID:      id,
				List:    reportListFlag,
				History: reportHistoryFlag,
				Limit:   reportLimitFlag,
			})
		},
	}
	cmd.Flags().BoolVarP(&reportListFlag, "list", "l", false, "list all persisted reports")
	cmd.Flags().BoolVar(&reportHistoryFlag, "history", false, "show run history from the audit database")
	cmd.Flags().IntVarP(&reportLimitFlag, "limit", "n", 20, "maximum history rows")

	return cmd
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
