package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/mender/internal/domain"
)

var executeFlags diagnosticFlags
var executeBackupFlag bool

// executeCmd represents the execute command.
var executeCmd = newExecuteCmd()

func newExecuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute [analyzer-output]",
		Short: "Apply fixes and write files that pass validation",
		Long: `Run the validate pipeline, snapshot the root, then write every rewritten
file that passed the syntax check. Files that fail the check are left
untouched and reported. Exits non-zero when any targeted file still needs
manual work.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, input []string) error {
			args, err := executeFlags.args(cmd, input)
			if err != nil {
				return err
			}

			report, err := workflow.Execute(cmd.Context(), domain.ExecuteArgs{
				ValidateArgs: args,
				Backup:       executeBackupFlag,
			})
			if err != nil {
				return err
			}

			return exitFor(report)
		},
	}
	executeFlags.register(cmd.Flags())
	cmd.Flags().BoolVar(&executeBackupFlag, "backup", true, "snapshot the root before writing")

	return cmd
}

func init() {
	rootCmd.AddCommand(executeCmd)
}
