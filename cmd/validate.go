package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mouse-blink/mender/internal/domain"
	m "github.com/mouse-blink/mender/internal/model"
)

// diagnosticFlags are shared by validate and execute.
type diagnosticFlags struct {
	categories  []string
	minPriority string
	parallel    int
	diff        bool
}

func (f *diagnosticFlags) register(flags *pflag.FlagSet) {
	flags.StringArrayVar(&f.categories, "only-category", nil, "only apply diagnostics of this category (can be repeated)")
	flags.StringVar(&f.minPriority, "min-priority", "", "only apply diagnostics at or above this priority (HIGH, MEDIUM, LOW)")
	flags.IntVarP(&f.parallel, "parallel", "p", 0, "number of files processed concurrently (default engine.parallel)")
	flags.BoolVar(&f.diff, "diff", false, "include unified diffs of the rewrites in the report")
}

func (f *diagnosticFlags) args(cmd *cobra.Command, input []string) (domain.ValidateArgs, error) {
	raw, err := readDiagnostics(cmd, input)
	if err != nil {
		return domain.ValidateArgs{}, err
	}

	filter := domain.Filter{}
	for _, c := range f.categories {
		filter.Categories = append(filter.Categories, m.Category(c))
	}

	if f.minPriority != "" {
		priority := m.ParsePriority(f.minPriority)
		if priority == m.PriorityUnknown {
			return domain.ValidateArgs{}, fmt.Errorf("unknown priority %q", f.minPriority)
		}

		filter.MinPriority = priority
	}

	return domain.ValidateArgs{
		Root:        m.Path(cfg.Root),
		Diagnostics: raw,
		Filter:      filter,
		Parallel:    parallelOr(f.parallel),
		Diff:        f.diff,
	}, nil
}

func parallelOr(flag int) int {
	if flag > 0 {
		return flag
	}

	return cfg.Engine.Parallel
}

// readDiagnostics reads analyzer output from the named file, or stdin when
// no file or "-" is given.
func readDiagnostics(cmd *cobra.Command, input []string) (string, error) {
	if len(input) == 0 || input[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read analyzer output: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(input[0])
	if err != nil {
		return "", fmt.Errorf("read analyzer output: %w", err)
	}

	return string(data), nil
}

var validateFlags diagnosticFlags

// validateCmd represents the validate command.
var validateCmd = newValidateCmd()

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [analyzer-output]",
		Short: "Report what would be fixed without writing",
		Long: `Parse analyzer output (a file, or stdin when omitted or "-"), classify each
diagnostic, rewrite the affected files in memory and syntax-check the result.
Nothing is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, input []string) error {
			args, err := validateFlags.args(cmd, input)
			if err != nil {
				return err
			}

			report, err := workflow.Validate(cmd.Context(), args)
			if err != nil {
				return err
			}

			return exitFor(report)
		},
	}
	validateFlags.register(cmd.Flags())

	return cmd
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
