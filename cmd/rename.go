package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/mender/internal/adapter"
	"github.com/mouse-blink/mender/internal/domain"
	m "github.com/mouse-blink/mender/internal/model"
)

var renameMapFlag string
var renameExtFlags []string
var renameParallelFlag int
var renameDiffFlag bool

// renameCmd represents the rename command.
var renameCmd = newRenameCmd()

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename symbols across the root using a symbol map",
		Long: `Rewrite use statements, instantiations, static access and fully-qualified
references according to an ordered symbol map (YAML, TOML or JSON, or
symbols.entries in the config). The root is always snapshotted first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := symbolEntries()
			if err != nil {
				return err
			}

			extensions := renameExtFlags
			if len(extensions) == 0 {
				extensions = cfg.Engine.Extensions
			}

			report, err := workflow.Rename(cmd.Context(), domain.RenameArgs{
				Root:       m.Path(cfg.Root),
				Entries:    entries,
				Extensions: extensions,
				Parallel:   parallelOr(renameParallelFlag),
				Diff:       renameDiffFlag,
			})
			if err != nil {
				return err
			}

			return exitFor(report)
		},
	}
	cmd.Flags().StringVarP(&renameMapFlag, "map", "m", "", "symbol map file (default symbols.file)")
	cmd.Flags().StringSliceVar(&renameExtFlags, "ext", nil, "file extensions to rewrite (default engine.extensions)")
	cmd.Flags().IntVarP(&renameParallelFlag, "parallel", "p", 0, "number of files processed concurrently (default engine.parallel)")
	cmd.Flags().BoolVar(&renameDiffFlag, "diff", false, "include unified diffs of the rewrites in the report")

	return cmd
}

// symbolEntries loads the map file, then appends inline config entries.
func symbolEntries() ([]m.SymbolEntry, error) {
	file := renameMapFlag
	if file == "" {
		file = cfg.Symbols.File
	}

	var entries []m.SymbolEntry

	if file != "" {
		loaded, err := adapter.LoadSymbolMap(m.Path(file))
		if err != nil {
			return nil, err
		}

		entries = append(entries, loaded...)
	}

	for _, e := range cfg.Symbols.Entries {
		entries = append(entries, m.SymbolEntry{Old: e.Old, New: e.New})
	}

	if len(entries) == 0 {
		return nil, errors.New("no symbol map: pass --map or set symbols.file / symbols.entries")
	}

	return entries, nil
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
