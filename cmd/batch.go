package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shroud.dev/pkg/shroud/internal/controller"
	"shroud.dev/pkg/shroud/internal/domain"
	m "shroud.dev/pkg/shroud/internal/model"
)

var batchOutDirFlag string
var batchParallelFlag int

// batchCmd represents the batch command.
var batchCmd = newBatchCmd()

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <files...>",
		Short: "Obfuscate several independent files",
		Long: `Obfuscate each file on its own and write it to the output directory
under its base name. Files are processed in parallel; no names are shared
between them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := optionsFromConfig(0)
			if err != nil {
				return err
			}

			language, err := languageFromConfig()
			if err != nil {
				return err
			}

			batchArgs := domain.BatchArgs{
				Paths:    parsePaths(args),
				Language: language,
				OutDir:   m.Path(viper.GetString(batchOutDirKey)),
				Options:  opts,
				Parallel: viper.GetInt(batchParallelKey),
				Verbose:  viper.GetBool(verboseKey),
			}

			// The bar would interleave with the mapping lines of --verbose.
			if len(args) > 1 && !batchArgs.Verbose && controller.IsTerminal(cmd.ErrOrStderr()) {
				batchArgs.Progress = controller.NewBatchProgress(cmd.Context(), cmd.ErrOrStderr(), len(args))
			}

			return workflow.Batch(cmd.Context(), batchArgs)
		},
	}

	configureBatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func configureBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&batchOutDirFlag, outDirFlagName, defaultBatchOutDir, "directory receiving the obfuscated files")
	bindFlagToConfig(cmd.Flags().Lookup(outDirFlagName), batchOutDirKey)

	cmd.Flags().IntVarP(&batchParallelFlag, parallelFlagName, "p", defaultBatchParallel, "number of files processed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), batchParallelKey)
}
