package cmd

import (
	"github.com/spf13/cobra"

	"shroud.dev/pkg/shroud/internal/domain"
	m "shroud.dev/pkg/shroud/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <filepath> [complexity]",
		Short: "Show the planned renames without rewriting",
		Long:  "Discover the renamable identifiers of a file and print the rename table.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			complexity, err := parseComplexity(args, 1)
			if err != nil {
				return err
			}

			opts, err := optionsFromConfig(complexity)
			if err != nil {
				return err
			}

			language, err := languageFromConfig()
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{
				Path:     m.Path(args[0]),
				Language: language,
				Options:  opts,
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
