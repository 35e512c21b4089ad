package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const forceFlagName = "force"

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default shroud.yaml configuration file",
		Long: `Create a shroud.yaml in the current working directory holding the effective
settings: name complexity, the rename policy (parameters, underscore names,
protected prefixes and names), symbol tables, Python search paths, batch
and log options. Edit it to change the defaults of every shroud command.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			write := viper.SafeWriteConfigAs
			if force {
				write = viper.WriteConfigAs
			}

			if err := write(targetPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Println("wrote", targetPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, forceFlagName, false, "overwrite an existing shroud.yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}
