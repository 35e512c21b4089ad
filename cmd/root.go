// Package cmd provides the root command and CLI setup for shroud.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"shroud.dev/pkg/shroud/internal/adapter"
	"shroud.dev/pkg/shroud/internal/controller"
	"shroud.dev/pkg/shroud/internal/domain"
	m "shroud.dev/pkg/shroud/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var obfuscator domain.Obfuscator
var workflow domain.Workflow
var ui controller.UI

var (
	complexityFlag    int
	langFlag          string
	verboseFlag       bool
	stripCommentsFlag bool
	paramsFlag        bool
	underscoreFlag    string
	protectPrefixes   []string
	symbolFiles       []string
	pythonPaths       []string
	logFileFlag       string

	outputFlag string
	diffFlag   bool
)

func init() {
	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	obfuscator = domain.NewDefaultObfuscator(fsAdapter)
	workflow = domain.NewWorkflow(fsAdapter, ui, obfuscator)
}

const rootLongDescription = `Shroud renames the user-defined identifiers of a single source file
(function names, parameters and variables) to short generated names while
keeping keywords, builtins, imported names and anything reachable from
outside the file intact.

Python (.py) and Go (.go) sources are supported. The complexity argument is
the length of the generated names (default 3).`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shroud <filepath> [complexity]",
		Short:         "Identifier-renaming source obfuscator",
		Long:          rootLongDescription,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(verboseKey))
		},
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

			return workflow.Run(cmd.Context(), domain.RunArgs{
				Path:     m.Path(args[0]),
				Language: language,
				Output:   m.Path(outputFlag),
				Options:  opts,
				Verbose:  viper.GetBool(verboseKey),
				Diff:     viper.GetBool(diffKey),
			})
		},
	}

	configureRootFlags(cmd)

	return cmd
}

// configureRootFlags registers the root flags. Defaults are the literal
// values because rootCmd is built before the viper defaults are registered.
func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	defaults := m.DefaultOptions()

	flags.IntVarP(&complexityFlag, complexityFlagName, "c", defaults.Complexity, "length of generated names")
	bindFlagToConfig(flags.Lookup(complexityFlagName), complexityKey)

	flags.StringVar(&langFlag, langFlagName, string(m.LanguageAuto), "source language: auto, python or go")
	bindFlagToConfig(flags.Lookup(langFlagName), langKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", false, "print the rename mapping to stderr and log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), verboseKey)

	flags.BoolVar(&stripCommentsFlag, stripCommentsFlagName, defaults.StripComments, "remove comments from the output")
	bindFlagToConfig(flags.Lookup(stripCommentsFlagName), stripCommentsKey)

	flags.BoolVar(&paramsFlag, paramsFlagName, defaults.Policy.IncludeParameters, "rename function parameters")
	bindFlagToConfig(flags.Lookup(paramsFlagName), renameParamsKey)

	flags.StringVar(&underscoreFlag, underscoreFlagName, string(defaults.Policy.Underscore), "underscore policy: sentinel protects _ and __, private protects any leading underscore")
	bindFlagToConfig(flags.Lookup(underscoreFlagName), renameUnderKey)

	flags.StringArrayVar(&protectPrefixes, protectPrefixFlagName, nil, "never rename names with this prefix (can be repeated)")
	bindFlagToConfig(flags.Lookup(protectPrefixFlagName), renamePrefixesKey)

	flags.StringArrayVar(&symbolFiles, symbolsFlagName, nil, "YAML symbol table with protected names and module members (can be repeated)")
	bindFlagToConfig(flags.Lookup(symbolsFlagName), symbolsKey)

	flags.StringArrayVar(&pythonPaths, pythonPathFlagName, nil, "extra directory searched for imported Python modules (can be repeated)")
	bindFlagToConfig(flags.Lookup(pythonPathFlagName), pythonPathKey)

	flags.StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	cmd.Flags().StringVarP(&outputFlag, outputFlagName, "o", "", "write the result to this file instead of stdout")

	cmd.Flags().BoolVar(&diffFlag, diffFlagName, false, "print a unified diff instead of the code")
	bindFlagToConfig(cmd.Flags().Lookup(diffFlagName), diffKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
