package cmd

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	m "shroud.dev/pkg/shroud/internal/model"
)

const gpythonModule = "github.com/go-python/gpython"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version and the supported languages",
		Long: `Displays the shroud build version, the Go toolchain and Python parser
versions it was built with, and the source languages it can obfuscate.`,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				info = &debug.BuildInfo{}
			}

			for _, line := range versionLines(info) {
				cmd.Println(line)
			}
		},
	}
}

// versionLines renders build information as "label\tvalue" lines.
func versionLines(info *debug.BuildInfo) []string {
	tool := info.Main.Version
	if tool == "" {
		tool = "unknown"
	}

	goVersion := info.GoVersion
	if goVersion == "" {
		goVersion = runtime.Version()
	}

	parser := "unknown"

	for _, dep := range info.Deps {
		if dep.Path != gpythonModule {
			continue
		}

		parser = dep.Version
		if dep.Replace != nil {
			parser = dep.Replace.Version
		}
	}

	languages := make([]string, 0, 2)
	for _, language := range m.SupportedLanguages() {
		languages = append(languages, string(language))
	}

	return []string{
		"shroud version\t" + tool,
		"go version\t" + goVersion,
		"gpython version\t" + parser,
		"languages\t" + strings.Join(languages, ", "),
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
