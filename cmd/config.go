package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "shroud.dev/pkg/shroud/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "shroud"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	complexityFlagName    = "complexity"
	langFlagName          = "lang"
	verboseFlagName       = "verbose"
	stripCommentsFlagName = "strip-comments"
	paramsFlagName        = "params"
	underscoreFlagName    = "underscore"
	protectPrefixFlagName = "protect-prefix"
	symbolsFlagName       = "symbols"
	pythonPathFlagName    = "python-path"
	diffFlagName          = "diff"
	logFileFlagName       = "log-file"
	outputFlagName        = "output"
	outDirFlagName        = "out-dir"
	parallelFlagName      = "parallel"

	complexityKey      = "complexity"
	langKey            = "lang"
	verboseKey         = "verbose"
	stripCommentsKey   = "strip_comments"
	diffKey            = "diff"
	renameParamsKey    = "rename.parameters"
	renameUnderKey     = "rename.underscore"
	renamePrefixesKey  = "rename.protect_prefixes"
	renameNamesKey     = "rename.names"
	symbolsKey         = "symbols"
	pythonPathKey      = "python.path"
	batchParallelKey   = "batch.parallel"
	batchOutDirKey     = "batch.out_dir"
	defaultBatchOutDir = "obfuscated"

	defaultBatchParallel = 4

	envPrefix = "SHROUD"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".shroud.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	defaults := m.DefaultOptions()

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(complexityKey, defaults.Complexity)
	viper.SetDefault(langKey, string(m.LanguageAuto))
	viper.SetDefault(verboseKey, false)
	viper.SetDefault(stripCommentsKey, defaults.StripComments)
	viper.SetDefault(diffKey, false)
	viper.SetDefault(renameParamsKey, defaults.Policy.IncludeParameters)
	viper.SetDefault(renameUnderKey, string(defaults.Policy.Underscore))
	viper.SetDefault(renamePrefixesKey, []string{})
	viper.SetDefault(renameNamesKey, []string{})
	viper.SetDefault(symbolsKey, []string{})
	viper.SetDefault(pythonPathKey, []string{})
	viper.SetDefault(batchParallelKey, defaultBatchParallel)
	viper.SetDefault(batchOutDirKey, defaultBatchOutDir)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// optionsFromConfig assembles pipeline options from flags, environment and
// shroud.yaml. complexity overrides the configured value when positive.
func optionsFromConfig(complexity int) (m.Options, error) {
	opts := m.DefaultOptions()

	opts.Complexity = viper.GetInt(complexityKey)
	if complexity > 0 {
		opts.Complexity = complexity
	}

	if opts.Complexity < 1 {
		return m.Options{}, fmt.Errorf("complexity must be at least 1, got %d", opts.Complexity)
	}

	underscore, err := m.ParseUnderscorePolicy(viper.GetString(renameUnderKey))
	if err != nil {
		return m.Options{}, err
	}

	opts.StripComments = viper.GetBool(stripCommentsKey)
	opts.Policy = m.Policy{
		Underscore:        underscore,
		IncludeParameters: viper.GetBool(renameParamsKey),
		ProtectPrefixes:   viper.GetStringSlice(renamePrefixesKey),
		Names:             viper.GetStringSlice(renameNamesKey),
	}
	opts.Symbols = toPaths(viper.GetStringSlice(symbolsKey))
	opts.SearchPaths = toPaths(viper.GetStringSlice(pythonPathKey))

	return opts, nil
}

func languageFromConfig() (m.Language, error) {
	value := viper.GetString(langKey)

	language, ok := m.ParseLanguage(value)
	if !ok {
		return "", fmt.Errorf("%w: %q (want auto, python or go)", m.ErrUnsupportedLanguage, value)
	}

	return language, nil
}

// parseComplexity reads the optional positional complexity argument.
func parseComplexity(args []string, position int) (int, error) {
	if len(args) <= position {
		return 0, nil
	}

	value, err := strconv.Atoi(args[position])
	if err != nil || value < 1 {
		return 0, fmt.Errorf("complexity must be a positive integer, got %q", args[position])
	}

	return value, nil
}

func toPaths(values []string) []m.Path {
	paths := make([]m.Path, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			paths = append(paths, m.Path(value))
		}
	}

	return paths
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
