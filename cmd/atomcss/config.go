package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yacobolo/atomcss"
	"github.com/yacobolo/atomcss/internal/compiler"
	"github.com/yacobolo/atomcss/internal/shorthands"
)

const defaultConfigPath = ".atomcss.yaml"

var (
	k      = koanf.New(".")
	logger *zap.Logger
)

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	logger = newLogger(
		getBoolWithFallback("verbose", "verbose", false),
		getBoolWithFallback("quiet", "quiet", false),
	)
	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (ATOMCSS_* prefix)
	if err := k.Load(env.Provider("ATOMCSS_", ".", func(s string) string {
		// ATOMCSS_COMPILE_OUTPUT -> compile.output
		// ATOMCSS_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "ATOMCSS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// newLogger builds the console logger. Logs go to stderr so reports on
// stdout stay machine readable.
func newLogger(verbose, quiet bool) *zap.Logger {
	if quiet {
		return zap.NewNop()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if fi, err := os.Stderr.Stat(); err == nil && (fi.Mode()&os.ModeCharDevice) != 0 {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

// buildCompileConfig constructs the library's Config struct from koanf state.
func buildCompileConfig() (atomcss.Config, error) {
	config := atomcss.DefaultConfig()
	config.Root = getStringWithFallback("root", "compile.root", "")
	config.Output = getStringWithFallback("output", "compile.output", "atoms.css")
	config.Metadata = getStringWithFallback("metadata", "compile.metadata", "")
	config.Logger = logger

	if includes := getStringsWithFallback("include", "compile.include"); len(includes) > 0 {
		config.Includes = includes
	}
	config.Excludes = getStringsWithFallback("exclude", "compile.exclude")

	resolution := shorthands.Name(getStringWithFallback("style-resolution", "compile.style-resolution", string(shorthands.ApplicationOrder)))
	if _, err := shorthands.New(resolution); err != nil {
		return config, err
	}

	config.Compiler = compiler.Options{
		StyleResolution:       resolution,
		ClassNamePrefix:       getStringWithFallback("prefix", "compile.prefix", "x"),
		Dev:                   getBoolWithFallback("dev", "compile.dev", false),
		Debug:                 getBoolWithFallback("debug", "compile.debug", false),
		GenConditionalClasses: getBoolWithFallback("gen-conditional-classes", "compile.gen-conditional-classes", false),
		SkipConditional:       getBoolWithFallback("skip-conditional", "compile.skip-conditional", false),
		LegacyValueFlipping:   getBoolWithFallback("legacy-value-flipping", "compile.legacy-value-flipping", false),
		VendorPrefixes:        getBoolWithFallback("vendor-prefixes", "compile.vendor-prefixes", false),
		UseLayers:             getBoolWithFallback("layers", "compile.layers", false),
		Logger:                logger,
	}
	return config, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key.
func getStringsWithFallback(flagKey, configKey string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	return k.Strings(configKey)
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
