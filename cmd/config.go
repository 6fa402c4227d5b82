package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"distill.dev/pkg/distill/internal/config"
	m "distill.dev/pkg/distill/internal/model"
)

const (
	configBaseName   = "distill"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	configFlagName  = "config"
	reportsFlagName = "reports"
	verboseFlagName = "verbose"
	excludeFlagName = "exclude"
	dryRunFlagName  = "dry-run"
	applyFlagName   = "apply"
	diffFlagName    = "diff"
	workersFlagName = "workers"

	reportsConfigKey = "output.reports_dir"
	excludeConfigKey = "map.exclude"

	envPrefix = "DISTILL"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".distill.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setConfigDefaults(viper.GetViper(), config.Default())

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	// distill.yaml is optional; flags and env still apply without it.
	_ = viper.ReadInConfig()
}

// setConfigDefaults registers every configuration key so that env overrides
// resolve and `distill init` writes a complete file.
func setConfigDefaults(v *viper.Viper, cfg *config.Config) {
	v.SetDefault("version", cfg.Version)
	v.SetDefault("root", cfg.Root)

	v.SetDefault("map.head_lines", cfg.Map.HeadLines)
	v.SetDefault("map.extensions", cfg.Map.Extensions)
	v.SetDefault("map.exclude_dirs", cfg.Map.ExcludeDirs)
	v.SetDefault(excludeConfigKey, cfg.Map.Exclude)
	v.SetDefault("map.max_file_bytes", cfg.Map.MaxFileBytes)
	v.SetDefault("map.workers", cfg.Map.Workers)

	v.SetDefault("scoring.anchors", cfg.Scoring.Anchors)
	v.SetDefault("scoring.external_patterns", cfg.Scoring.ExternalPatterns)
	v.SetDefault("scoring.weights.anchor", cfg.Scoring.Weights.Anchor)
	v.SetDefault("scoring.weights.import", cfg.Scoring.Weights.Import)
	v.SetDefault("scoring.weights.import_cap", cfg.Scoring.Weights.ImportCap)
	v.SetDefault("scoring.weights.density", cfg.Scoring.Weights.Density)
	v.SetDefault("scoring.weights.density_cap", cfg.Scoring.Weights.DensityCap)
	v.SetDefault("scoring.weights.class", cfg.Scoring.Weights.Class)
	v.SetDefault("scoring.weights.class_cap", cfg.Scoring.Weights.ClassCap)
	v.SetDefault("scoring.weights.size_penalty", cfg.Scoring.Weights.SizePenalty)
	v.SetDefault("scoring.weights.large_file_bytes", cfg.Scoring.Weights.LargeFileBytes)
	v.SetDefault("scoring.weights.test", cfg.Scoring.Weights.Test)
	v.SetDefault("scoring.thresholds.keep", cfg.Scoring.Thresholds.Keep)
	v.SetDefault("scoring.thresholds.thin", cfg.Scoring.Thresholds.Thin)

	v.SetDefault("overrides.keep", cfg.Overrides.Keep)
	v.SetDefault("overrides.legacy", cfg.Overrides.Legacy)
	v.SetDefault("overrides.protected", cfg.Overrides.Protected)

	v.SetDefault("plan.thin_ratio", cfg.Plan.ThinRatio)
	v.SetDefault("plan.fan_in_warning", cfg.Plan.FanInWarning)
	v.SetDefault("plan.min_retained_ratio", cfg.Plan.MinRetainedRatio)
	v.SetDefault("plan.markdown_limit", cfg.Plan.MarkdownLimit)

	v.SetDefault("cut.workers", cfg.Cut.Workers)

	v.SetDefault("output.dir", cfg.Output.Dir)
	v.SetDefault(reportsConfigKey, cfg.Output.ReportsDir)
	v.SetDefault("output.archive_name", cfg.Output.ArchiveName)
	v.SetDefault("output.format", cfg.Output.Format)
}

// readConfigFile switches viper to an explicitly requested config file.
// Unlike the implicit distill.yaml, a missing explicit file is an error.
func readConfigFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	viper.SetConfigFile(path)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	return nil
}

// loadConfig unmarshals the merged viper state and validates it.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg := &config.Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", m.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
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
// By default it logs at log.level; if verbose is true it logs at Debug.
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
