package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"aidetect/internal/config"
	"aidetect/internal/detect"
	"aidetect/internal/engine"
	"aidetect/internal/logging"
	"aidetect/internal/storage"
	"aidetect/internal/version"
)

var (
	rootFlag     string
	logLevelFlag string
	logJSONFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "aidetect",
	Short: "Heuristic detector for machine-generated source code",
	Long: `aidetect scores source files for signals of machine generation:
documentation habits, identifier choice, stereotyped fragments, and layout
regularity. Results are percentages with per-category findings, not proof.`,
	Version:       version.Full(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.SetVersionTemplate("aidetect {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "project root (default: working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSONFlag, "log-json", false, "emit JSON logs")
}

func projectRoot() string {
	if rootFlag != "" {
		return rootFlag
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(projectRoot())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	lc := logging.Config{
		Format:     logging.Format(cfg.Logging.Format),
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	if logLevelFlag != "" {
		lc.Level = logLevelFlag
	}
	if logJSONFlag {
		lc.Format = logging.JSONFormat
	}
	return logging.New(lc)
}

// openStore opens the result store under the project root. Storage is
// best-effort for CLI use; a failure degrades to uncached analysis.
func openStore(cfg *config.Config, log zerolog.Logger) *storage.DB {
	dir := cfg.Storage.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectRoot(), dir)
	}
	db, err := storage.Open(dir, log)
	if err != nil {
		log.Warn().Err(err).Msg("storage unavailable, continuing without history")
		return nil
	}
	return db
}

func newEngine(cfg *config.Config, db *storage.DB, log zerolog.Logger) *engine.Engine {
	detector := detect.NewDetector(detect.HeuristicGrammarChecker{})
	detector.Concurrency = cfg.Analysis.Concurrency
	ttl := time.Duration(cfg.Storage.CacheTTLSeconds) * time.Second
	var store engine.Store
	if db != nil {
		store = db
	}
	return engine.New(detector, store, ttl, log)
}
