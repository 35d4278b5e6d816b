package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"aidetect/internal/detect"
	"aidetect/internal/watcher"
)

var watchDebounceMs int

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-analyze source files as they change",
	Long: `Watch a directory tree and score files on save. Only files matching
the configured extensions are analyzed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchDebounceMs, "debounce", 500, "quiet period in milliseconds before analyzing a batch")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	db := openStore(cfg, log)
	if db != nil {
		defer db.Close()
	}
	eng := newEngine(cfg, db, log)

	root := projectRoot()
	if len(args) == 1 {
		root = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := func(events []watcher.Event) {
		seen := make(map[string]bool)
		for _, ev := range events {
			if seen[ev.Path] {
				continue
			}
			seen[ev.Path] = true
			analyzeChanged(ctx, eng, ev.Path, cfg.Analysis.MaxFileBytes)
		}
	}

	w, err := watcher.New(root, watcher.Config{
		Extensions: cfg.Analysis.Extensions,
		Debounce:   time.Duration(watchDebounceMs) * time.Millisecond,
	}, handler, log)
	if err != nil {
		return err
	}

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func analyzeChanged(ctx context.Context, eng analyzerEngine, path string, maxBytes int64) {
	info, err := os.Stat(path)
	if err != nil || info.Size() > maxBytes {
		return
	}
	code, err := os.ReadFile(path)
	if err != nil {
		return
	}

	res, err := eng.Analyze(ctx, detect.Request{Code: string(code), Filename: path})
	if err != nil {
		return
	}
	fmt.Println()
	printResult(res)
}

// analyzerEngine is the slice of the engine the watch loop needs.
type analyzerEngine interface {
	Analyze(ctx context.Context, req detect.Request) (*detect.AnalysisResult, error)
}
