package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the stored analysis history",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit raw JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	db := openStore(cfg, log)
	if db == nil {
		return fmt.Errorf("no stats: storage is unavailable")
	}
	defer db.Close()

	stats, err := db.GetStats(cmd.Context())
	if err != nil {
		return err
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Println(headerStyle.Render("Analysis statistics"))
	fmt.Printf("  analyses: %d\n", stats.TotalAnalyses)
	fmt.Printf("  flagged:  %d\n", stats.FlaggedCount)
	fmt.Printf("  average:  %.1f%%\n", stats.AvgPercentage)

	if len(stats.ByLanguage) > 0 {
		fmt.Println("  by language:")
		langs := make([]string, 0, len(stats.ByLanguage))
		for lang := range stats.ByLanguage {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		for _, lang := range langs {
			fmt.Printf("    %-12s %d\n", lang, stats.ByLanguage[lang])
		}
	}
	return nil
}
