package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	historyPage    int
	historyPerPage int
	historyJSON    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show stored analysis history",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyPage, "page", 1, "page number")
	historyCmd.Flags().IntVar(&historyPerPage, "per-page", 20, "rows per page")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "emit raw JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	db := openStore(cfg, log)
	if db == nil {
		return fmt.Errorf("no history: storage is unavailable")
	}
	defer db.Close()

	records, total, err := db.ListAnalyses(cmd.Context(), historyPage, historyPerPage)
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"records": records,
			"total":   total,
		})
	}

	if len(records) == 0 {
		fmt.Println("no analyses recorded")
		return nil
	}

	fmt.Printf("%s (%d total)\n", headerStyle.Render("Analysis history"), total)
	for _, rec := range records {
		verdict := clearStyle.Render("human")
		if rec.AIGenerated {
			verdict = flaggedStyle.Render("flagged")
		}
		name := rec.Filename
		if name == "" {
			name = rec.Fingerprint[:12]
		}
		fmt.Printf("  %s  %-9s %3d%%  %-10s  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Language, rec.Percentage, verdict, name)
	}
	return nil
}
