package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aidetect/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export analysis history as compressed JSON",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "aidetect-history.json.zst", "output path")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	db := openStore(cfg, log)
	if db == nil {
		return fmt.Errorf("nothing to export: storage is unavailable")
	}
	defer db.Close()

	records, err := db.AllRecords(cmd.Context())
	if err != nil {
		return err
	}
	if err := export.WriteFile(exportOut, records); err != nil {
		return err
	}

	fmt.Printf("exported %d records to %s\n", len(records), exportOut)
	return nil
}
