package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"aidetect/internal/detect"
)

var (
	analyzeLanguage string
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Score files for machine-generation signals",
	Long: `Analyze one or more source files, or standard input when no file is
given. Prints a per-file verdict with the findings behind it.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "", "language hint for all inputs")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit raw JSON results")
}

var (
	flaggedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	clearStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	reqs, err := gatherRequests(args, cfg.Analysis.MaxFileBytes)
	if err != nil {
		return err
	}

	results, err := eng.AnalyzeMany(cmd.Context(), reqs)
	if err != nil {
		return err
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for i, res := range results {
		if i > 0 {
			fmt.Println()
		}
		printResult(res)
	}
	return nil
}

func gatherRequests(args []string, maxBytes int64) ([]detect.Request, error) {
	if len(args) == 0 {
		code, err := io.ReadAll(io.LimitReader(os.Stdin, maxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if int64(len(code)) > maxBytes {
			return nil, fmt.Errorf("stdin exceeds the %d byte analysis limit", maxBytes)
		}
		return []detect.Request{{Code: string(code), Language: analyzeLanguage, Filename: "<stdin>"}}, nil
	}

	reqs := make([]detect.Request, 0, len(args))
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Size() > maxBytes {
			return nil, fmt.Errorf("%s exceeds the %d byte analysis limit", path, maxBytes)
		}
		code, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, detect.Request{
			Code:     string(code),
			Language: analyzeLanguage,
			Filename: path,
		})
	}
	return reqs, nil
}

func printResult(res *detect.AnalysisResult) {
	verdict := clearStyle.Render(fmt.Sprintf("%d%% human-looking", 100-res.Percentage))
	if res.AIGenerated {
		verdict = flaggedStyle.Render(fmt.Sprintf("%d%% generated-looking", res.Percentage))
	}

	name := res.Filename
	if name == "" {
		name = "<input>"
	}
	fmt.Printf("%s  %s  %s\n", headerStyle.Render(name), verdict,
		mutedStyle.Render(fmt.Sprintf("[%s, %s confidence]", res.Language, res.Confidence)))

	for _, f := range res.Findings {
		marker := ""
		if f.Degraded {
			marker = mutedStyle.Render(" (degraded)")
		}
		fmt.Printf("  %s %2d  %s%s\n",
			categoryStyle.Render(fmt.Sprintf("%-10s", f.Category)),
			f.Score, f.Explanation, marker)
	}
	if len(res.Findings) == 0 {
		fmt.Println(mutedStyle.Render("  no findings"))
	}
	fmt.Println(wrapSummary(res.Summary))
}

func wrapSummary(s string) string {
	return mutedStyle.Render("  " + strings.TrimSpace(s))
}
