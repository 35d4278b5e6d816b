package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"aidetect/internal/profile"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their analysis depth",
	RunE:  runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	ids := profile.IDs()
	sort.Strings(ids)

	fmt.Println(headerStyle.Render("Supported languages"))
	for _, id := range ids {
		p, ok := profile.ByID(id)
		if !ok {
			continue
		}
		depth := "lexical"
		if p.Structural {
			depth = "structural"
		}
		fmt.Printf("  %-12s %-10s %s\n", p.Name, depth, strings.Join(p.Extensions, " "))
	}
	fmt.Println(mutedStyle.Render("  unrecognized languages fall back to text-level analysis"))
	return nil
}
