package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-corpus/internal/search"
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Print the search vocabulary, or export it to a term file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadPipelineConfig()

		if path, _ := cmd.Flags().GetString("write"); path != "" {
			if err := search.WriteTermFile(path, cfg.Terms, cfg.Classifications); err != nil {
				return err
			}
			fmt.Printf("wrote %d terms and %d classifications to %s\n",
				len(cfg.Terms), len(cfg.Classifications), path)
			return nil
		}

		fmt.Println("Search terms:")
		for _, t := range cfg.Terms {
			fmt.Println("  " + t)
		}
		fmt.Println("\nClassification codes:")
		for _, c := range cfg.Classifications {
			fmt.Println("  " + c)
		}
		return nil
	},
}

func init() {
	termsCmd.Flags().String("write", "", "write the vocabulary to a YAML term file")

	rootCmd.AddCommand(termsCmd)
}
