package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/diyashah3011/SmartPriceMonitor/config"
	catalogService "github.com/diyashah3011/SmartPriceMonitor/service/catalog"
)

var (
	importFile     string
	importBatch    int
	importCategory string
)

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Import products from CSV into the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := catalogService.ImportProducts(db, f, catalogService.ImportOptions{
			BatchSize:       importBatch,
			DefaultCategory: importCategory,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Import Report ===
CSV rows:       %d
Created:        %d
Updated:        %d
Skipped:        %d
Total time:     %s
  - Processing: %s
  - DB upsert:  %s
=====================
`, res.TotalRows, res.Created, res.Updated, res.Skipped,
			res.TotalTime.Round(time.Millisecond),
			res.ProcessTime.Round(time.Millisecond),
			res.DBTime.Round(time.Millisecond))
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().IntVar(&importBatch, "batch-size", 200, "Batch size for DB inserts")
	importCmd.Flags().StringVar(&importCategory, "category", "", "Default category for rows without one")
	rootCmd.AddCommand(importCmd)
}
