package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/config"
	catalogService "github.com/diyashah3011/SmartPriceMonitor/service/catalog"
)

var seedCmd = &cobra.Command{
	Use:   "catalog:seed",
	Short: "Migrate the schema and install the default catalog",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		if err := repository.AutoMigrate(db); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			return
		}
		if err := catalogService.Seed(db); err != nil {
			fmt.Printf("Seeding failed: %v\n", err)
			return
		}
		fmt.Println("Catalog ready.")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
