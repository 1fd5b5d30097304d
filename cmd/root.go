// Package cmd implements the CLI entry points.
package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smartprice",
	Short: "SmartPrice Monitor command line tools",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		banner()
	},
}

// banner prints the ASCII name on start (random font each run).
func banner() {
	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
	fig := figure.NewFigure("SmartPrice", fonts[rand.Intn(len(fonts))], true)
	fig.Print()
	fmt.Println("Price comparison toolkit")
}

// Execute runs the root command with every registered subcommand attached.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
