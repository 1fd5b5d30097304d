//go:build cli
// +build cli

package main

import (
	_ "github.com/diyashah3011/SmartPriceMonitor/custom"

	"github.com/diyashah3011/SmartPriceMonitor/cmd"
	"github.com/diyashah3011/SmartPriceMonitor/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
