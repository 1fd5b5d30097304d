package jobs

import (
	"log"

	"github.com/diyashah3011/SmartPriceMonitor/config"
	"github.com/diyashah3011/SmartPriceMonitor/cron"
	alertService "github.com/diyashah3011/SmartPriceMonitor/service/alert"
)

func init() {
	cron.Register("alerts:sweep", "@every 15m", SweepAlerts)
}

// SweepAlerts evaluates active price alerts against current offers.
func SweepAlerts(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("alerts:sweep: open db: %v", err)
		return
	}
	res, err := alertService.Sweep(db, newEngine())
	if err != nil {
		log.Printf("alerts:sweep: %v", err)
		return
	}
	log.Printf("alerts:sweep: %d evaluated, %d triggered, %d orphaned", res.Evaluated, res.Triggered, res.Orphaned)
}
