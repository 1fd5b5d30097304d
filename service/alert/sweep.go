// Package alert evaluates price alerts against the current catalog.
package alert

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

// SweepResult reports one sweep run.
type SweepResult struct {
	Evaluated int
	Triggered int
	Orphaned  int
}

// Sweep checks every active alert against the cheapest available price of its
// product and deactivates the ones whose target has been reached. Alerts whose
// product no longer exists are deactivated without triggering.
func Sweep(db *gorm.DB, eng *engine.Engine) (*SweepResult, error) {
	alerts := repository.NewAlertRepository(db)
	products := repository.GetProductRepository(db)

	active, err := alerts.ListActive()
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}

	res := &SweepResult{Evaluated: len(active)}
	now := time.Now()
	for _, a := range active {
		p, err := products.FindByID(a.ProductID)
		if err == repository.ErrNotFound {
			if err := alerts.MarkTriggered(a.ID, now); err != nil {
				return res, fmt.Errorf("retire orphaned alert %d: %w", a.ID, err)
			}
			res.Orphaned++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("load product %d: %w", a.ProductID, err)
		}

		snap := p.Snapshot()
		price, ok := eng.CheapestPrice(&snap)
		if !ok || price > a.TargetPrice {
			continue
		}
		if err := alerts.MarkTriggered(a.ID, now); err != nil {
			return res, fmt.Errorf("trigger alert %d: %w", a.ID, err)
		}
		log.Printf("Price alert %d triggered: %s at %d (target %d)", a.ID, p.Name, price, a.TargetPrice)
		res.Triggered++
	}
	return res, nil
}
