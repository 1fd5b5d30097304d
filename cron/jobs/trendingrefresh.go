// Package jobs registers the scheduled maintenance jobs. Import it for side
// effects from the command wiring.
package jobs

import (
	"log"
	"sort"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/config"
	"github.com/diyashah3011/SmartPriceMonitor/core/cache"
	"github.com/diyashah3011/SmartPriceMonitor/cron"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

// trendingLimit is how many products carry the trending badge after a refresh.
const trendingLimit = 9

func init() {
	cron.Register("trending:refresh", "@every 6h", RefreshTrending)
}

// RefreshTrending recomputes the trending set from best-deal scores: the top
// scoring products get the badge, everything else loses it.
func RefreshTrending(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("trending:refresh: open db: %v", err)
		return
	}
	products := repository.GetProductRepository(db)

	snapshots, err := products.Snapshots()
	if err != nil {
		log.Printf("trending:refresh: load catalog: %v", err)
		return
	}

	eng := newEngine()
	type scored struct {
		id    uint
		score int
	}
	ranked := make([]scored, 0, len(snapshots))
	for i := range snapshots {
		deal := eng.BestDeal(&snapshots[i])
		if deal.Seller == "" {
			continue
		}
		ranked = append(ranked, scored{id: snapshots[i].ID, score: deal.Score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	limit := trendingLimit
	if limit > len(ranked) {
		limit = len(ranked)
	}
	ids := make([]uint, limit)
	for i := 0; i < limit; i++ {
		ids[i] = ranked[i].id
	}

	if err := products.SetTrending(ids); err != nil {
		log.Printf("trending:refresh: %v", err)
		return
	}
	cache.GetInstance().InvalidateTag(cache.TagCatalog)
	log.Printf("trending:refresh: %d products flagged", len(ids))
}

func newEngine() *engine.Engine {
	if config.AppConfig != nil {
		return engine.New(config.AppConfig.Sellers...)
	}
	return engine.New()
}
