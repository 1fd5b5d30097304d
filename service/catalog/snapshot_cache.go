package catalog

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/config"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

const (
	snapshotKey = "smartprice:catalog:snapshot"
	snapshotTTL = 60 * time.Second
)

// CachedSnapshots returns the full catalog as engine products, served from
// Redis when a client is configured. Cache failures fall through to the
// database, they never fail the request.
func CachedSnapshots(db *gorm.DB) ([]engine.Product, error) {
	if config.RedisClient != nil {
		raw, err := config.RedisClient.Get(config.RedisCtx(), snapshotKey).Bytes()
		if err == nil {
			var products []engine.Product
			if json.Unmarshal(raw, &products) == nil {
				return products, nil
			}
		}
	}

	products, err := repository.GetProductRepository(db).Snapshots()
	if err != nil {
		return nil, err
	}
	if config.RedisClient != nil {
		if raw, err := json.Marshal(products); err == nil {
			config.RedisClient.Set(config.RedisCtx(), snapshotKey, raw, snapshotTTL)
		}
	}
	return products, nil
}

// InvalidateSnapshotCache drops the Redis snapshot after a catalog write.
func InvalidateSnapshotCache() {
	if config.RedisClient != nil {
		config.RedisClient.Del(config.RedisCtx(), snapshotKey)
	}
}
