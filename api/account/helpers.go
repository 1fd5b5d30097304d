package account

import (
	"strconv"

	"github.com/diyashah3011/SmartPriceMonitor/config"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}

func defaultEngine() *engine.Engine {
	if config.AppConfig != nil {
		return engine.New(config.AppConfig.Sellers...)
	}
	return engine.New()
}
