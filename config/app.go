package config

import (
	"os"
	"strings"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName  string
	Port     string
	Env      string
	Debug    bool
	Currency string
	// Sellers is the seller priority order for price/deal tie-breaks.
	Sellers []string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		name := os.Getenv("APP_NAME")
		if name == "" {
			name = "SmartPrice Monitor"
		}
		currency := os.Getenv("CURRENCY")
		if currency == "" {
			currency = "INR"
		}
		AppConfig = &Config{
			AppName:  name,
			Port:     os.Getenv("PORT"),
			Env:      os.Getenv("APP_ENV"),
			Debug:    os.Getenv("DEBUG") == "true",
			Currency: currency,
			Sellers:  sellerPriority(),
		}
	})
}

// sellerPriority reads SELLER_PRIORITY as a comma-separated list; the seed
// catalog order is the default.
func sellerPriority() []string {
	raw := os.Getenv("SELLER_PRIORITY")
	if raw == "" {
		return []string{"amazon", "flipkart"}
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{"amazon", "flipkart"}
	}
	return out
}
