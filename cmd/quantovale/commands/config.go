package commands

import (
	"time"

	"quantovale/lib/configutil"
	"quantovale/lib/pricing"
)

type PricingConfig struct {
	BaseUrl        string `json:"base_url" env:"QUANTOVALE_PRICING_URL"`
	TimeoutSeconds int    `json:"timeout_seconds" env:"QUANTOVALE_PRICING_TIMEOUT"`
	RatePerMinute  int    `json:"rate_per_minute" env:"QUANTOVALE_PRICING_RATE_PER_MINUTE"`
}

type Config struct {
	Pricing PricingConfig `json:"pricing"`
}

func defaultConfig() Config {
	return Config{
		Pricing: PricingConfig{
			BaseUrl:        pricing.DefaultBaseUrl,
			TimeoutSeconds: int(pricing.DefaultTimeout / time.Second),
		},
	}
}

// loadConfig reads the config file, the environment and finally the
// --pricing-url flag, each one overriding the last.
func loadConfig(path, pricingUrl string) (Config, error) {
	cfg, err := configutil.Load(path, defaultConfig())
	if err != nil {
		return cfg, err
	}
	if pricingUrl != "" {
		cfg.Pricing.BaseUrl = pricingUrl
	}
	return cfg, nil
}

func (c Config) pricingOptions() pricing.Options {
	return pricing.Options{
		BaseUrl:       c.Pricing.BaseUrl,
		Timeout:       time.Duration(c.Pricing.TimeoutSeconds) * time.Second,
		RatePerMinute: c.Pricing.RatePerMinute,
	}
}
