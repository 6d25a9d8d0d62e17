package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"quantovale/lib/pricing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "quantovale.json5"), "")
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)

	opts := cfg.pricingOptions()
	require.Equal(t, pricing.DefaultBaseUrl, opts.BaseUrl)
	require.Equal(t, pricing.DefaultTimeout, opts.Timeout)
	require.Zero(t, opts.RatePerMinute)
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quantovale.json5")
	err := os.WriteFile(path, []byte(`{
		pricing: {
			base_url: "http://file:5000",
			timeout_seconds: 4,
			rate_per_minute: 30,
		},
	}`), 0600)
	require.NoError(t, err)

	cfg, err := loadConfig(path, "")
	require.NoError(t, err)
	require.Equal(t, "http://file:5000", cfg.Pricing.BaseUrl)
	require.Equal(t, 4*time.Second, cfg.pricingOptions().Timeout)
	require.Equal(t, 30, cfg.Pricing.RatePerMinute)

	t.Setenv("QUANTOVALE_PRICING_URL", "http://env:5000")
	t.Setenv("QUANTOVALE_PRICING_TIMEOUT", "2")
	cfg, err = loadConfig(path, "")
	require.NoError(t, err)
	require.Equal(t, "http://env:5000", cfg.Pricing.BaseUrl)
	require.Equal(t, 2, cfg.Pricing.TimeoutSeconds)

	cfg, err = loadConfig(path, "http://flag:5000")
	require.NoError(t, err)
	require.Equal(t, "http://flag:5000", cfg.Pricing.BaseUrl)
}
