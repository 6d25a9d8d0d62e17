package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"quantovale/lib/pricing"
	"quantovale/lib/restyutil"
	"quantovale/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	pricingUrl string
	verbose    bool

	tel telemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:           "quantovale",
	Short:         "quantovale estimates the resale price of a used product.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "quantovale.json5", "Path to the config file.")
	flags.StringVar(&pricingUrl, "pricing-url", "", "Base url of the pricing service, overrides the config.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output and dump http traffic to .dev/resty.")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if shutdownErr := tel.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and telemetry, it runs after logging has been
// pointed at the right place by the subcommand.
func setup(ctx context.Context) (*pricing.Client, error) {
	var err error
	tel, err = telemetry.SetupFromEnv(ctx, "quantovale")
	if err != nil {
		slog.Warn("failed to setup telemetry, continuing without it", "err", err)
	}

	cfg, err := loadConfig(configPath, pricingUrl)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	slog.Debug(
		"loaded config",
		"base_url", cfg.Pricing.BaseUrl,
		"timeout_seconds", cfg.Pricing.TimeoutSeconds,
		"rate_per_minute", cfg.Pricing.RatePerMinute,
	)

	opts := cfg.pricingOptions()
	if verbose {
		out, err := restyutil.NewFilesystemOutput(".dev/resty")
		if err != nil {
			slog.Warn("http dumps disabled", "err", err)
		} else {
			opts.Output = out
		}
	}
	return pricing.New(opts), nil
}
