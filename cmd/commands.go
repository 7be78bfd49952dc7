package cmd

import (
	"context"
	"cryptofolio/api"
	"cryptofolio/internal/calculator"
	"cryptofolio/internal/domain"
	"cryptofolio/internal/logger"
	"cryptofolio/internal/util"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type runFunc func(ctx context.Context, c *cobra.Command, config *util.Config, handler *api.ApiHandler) error

// withDependencies loads the config and wires the services around fn.
func withDependencies(fn runFunc) func(c *cobra.Command, args []string) error {
	return func(c *cobra.Command, args []string) error {
		config, err := util.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		handler, err := InitializeDependencies(config)
		if err != nil {
			return err
		}
		defer CloseDependencies(handler)

		ctx := c.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = logger.WithLogger(ctx, logger.New().With("command", c.Name()))

		return fn(ctx, c, config, handler)
	}
}

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cryptofolio",
		Short:         "Track crypto holdings across exchanges and wallets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCommand(),
		newSnapshotCommand(),
		newExportCommand(),
		newPlatformsCommand(),
	)
	return root
}

func newServeCommand() *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the background refresh loop",
		RunE: withDependencies(func(ctx context.Context, c *cobra.Command, config *util.Config, handler *api.ApiHandler) error {
			if port == 0 {
				port = config.Port
			}
			go handler.PortfolioService.StartPolling(ctx, config.RefreshInterval())

			logger.FromContext(ctx).Infof("listening on :%d", port)
			return handler.StartApi(port)
		}),
	}
	c.Flags().IntVar(&port, "port", 0, "port to listen on (defaults to the configured port)")
	return c
}

func newSnapshotCommand() *cobra.Command {
	var (
		refresh bool
		asJson  bool
		top     int
	)
	c := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch every platform and print holdings, totals and allocation",
		RunE: withDependencies(func(ctx context.Context, c *cobra.Command, config *util.Config, handler *api.ApiHandler) error {
			snapshot, err := fetchSnapshot(ctx, handler, refresh)
			if err != nil {
				return err
			}
			if asJson {
				return writeJson(c.OutOrStdout(), snapshot)
			}
			return WriteSnapshotReport(c.OutOrStdout(), snapshot, top)
		}),
	}
	c.Flags().BoolVar(&refresh, "refresh", false, "ignore any cached snapshot")
	c.Flags().BoolVar(&asJson, "json", false, "print the raw snapshot as JSON")
	c.Flags().IntVar(&top, "top", calculator.DefaultTopAssets, "assets shown before grouping the rest as Others")
	return c
}

func newExportCommand() *cobra.Command {
	var (
		kind string
		out  string
	)
	c := &cobra.Command{
		Use:   "export",
		Short: "Export aggregated assets or raw holdings as CSV",
		RunE: withDependencies(func(ctx context.Context, c *cobra.Command, config *util.Config, handler *api.ApiHandler) error {
			snapshot, err := fetchSnapshot(ctx, handler, false)
			if err != nil {
				return err
			}

			w := c.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			switch kind {
			case "assets":
				return WriteAssetsCsv(w, snapshot.Platforms)
			case "holdings":
				return WriteHoldingsCsv(w, snapshot.Platforms)
			default:
				return fmt.Errorf("unknown export kind %q, expected assets or holdings", kind)
			}
		}),
	}
	c.Flags().StringVar(&kind, "kind", "assets", "assets or holdings")
	c.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return c
}

func newPlatformsCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "platforms",
		Short: "Manage configured platforms",
	}
	c.AddCommand(newPlatformsListCommand(), newPlatformsAddCommand())
	return c
}

func newPlatformsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured platforms",
		RunE: withDependencies(func(ctx context.Context, c *cobra.Command, config *util.Config, handler *api.ApiHandler) error {
			configs, err := handler.PortfolioService.ListPlatformConfigs(ctx)
			if err != nil {
				return err
			}
			return WritePlatformConfigs(c.OutOrStdout(), configs)
		}),
	}
}

func newPlatformsAddCommand() *cobra.Command {
	cfg := domain.PlatformConfig{}
	var platformType string
	c := &cobra.Command{
		Use:   "add",
		Short: "Add a platform",
		RunE: withDependencies(func(ctx context.Context, c *cobra.Command, config *util.Config, handler *api.ApiHandler) error {
			cfg.Type = domain.PlatformType(platformType)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := handler.PortfolioService.AddPlatform(ctx, cfg); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "added %s (%s)\n", cfg.Name, cfg.Type)
			return nil
		}),
	}
	c.Flags().StringVar(&platformType, "type", "", "binance or multiversx")
	c.Flags().StringVar(&cfg.Name, "name", "", "unique display name")
	c.Flags().StringVar(&cfg.ApiKey, "api-key", "", "exchange API key")
	c.Flags().StringVar(&cfg.ApiSecret, "api-secret", "", "exchange API secret")
	c.Flags().StringVar(&cfg.WalletAddress, "wallet", "", "wallet address")
	c.MarkFlagRequired("type")
	c.MarkFlagRequired("name")
	return c
}

func fetchSnapshot(ctx context.Context, handler *api.ApiHandler, refresh bool) (*domain.Snapshot, error) {
	if refresh {
		return handler.PortfolioService.Refresh(ctx)
	}
	return handler.PortfolioService.GetSnapshot(ctx)
}

func writeJson(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

func WritePlatformConfigs(w io.Writer, configs []domain.PlatformConfig) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tAPI KEY\tWALLET")
	for _, cfg := range configs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cfg.Name, cfg.Type, MaskSecret(cfg.ApiKey), valueOrDash(cfg.WalletAddress))
	}
	return tw.Flush()
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
