package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/mfrandev/risk-assessment-engine/internal/riskapi"
	"github.com/mfrandev/risk-assessment-engine/internal/riskcfg"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the risk engine as an HTTP service",
	Long: `serve starts riskctl's HTTP server: POST /v1/hvar, /v1/mcvar, and
/v1/greeks, a per-run WebSocket progress feed, and the ambient
/healthz and /metrics endpoints.

Configuration is read from RISK_-prefixed environment variables and,
if --config is set, a YAML file; see internal/riskcfg for the full
key list.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "optional YAML config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := riskcfg.Load(serveConfigPath)
	if err != nil {
		return err
	}

	var cache riskapi.ResultCache = riskapi.NoopResultCache{}
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		rdb := redis.NewClient(opt)
		defer rdb.Close()
		cache = riskapi.NewRedisResultCache(rdb, cfg.CacheTTL)
		slog.Info("riskctl: redis result cache enabled", "ttl", cfg.CacheTTL)
	} else {
		slog.Warn("riskctl: RISK_REDIS_URL not set, result caching disabled")
	}

	hub := riskapi.NewRunHub()
	go hub.Run()

	srv := riskapi.NewServer(cfg.ListenAddr, hub, cache)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.ListenAndServe(ctx, 10*time.Second); err != nil {
		slog.Error("riskctl: server error", "err", err)
		os.Exit(1)
	}
	return nil
}
