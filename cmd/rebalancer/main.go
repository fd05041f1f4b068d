package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/rebalancer/config"
	"github.com/alejandrodnm/rebalancer/internal/adapters/api"
	"github.com/alejandrodnm/rebalancer/internal/adapters/cache"
	"github.com/alejandrodnm/rebalancer/internal/adapters/convex"
	"github.com/alejandrodnm/rebalancer/internal/adapters/defillama"
	"github.com/alejandrodnm/rebalancer/internal/adapters/equilibre"
	"github.com/alejandrodnm/rebalancer/internal/adapters/equilibria"
	"github.com/alejandrodnm/rebalancer/internal/adapters/notify"
	"github.com/alejandrodnm/rebalancer/internal/adapters/quickswap"
	"github.com/alejandrodnm/rebalancer/internal/adapters/storage"
	"github.com/alejandrodnm/rebalancer/internal/adapters/sushiswap"
	"github.com/alejandrodnm/rebalancer/internal/adapters/upstream"
	"github.com/alejandrodnm/rebalancer/internal/application/composition"
	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/ports"
	"github.com/alejandrodnm/rebalancer/internal/registry"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "compose once and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full breakdown table (default: compact 1-line)")
	merge := flag.String("merge", "", "merge mode: pool|collapsed (overrides config)")
	serve := flag.Bool("serve", false, "start the HTTP API next to the composer loop")
	positions := flag.Bool("positions", false, "resolve the APR of every registry position and exit")
	history := flag.String("history", "", "print the stored history of a strategy (last 7 days) and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *merge != "" {
		cfg.Composer.MergeMode = *merge
	}
	if *serve {
		cfg.HTTP.Enabled = true
	}
	setupLogger(cfg.Log)

	mergeMode, err := domain.ParseMergeMode(cfg.Composer.MergeMode)
	if err != nil {
		slog.Error("invalid merge mode", "err", err)
		os.Exit(1)
	}

	slog.Info("rebalancer starting",
		"config", *configPath,
		"interval", cfg.ComposeInterval(),
		"strategies", cfg.Composer.Strategies,
		"merge_mode", mergeMode,
		"once", *once,
		"serve", cfg.HTTP.Enabled,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg, err := registry.Default()
	if err != nil {
		slog.Error("failed to build registry", "err", err)
		os.Exit(1)
	}

	docCache, closeCache := openCache(ctx, cfg)
	defer closeCache()

	newClient := func(source, base string) *upstream.Client {
		opts := []upstream.Option{
			upstream.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second}),
			upstream.WithRateLimit(cfg.Upstream.RequestsPerSecond, cfg.Upstream.Burst),
			upstream.WithRetry(cfg.Upstream.MaxRetries, time.Duration(cfg.Upstream.RetryBaseMillis)*time.Millisecond),
		}
		if docCache != nil {
			opts = append(opts, upstream.WithCache(docCache, cfg.CacheTTL()))
		}
		return upstream.NewClient(source, base, opts...)
	}

	normalize := cfg.Normalizer()
	eq := equilibria.New(newClient(equilibria.Source, cfg.API.EquilibriaBase), normalize)
	sushi := sushiswap.New(newClient(sushiswap.Source, cfg.API.SushiswapBase))
	llama := defillama.New(
		newClient(defillama.Source, cfg.API.YieldsBase),
		newClient(defillama.CoinsSource, cfg.API.CoinsBase),
		normalize,
	)

	resolver := composition.NewResolver(composition.Quoters{
		PoolToken:  eq,
		EPendle:    eq,
		Pair:       equilibre.New(newClient(equilibre.Source, cfg.API.EquilibreBase)),
		LockedCVX:  convex.New(newClient(convex.Source, cfg.API.ConvexBase)),
		Hypervisor: quickswap.New(newClient(quickswap.Source, cfg.API.QuickswapBase)),
		PoolYield:  llama,
	})

	strategies, err := cfg.BuildStrategies()
	if err != nil {
		slog.Error("invalid strategies", "err", err)
		os.Exit(1)
	}
	orchestrator, err := composition.NewOrchestrator(strategies, map[composition.Protocol]ports.BreakdownFetcher{
		composition.ProtocolEquilibria: eq,
		composition.ProtocolSushiswap:  sushi,
	}, composition.Options{
		MergeMode: mergeMode,
		Parallel:  cfg.Composer.Parallel,
		Timeout:   cfg.ComposeTimeout(),
	})
	if err != nil {
		slog.Error("failed to build orchestrator", "err", err)
		os.Exit(1)
	}

	notifier := notify.NewConsole(*table || cfg.Composer.TableOutput)

	if *positions {
		yields := composition.PositionYields(ctx, reg, resolver)
		notifier.PrintPositions(reg, yields)
		return
	}

	var store ports.Storage
	if cfg.Composer.StoreSnapshots || cfg.HTTP.Enabled || *history != "" {
		s, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	if *history != "" {
		to := time.Now()
		pcs, err := store.GetHistory(ctx, *history, to.Add(-7*24*time.Hour), to)
		if err != nil {
			slog.Error("failed to read history", "err", err, "strategy", *history)
			os.Exit(1)
		}
		notifier.PrintHistory(*history, pcs)
		return
	}

	// El loop solo persiste si store_snapshots está activo; la API lee el histórico igualmente
	var loopStore ports.Storage
	if cfg.Composer.StoreSnapshots {
		loopStore = store
	}
	svc := composition.NewService(composition.ServiceConfig{
		Interval:   cfg.ComposeInterval(),
		Strategies: cfg.Composer.Strategies,
		DryRun:     *once,
	}, orchestrator, loopStore, notifier)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svc.Run(gctx)
	})
	if cfg.HTTP.Enabled && !*once {
		server := api.NewServer(api.Config{
			Addr:           cfg.HTTP.Addr,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			RequestTimeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		}, api.Deps{
			Composer: orchestrator,
			Registry: reg,
			Resolver: resolver,
			Prices:   llama,
			Storage:  store,
		})
		g.Go(func() error {
			return server.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("rebalancer exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("rebalancer stopped cleanly")
}

// openCache devuelve el cache de documentos configurado (nil si está
// desactivado) y su función de cierre.
func openCache(ctx context.Context, cfg *config.Config) (ports.DocumentCache, func()) {
	if !cfg.Cache.Enabled {
		return nil, func() {}
	}
	if cfg.Cache.RedisURL != "" {
		r, err := cache.NewRedis(ctx, cfg.Cache.RedisURL)
		if err == nil {
			slog.Info("document cache: redis")
			return r, func() { r.Close() }
		}
		slog.Warn("redis unavailable, falling back to in-memory cache", "err", err)
	}
	m, err := cache.NewMemory(cfg.Cache.MaxCostMB << 20)
	if err != nil {
		slog.Warn("in-memory cache disabled", "err", err)
		return nil, func() {}
	}
	slog.Info("document cache: memory", "max_cost_mb", cfg.Cache.MaxCostMB)
	return m, m.Close
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
