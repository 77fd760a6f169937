package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"salary-compass/config"
	"salary-compass/domain"
	httpLayer "salary-compass/http"
	"salary-compass/repository"
	"salary-compass/service"
	"salary-compass/tools"
)

const (
	shutdownTimeout     = 10 * time.Second
	cachePurgeInterval  = 1 * time.Hour
	cacheConnectTimeout = 3 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

With --mcp the estimator tools are also served over MCP on stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		withMCP, _ := cmd.Flags().GetBool("mcp")
		envFile, _ := cmd.Flags().GetString("env-file")
		return runServer(envFile, withMCP)
	},
}

func init() {
	serveCmd.Flags().Bool("mcp", false, "also serve MCP over stdio")
	serveCmd.Flags().String("env-file", ".env", "dotenv file to load if present")
	rootCmd.AddCommand(serveCmd)
}

// openCache returns the configured generation cache and a func releasing
// it. Redis is pinged up front so a bad address fails at startup.
func openCache(ctx context.Context, cfg config.CacheConfig) (repository.CacheRepository, func(), error) {
	switch cfg.Backend {
	case config.CacheRedis:
		cache := repository.NewRedisCache(cfg.RedisAddr)
		pingCtx, cancel := context.WithTimeout(ctx, cacheConnectTimeout)
		defer cancel()
		if err := cache.Ping(pingCtx); err != nil {
			cache.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		return cache, func() { cache.Close() }, nil

	case config.CacheSQLite:
		cache, err := repository.OpenSQLiteCache(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		purgeCtx, stop := context.WithCancel(ctx)
		go purgeLoop(purgeCtx, cache)
		return cache, func() {
			stop()
			cache.Close()
		}, nil

	default:
		return repository.NewMemoryCache(), func() {}, nil
	}
}

func purgeLoop(ctx context.Context, cache *repository.SQLiteCache) {
	ticker := time.NewTicker(cachePurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := cache.PurgeExpired(ctx)
			if err != nil {
				slog.Warn("purging expired cache entries", "error", err)
				continue
			}
			slog.Debug("purged expired cache entries", "count", n)
		case <-ctx.Done():
			return
		}
	}
}

// newGenerator returns nil when no API key is configured; the generation
// service then answers every request with its fallback.
func newGenerator(cfg config.GenerationConfig) (service.TextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	return service.NewOpenAIGenerator(cfg.APIKey, cfg.Model, cfg.BaseURL)
}

func newGenerationService(cfg config.Config, cache repository.CacheRepository) (*service.GenerationService, error) {
	gen, err := newGenerator(cfg.Generation)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		printWarning("OPENAI_API_KEY not set: generation requests will be answered with fallbacks")
	}
	return service.NewGenerationService(gen, cache, service.GenerationConfig{
		Model:         cfg.Generation.Model,
		FallbackModel: cfg.Generation.FallbackModel,
		CacheTTL:      cfg.Cache.TTL,
		Timeout:       cfg.Generation.Timeout,
		Features: map[domain.RequestKind]bool{
			domain.KindInsights:          cfg.Generation.Insights,
			domain.KindNormalizeTitle:    cfg.Generation.NormalizeTitle,
			domain.KindNegotiationScript: cfg.Generation.NegotiationScript,
		},
	}), nil
}

func runServer(envFile string, withMCP bool) error {
	fmt.Fprintf(os.Stderr, "salary-compass version %s\n", version)

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()
	slog.Info("generation cache ready", "backend", cfg.Cache.Backend)

	generation, err := newGenerationService(cfg, cache)
	if err != nil {
		return err
	}

	estimator := service.NewSalaryEstimator(service.DefaultCoefficients())
	share := service.NewShareService(cfg.Share.BaseURL)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Estimate:   httpLayer.NewEstimateHandler(estimator, share),
		Share:      httpLayer.NewShareHandler(estimator, share),
		Generation: httpLayer.NewGenerationHandler(generation),
		Limiter:    rateLimiter,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	if withMCP {
		startMCP(ctx, tools.MCPDeps{Estimator: estimator, Share: share, Version: version}, os.Stdin, os.Stdout)
	}

	serverErr := make(chan error, 1)
	go func() {
		printSuccess("API listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("starting server: %w", err)
		}
	case <-ctx.Done():
		printStep("shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	slog.Info("server exited")
	return nil
}

func startMCP(ctx context.Context, deps tools.MCPDeps, in io.Reader, out io.Writer) {
	stdioSrv := server.NewStdioServer(tools.NewMCPServer(deps))
	go func() {
		if err := stdioSrv.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP stdio server error", "error", err)
		}
	}()
	slog.Info("MCP server started (stdio transport)")
}
