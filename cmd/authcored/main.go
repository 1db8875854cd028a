// Command authcored runs the OAuth2 authorization server daemon.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tokengate/authcore/endpoint"
	"github.com/tokengate/authcore/internal/cache"
	memcache "github.com/tokengate/authcore/internal/cache/memory"
	redcache "github.com/tokengate/authcore/internal/cache/redis"
	"github.com/tokengate/authcore/internal/config"
	"github.com/tokengate/authcore/internal/http/controllers/oauth"
	"github.com/tokengate/authcore/internal/http/controllers/resource"
	"github.com/tokengate/authcore/internal/http/router"
	"github.com/tokengate/authcore/internal/metrics"
	"github.com/tokengate/authcore/internal/observability/logger"
	"github.com/tokengate/authcore/internal/store"
	pgdir "github.com/tokengate/authcore/internal/store/pg"
)

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:           "authcored",
		Short:         "OAuth2 authorization server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfgPath)
		},
	}
	root.AddCommand(serve)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "authcored:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	_ = godotenv.Load(".env")

	cfg, err := config.Load(cfgPath)
	if err != nil && cfgPath != "config.yaml" {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg == nil {
		// Default config path missing is fine; run on defaults and env.
		if cfg, err = config.Load(""); err != nil {
			return err
		}
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "authcored"})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("main")

	c, err := buildCache(cfg)
	if err != nil {
		return err
	}

	dir, cleanup, err := buildDirectory(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	st := store.New(store.Deps{
		Directory: dir,
		Cache:     c,
		Options: store.Options{
			AccessTokenTTL: cfg.AccessTTL(),
			CodeTTL:        cfg.CodeTTL(),
		},
	})

	metricsHandler, err := metrics.Register(nil)
	if err != nil {
		return err
	}

	r := router.New(router.Deps{
		Token:          oauth.NewTokenController(endpoint.NewToken(endpoint.TokenDeps{Factory: st})),
		Resource:       resource.NewController(endpoint.NewProtectedResource(endpoint.ProtectedResourceDeps{Factory: st})),
		MetricsHandler: metricsHandler,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Kind {
	case "redis":
		return redcache.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB), nil
	case "", "memory":
		return memcache.New(cfg.MemoryCacheTTL()), nil
	default:
		return nil, fmt.Errorf("unknown cache kind %q", cfg.Cache.Kind)
	}
}

func buildDirectory(ctx context.Context, cfg *config.Config) (store.Directory, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		d, err := pgdir.New(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres directory: %w", err)
		}
		if err := d.Migrate(ctx); err != nil {
			d.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		return d, d.Close, nil
	case "", "memory":
		d := store.NewMemoryDirectory()
		if err := seed(d, cfg); err != nil {
			return nil, nil, err
		}
		return d, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func seed(d *store.MemoryDirectory, cfg *config.Config) error {
	for _, c := range cfg.Seed.Clients {
		cl := store.Client{
			ID:          c.ID,
			RedirectURI: c.RedirectURI,
			GrantTypes:  c.GrantTypes,
			Enabled:     true,
		}
		if c.JWTKey != "" {
			cl.JWTKey = []byte(c.JWTKey)
		}
		if err := d.AddClient(cl, c.Secret); err != nil {
			return err
		}
	}
	for _, u := range cfg.Seed.Users {
		user := store.User{ID: u.ID, Username: u.Username, Email: u.Email, Enabled: true}
		if err := d.AddUser(user, u.Password); err != nil {
			return err
		}
	}
	return nil
}
