// Package app wires every dependency of the storefront server and owns its
// lifecycle: remote store connection, catalog feed, session registry, HTTP
// server, and graceful shutdown.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	sdkapp "github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/faushop/storefront/internal/handler"
	"github.com/faushop/storefront/internal/remote"
	"github.com/faushop/storefront/internal/settings"
	fsstore "github.com/faushop/storefront/internal/storage/firestore"
	"github.com/faushop/storefront/internal/store"
	"github.com/faushop/storefront/internal/translate"
	"github.com/faushop/storefront/pkg/health"
	"github.com/faushop/storefront/pkg/httpmiddleware"
)

// feedReconnectDelay is the pause between catalog subscription attempts
// after a feed error.
const feedReconnectDelay = 5 * time.Second

// Run creates all dependencies, starts the catalog feed and the HTTP
// server, and handles graceful shutdown. It is the single wiring point for
// the application.
func Run(ctx context.Context, lg *zap.Logger, m *sdkapp.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	fsCfg, err := resolveFirestoreConfig(cfg, lg)
	if err != nil {
		return err
	}

	client, err := fsstore.Connect(ctx, fsCfg)
	if err != nil {
		return errors.Wrap(err, "connect firestore")
	}
	defer func() {
		if err := client.Close(); err != nil {
			lg.Warn("Firestore close", zap.Error(err))
		}
	}()

	catalogStore := fsstore.NewCatalogStore(client)
	contentStore := fsstore.NewContentStore(client)
	mirror := store.NewCatalog()

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddReadinessCheck("firestore", 5*time.Second, health.PingCheck(client.Ping))
	healthSvc.AddReadinessCheck("catalog-feed", time.Second,
		health.FreshnessCheck(mirror.SyncedAt, cfg.Firestore.StaleAfter))
	healthSvc.Start(ctx, 10*time.Second)

	translator := buildTranslator(ctx, cfg.Gemini, lg)

	sessions := store.NewSessions(store.SessionsConfig{TTL: cfg.Session.TTL},
		mirror, catalogStore, translator, lg)
	sessions.StartCleanup(ctx)

	h := handler.New(handler.Config{
		AdminToken:   cfg.AdminToken,
		SettingsPath: cfg.SettingsPath,
	}, sessions, contentStore, translator, lg)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", h.Routes())

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization", "X-Admin-Token"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:     cfg.RateLimit.Max,
				Window:  cfg.RateLimit.Window,
				KeyFunc: httpmiddleware.SessionKeyFunc(h.CookieName()),
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("storefront", m),
			httpmiddleware.LogRequests(),
		),
	}

	g, ctx := errgroup.WithContext(ctx)

	// Catalog feed: each snapshot atomically replaces the mirror. The
	// subscription is re-established after transient failures.
	g.Go(func() error {
		return runFeed(ctx, lg, catalogStore, mirror, healthSvc)
	})

	// Graceful shutdown: drain readiness, then stop the server.
	g.Go(func() error {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		return nil
	})

	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})

	return g.Wait()
}

// resolveFirestoreConfig merges the environment configuration with the
// persisted settings blob. The blob wins: it is what the admin panel saved.
func resolveFirestoreConfig(cfg *Config, lg *zap.Logger) (fsstore.Config, error) {
	fsCfg := fsstore.Config{
		ProjectID:          cfg.Firestore.ProjectID,
		CredentialsFile:    cfg.Firestore.CredentialsFile,
		ProductsCollection: cfg.Firestore.ProductsCollection,
		ContentCollection:  cfg.Firestore.ContentCollection,
		ContentDoc:         cfg.Firestore.ContentDoc,
	}

	saved, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		return fsstore.Config{}, errors.Wrap(err, "load settings")
	}
	if !saved.IsZero() {
		lg.Info("Using saved remote settings", zap.String("path", cfg.SettingsPath))
		if saved.ProjectID != "" {
			fsCfg.ProjectID = saved.ProjectID
		}
		if saved.CredentialsFile != "" {
			fsCfg.CredentialsFile = saved.CredentialsFile
		}
		if saved.ProductsCollection != "" {
			fsCfg.ProductsCollection = saved.ProductsCollection
		}
		if saved.ContentCollection != "" {
			fsCfg.ContentCollection = saved.ContentCollection
		}
		if saved.ContentDoc != "" {
			fsCfg.ContentDoc = saved.ContentDoc
		}
	}

	if fsCfg.ProjectID == "" {
		return fsstore.Config{}, errors.New("project id is required: set FAU_FIRESTORE_PROJECT_ID or save settings")
	}
	return fsCfg, nil
}

// buildTranslator returns the Gemini translator when an API key is
// configured, and the no-op one otherwise. A Gemini construction failure is
// not fatal: translation is a best-effort feature.
func buildTranslator(ctx context.Context, cfg GeminiConfig, lg *zap.Logger) translate.Translator {
	if cfg.APIKey == "" {
		lg.Info("Auto-translate disabled: no Gemini API key")
		return translate.Noop{}
	}

	g, err := translate.NewGemini(ctx, translate.GeminiConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}, lg)
	if err != nil {
		lg.Warn("Gemini unavailable, auto-translate disabled", zap.Error(err))
		return translate.Noop{}
	}
	return g
}

// runFeed keeps the catalog subscription alive, marking the service ready
// after the first snapshot lands.
func runFeed(ctx context.Context, lg *zap.Logger, feed remote.Feed, mirror *store.Catalog, healthSvc *health.Health) error {
	apply := func(snap remote.Snapshot) {
		mirror.Replace(snap)
		healthSvc.SetReady(true)
		lg.Debug("Catalog snapshot applied",
			zap.Int("products", len(snap.Products)),
			zap.Uint64("version", mirror.Version()),
		)
	}

	for {
		err := feed.Watch(ctx, apply)
		if ctx.Err() != nil {
			return nil
		}
		lg.Warn("Catalog feed interrupted, reconnecting",
			zap.Error(err),
			zap.Duration("delay", feedReconnectDelay),
		)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(feedReconnectDelay):
		}
	}
}
