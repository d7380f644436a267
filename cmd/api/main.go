package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fauve-storefront/internal/config"
	"fauve-storefront/internal/db"
	"fauve-storefront/internal/docstore"
	"fauve-storefront/internal/httpserver"
	"fauve-storefront/internal/identity"
	"fauve-storefront/internal/notify"
	"fauve-storefront/internal/payment"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	store, cleanup, err := openDocStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open document store: %v", err)
	}
	defer cleanup()

	payments := payment.NewBreaker(payment.NewSimulator(cfg.PaymentFailureRate))
	notifier := notify.NewEmailer(store)

	users := map[string]identity.User{}
	if cfg.AdminToken != "" {
		users[cfg.AdminToken] = identity.User{ID: "admin", Email: cfg.AdminEmail, Admin: true}
	}
	provider := identity.NewStatic(users)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Store:    store,
		Payments: payments,
		Notifier: notifier,
		Identity: provider,
		Pricing:  cfg.Pricing(),
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// openDocStore picks the configured document store backend and returns
// it together with its cleanup function.
func openDocStore(ctx context.Context, cfg config.Config, logger *log.Logger) (docstore.Store, func(), error) {
	switch cfg.DocStoreDriver {
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, err
		}
		return docstore.NewPostgres(pool), pool.Close, nil
	case "mongo":
		store, err := docstore.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(context.Background()); err != nil {
				logger.Printf("close mongo: %v", err)
			}
		}, nil
	default:
		logger.Printf("using in-memory document store, orders will not survive a restart")
		return docstore.NewMemory(), func() {}, nil
	}
}
