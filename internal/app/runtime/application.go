// Package runtime wires the process: configuration, logging, stores,
// services and the HTTP server lifecycle.
package runtime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	app "github.com/golden-burguer/appcore/internal/app"
	"github.com/golden-burguer/appcore/internal/app/httpapi"
	"github.com/golden-burguer/appcore/internal/app/storage/memory"
	"github.com/golden-burguer/appcore/internal/app/storage/postgres"
	redisstore "github.com/golden-burguer/appcore/internal/app/storage/redis"
	"github.com/golden-burguer/appcore/internal/config"
	"github.com/golden-burguer/appcore/internal/platform/migrations"
	"github.com/golden-burguer/appcore/pkg/logger"
)

// Application owns the composed services and the HTTP server.
type Application struct {
	cfg    config.Config
	log    *logger.Logger
	core   *app.Application
	server *http.Server
	db     *sql.DB
}

// NewApplication constructs a fully wired application from configuration.
// Without a database DSN the in-memory stores are used; without a Redis
// address the session store is in-memory as well.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	stores, db, err := buildStores(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("configure stores: %w", err)
	}

	core, err := app.New(context.Background(), stores, log)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	router := httpapi.NewRouter(core, log.WithComponent("httpapi"))
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Application{cfg: cfg, log: log, core: core, server: server, db: db}, nil
}

func buildStores(cfg config.Config, log *logger.Logger) (app.Stores, *sql.DB, error) {
	var stores app.Stores
	var db *sql.DB

	if cfg.Database.DSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return app.Stores{}, nil, fmt.Errorf("open database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return app.Stores{}, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := migrations.Apply(ctx, db); err != nil {
			db.Close()
			return app.Stores{}, nil, fmt.Errorf("apply migrations: %w", err)
		}

		pg := postgres.New(db)
		stores.Products = pg
		stores.Users = pg
		log.Info("using postgres store")
	} else {
		log.Warn("no database DSN configured; using in-memory store")
	}

	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			if db != nil {
				db.Close()
			}
			return app.Stores{}, nil, err
		}
		stores.Sessions = redisstore.New(client)
		log.Info("using redis session store")
	}

	if stores.Products == nil || stores.Users == nil || stores.Sessions == nil {
		mem := memory.New()
		if stores.Products == nil {
			stores.Products = mem
		}
		if stores.Users == nil {
			stores.Users = mem
		}
		if stores.Sessions == nil {
			stores.Sessions = mem
		}
	}

	return stores, db, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		a.shutdownCore()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := a.server.Shutdown(shutdownCtx)
	a.shutdownCore()
	return err
}

func (a *Application) shutdownCore() {
	a.core.Close()
	if a.db != nil {
		a.db.Close()
	}
	a.log.Info("shutdown complete")
}
