package alba

import (
	"context"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/albashop/alba/assets/s3"
	"github.com/albashop/alba/config"
	"github.com/albashop/alba/core"
	"github.com/albashop/alba/db"
	"github.com/albashop/alba/db/zombiezen"
	"github.com/albashop/alba/mail"
	"github.com/albashop/alba/migrations"
	"github.com/albashop/alba/notify"
	"github.com/albashop/alba/queue"
	"github.com/albashop/alba/queue/executor"
	"github.com/albashop/alba/queue/handlers"
	scl "github.com/albashop/alba/queue/scheduler"
	"github.com/albashop/alba/server"
)

// New builds the application and its server from a TOML config file and
// the provided options. Sensible component defaults are filled in for
// anything the options leave unset; the database is the one dependency the
// caller must supply (WithDbApp or SetupDatabase).
func New(configPath string, opts ...core.Option) (*core.App, *server.Server, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	configProvider := config.NewProvider(cfg)

	allOpts := []core.Option{core.WithConfigProvider(configProvider)}
	allOpts = append(allOpts, opts...)

	app, err := core.NewApp(allOpts...)
	if err != nil {
		return nil, nil, err
	}

	if app.Logger() == nil {
		WithPhusLogger(nil)(app)
	}
	if app.Router() == nil {
		WithRouterHttprouter()(app)
	}
	if app.Cache() == nil {
		if err := applyRistrettoCache(app); err != nil {
			return nil, nil, err
		}
	}
	if app.DbAuth() == nil {
		return nil, nil, fmt.Errorf("no database configured, pass core.WithDbApp")
	}

	if app.Notifier() == nil && cfg.Smtp.Enabled {
		mailer, err := mail.New(configProvider)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create mailer: %w", err)
		}
		app.SetNotifier(mailer)
	}

	if app.Assets() == nil && cfg.Assets.Enabled {
		store, err := s3.New(context.Background(), cfg.Assets)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create asset store: %w", err)
		}
		app.SetAssets(store)
	}

	route(cfg, app)

	scheduler := SetupScheduler(configProvider, app.DbAuth(), app.DbQueue(), app.Notifier(), app.Logger())

	srv := server.NewServer(configProvider, rootHandler(cfg, app), scheduler, app.Logger())

	return app, srv, nil
}

// SetupDatabase opens the sqlite pool, applies the embedded schema and
// returns the database ready for core.WithDbApp. The pool is returned so
// the caller can close it on shutdown.
func SetupDatabase(path string, poolSize int) (db.DbApp, *sqlitex.Pool, error) {
	pool, err := zombiezen.NewPool(path, poolSize)
	if err != nil {
		return nil, nil, err
	}

	conn, err := pool.Take(context.Background())
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to take connection for migrations: %w", err)
	}
	err = zombiezen.ApplyMigrations(conn, migrations.Schema())
	pool.Put(conn)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	dbApp, err := zombiezen.New(pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return dbApp, pool, nil
}

// SetupScheduler wires the background job executor. Handlers that need the
// notifier are only registered when one is configured.
func SetupScheduler(configProvider *config.Provider, dbAuth db.DbAuth, dbQueue db.DbQueue, notifier notify.Notifier, logger *slog.Logger) *scl.Scheduler {
	hdls := make(map[string]executor.JobHandler)

	if notifier != nil {
		hdls[queue.JobTypeVerificationLink] = handlers.NewVerificationLinkHandler(dbAuth, configProvider, notifier)
	} else {
		logger.Warn("no notifier configured, verification link jobs will fail")
	}

	return scl.NewScheduler(configProvider, dbQueue, executor.NewExecutor(hdls), logger)
}
