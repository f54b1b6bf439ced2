package core

import (
	"log/slog"

	"github.com/albashop/alba/assets"
	"github.com/albashop/alba/cache"
	"github.com/albashop/alba/config"
	"github.com/albashop/alba/db"
	"github.com/albashop/alba/notify"
	"github.com/albashop/alba/router"
)

type Option func(*App)

// WithCache sets the cache implementation
func WithCache(c cache.Cache[string, interface{}]) Option {
	return func(a *App) {
		a.cache = c
	}
}

// WithDbApp sets the application's database implementation.
// It expects a single concrete type (like *zombiezen.Db) that implements db.DbApp.
func WithDbApp(dbApp db.DbApp) Option {
	return func(a *App) {
		a.SetDb(dbApp)
	}
}

// WithRouter sets the router implementation
func WithRouter(r router.Router) Option {
	return func(a *App) {
		a.router = r
	}
}

// WithConfigProvider sets the application's configuration provider.
func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) {
		a.configProvider = p
	}
}

// WithLogger sets the logger implementation
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithNotifier sets the notifier implementation
func WithNotifier(n notify.Notifier) Option {
	return func(a *App) {
		a.notifier = n
	}
}

// WithAssets sets the asset store implementation
func WithAssets(s assets.Store) Option {
	return func(a *App) {
		a.assets = s
	}
}

// WithParamGeter sets the URL parameter extractor matching the router
// implementation.
func WithParamGeter(g router.ParamGeter) Option {
	return func(a *App) {
		a.paramGeter = g
	}
}
