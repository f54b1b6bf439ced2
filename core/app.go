package core

import (
	"log/slog"
	"net/http"

	"github.com/albashop/alba/assets"
	"github.com/albashop/alba/cache"
	"github.com/albashop/alba/config"
	"github.com/albashop/alba/db"
	"github.com/albashop/alba/notify"
	"github.com/albashop/alba/router"
)

// App is the application wide context.
// db connections and permanent structs should go here.
//
// All handlers and middleware have App as receiver, so a handler reaches
// every heavy object through its accessors.
type App struct {
	dbAuth         db.DbAuth
	dbQueue        db.DbQueue
	dbStore        db.DbStore
	router         router.Router
	cache          cache.Cache[string, interface{}]
	configProvider *config.Provider
	logger         *slog.Logger
	notifier       notify.Notifier
	assets         assets.Store
	authenticator  Authenticator
	validator      Validator
	paramGeter     router.ParamGeter
}

func NewApp(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.validator == nil {
		a.validator = NewValidator()
	}
	if a.authenticator == nil && a.configProvider != nil {
		a.authenticator = NewDefaultAuthenticator(a.logger, a.configProvider)
	}

	return a, nil
}

// Router returns the application's router instance
func (a *App) Router() router.Router {
	return a.router
}

func (a *App) SetRouter(r router.Router) {
	a.router = r
}

func (a *App) DbAuth() db.DbAuth {
	return a.dbAuth
}

func (a *App) DbQueue() db.DbQueue {
	return a.dbQueue
}

func (a *App) DbStore() db.DbStore {
	return a.dbStore
}

// SetDb sets the database interfaces for auth, queue and store
func (a *App) SetDb(dbApp db.DbApp) {
	if dbApp == nil {
		panic("DbApp cannot be nil")
	}
	a.dbAuth = dbApp
	a.dbQueue = dbApp
	a.dbStore = dbApp
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) SetLogger(l *slog.Logger) {
	a.logger = l
}

func (a *App) Cache() cache.Cache[string, interface{}] {
	return a.cache
}

func (a *App) SetCache(c cache.Cache[string, interface{}]) {
	a.cache = c
}

func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

func (a *App) ConfigProvider() *config.Provider {
	return a.configProvider
}

func (a *App) SetConfigProvider(provider *config.Provider) {
	a.configProvider = provider
}

func (a *App) Notifier() notify.Notifier {
	return a.notifier
}

func (a *App) SetNotifier(n notify.Notifier) {
	a.notifier = n
}

func (a *App) Assets() assets.Store {
	return a.assets
}

func (a *App) SetAssets(s assets.Store) {
	a.assets = s
}

// URLParam returns the named URL parameter of the request, "" when absent.
func (a *App) URLParam(r *http.Request, name string) string {
	if a.paramGeter == nil {
		return ""
	}
	return a.paramGeter.Get(r.Context()).ByName(name)
}

func (a *App) SetParamGeter(g router.ParamGeter) {
	a.paramGeter = g
}

func (a *App) Auth() Authenticator {
	return a.authenticator
}

// SetAuthenticator sets the authenticator implementation
func (a *App) SetAuthenticator(auth Authenticator) {
	a.authenticator = auth
}

// Validator returns the validator instance
func (a *App) Validator() Validator {
	return a.validator
}

// SetValidator sets the validator implementation
func (a *App) SetValidator(v Validator) {
	a.validator = v
}
