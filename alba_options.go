package alba

import (
	"fmt"
	"log/slog"
	"os"

	phuslog "github.com/phuslu/log"

	"github.com/albashop/alba/cache/ristretto"
	"github.com/albashop/alba/core"
	"github.com/albashop/alba/router/httprouter"
)

// WithRouterHttprouter wires the julienschmidt httprouter implementation
// together with its URL parameter extractor.
func WithRouterHttprouter() core.Option {
	r := httprouter.New()
	pg := httprouter.NewParamGeter()
	return func(a *core.App) {
		core.WithRouter(r)(a)
		core.WithParamGeter(pg)(a)
	}
}

// applyRistrettoCache installs the default in-process cache.
func applyRistrettoCache(a *core.App) error {
	c, err := ristretto.New[string, interface{}]()
	if err != nil {
		return fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	a.SetCache(c)
	return nil
}

// WithCacheRistretto selects the ristretto cache explicitly.
func WithCacheRistretto() core.Option {
	return func(a *core.App) {
		if err := applyRistrettoCache(a); err != nil {
			panic(err)
		}
	}
}

// DefaultLoggerOptions provides default settings for slog handlers.
// Level: Debug, removes the time attribute from output.
var DefaultLoggerOptions = &slog.HandlerOptions{
	Level: slog.LevelDebug,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	},
}

// WithPhusLogger configures slog with phuslu/log's JSON handler.
// Uses DefaultLoggerOptions if opts is nil.
func WithPhusLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
	return core.WithLogger(logger)
}

// WithTextLogger configures slog with the standard library's text handler.
func WithTextLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	return core.WithLogger(logger)
}
