package core

import (
	"net/http"
	"time"

	"github.com/keilerkonzept/topk/sliding"

	"github.com/albashop/alba/topk"
)

const (
	// blockCacheKeyPrefix namespaces blocked-IP entries in the shared cache.
	blockCacheKeyPrefix = "blocked-ip:"
	// blockTTL is how long an offending IP stays blocked.
	blockTTL = 10 * time.Minute

	// Sketch geometry. windowTicks ticks of tickRequests requests each
	// form the sliding window an IP is judged against.
	sketchWindowTicks  = 3
	sketchHistoryTicks = 10
	sketchWidth        = 1024
	sketchDepth        = 3
	tickRequests       = 1000
)

// BlockIp tracks per-IP request volume with a sliding top-k sketch and
// blocks the heavy hitters for a cooldown period. Detection state lives in
// the sketch, block decisions live in the shared cache so they survive
// sketch rotation.
type BlockIp struct {
	app       *App
	sketch    *topk.ClientSketch
	activated bool
}

// NewBlockIp wires the blocker against the application cache and logger.
// With activated false the blocker observes and logs but never rejects.
func NewBlockIp(app *App) *BlockIp {
	instance := sliding.New(sketchWindowTicks, sketchHistoryTicks,
		sliding.WithWidth(sketchWidth), sliding.WithDepth(sketchDepth))
	return &BlockIp{
		app:       app,
		sketch:    topk.NewClientSketch(instance, tickRequests),
		activated: app.Config().BlockIp.Activated,
	}
}

func blockKey(ip string) string {
	return blockCacheKeyPrefix + ip
}

// isBlocked reports whether ip currently has a block entry.
func (b *BlockIp) isBlocked(ip string) bool {
	_, found := b.app.Cache().Get(blockKey(ip))
	return found
}

// process counts one request from ip and blocks any offenders the sketch
// surfaces at tick boundaries.
func (b *BlockIp) process(ip string) {
	offenders := b.sketch.ProcessTick(ip)
	for _, offender := range offenders {
		b.app.Logger().Warn("blocking ip for excessive requests", "ip", offender, "ttl", blockTTL)
		b.app.Cache().SetWithTTL(blockKey(offender), struct{}{}, 1, blockTTL)
	}
}

// Middleware rejects requests from blocked IPs before they reach the
// router. When the blocker is not activated it records traffic but lets
// everything through.
func (b *BlockIp) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := b.app.getClientIP(r)

		if b.activated && b.isBlocked(ip) {
			writeJsonError(w, errorIpBlocked)
			return
		}

		b.process(ip)
		next.ServeHTTP(w, r)
	})
}
