package topk

import (
	"sync"

	"github.com/keilerkonzept/topk/sliding"
)

const (
	thresholdPercent = 80 // of window capacity
)

// ClientSketch provides thread-safe access to a sliding top-k sketch and
// manages ticking. It tracks request counts per client key (IP addresses)
// and reports the keys whose count exceeds the window threshold.
type ClientSketch struct {
	mu        sync.Mutex
	sketch    *sliding.Sketch
	tickSize  uint64 // number of requests per tick
	tickReq   uint64 // requests processed since last tick
	threshold int
}

// NewClientSketch creates a new thread-safe sketch wrapper.
// tickSize: how many requests trigger a sketch tick and top-k check.
func NewClientSketch(instance *sliding.Sketch, tickSize uint64) *ClientSketch {
	if instance == nil {
		panic("sketch instance cannot be nil")
	}
	if tickSize == 0 {
		tickSize = 1000
	}

	windowCapacity := uint64(instance.WindowSize) * tickSize
	threshold := int((windowCapacity * thresholdPercent) / 100)

	return &ClientSketch{
		sketch:    instance,
		tickSize:  tickSize,
		threshold: threshold,
	}
}

// ProcessTick counts one request for key. Every tickSize requests it
// advances the sliding window and returns the keys whose windowed count
// exceeds the threshold; otherwise it returns nil.
func (cs *ClientSketch) ProcessTick(key string) []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.sketch.Incr(key)
	cs.tickReq++

	if cs.tickReq < cs.tickSize {
		return nil
	}

	cs.sketch.Tick()
	cs.tickReq = 0

	items := cs.sketch.SortedSlice()

	var offenders []string
	for _, item := range items {
		if item.Count > uint32(cs.threshold) {
			offenders = append(offenders, item.Item)
		} else {
			break // sorted, the rest are below threshold
		}
	}
	return offenders
}
