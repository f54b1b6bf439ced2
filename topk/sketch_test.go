package topk

import (
	"testing"

	"github.com/keilerkonzept/topk/sliding"
)

func newTestSketch(tickSize uint64) *ClientSketch {
	instance := sliding.New(3, 3, sliding.WithWidth(1024), sliding.WithDepth(3))
	return NewClientSketch(instance, tickSize)
}

func TestProcessTickBelowTickSize(t *testing.T) {
	cs := newTestSketch(10)

	for i := 0; i < 9; i++ {
		if got := cs.ProcessTick("1.1.1.1"); got != nil {
			t.Fatalf("request %d: got offenders %v before a full tick", i, got)
		}
	}
}

func TestProcessTickDominantClientBlocked(t *testing.T) {
	// Window capacity is WindowSize * tickSize = 3 * 10 = 30 requests,
	// threshold 80% = 24. A single client sending every request crosses it
	// once the window fills.
	cs := newTestSketch(10)

	var offenders []string
	for i := 0; i < 30; i++ {
		if got := cs.ProcessTick("9.9.9.9"); got != nil {
			offenders = got
		}
	}

	if len(offenders) != 1 || offenders[0] != "9.9.9.9" {
		t.Errorf("offenders = %v, want [9.9.9.9]", offenders)
	}
}

func TestProcessTickSpreadTrafficNotBlocked(t *testing.T) {
	cs := newTestSketch(10)

	ips := []string{"1.1.1.1", "2.2.2.2", "3.3.3.3", "4.4.4.4", "5.5.5.5"}
	for i := 0; i < 30; i++ {
		if got := cs.ProcessTick(ips[i%len(ips)]); got != nil {
			t.Fatalf("request %d: spread traffic produced offenders %v", i, got)
		}
	}
}

func TestNewClientSketchNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil sketch instance")
		}
	}()
	NewClientSketch(nil, 10)
}
