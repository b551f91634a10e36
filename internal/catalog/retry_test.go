package catalog

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFetch_BackoffDoublesFromTwiceBase(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	base := 10 * time.Millisecond
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}, WithRetryBase(base), WithLogger(zap.New(core)))

	if _, err := c.FetchProduct(context.Background(), 1); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("FetchProduct error = %v, want ErrRequestFailed", err)
	}

	entries := logs.FilterMessage("catalog attempt failed, retrying").All()
	want := []time.Duration{2 * base, 4 * base}
	if len(entries) != len(want) {
		t.Fatalf("retry log entries = %d, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		got, ok := entry.ContextMap()["wait"].(time.Duration)
		if !ok || got != want[i] {
			t.Fatalf("retry %d wait = %v, want %v", i+1, entry.ContextMap()["wait"], want[i])
		}
	}
}

func TestFetch_DefaultBackoffSchedule(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c, err := NewClient("http://127.0.0.1:1", WithLogger(zap.New(core)), WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	start := time.Now()
	if _, err := c.FetchProductsCount(context.Background()); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("FetchProductsCount error = %v, want ErrRequestFailed", err)
	}
	if elapsed := time.Since(start); elapsed < 1800*time.Millisecond {
		t.Fatalf("three attempts took %v, want at least 600ms + 1200ms of backoff", elapsed)
	}

	entries := logs.FilterMessage("catalog attempt failed, retrying").All()
	want := []time.Duration{600 * time.Millisecond, 1200 * time.Millisecond}
	if len(entries) != len(want) {
		t.Fatalf("retry log entries = %d, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		if got := entry.ContextMap()["wait"]; got != want[i] {
			t.Fatalf("retry %d wait = %v, want %v", i+1, got, want[i])
		}
	}
}

// blockingProduct serves product 3 once release is closed and reports the
// first request on arrived.
func blockingProduct(arrived chan<- struct{}, release <-chan struct{}) http.HandlerFunc {
	var once atomic.Bool
	return func(w http.ResponseWriter, r *http.Request) {
		if once.CompareAndSwap(false, true) {
			close(arrived)
		}
		<-release
		productHandler(w, r)
	}
}

// waitForMisses blocks until n callers have missed the cache, then gives
// them a moment to join the in-flight fetch.
func waitForMisses(t *testing.T, m *Metrics, n float64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %v cache misses", n)
		}
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
}

type fetchResult struct {
	p   *Product
	err error
}

func TestGet_ConcurrentMissesShareOneRequest(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	metrics := NewMetrics(prometheus.NewRegistry())
	c, hits := newTestClient(t, blockingProduct(arrived, release), WithMetrics(metrics))

	results := make(chan fetchResult, 2)
	fetch := func() {
		p, err := c.FetchProduct(context.Background(), 3)
		results <- fetchResult{p, err}
	}

	go fetch()
	<-arrived
	go fetch()
	waitForMisses(t, metrics, 2)
	close(release)

	for i := 0; i < 2; i++ {
		res := <-results
		if res.err != nil || res.p.ID != 3 {
			t.Fatalf("caller %d = %#v, %v; want product 3", i, res.p, res.err)
		}
	}
	if got := atomic.LoadInt64(hits); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
}

func TestGet_CancelledCallerDoesNotFailOthers(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	metrics := NewMetrics(prometheus.NewRegistry())
	c, hits := newTestClient(t, blockingProduct(arrived, release), WithMetrics(metrics))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan fetchResult, 1)
	go func() {
		p, err := c.FetchProduct(ctx, 3)
		first <- fetchResult{p, err}
	}()
	<-arrived

	second := make(chan fetchResult, 1)
	go func() {
		p, err := c.FetchProduct(context.Background(), 3)
		second <- fetchResult{p, err}
	}()
	waitForMisses(t, metrics, 2)

	cancel()
	select {
	case res := <-first:
		if !errors.Is(res.err, context.Canceled) {
			t.Fatalf("cancelled caller error = %v, want context.Canceled", res.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("cancelled caller did not return")
	}

	close(release)
	res := <-second
	if res.err != nil || res.p.ID != 3 {
		t.Fatalf("live caller = %#v, %v; want product 3", res.p, res.err)
	}
	if got := atomic.LoadInt64(hits); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
	if c.cache.len() != 1 {
		t.Fatalf("shared result was not cached")
	}
}
