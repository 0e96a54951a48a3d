package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/meenmo/curvecore/numerical"
)

func curveData(refDate string) numerical.CachedCurveData {
	return numerical.CachedCurveData{
		ReferenceDate:   refDate,
		DayCounter:      "ACT/365F",
		Interpolator:    "LOG_LINEAR",
		Dates:           []string{refDate},
		DiscountFactors: []float64{1.0},
	}
}

func TestStore_GetMissOnEmptyStore(t *testing.T) {
	s := New(2)
	if _, ok := s.Get("missing"); ok {
		t.Fatalf("expected a miss on an empty store")
	}
}

func TestStore_PutThenGetHits(t *testing.T) {
	s := New(2)
	data := curveData("2026-01-02")
	s.Put("k1", data)
	got, ok := s.Get("k1")
	if !ok {
		t.Fatalf("expected a hit after Put")
	}
	if got.ReferenceDate != data.ReferenceDate {
		t.Fatalf("got %+v, want %+v", got, data)
	}
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	s := New(2)
	s.Put("a", curveData("2026-01-01"))
	s.Put("b", curveData("2026-01-02"))
	s.Put("c", curveData("2026-01-03")) // evicts "a"

	if _, ok := s.Get("a"); ok {
		t.Fatalf("expected a to be evicted")
	}
	if _, ok := s.Get("b"); !ok {
		t.Fatalf("expected b to still be present")
	}
	if _, ok := s.Get("c"); !ok {
		t.Fatalf("expected c to still be present")
	}
}

func TestStore_GetTouchesRecency(t *testing.T) {
	s := New(2)
	s.Put("a", curveData("2026-01-01"))
	s.Put("b", curveData("2026-01-02"))
	s.Get("a") // a is now most-recently-used
	s.Put("c", curveData("2026-01-03")) // should evict "b", not "a"

	if _, ok := s.Get("a"); !ok {
		t.Fatalf("expected a to survive since it was touched by Get")
	}
	if _, ok := s.Get("b"); ok {
		t.Fatalf("expected b to be evicted as the least-recently-used entry")
	}
}

func TestStore_NewClampsNonPositiveCapacityToOne(t *testing.T) {
	s := New(0)
	s.Put("a", curveData("2026-01-01"))
	s.Put("b", curveData("2026-01-02"))
	if _, ok := s.Get("a"); ok {
		t.Fatalf("expected a to be evicted once capacity clamps to 1")
	}
	if _, ok := s.Get("b"); !ok {
		t.Fatalf("expected b to remain")
	}
}

func TestGetOrBuild_CachesOnMiss(t *testing.T) {
	s := New(2)
	var calls int32
	build := func(ctx context.Context) (numerical.CachedCurveData, error) {
		atomic.AddInt32(&calls, 1)
		return curveData("2026-01-02"), nil
	}

	data, err := s.GetOrBuild(context.Background(), "k1", build)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.ReferenceDate != "2026-01-02" {
		t.Fatalf("unexpected data: %+v", data)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected build to run exactly once, ran %d times", calls)
	}

	if _, ok := s.Get("k1"); !ok {
		t.Fatalf("expected the built result to be cached")
	}

	if _, err := s.GetOrBuild(context.Background(), "k1", build); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected build not to rerun on a cache hit, ran %d times", calls)
	}
}

func TestGetOrBuild_PropagatesBuildError(t *testing.T) {
	s := New(2)
	wantErr := errors.New("bootstrap failed")
	build := func(ctx context.Context) (numerical.CachedCurveData, error) {
		return numerical.CachedCurveData{}, wantErr
	}
	if _, err := s.GetOrBuild(context.Background(), "k1", build); !errors.Is(err, wantErr) {
		t.Fatalf("expected the build error to propagate, got %v", err)
	}
	if _, ok := s.Get("k1"); ok {
		t.Fatalf("a failed build must not populate the cache")
	}
}

func TestGetOrBuild_CollapsesConcurrentCallsForSameKey(t *testing.T) {
	s := New(2)
	var calls int32
	release := make(chan struct{})
	build := func(ctx context.Context) (numerical.CachedCurveData, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return curveData("2026-01-02"), nil
	}

	var wg sync.WaitGroup
	n := 5
	results := make([]numerical.CachedCurveData, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.GetOrBuild(context.Background(), "shared-key", build)
		}(i)
	}

	time.Sleep(20 * time.Millisecond) // let all goroutines enter DoChan
	close(release)
	wg.Wait()

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected the build to run exactly once across concurrent callers, ran %d times", calls)
	}
	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d got unexpected error: %v", i, err)
		}
		if results[i].ReferenceDate != "2026-01-02" {
			t.Fatalf("caller %d got unexpected data: %+v", i, results[i])
		}
	}
}

func TestGetOrBuild_CancelledCallerDoesNotStopBuild(t *testing.T) {
	s := New(2)
	started := make(chan struct{})
	release := make(chan struct{})
	var built int32
	build := func(ctx context.Context) (numerical.CachedCurveData, error) {
		close(started)
		<-release
		atomic.AddInt32(&built, 1)
		return curveData("2026-01-02"), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.GetOrBuild(ctx, "k1", build)
		close(done)
	}()

	<-started
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("GetOrBuild should return promptly once its own context is cancelled")
	}

	close(release)
	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt32(&built) != 1 {
		t.Fatalf("expected the build to run to completion even after the triggering caller cancelled")
	}
	if _, ok := s.Get("k1"); !ok {
		t.Fatalf("expected the cache to be populated despite the triggering caller's cancellation")
	}
}
