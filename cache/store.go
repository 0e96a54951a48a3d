// Package cache is the curve-result cache store: an LRU of
// numerical.CachedCurveData keyed by cachekey.Compute's content-addressed
// key, with single-flight collapsing of concurrent builds for the same
// key (container/list + map for the LRU, golang.org/x/sync/singleflight
// for build collapsing).
package cache

import (
	"container/list"
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/meenmo/curvecore/numerical"
)

type entry struct {
	key  string
	data numerical.CachedCurveData
}

// Store is an LRU cache of serialized curves, safe for concurrent use. The
// lock is only ever held for map/list bookkeeping — never across a
// Builder call — so one slow bootstrap never blocks unrelated lookups.
type Store struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element

	flight singleflight.Group
}

// New returns an empty store with the given pillar capacity (number of
// cached curves, not bytes).
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = 1
	}
	return &Store{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Get returns the cached data for key and whether it was present, touching
// it as most-recently-used on a hit.
func (s *Store) Get(key string) (numerical.CachedCurveData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.items[key]
	if !ok {
		return numerical.CachedCurveData{}, false
	}
	s.ll.MoveToFront(el)
	return el.Value.(*entry).data, true
}

// Put inserts or refreshes key, evicting the least-recently-used entry if
// the store is over capacity.
func (s *Store) Put(key string, data numerical.CachedCurveData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.items[key]; ok {
		el.Value.(*entry).data = data
		s.ll.MoveToFront(el)
		return
	}
	el := s.ll.PushFront(&entry{key: key, data: data})
	s.items[key] = el
	if s.ll.Len() > s.capacity {
		s.evictOldest()
	}
}

func (s *Store) evictOldest() {
	el := s.ll.Back()
	if el == nil {
		return
	}
	s.ll.Remove(el)
	delete(s.items, el.Value.(*entry).key)
}

// Builder produces the serialized curve for a cache miss.
type Builder func(ctx context.Context) (numerical.CachedCurveData, error)

// GetOrBuild returns the cached entry for key if present, otherwise runs
// build exactly once across any number of concurrent callers sharing that
// key (single-flight), caching and returning its result. A build that
// starts continues to completion and populates the cache even if ctx is
// later cancelled by the caller that triggered it — cancellation only
// stops that caller from waiting.
func (s *Store) GetOrBuild(ctx context.Context, key string, build Builder) (numerical.CachedCurveData, error) {
	if data, ok := s.Get(key); ok {
		return data, nil
	}

	resultCh := s.flight.DoChan(key, func() (any, error) {
		data, err := build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.Put(key, data)
		return data, nil
	})

	select {
	case res := <-resultCh:
		if res.Err != nil {
			return numerical.CachedCurveData{}, res.Err
		}
		return res.Val.(numerical.CachedCurveData), nil
	case <-ctx.Done():
		return numerical.CachedCurveData{}, ctx.Err()
	}
}
