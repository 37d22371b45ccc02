// Package store holds canvases for unauthenticated guest sessions. It is an
// explicit, injectable service: hosts construct one and pass it around
// rather than sharing a package-level map.
package store

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/note2tabs/note2tabsWeb-sub001/model"
)

// Store is a keyed canvas holder with bounded occupancy.
type Store interface {
	Get(key string) (model.Canvas, bool)
	Put(key string, c model.Canvas)
	Evict(key string)
	Len() int
}

// LRUStore evicts the least-recently-used canvas once the cap is exceeded.
// Values are deep-copied on the way in and out so callers never alias the
// stored snapshot.
type LRUStore struct {
	cache *lru.Cache[string, model.Canvas]
}

func NewLRUStore(cap int) *LRUStore {
	cache, err := lru.New[string, model.Canvas](cap)
	if err != nil {
		panic("could not build canvas store: " + err.Error())
	}
	return &LRUStore{cache: cache}
}

func (s *LRUStore) Get(key string) (model.Canvas, bool) {
	c, ok := s.cache.Get(key)
	if !ok {
		return model.Canvas{}, false
	}
	return c.Copy(), true
}

func (s *LRUStore) Put(key string, c model.Canvas) {
	s.cache.Add(key, c.Copy())
}

func (s *LRUStore) Evict(key string) {
	s.cache.Remove(key)
}

func (s *LRUStore) Len() int {
	return s.cache.Len()
}
