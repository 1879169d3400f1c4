package engine

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/inamate/svgpath/internal/pathdata"
)

const defaultPathCacheSize = 1000

// PathCache memoizes Parse results keyed by the path data string. Both
// parsed paths and parse errors are cached. It is safe for concurrent use.
type PathCache struct {
	cache *lru.Cache[string, any]
}

// NewPathCache returns a cache holding up to size entries. A size <= 0
// selects a default.
func NewPathCache(size int) *PathCache {
	if size <= 0 {
		size = defaultPathCacheSize
	}
	c, err := lru.New[string, any](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &PathCache{cache: c}
}

// Parse works like pathdata.Parse, the path or error is stored in the cache.
func (pc *PathCache) Parse(d string) (pathdata.Path, error) {
	if v, ok := pc.cache.Get(d); ok {
		switch v := v.(type) {
		case pathdata.Path:
			return v, nil
		case error:
			return nil, v
		}
	}

	path, err := pathdata.Parse(d)
	if err != nil {
		pc.cache.Add(d, err)
		return nil, err
	}
	pc.cache.Add(d, path)
	return path, nil
}

// Len returns the number of cached entries.
func (pc *PathCache) Len() int {
	return pc.cache.Len()
}
