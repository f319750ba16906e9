package texture

import (
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/schollz/progressbar/v3"
)

// Cache is a Loader that memoizes decoded textures from an inner Loader.
// Cycling between a handful of textures then only pays the decode cost once; the GPU upload
// still happens on every swap.
type Cache struct {
	mu      *sync.Mutex
	inner   Loader
	entries map[string]common.TextureStagingData

	// workers bounds the decode pool used by Preload.
	workers int
}

var _ Loader = &Cache{}

// NewCache wraps inner with an in-memory cache.
//
// Parameters:
//   - inner: the loader used on cache misses
//
// Returns:
//   - *Cache: the caching loader
func NewCache(inner Loader) *Cache {
	return &Cache{
		mu:      &sync.Mutex{},
		inner:   inner,
		entries: make(map[string]common.TextureStagingData),
		workers: max(runtime.NumCPU()-1, 1),
	}
}

// Load returns the cached staging data for identifier, decoding it through the inner
// loader on a miss. Failures are not cached.
func (c *Cache) Load(identifier string) (common.TextureStagingData, error) {
	c.mu.Lock()
	staging, ok := c.entries[identifier]
	c.mu.Unlock()
	if ok {
		return staging, nil
	}

	staging, err := c.inner.Load(identifier)
	if err != nil {
		return common.TextureStagingData{}, err
	}

	c.mu.Lock()
	c.entries[identifier] = staging
	c.mu.Unlock()
	return staging, nil
}

// Invalidate drops the cached entry for identifier so the next Load decodes it again.
//
// Parameters:
//   - identifier: the texture identifier to forget
func (c *Cache) Invalidate(identifier string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, identifier)
}

// Cached reports whether identifier currently has a cached entry.
//
// Parameters:
//   - identifier: the texture identifier
//
// Returns:
//   - bool: true on a cache hit
func (c *Cache) Cached(identifier string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[identifier]
	return ok
}

// Preload decodes every identifier in parallel on a dynamic worker pool and fills the cache.
// When progress is non-nil a progress bar is drawn to it while decoding.
//
// Parameters:
//   - identifiers: the textures to decode
//   - progress: destination for the progress bar, or nil for none
//
// Returns:
//   - map[string]error: the identifiers that failed to decode, with their errors
func (c *Cache) Preload(identifiers []string, progress io.Writer) map[string]error {
	failures := make(map[string]error)
	if len(identifiers) == 0 {
		return failures
	}

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(len(identifiers),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("decoding textures"),
			progressbar.OptionClearOnFinish(),
		)
	}

	pool := worker.NewDynamicWorkerPool(min(c.workers, len(identifiers)), len(identifiers), 1*time.Second)

	var (
		wg    sync.WaitGroup
		errMu sync.Mutex
	)
	for i, id := range identifiers {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				_, err := c.Load(id)
				if err != nil {
					errMu.Lock()
					failures[id] = err
					errMu.Unlock()
				}
				if bar != nil {
					_ = bar.Add(1)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	if bar != nil {
		_ = bar.Finish()
	}
	return failures
}
