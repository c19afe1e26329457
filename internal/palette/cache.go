package palette

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/mmcdole/moodreel/internal/domain"
	"golang.org/x/sync/singleflight"
)

// DefaultComputeTimeout bounds one artwork load + quantization
const DefaultComputeTimeout = 30 * time.Second

// ArtworkLoader loads the decoded artwork for one movie
type ArtworkLoader func(ctx context.Context) (image.Image, error)

// entry is a resolved cache value. It is never mutated once stored.
type entry struct {
	palette domain.Palette
	err     error
}

// Cache memoizes palettes per movie id for the lifetime of the session.
//
// The first caller for an uncached id performs the computation; concurrent
// callers for the same id wait for that result. Failures resolve to an empty
// palette and are cached too. Returned palettes are shared and must be
// treated as read-only.
type Cache struct {
	quantizer *Quantizer
	k         int
	store     domain.PaletteStore // optional persistence, may be nil
	timeout   time.Duration
	logger    *slog.Logger

	mu      sync.RWMutex
	entries map[int]entry
	group   singleflight.Group
}

// CacheOptions configures a Cache
type CacheOptions struct {
	Colors         int                 // palette size k, defaults to domain.DefaultPaletteSize
	MaxDimension   int                 // working resolution bound for the quantizer
	Store          domain.PaletteStore // optional
	ComputeTimeout time.Duration
	Logger         *slog.Logger
}

// NewCache creates a palette cache
func NewCache(opts CacheOptions) *Cache {
	if opts.Colors <= 0 {
		opts.Colors = domain.DefaultPaletteSize
	}
	if opts.ComputeTimeout <= 0 {
		opts.ComputeTimeout = DefaultComputeTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Cache{
		quantizer: NewQuantizer(opts.MaxDimension),
		k:         opts.Colors,
		store:     opts.Store,
		timeout:   opts.ComputeTimeout,
		logger:    opts.Logger,
		entries:   make(map[int]entry),
	}
}

// Get returns the palette for a movie, computing it on first request.
//
// The returned error describes why the palette is empty (artwork failed to
// load or decode) and is repeated on every call for that id. If ctx ends
// before a pending computation finishes, Get returns ctx.Err() while the
// computation carries on for other callers.
func (c *Cache) Get(ctx context.Context, movieID int, load ArtworkLoader) (domain.Palette, error) {
	if e, ok := c.lookup(movieID); ok {
		return e.palette, e.err
	}

	ch := c.group.DoChan(strconv.Itoa(movieID), func() (interface{}, error) {
		// A previous flight may have resolved the id after our lookup
		if e, ok := c.lookup(movieID); ok {
			return e, nil
		}
		e := c.compute(ctx, movieID, load)

		c.mu.Lock()
		c.entries[movieID] = e
		c.mu.Unlock()
		return e, nil
	})

	select {
	case res := <-ch:
		e := res.Val.(entry)
		return e.palette, e.err
	case <-ctx.Done():
		return domain.Palette{}, ctx.Err()
	}
}

// Peek returns a resolved palette without triggering a computation
func (c *Cache) Peek(movieID int) (domain.Palette, bool) {
	e, ok := c.lookup(movieID)
	return e.palette, ok
}

// Len returns the number of resolved entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(movieID int) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[movieID]
	return e, ok
}

// compute resolves one entry. It runs detached from the caller's
// cancellation so an abandoned caller cannot poison the shared result.
func (c *Cache) compute(ctx context.Context, movieID int, load ArtworkLoader) entry {
	if c.store != nil {
		if p, ok := c.store.GetPalette(movieID); ok {
			c.logger.Debug("palette store hit", "movieID", movieID, "colors", len(p))
			return entry{palette: p}
		}
	}

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	start := time.Now()
	img, err := load(cctx)
	if err == nil && img == nil {
		err = fmt.Errorf("%w: loader returned no image", domain.ErrArtworkDecode)
	}
	if err != nil {
		c.logger.Warn("palette extraction failed", "movieID", movieID, "error", err)
		return entry{palette: domain.Palette{}, err: err}
	}

	p := c.quantizer.Extract(img, c.k)
	c.logger.Debug("palette extracted",
		"movieID", movieID,
		"colors", len(p),
		"duration", time.Since(start),
	)

	if c.store != nil && len(p) > 0 {
		if err := c.store.SavePalette(movieID, p); err != nil {
			c.logger.Warn("failed to persist palette", "movieID", movieID, "error", err)
		}
	}
	return entry{palette: p}
}
