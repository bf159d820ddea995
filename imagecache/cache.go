// Package imagecache keeps fixed-size thumbnails of remote images on disk.
//
// The filesystem is the only index: every lookup derives the cache path from
// the locator and checks whether the file exists. Entries are written once and
// never evicted.
package imagecache

import (
	"context"
	"errors"
	"image"
	"net/url"
	"sync"

	"github.com/sirupsen/logrus"
)

// Completion receives the locator passed to FetchImage and the thumbnail, or
// nil when none could be produced.
type Completion func(locator *url.URL, img image.Image)

// Fetcher downloads the raw bytes behind a locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator *url.URL) ([]byte, error)
}

// Cache fetches, downsamples and persists thumbnails.
type Cache struct {
	keys       KeyDeriver
	fetcher    Fetcher
	dispatcher Dispatcher
	size       image.Point
	logger     logrus.FieldLogger
}

// New creates a cache. Without options it uses the default key layout, an
// HTTP fetcher and a dispatcher queue running on its own goroutine.
func New(opts ...Option) *Cache {
	c := &Cache{
		size:   DefaultThumbnailSize,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.keys == (KeyDeriver{}) {
		c.keys = DefaultKeyDeriver()
	}
	if c.fetcher == nil {
		c.fetcher = defaultFetcher()
	}
	if c.dispatcher == nil {
		c.dispatcher = startedQueue()
	}
	return c
}

var (
	sharedMu         sync.Mutex
	sharedCache      *Cache
	sharedDispatcher Dispatcher
)

// ErrSharedStarted is returned by SetSharedDispatcher once Shared has built
// the process-wide cache.
var ErrSharedStarted = errors.New("shared cache already created")

// SetSharedDispatcher designates where the shared cache delivers slow-path
// completions. It must be called before the first call to Shared.
func SetSharedDispatcher(d Dispatcher) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedCache != nil {
		return ErrSharedStarted
	}
	sharedDispatcher = d
	return nil
}

// Shared returns the process-wide cache built from the user's configuration.
// Without SetSharedDispatcher, completions run on a queue goroutine owned by
// the cache.
func Shared() *Cache {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedCache == nil {
		opts := FromConfig(loadConfig())
		if sharedDispatcher != nil {
			opts = append(opts, WithDispatcher(sharedDispatcher))
		}
		sharedCache = New(opts...)
	}
	return sharedCache
}

// Keys returns the key deriver the cache uses.
func (c *Cache) Keys() KeyDeriver {
	return c.keys
}

// ThumbnailSize returns the size every slow-path image is redrawn to.
func (c *Cache) ThumbnailSize() image.Point {
	return c.size
}

// Lookup reports the cache path for locator and whether a thumbnail is there.
func (c *Cache) Lookup(locator *url.URL) (string, bool) {
	path := c.keys.Path(locator)
	return path, exists(path)
}

// Entries lists the thumbnails currently on disk.
func (c *Cache) Entries() ([]Entry, error) {
	return ListEntries(c.keys)
}

// FetchImage delivers the thumbnail for locator to completion.
//
// On a cache hit the file is decoded and completion runs before FetchImage
// returns. Otherwise the image is fetched in the background and completion
// runs through the cache's dispatcher. Completion is called at most once, and
// not at all if the returned handle is canceled before it starts.
func (c *Cache) FetchImage(locator *url.URL, completion Completion) *Handle {
	path := c.keys.Path(locator)
	log := c.logger.WithFields(logrus.Fields{"locator": locator.String(), "path": path})

	if exists(path) {
		img, err := readThumbnail(path)
		if err != nil {
			log.WithError(err).Warn("Failed to read cached thumbnail")
			img = nil
		}
		completion(locator, img)
		return finishedHandle()
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := newHandle(cancel)

	go func() {
		defer h.finish()

		img := c.load(ctx, locator, path, log)
		if ctx.Err() != nil && h.Canceled() {
			return
		}
		c.dispatcher.Dispatch(func() {
			if h.claim() {
				completion(locator, img)
			}
		})
	}()

	return h
}

// load runs the slow path. It returns nil when nothing can be delivered.
func (c *Cache) load(ctx context.Context, locator *url.URL, path string, log logrus.FieldLogger) image.Image {
	data, err := c.fetcher.Fetch(ctx, locator)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.WithError(err).Debug("Image fetch failed")
		}
		return nil
	}
	if len(data) == 0 {
		log.WithError(ErrEmptyPayload).Debug("Image fetch returned no data")
		return nil
	}

	src, err := decodeImage(data)
	if err != nil {
		log.WithError(err).Debug("Fetched payload is not a usable image")
		return nil
	}

	thumb := resize(src, c.size)
	if err := persist(path, thumb); err != nil {
		log.WithError(err).Error("Error saving image to cache")
	}
	return thumb
}
