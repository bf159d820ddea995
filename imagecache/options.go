package imagecache

import (
	"image"
	"os"
	"time"

	"github.com/Superbil/PodcastMenu/config"
	"github.com/Superbil/PodcastMenu/fetcher"
	"github.com/sirupsen/logrus"
)

// Option configures a Cache.
type Option func(*Cache)

// WithKeyDeriver sets the cache root and application identifier.
func WithKeyDeriver(k KeyDeriver) Option {
	return func(c *Cache) {
		c.keys = k
	}
}

// WithFetcher sets the network collaborator.
func WithFetcher(f Fetcher) Option {
	return func(c *Cache) {
		c.fetcher = f
	}
}

// WithDispatcher sets the context slow-path completions are delivered on.
func WithDispatcher(d Dispatcher) Option {
	return func(c *Cache) {
		c.dispatcher = d
	}
}

// WithThumbnailSize sets the thumbnail dimensions. Non-positive sizes are
// ignored.
func WithThumbnailSize(width, height int) Option {
	return func(c *Cache) {
		if width > 0 && height > 0 {
			c.size = image.Pt(width, height)
		}
	}
}

// WithLogger sets the diagnostics sink.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// DefaultKeyDeriver roots the cache in the platform cache directory.
func DefaultKeyDeriver() KeyDeriver {
	root, err := os.UserCacheDir()
	if err != nil {
		root = os.TempDir()
	}
	return KeyDeriver{Root: root, AppID: config.DefaultAppIdentifier}
}

// FromConfigKeys returns the key deriver described by cfg.
func FromConfigKeys(cfg *config.Config) KeyDeriver {
	keys := DefaultKeyDeriver()
	if cfg.CacheRoot != "" {
		keys.Root = cfg.CacheRoot
	}
	if cfg.AppIdentifier != "" {
		keys.AppID = cfg.AppIdentifier
	}
	return keys
}

// FromConfig translates cfg into cache options. The dispatcher is left to
// the caller.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithKeyDeriver(FromConfigKeys(cfg)),
		WithThumbnailSize(cfg.ThumbnailWidth, cfg.ThumbnailHeight),
		WithFetcher(fetcher.NewImageFetcher(fetcher.Options{
			Timeout:   time.Duration(cfg.FetchTimeout) * time.Second,
			MaxBytes:  cfg.MaxImageBytes,
			UserAgent: cfg.UserAgent,
		})),
	}
}

func defaultFetcher() Fetcher {
	return fetcher.NewImageFetcher(fetcher.Options{})
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Debugf("Failed to load config, using defaults: %v", err)
		return config.DefaultConfig()
	}
	if err := config.ValidateConfig(cfg); err != nil {
		logrus.Warnf("Invalid config, using defaults: %v", err)
		return config.DefaultConfig()
	}
	return cfg
}
