package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Superbil/PodcastMenu/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, config.ValidateConfig(cfg))
	assert.Equal(t, 44, cfg.ThumbnailWidth)
	assert.Equal(t, 44, cfg.ThumbnailHeight)
	assert.Equal(t, config.DefaultAppIdentifier, cfg.AppIdentifier)
	assert.NotEmpty(t, cfg.CacheRoot)
}

func TestValidateConfig(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "log level", mutate: func(c *config.Config) { c.LogLevel = "loud" }},
		{name: "empty app identifier", mutate: func(c *config.Config) { c.AppIdentifier = " " }},
		{name: "app identifier with separator", mutate: func(c *config.Config) { c.AppIdentifier = "a/b" }},
		{name: "zero width", mutate: func(c *config.Config) { c.ThumbnailWidth = 0 }},
		{name: "negative height", mutate: func(c *config.Config) { c.ThumbnailHeight = -1 }},
		{name: "zero timeout", mutate: func(c *config.Config) { c.FetchTimeout = 0 }},
		{name: "zero max bytes", mutate: func(c *config.Config) { c.MaxImageBytes = 0 }},
		{name: "zero concurrency", mutate: func(c *config.Config) { c.FetchConcurrency = 0 }},
		{name: "relative itunes url", mutate: func(c *config.Config) { c.ITunesBaseURL = "itunes.apple.com" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, config.ValidateConfig(cfg))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "podcastmenu.yaml")
		require.NoError(t, os.WriteFile(path, []byte("thumbnail_width: 64\ncache_root: /tmp/thumbs\n"), 0o644))

		v := viper.New()
		v.SetConfigFile(path)
		cfg, err := config.Load(v)

		require.NoError(t, err)
		assert.Equal(t, 64, cfg.ThumbnailWidth)
		assert.Equal(t, 44, cfg.ThumbnailHeight)
		assert.Equal(t, "/tmp/thumbs", cfg.CacheRoot)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PODCASTMENU_FETCH_CONCURRENCY", "9")

		cfg, err := config.Load(viper.New())

		require.NoError(t, err)
		assert.Equal(t, 9, cfg.FetchConcurrency)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		v := viper.New()
		v.SetConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := config.Load(v)
		assert.Error(t, err)
	})
}

func TestSaveConfigTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.DefaultConfig()
	cfg.AppIdentifier = "com.example.roundtrip"
	cfg.ThumbnailHeight = 88

	require.NoError(t, config.SaveConfigTo(viper.New(), cfg, path))

	v := viper.New()
	v.SetConfigFile(path)
	loaded, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
