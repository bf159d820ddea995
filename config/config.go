package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultAppIdentifier = "com.superbil.PodcastMenu"
	configName           = ".podcastmenu"
	envPrefix            = "PODCASTMENU"
)

type Config struct {
	CacheRoot     string `mapstructure:"cache_root"`
	AppIdentifier string `mapstructure:"app_identifier"`

	ThumbnailWidth  int `mapstructure:"thumbnail_width"`
	ThumbnailHeight int `mapstructure:"thumbnail_height"`

	FetchTimeout     int    `mapstructure:"fetch_timeout"`
	MaxImageBytes    int64  `mapstructure:"max_image_bytes"`
	UserAgent        string `mapstructure:"user_agent"`
	FetchConcurrency int    `mapstructure:"fetch_concurrency"`
	ITunesBaseURL    string `mapstructure:"itunes_base_url"`

	LogLevel string `mapstructure:"log_level"`
}

func DefaultConfig() *Config {
	root, err := os.UserCacheDir()
	if err != nil {
		root = os.TempDir()
	}
	return &Config{
		CacheRoot:        root,
		AppIdentifier:    DefaultAppIdentifier,
		ThumbnailWidth:   44,
		ThumbnailHeight:  44,
		FetchTimeout:     30,
		MaxImageBytes:    10 * 1024 * 1024, // 10MB
		UserAgent:        "PodcastMenu/1.0",
		FetchConcurrency: 4,
		ITunesBaseURL:    "https://itunes.apple.com",
		LogLevel:         "info",
	}
}

// LoadConfig reads $HOME/.podcastmenu.yaml (or ./.podcastmenu.yaml) through
// the global viper instance. A missing file leaves the defaults in place.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}

	viper.AddConfigPath(home)
	viper.AddConfigPath(".")
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")

	return Load(viper.GetViper())
}

// Load decodes v on top of the defaults. Environment variables named
// PODCASTMENU_<KEY> override file values.
func Load(v *viper.Viper) (*Config, error) {
	config := DefaultConfig()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// bindKeys makes AutomaticEnv visible to Unmarshal, which only sees keys
// viper already knows about.
func bindKeys(v *viper.Viper) {
	for _, key := range []string{
		"cache_root", "app_identifier", "thumbnail_width", "thumbnail_height",
		"fetch_timeout", "max_image_bytes", "user_agent", "fetch_concurrency",
		"itunes_base_url", "log_level",
	} {
		_ = v.BindEnv(key)
	}
}

func SaveConfig(config *Config) error {
	configFile, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(viper.New(), config, configFile)
}

func SaveConfigTo(v *viper.Viper, config *Config, configFile string) error {
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	v.Set("cache_root", config.CacheRoot)
	v.Set("app_identifier", config.AppIdentifier)
	v.Set("thumbnail_width", config.ThumbnailWidth)
	v.Set("thumbnail_height", config.ThumbnailHeight)
	v.Set("fetch_timeout", config.FetchTimeout)
	v.Set("max_image_bytes", config.MaxImageBytes)
	v.Set("user_agent", config.UserAgent)
	v.Set("fetch_concurrency", config.FetchConcurrency)
	v.Set("itunes_base_url", config.ITunesBaseURL)
	v.Set("log_level", config.LogLevel)

	return v.WriteConfig()
}

func GetConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configName+".yaml"), nil
}

func CreateDefaultConfig() error {
	config := DefaultConfig()
	return SaveConfig(config)
}

func ValidateConfig(config *Config) error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	found := false
	for _, level := range validLogLevels {
		if config.LogLevel == level {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	if strings.TrimSpace(config.AppIdentifier) == "" {
		return fmt.Errorf("app identifier is required")
	}
	if strings.ContainsAny(config.AppIdentifier, `/\`) {
		return fmt.Errorf("invalid app identifier: %s", config.AppIdentifier)
	}

	if config.ThumbnailWidth <= 0 || config.ThumbnailHeight <= 0 {
		return fmt.Errorf("invalid thumbnail size: %dx%d", config.ThumbnailWidth, config.ThumbnailHeight)
	}
	if config.FetchTimeout <= 0 {
		return fmt.Errorf("invalid fetch timeout: %d", config.FetchTimeout)
	}
	if config.MaxImageBytes <= 0 {
		return fmt.Errorf("invalid max image bytes: %d", config.MaxImageBytes)
	}
	if config.FetchConcurrency <= 0 {
		return fmt.Errorf("invalid fetch concurrency: %d", config.FetchConcurrency)
	}

	u, err := url.Parse(config.ITunesBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid iTunes base URL: %s", config.ITunesBaseURL)
	}

	return nil
}
