package cmd

import (
	"fmt"
	"os"

	"github.com/Superbil/PodcastMenu/config"
	"github.com/Superbil/PodcastMenu/imagecache"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "podcastmenu",
	Short: "Podcast artwork thumbnail cache",
	Long: `podcastmenu keeps small thumbnails of podcast artwork on disk.

Each image URL maps to a fixed file under the user cache directory. The first
fetch downloads, downsamples and stores the thumbnail; later fetches read it
straight from disk.

Examples:
  podcastmenu key https://example.com/art/cover.jpg
  podcastmenu fetch https://example.com/art/cover.jpg
  podcastmenu search "Accidental Tech Podcast"
  podcastmenu list`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.podcastmenu.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".podcastmenu")
		viper.SetConfigType("yaml")
	}

	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		logrus.Warnf("Failed to load config, using defaults: %v", err)
		loaded = config.DefaultConfig()
	}
	if err := config.ValidateConfig(loaded); err != nil {
		logrus.Warnf("Invalid config, using defaults: %v", err)
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	if verbose {
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Println("Using config file:", used)
		}
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}

// newCache builds a cache whose slow-path completions are delivered on d.
func newCache(d imagecache.Dispatcher) *imagecache.Cache {
	opts := imagecache.FromConfig(cfg)
	opts = append(opts, imagecache.WithDispatcher(d))
	return imagecache.New(opts...)
}
