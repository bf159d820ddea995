package cmd

import (
	"fmt"
	"net/url"

	"github.com/Superbil/PodcastMenu/fetcher"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var searchNoFetch bool

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Find podcast artwork and cache its thumbnail",
	Long: `Looks up a podcast by name in the iTunes directory, prints its artwork URL
and fetches the thumbnail into the cache.

Examples:
  podcastmenu search "Accidental Tech Podcast"
  podcastmenu search --no-fetch "Hardcore History"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		artwork := fetcher.NewPodcastArtwork(cfg.ITunesBaseURL, cfg.UserAgent)

		logrus.Infof("Searching artwork for %q...", args[0])
		locator, err := artwork.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), locator.String())

		if searchNoFetch {
			return nil
		}

		results, err := fetchAll(cmd.Context(), []*url.URL{locator})
		if err != nil {
			return err
		}
		return printFetchResults(results)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchNoFetch, "no-fetch", false, "Only print the artwork URL")
}
