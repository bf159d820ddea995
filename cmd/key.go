package cmd

import (
	"fmt"

	"github.com/Superbil/PodcastMenu/imagecache"
	"github.com/Superbil/PodcastMenu/utils"

	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key [url]...",
	Short: "Print the cache path for image URLs",
	Long:  "Derives the on-disk cache path for each URL without touching the network or the filesystem.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := imagecache.FromConfigKeys(cfg)
		for _, arg := range args {
			u, err := utils.ParseLocator(arg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), keys.Path(u))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
}
