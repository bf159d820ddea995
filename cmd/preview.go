package cmd

import (
	"net/url"

	"github.com/Superbil/PodcastMenu/tui"
	"github.com/Superbil/PodcastMenu/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [url]...",
	Short: "Preview thumbnails in the terminal",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		locators := make([]*url.URL, 0, len(args))
		for _, arg := range args {
			u, err := utils.ParseLocator(arg)
			if err != nil {
				logrus.Fatal(err)
			}
			locators = append(locators, u)
		}

		if err := tui.Run(locators, newCache); err != nil {
			logrus.Fatalf("Preview exited with error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
