package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"text/tabwriter"

	"github.com/Superbil/PodcastMenu/imagecache"
	"github.com/Superbil/PodcastMenu/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [url]",
	Short: "Show the cache entry for an image URL",
	Long:  "Prints where the thumbnail for a URL lives and, when it is cached, its file size and dimensions.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := utils.ParseLocator(args[0])
		if err != nil {
			return err
		}

		keys := imagecache.FromConfigKeys(cfg)
		path := keys.Path(u)

		out := struct {
			URL    string `json:"url"`
			Path   string `json:"path"`
			Cached bool   `json:"cached"`
			Bytes  int64  `json:"bytes,omitempty"`
			Width  int    `json:"width,omitempty"`
			Height int    `json:"height,omitempty"`
		}{URL: u.String(), Path: path}

		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			out.Cached = true
			out.Bytes = info.Size()
			if w, h, err := imageDimensions(path); err != nil {
				logrus.Warnf("Failed to read cached thumbnail: %v", err)
			} else {
				out.Width, out.Height = w, h
			}
		}

		if showJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "URL:\t%s\n", out.URL)
		fmt.Fprintf(tw, "Path:\t%s\n", out.Path)
		fmt.Fprintf(tw, "Cached:\t%t\n", out.Cached)
		if out.Cached {
			fmt.Fprintf(tw, "Size:\t%s\n", utils.HumanSize(out.Bytes))
			fmt.Fprintf(tw, "Dimensions:\t%dx%d\n", out.Width, out.Height)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
}

func imageDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	conf, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return conf.Width, conf.Height, nil
}
