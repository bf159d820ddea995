package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"net/url"
	"os"
	"sync"
	"text/tabwriter"

	"github.com/Superbil/PodcastMenu/imagecache"
	"github.com/Superbil/PodcastMenu/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var fetchJSON bool

type fetchResult struct {
	URL    string `json:"url"`
	Path   string `json:"path"`
	Cached bool   `json:"cached"`
	OK     bool   `json:"ok"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]...",
	Short: "Fetch thumbnails into the cache",
	Long: `Fetch one or more images, downsample them to the thumbnail size and store
them in the cache. URLs already cached are read from disk without a network call.

Examples:
  podcastmenu fetch https://example.com/art/cover.jpg
  podcastmenu fetch --json https://a.example/1.png https://b.example/2.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		locators := make([]*url.URL, 0, len(args))
		for _, arg := range args {
			u, err := utils.ParseLocator(arg)
			if err != nil {
				return err
			}
			locators = append(locators, u)
		}

		results, err := fetchAll(cmd.Context(), locators)
		if err != nil {
			return err
		}
		return printFetchResults(results)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Output as JSON")
}

// fetchAll runs the fetches with bounded concurrency. Slow-path completions
// are delivered on the calling goroutine through a queue.
func fetchAll(ctx context.Context, locators []*url.URL) ([]fetchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	queue := imagecache.NewQueue(len(locators))
	cache := newCache(queue)

	results := make([]fetchResult, len(locators))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.FetchConcurrency)

	for i, locator := range locators {
		path, cached := cache.Lookup(locator)
		results[i] = fetchResult{URL: locator.String(), Path: path, Cached: cached}

		g.Go(func() error {
			h := cache.FetchImage(locator, func(_ *url.URL, img image.Image) {
				mu.Lock()
				defer mu.Unlock()
				if img == nil {
					return
				}
				results[i].OK = true
				results[i].Width = img.Bounds().Dx()
				results[i].Height = img.Bounds().Dy()
			})

			select {
			case <-h.Done():
			case <-gctx.Done():
				h.Cancel()
			}
			return nil
		})
	}

	errc := make(chan error, 1)
	go func() {
		errc <- g.Wait()
		queue.Close()
	}()
	queue.Run(ctx)
	waitErr := <-errc

	mu.Lock()
	defer mu.Unlock()
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, waitErr
}

func printFetchResults(results []fetchResult) error {
	if fetchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tSIZE\tURL\tPATH")
	failed := 0
	for _, r := range results {
		status := "fetched"
		switch {
		case !r.OK:
			status = "failed"
			failed++
		case r.Cached:
			status = "cached"
		}
		size := "-"
		if r.OK {
			size = fmt.Sprintf("%dx%d", r.Width, r.Height)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status, size, r.URL, r.Path)
	}
	tw.Flush()

	if failed > 0 {
		logrus.Warnf("%d of %d images could not be fetched", failed, len(results))
	}
	return nil
}
