package cmd

import (
	"os"

	"github.com/Superbil/PodcastMenu/imagecache"
	"github.com/Superbil/PodcastMenu/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached thumbnails",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := imagecache.FromConfigKeys(cfg)
		entries, err := imagecache.ListEntries(keys)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			logrus.Infof("Cache is empty: %s", keys.Dir())
			return nil
		}

		var total int64
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Name", "Size", "Modified"})
		for _, e := range entries {
			total += e.Size
			t.AppendRow(table.Row{e.Name, utils.HumanSize(e.Size), e.ModTime.Format("2006-01-02 15:04")})
		}
		t.AppendFooter(table.Row{len(entries), utils.HumanSize(total), keys.Dir()})
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
