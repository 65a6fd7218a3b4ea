package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"wikigear/internal/refresh"
	"wikigear/internal/wiki"
)

func init() {
	rootCmd.AddCommand(linksCmd, scrapeCmd, syncCmd, watchCmd)
}

var linksCmd = &cobra.Command{
	Use:   "links <category>... | all",
	Short: "Collects the item links of a wiki category into <Cat>_URL.json.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := parseCategories(args)
		if err != nil {
			return err
		}
		svc, err := wiki.NewSyncService(db, cfg)
		if err != nil {
			return err
		}
		for _, cat := range cats {
			path, count, err := svc.CollectLinks(cmd.Context(), cat)
			if err != nil {
				return err
			}
			fmt.Printf("collected %d links for %s to %s\n", count, cat, path)
		}
		return nil
	},
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <category>... | all",
	Short: "Scrapes every linked item page into RAW_<Cat>_Data.json.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := parseCategories(args)
		if err != nil {
			return err
		}
		svc, err := wiki.NewSyncService(db, cfg)
		if err != nil {
			return err
		}
		for _, cat := range cats {
			path, count, err := svc.ScrapeItems(cmd.Context(), cat)
			if err != nil {
				return err
			}
			fmt.Printf("combined extracted info for %d %s saved to '%s'\n", count, cat, path)
		}
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync <category>... | all",
	Short: "Runs links, scrape and transform for each category in turn.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := parseCategories(args)
		if err != nil {
			return err
		}
		svc, err := refresh.NewService(db, cfg, cats)
		if err != nil {
			return err
		}
		for _, cat := range cats {
			res, err := svc.SyncCategory(cmd.Context(), cat)
			if err != nil {
				return err
			}
			fmt.Printf("sync complete category=%s records=%d output=%s\n", cat, res.Records, res.OutputPath)
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [<category>... | all]",
	Short: "Re-syncs categories every REFRESH_INTERVAL_SEC until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"all"}
		}
		cats, err := parseCategories(args)
		if err != nil {
			return err
		}
		svc, err := refresh.NewService(db, cfg, cats)
		if err != nil {
			return err
		}
		return svc.Run(cmd.Context())
	},
}
