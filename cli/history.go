package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"auto_wp_article_publisher/config"
	"auto_wp_article_publisher/history"
	"auto_wp_article_publisher/logging"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded publications",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	records := history.New(cfg.History.File, log).ListAll()
	if len(records) == 0 {
		fmt.Println("no publications recorded")
		return nil
	}

	for _, rec := range records {
		e := rec.Entry
		line := fmt.Sprintf("%s\tpost=%d\tv%d\tcreated=%s", rec.Slug, e.PostID, e.Versions, e.CreatedAt.Format("2006-01-02"))
		if e.UpdatedAt != nil {
			line += fmt.Sprintf("\tupdated=%s", e.UpdatedAt.Format("2006-01-02"))
		}
		fmt.Println(line)
	}
	return nil
}
