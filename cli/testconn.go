package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"auto_wp_article_publisher/config"
	"auto_wp_article_publisher/logging"
)

var testConnectionCmd = &cobra.Command{
	Use:   "test-connection",
	Short: "Check Gemini credentials and WordPress API reachability",
	Args:  cobra.NoArgs,
	RunE:  runTestConnection,
}

func runTestConnection(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	ok := true

	if cfg.Gemini.APIKey != "" {
		fmt.Println("✓ Gemini API key configured")
	} else {
		fmt.Println("✗ Gemini API key missing (set GEMINI_API_KEY)")
		ok = false
	}

	pub, err := buildPublisher(cfg, log)
	if err != nil {
		fmt.Printf("✗ WordPress configuration invalid: %v\n", err)
		return fmt.Errorf("connection check failed")
	}
	if pub.TestConnection(cmd.Context()) {
		fmt.Println("✓ WordPress API reachable")
	} else {
		fmt.Println("✗ WordPress API unreachable or credentials rejected")
		ok = false
	}

	if !ok {
		return fmt.Errorf("connection check failed")
	}
	return nil
}
