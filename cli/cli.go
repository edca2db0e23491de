// Package cli defines the command-line surface: the publish pipeline as the
// root command, plus connection test, preview, and history helpers.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"auto_wp_article_publisher/config"
	"auto_wp_article_publisher/logging"
	"auto_wp_article_publisher/pipeline"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "autopub [files...]",
	Short: "Structure manuscripts with Gemini and publish them to WordPress",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPublish,

	SilenceUsage: true,
}

var (
	flagDryRun         bool
	flagPublish        bool
	flagConfirm        bool
	flagForceUpdate    bool
	flagForceNew       bool
	flagNoCTA          bool
	flagSkipValidation bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "render without publishing")
	rootCmd.Flags().BoolVar(&flagPublish, "publish", false, "publish immediately instead of drafting")
	rootCmd.Flags().BoolVar(&flagConfirm, "confirm", false, "ask for confirmation after structuring")
	rootCmd.Flags().BoolVar(&flagForceUpdate, "force-update", false, "update an existing post without asking")
	rootCmd.Flags().BoolVar(&flagForceNew, "force-new", false, "ignore existing posts and create a new one")
	rootCmd.Flags().BoolVar(&flagNoCTA, "no-cta", false, "skip the call-to-action fragment")
	rootCmd.Flags().BoolVar(&flagSkipValidation, "skip-validation", false, "skip the structure validation gate")

	rootCmd.AddCommand(testConnectionCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	runner, err := buildRunner(cfg, log, askOperator)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		DryRun:         flagDryRun,
		Publish:        flagPublish,
		Confirm:        flagConfirm,
		ForceUpdate:    flagForceUpdate,
		ForceNew:       flagForceNew,
		NoCTA:          flagNoCTA,
		SkipValidation: flagSkipValidation,
	}

	succeeded, failed := runner.Run(cmd.Context(), args, opts)
	if len(args) > 1 {
		log.Info().Int("succeeded", succeeded).Int("failed", failed).Msg("batch complete")
	}
	if failed > 0 {
		return fmt.Errorf("%d document(s) failed", failed)
	}
	return nil
}

// askOperator prompts on stdout and reads one line from stdin; anything but
// "y" declines.
func askOperator(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}
