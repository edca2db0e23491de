package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"

	"auto_wp_article_publisher/loader"
)

var previewOut string

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Render a manuscript body to plain HTML without structuring it",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "output", "o", "", "write HTML to this file instead of stdout")
}

func runPreview(cmd *cobra.Command, args []string) error {
	draft, err := loader.New().Load(args[0])
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(draft.Content), &buf); err != nil {
		return fmt.Errorf("markdown conversion failed: %w", err)
	}

	if previewOut != "" {
		if err := os.WriteFile(previewOut, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Printf("preview written to %s\n", previewOut)
		return nil
	}
	fmt.Println(buf.String())
	return nil
}
