package main

import (
	"os"

	"github.com/joho/godotenv"

	"auto_wp_article_publisher/cli"
)

func main() {
	// Credentials may live in a local .env; absence is fine.
	_ = godotenv.Load()
	os.Exit(cli.Execute())
}
