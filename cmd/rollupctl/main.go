package main

import (
	"fmt"
	"os"

	"quote_rollup/internal/cli"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := cli.NewRootCommand(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
