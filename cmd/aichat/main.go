package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aichat",
	Short: "AI chat web client",
	Long: `aichat serves a small web client for the AI chat API.

Available subcommands:
  serve   - Run the web client
  dbcheck - Load backend settings and check the database connection`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, dbcheckCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
