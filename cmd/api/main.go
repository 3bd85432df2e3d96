package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "delivery",
	Short: "Delivery backend for users, riders and shipments",
	Long: `Delivery backend for users, riders and shipments. Usage:

	delivery serve
	delivery migrate
`,
	SilenceUsage: true,
	// Running without a subcommand starts the server.
	RunE: runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
