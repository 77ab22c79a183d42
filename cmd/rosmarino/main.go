package main

import (
	"os"

	"github.com/spf13/cobra"

	"rosmarino/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rosmarino",
		Short: "Rosmarino - restaurant site API",
		Long:  `Rosmarino serves the restaurant site's menu content and handles contact and newsletter submissions.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
