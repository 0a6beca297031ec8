package main

import (
	"os"

	"github.com/spf13/cobra"

	"skynet/internal/interfaces/cli/migrate"
	"skynet/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skynet",
		Short: "SkyNet - support request intake service",
		Long:  `SkyNet receives support requests with attachments, assigns ticket codes, and serves the request history.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
