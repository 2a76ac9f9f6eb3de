package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/atelier-edu/atelier/internal/interfaces/cli/migrate"
	"github.com/atelier-edu/atelier/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "atelier",
		Short: "Atelier - catalog access and claim service",
		Long:  `Atelier resolves content access across ownership, purchases and subscription claims, and arbitrates monthly claim allowances.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
