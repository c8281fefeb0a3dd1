package main

import (
	"os"

	"github.com/spf13/cobra"

	"deskflow/internal/interfaces/cli/migrate"
	"deskflow/internal/interfaces/cli/sweep"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskflow",
		Short: "Deskflow - customer conversation platform core",
		Long:  `Deskflow manages customer conversation tickets and their kanban board mirror, with migration and maintenance tooling.`,
	}

	rootCmd.AddCommand(
		migrate.NewCommand(),
		sweep.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
