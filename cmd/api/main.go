package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/noteandmore/api/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "noteandmore",
		Short: "NoteAndMore API Server",
		Long:  `NoteAndMore is a personal productivity API for tasks, quotes, categories and shopping lists.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
