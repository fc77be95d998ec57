package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deskhive/deskhive/internal/cli"
	"github.com/deskhive/deskhive/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskhive",
		Short: "DeskHive CLI - Support desk from the terminal",
		Long: `DeskHive CLI provides commands to work with support tickets and the knowledge base.

Environment variables:
  DESKHIVE_USER_ID   User ID for authentication (run 'deskhive auth login' to obtain)
  DESKHIVE_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("user", "", "User ID for authentication (overrides env and config)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.AuthCmd())
	rootCmd.AddCommand(client.WhoamiCmd())
	rootCmd.AddCommand(client.CreateCmd())
	rootCmd.AddCommand(client.GetCmd())
	rootCmd.AddCommand(client.ListCmd())
	rootCmd.AddCommand(client.AssignCmd())
	rootCmd.AddCommand(client.RecommendCmd())
	rootCmd.AddCommand(client.ResolveCmd())
	rootCmd.AddCommand(client.ConfirmCmd())
	rootCmd.AddCommand(client.KBCmd())
	rootCmd.AddCommand(client.StatsCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
