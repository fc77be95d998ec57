package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deskhive/deskhive/internal/cli"
	"github.com/deskhive/deskhive/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskhived",
		Short: "DeskHive daemon",
		Long:  "DeskHive daemon for running the support desk API server and seeding demo data",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.SeedCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
