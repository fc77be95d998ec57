package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// WhoamiCmd creates the whoami command.
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
		Long:  "Fetches the account behind the stored credentials from the API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runWhoami(cmd, outputJSON)
		},
	}
}

func runWhoami(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/api/users/me")
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}

	var user User
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		return fmt.Errorf("failed to parse account: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(user, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Printf("Name: %s\n", user.FullName)
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("Role: %s\n", user.Role)
		fmt.Printf("ID: %s\n", user.ID)
	}

	return nil
}
