package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Ticket represents a support ticket from the API.
type Ticket struct {
	ID           string `json:"id"`
	Description  string `json:"description"`
	ContactInfo  string `json:"contact_info,omitempty"`
	Status       string `json:"status"`
	StatusCode   int    `json:"status_code"`
	ClientID     string `json:"client_id"`
	SpecialistID string `json:"specialist_id,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// GetCmd creates the get command.
func GetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <ticket_id>",
		Short:   "Get a ticket by ID",
		Long:    "Retrieves a ticket by its ID and displays the full content.",
		Aliases: []string{"view"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runGet(cmd, args[0], outputJSON)
		},
	}
}

func runGet(cmd *cobra.Command, ticketID string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get(fmt.Sprintf("/api/tickets/%s", ticketID))
	if err != nil {
		return fmt.Errorf("failed to get ticket: %w", err)
	}

	var ticket Ticket
	if err := json.Unmarshal(resp.Data, &ticket); err != nil {
		return fmt.Errorf("failed to parse ticket: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(ticket, "", "  ")
		fmt.Println(string(output))
	} else {
		printTicket(&ticket)
	}

	return nil
}

func printTicket(t *Ticket) {
	fmt.Printf("Ticket: %s\n", t.ID)
	fmt.Printf("Status: %s\n", t.Status)
	if t.SpecialistID != "" {
		fmt.Printf("Specialist: %s\n", t.SpecialistID)
	}
	if t.ContactInfo != "" {
		fmt.Printf("Contact: %s\n", t.ContactInfo)
	}
	fmt.Printf("Created: %s\n", t.CreatedAt)
	fmt.Printf("Updated: %s\n", t.UpdatedAt)
	fmt.Println()
	fmt.Println("--- Description ---")
	fmt.Println(t.Description)
}
