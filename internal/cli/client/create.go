package client

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// CreateTicketRequest represents the ticket creation API request.
type CreateTicketRequest struct {
	Description string `json:"description"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// CreateCmd creates the create command.
func CreateCmd() *cobra.Command {
	var contact string

	cmd := &cobra.Command{
		Use:   "create [description]",
		Short: "Create a support ticket",
		Long:  "Creates a new support ticket. The description is taken from the argument, or from stdin when omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")

			var description string
			if len(args) > 0 {
				description = args[0]
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read description from stdin: %w", err)
				}
				description = strings.TrimSpace(string(data))
			}

			return runCreate(cmd, description, contact, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&contact, "contact", "c", "", "Contact info for follow-up")

	return cmd
}

func runCreate(cmd *cobra.Command, description, contact string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/api/tickets", CreateTicketRequest{
		Description: description,
		ContactInfo: contact,
	})
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	var ticket Ticket
	if err := json.Unmarshal(resp.Data, &ticket); err != nil {
		return fmt.Errorf("failed to parse ticket: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(ticket, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Printf("Created ticket %s (status: %s)\n", ticket.ID, ticket.Status)
	}

	return nil
}
