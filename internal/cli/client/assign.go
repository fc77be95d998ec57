package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// AssignCmd creates the assign command.
func AssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "assign <ticket_id>",
		Short:   "Take a ticket into work",
		Long:    "Assigns an open ticket to you and moves it to the in_work status. Requires the specialist role.",
		Aliases: []string{"take"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAssign(cmd, args[0], outputJSON)
		},
	}
}

func runAssign(cmd *cobra.Command, ticketID string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Put(fmt.Sprintf("/api/tickets/%s/assign", ticketID), nil)
	if err != nil {
		return fmt.Errorf("failed to assign ticket: %w", err)
	}

	var ticket Ticket
	if err := json.Unmarshal(resp.Data, &ticket); err != nil {
		return fmt.Errorf("failed to parse ticket: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(ticket, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Printf("Ticket %s is now %s\n", ticket.ID, ticket.Status)
	}

	return nil
}
