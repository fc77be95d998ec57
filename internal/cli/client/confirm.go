package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ConfirmTicketRequest represents the confirm API request.
type ConfirmTicketRequest struct {
	Confirmed bool `json:"confirmed"`
}

// ConfirmCmd creates the confirm command.
func ConfirmCmd() *cobra.Command {
	var reject bool

	cmd := &cobra.Command{
		Use:   "confirm <ticket_id>",
		Short: "Confirm or reject a resolved ticket",
		Long:  "Confirms that your resolved ticket is fixed (closing it), or rejects the fix with --reject (sending it back to work).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runConfirm(cmd, args[0], !reject, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&reject, "reject", false, "Reject the fix and reopen the ticket")

	return cmd
}

func runConfirm(cmd *cobra.Command, ticketID string, confirmed bool, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post(fmt.Sprintf("/api/tickets/%s/confirm", ticketID), ConfirmTicketRequest{
		Confirmed: confirmed,
	})
	if err != nil {
		return fmt.Errorf("failed to confirm ticket: %w", err)
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
