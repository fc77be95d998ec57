package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ResolveTicketRequest represents the resolve API request.
type ResolveTicketRequest struct {
	UsedKB          bool   `json:"used_kb"`
	AcceptedKBID    string `json:"accepted_kb_id,omitempty"`
	AppliedSolution string `json:"applied_solution,omitempty"`
}

// ResolveResponse represents the resolve API response.
type ResolveResponse struct {
	Ticket    Ticket `json:"ticket"`
	AddedToKB bool   `json:"added_to_kb"`
}

// ResolveCmd creates the resolve command.
func ResolveCmd() *cobra.Command {
	var (
		kbID     string
		solution string
	)

	cmd := &cobra.Command{
		Use:   "resolve <ticket_id>",
		Short: "Resolve a ticket",
		Long: `Marks a ticket you are working on as done. Pass --kb-id when an existing
knowledge base solution was applied, or --solution with the applied fix for a
novel problem so it can be added to the knowledge base.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runResolve(cmd, args[0], kbID, solution, outputJSON)
		},
	}

	cmd.Flags().StringVar(&kbID, "kb-id", "", "Knowledge base item that solved the ticket")
	cmd.Flags().StringVarP(&solution, "solution", "s", "", "Applied solution text")

	return cmd
}

func runResolve(cmd *cobra.Command, ticketID, kbID, solution string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post(fmt.Sprintf("/api/tickets/%s/resolve", ticketID), ResolveTicketRequest{
		UsedKB:          kbID != "",
		AcceptedKBID:    kbID,
		AppliedSolution: solution,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve ticket: %w", err)
	}

	var out ResolveResponse
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return fmt.Errorf("failed to parse resolve response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Ticket %s is now %s\n", out.Ticket.ID, out.Ticket.Status)
	if out.AddedToKB {
		fmt.Println("Solution added to the knowledge base")
	}

	return nil
}
