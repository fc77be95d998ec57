package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// TicketPage represents a page of tickets from the API.
type TicketPage struct {
	Items      []Ticket `json:"items"`
	NextCursor string   `json:"next_cursor,omitempty"`
	HasMore    bool     `json:"has_more"`
}

// ListCmd creates the list command.
func ListCmd() *cobra.Command {
	var (
		queue  string
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List tickets",
		Long:    "Lists tickets from one of the queues: my (your own tickets), open (unassigned, specialists only), assigned (assigned to you, specialists only).",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runList(cmd, queue, limit, cursor, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&queue, "queue", "q", "my", "Queue to list: my, open, or assigned")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of tickets")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from previous response")

	return cmd
}

// queuePath maps a queue name to its API path.
func queuePath(queue string) (string, error) {
	switch queue {
	case "my":
		return "/api/tickets/my", nil
	case "open":
		return "/api/tickets/open", nil
	case "assigned":
		return "/api/tickets/assigned", nil
	default:
		return "", fmt.Errorf("unknown queue %q (expected my, open, or assigned)", queue)
	}
}

func runList(cmd *cobra.Command, queue string, limit int, cursor string, outputJSON bool) error {
	path, err := queuePath(queue)
	if err != nil {
		return err
	}

	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	resp, err := api.Get(path)
	if err != nil {
		return fmt.Errorf("failed to list tickets: %w", err)
	}

	var page TicketPage
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		return fmt.Errorf("failed to parse ticket list: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(page, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(page.Items) == 0 {
		fmt.Println("No tickets found.")
		return nil
	}

	fmt.Printf("Found %d tickets:\n\n", len(page.Items))
	for i, ticket := range page.Items {
		fmt.Printf("%d. [%s] %s\n", i+1, ticket.Status, summarize(ticket.Description, 80))
		fmt.Printf("   ID: %s\n", ticket.ID)
		fmt.Printf("   Created: %s\n", ticket.CreatedAt)
		if i < len(page.Items)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}
	if page.HasMore && page.NextCursor != "" {
		fmt.Printf("\n%s\n", strings.Repeat("-", 40))
		fmt.Printf("More tickets available. Use --cursor %s\n", page.NextCursor)
	}

	return nil
}

// summarize truncates s to at most max runes, appending an ellipsis when cut.
func summarize(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
