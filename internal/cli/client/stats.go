package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Stats represents the service statistics from the API.
type Stats struct {
	TicketsTotal   int `json:"tickets_total"`
	TicketsOpen    int `json:"tickets_open"`
	TicketsInWork  int `json:"tickets_in_work"`
	KnowledgeItems int `json:"knowledge_items"`
	KnowledgeUsage int `json:"knowledge_usage"`
}

// StatsCmd creates the stats command.
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show service statistics",
		Long:  "Shows ticket and knowledge base counters. Requires the admin role.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runStats(cmd, outputJSON)
		},
	}
}

func runStats(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/api/stats")
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	var stats Stats
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		return fmt.Errorf("failed to parse stats: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Tickets total: %d\n", stats.TicketsTotal)
	fmt.Printf("Tickets open: %d\n", stats.TicketsOpen)
	fmt.Printf("Tickets in work: %d\n", stats.TicketsInWork)
	fmt.Printf("Knowledge items: %d\n", stats.KnowledgeItems)
	fmt.Printf("Knowledge usage: %d\n", stats.KnowledgeUsage)

	return nil
}
