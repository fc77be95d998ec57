package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// KnowledgeItem represents a knowledge base entry from the API.
type KnowledgeItem struct {
	ID              string `json:"id"`
	Problem         string `json:"problem"`
	Solution        string `json:"solution"`
	Frequency       int    `json:"frequency"`
	IsAutoGenerated bool   `json:"is_auto_generated"`
	CreatedAt       string `json:"created_at"`
}

// KBCmd creates the kb parent command.
func KBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Browse the knowledge base",
		Long:  "List and inspect knowledge base items. Requires the admin role.",
	}

	cmd.AddCommand(KBListCmd())
	cmd.AddCommand(KBGetCmd())

	return cmd
}

// KBListCmd creates the kb list command.
func KBListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge base items",
		Long:  "Lists knowledge base items ordered by how often they solved tickets.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runKBList(cmd, limit, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of items")

	return cmd
}

// KBGetCmd creates the kb get command.
func KBGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <item_id>",
		Short: "Get a knowledge base item by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runKBGet(cmd, args[0], outputJSON)
		},
	}
}

func runKBList(cmd *cobra.Command, limit int, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	path := "/api/knowledge"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	resp, err := api.Get(path)
	if err != nil {
		return fmt.Errorf("failed to list knowledge items: %w", err)
	}

	var items []KnowledgeItem
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		return fmt.Errorf("failed to parse knowledge items: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(items, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(items) == 0 {
		fmt.Println("Knowledge base is empty.")
		return nil
	}

	fmt.Printf("Found %d items:\n\n", len(items))
	for i, item := range items {
		fmt.Printf("%d. %s (used %d times)\n", i+1, summarize(item.Problem, 80), item.Frequency)
		fmt.Printf("   ID: %s\n", item.ID)
		if i < len(items)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	return nil
}

func runKBGet(cmd *cobra.Command, itemID string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get(fmt.Sprintf("/api/knowledge/%s", itemID))
	if err != nil {
		return fmt.Errorf("failed to get knowledge item: %w", err)
	}

	var item KnowledgeItem
	if err := json.Unmarshal(resp.Data, &item); err != nil {
		return fmt.Errorf("failed to parse knowledge item: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(item, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Problem: %s\n", item.Problem)
	fmt.Printf("Used: %d times\n", item.Frequency)
	if item.IsAutoGenerated {
		fmt.Println("Origin: auto-generated from a resolved ticket")
	}
	fmt.Printf("Created: %s\n", item.CreatedAt)
	fmt.Println()
	fmt.Println("--- Solution ---")
	fmt.Println(item.Solution)

	return nil
}
