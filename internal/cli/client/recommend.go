package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Recommendation represents a single knowledge base suggestion.
type Recommendation struct {
	KBItemID          string `json:"kb_item_id"`
	Rank              int    `json:"rank"`
	SimilarityPercent int    `json:"similarity_percent"`
	Problem           string `json:"problem"`
	Solution          string `json:"solution"`
}

// RecommendationsResponse represents the recommendations API response.
type RecommendationsResponse struct {
	IsNovel              bool             `json:"is_novel"`
	MaxSimilarityPercent int              `json:"max_similarity_percent"`
	Recommendations      []Recommendation `json:"recommendations"`
}

// RecommendCmd creates the recommend command.
func RecommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "recommend <ticket_id>",
		Short:   "Get knowledge base recommendations for a ticket",
		Long:    "Matches the ticket description against the knowledge base and returns the closest solved problems. Requires the specialist role.",
		Aliases: []string{"recs"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runRecommend(cmd, args[0], outputJSON)
		},
	}
}

func runRecommend(cmd *cobra.Command, ticketID string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get(fmt.Sprintf("/api/tickets/%s/recommendations", ticketID))
	if err != nil {
		return fmt.Errorf("failed to get recommendations: %w", err)
	}

	var recs RecommendationsResponse
	if err := json.Unmarshal(resp.Data, &recs); err != nil {
		return fmt.Errorf("failed to parse recommendations: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(recs, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if recs.IsNovel {
		fmt.Printf("Novel problem (best match %d%%). No recommendations.\n", recs.MaxSimilarityPercent)
		return nil
	}

	fmt.Printf("Found %d recommendations (best match %d%%):\n\n", len(recs.Recommendations), recs.MaxSimilarityPercent)
	for i, rec := range recs.Recommendations {
		fmt.Printf("%d. %s (%d%%)\n", rec.Rank, summarize(rec.Problem, 80), rec.SimilarityPercent)
		fmt.Printf("   Solution: %s\n", summarize(rec.Solution, 100))
		fmt.Printf("   ID: %s\n", rec.KBItemID)
		if i < len(recs.Recommendations)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	return nil
}
