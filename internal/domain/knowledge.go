package domain

import "time"

// KnowledgeItem represents a recorded problem/solution pair. The frequency
// counter is a reinforcement signal: it is bumped each time a specialist
// resolves a ticket with this item and it drives corpus selection for the
// recommendation engine. Items are never deleted.
type KnowledgeItem struct {
	ID              string
	Problem         string
	Solution        string
	Frequency       int
	IsAutoGenerated bool
	CreatedAt       time.Time
}

// MaxAutoProblemLength caps the problem text of auto-learned items.
const MaxAutoProblemLength = 1000

// NewAutoGeneratedItem builds a knowledge item learned from a manually
// resolved ticket. The problem is the ticket description truncated to
// MaxAutoProblemLength runes.
func NewAutoGeneratedItem(id, ticketDescription, solution string, createdAt time.Time) *KnowledgeItem {
	problem := []rune(ticketDescription)
	if len(problem) > MaxAutoProblemLength {
		problem = problem[:MaxAutoProblemLength]
	}
	return &KnowledgeItem{
		ID:              id,
		Problem:         string(problem),
		Solution:        solution,
		Frequency:       1,
		IsAutoGenerated: true,
		CreatedAt:       createdAt,
	}
}

// ValidateKnowledgeItem validates a KnowledgeItem instance
func ValidateKnowledgeItem(k *KnowledgeItem) error {
	if k == nil {
		return NewDomainError(ErrCodeValidation, "knowledge item cannot be nil")
	}

	if k.ID == "" {
		return NewDomainError(ErrCodeValidation, "knowledge item ID is required")
	}

	if k.Problem == "" {
		return NewDomainError(ErrCodeValidation, "knowledge item Problem is required")
	}

	if k.Solution == "" {
		return NewDomainError(ErrCodeValidation, "knowledge item Solution is required")
	}

	if k.Frequency < 0 {
		return NewDomainError(ErrCodeValidation, "knowledge item Frequency cannot be negative")
	}

	return nil
}
