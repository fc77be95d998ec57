package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/deskhive/deskhive/internal/service"
)

// StatsCollector defines the interface for gathering workload counters
type StatsCollector interface {
	Snapshot(ctx context.Context) (*service.Stats, error)
}

// StatsWorker periodically logs a snapshot of the ticket and knowledge base
// workload so operators can trend it without querying the database.
type StatsWorker struct {
	collector StatsCollector
}

// NewStatsWorker creates a new StatsWorker instance
func NewStatsWorker(collector StatsCollector) *StatsWorker {
	return &StatsWorker{collector: collector}
}

type statsLogEntry struct {
	Timestamp      string `json:"ts"`
	TicketsTotal   int    `json:"tickets_total"`
	TicketsOpen    int    `json:"tickets_open"`
	TicketsInWork  int    `json:"tickets_in_work"`
	KnowledgeItems int    `json:"knowledge_items"`
	KnowledgeUsage int    `json:"knowledge_usage"`
}

// Process implements the Processor interface
func (w *StatsWorker) Process(ctx context.Context) error {
	stats, err := w.collector.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect stats snapshot: %w", err)
	}

	entry := statsLogEntry{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		TicketsTotal:   stats.TicketsTotal,
		TicketsOpen:    stats.TicketsOpen,
		TicketsInWork:  stats.TicketsInWork,
		KnowledgeItems: stats.KnowledgeItems,
		KnowledgeUsage: stats.KnowledgeUsage,
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal stats snapshot: %w", err)
	}
	log.Println(string(payload))
	return nil
}
