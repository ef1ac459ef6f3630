package store

import (
	"context"
	"fmt"
	"time"

	"github.com/vocabflow/vocabflow/internal/llm"
)

// LLMEvent is a stored model request.
type LLMEvent struct {
	Sequence     int64     `db:"-"`
	Timestamp    time.Time `db:"-"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms"`
	CostUSD      float64   `db:"cost_usd"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
}

type llmEventRow struct {
	Seq int64 `db:"sequence"`
	TS  int64 `db:"timestamp"`
	LLMEvent
}

// RecordLLMEvent stores a model request event. Request and response bodies
// are not persisted.
func (r *EventStore) RecordLLMEvent(ctx context.Context, ev llm.Event) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	row := llmEventRow{
		Seq: seq,
		TS:  time.Now().UnixMilli(),
		LLMEvent: LLMEvent{
			Provider:     ev.Provider,
			Model:        ev.Model,
			Purpose:      ev.Purpose,
			InputTokens:  ev.InputTokens,
			OutputTokens: ev.OutputTokens,
			LatencyMs:    ev.Latency.Milliseconds(),
			CostUSD:      ev.CostUSD,
			Success:      ev.Success,
			ErrorMessage: ev.Error,
		},
	}
	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO llm_events
			(sequence, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, cost_usd, success, error_message)
		VALUES
			(:sequence, :timestamp, :provider, :model, :purpose, :input_tokens, :output_tokens, :latency_ms, :cost_usd, :success, :error_message)`,
		row)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// LLMEvents returns stored model requests, newest first.
func (r *EventStore) LLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	where, args := opts.where(nil, nil)
	limit, args := opts.limit(args)

	var rows []llmEventRow
	q := `SELECT * FROM llm_events` + where + ` ORDER BY sequence DESC` + limit
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}

	out := make([]LLMEvent, len(rows))
	for i, row := range rows {
		out[i] = row.LLMEvent
		out[i].Sequence = row.Seq
		out[i].Timestamp = time.UnixMilli(row.TS)
	}
	return out, nil
}

var _ llm.EventRecorder = (*EventStore)(nil)
