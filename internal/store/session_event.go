package store

import (
	"context"
	"fmt"
	"time"
)

// Session event actions.
const (
	ActionStart   = "start"
	ActionStory   = "story_done"
	ActionQuiz    = "quiz_done"
	ActionAbandon = "abandon"
)

// SessionEventData is the payload of a session lifecycle event.
type SessionEventData struct {
	ProfileID    string `db:"profile_id"`
	SessionID    string `db:"session_id"`
	ListID       string `db:"list_id"`
	ListName     string `db:"list_name"`
	Action       string `db:"action"`
	Words        int    `db:"words"`
	Score        int    `db:"score"`
	Total        int    `db:"total"`
	DurationSecs int64  `db:"duration_secs"`
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

type sessionEventRow struct {
	Sequence  int64 `db:"sequence"`
	Timestamp int64 `db:"timestamp"`
	SessionEventData
}

// AppendSessionEvent records a session event stamped with the current time.
func (r *EventStore) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO session_events
			(sequence, timestamp, profile_id, session_id, list_id, list_name, action, words, score, total, duration_secs)
		VALUES
			(:sequence, :timestamp, :profile_id, :session_id, :list_id, :list_name, :action, :words, :score, :total, :duration_secs)`,
		sessionEventRow{Sequence: seq, Timestamp: time.Now().UnixMilli(), SessionEventData: data})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// SessionEvents returns a profile's session events, newest first.
func (r *EventStore) SessionEvents(ctx context.Context, profileID string, opts QueryOpts) ([]SessionEvent, error) {
	where, args := opts.where([]string{"profile_id = ?"}, []any{profileID})
	limit, args := opts.limit(args)

	var rows []sessionEventRow
	q := `SELECT * FROM session_events` + where + ` ORDER BY sequence DESC` + limit
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}

	out := make([]SessionEvent, len(rows))
	for i, row := range rows {
		out[i] = SessionEvent{
			Sequence:         row.Sequence,
			Timestamp:        time.UnixMilli(row.Timestamp),
			SessionEventData: row.SessionEventData,
		}
	}
	return out, nil
}
