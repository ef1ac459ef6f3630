package store

import (
	"context"
	"strings"
	"time"
)

// QueryOpts filters and pages event queries. Zero fields are ignored.
type QueryOpts struct {
	Limit  int       // max results
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// where renders the shared event filters as a WHERE clause fragment and its
// arguments. extra conditions are ANDed in front.
func (o QueryOpts) where(extra []string, args []any) (string, []any) {
	conds := extra
	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, o.From.UnixMilli())
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, o.To.UnixMilli())
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (o QueryOpts) limit(args []any) (string, []any) {
	if o.Limit <= 0 {
		return "", args
	}
	return " LIMIT ?", append(args, o.Limit)
}

// ProfileRepo stores one snapshot per child profile.
type ProfileRepo interface {
	// Save inserts or replaces the profile's snapshot.
	Save(ctx context.Context, snap *ProfileSnapshot) error

	// Get returns the snapshot of a profile, or a NotFound error.
	Get(ctx context.Context, id string) (*ProfileSnapshot, error)

	// List returns every snapshot in creation order.
	List(ctx context.Context) ([]ProfileSnapshot, error)

	// Delete removes a profile snapshot.
	Delete(ctx context.Context, id string) error
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	SessionEvents(ctx context.Context, profileID string, opts QueryOpts) ([]SessionEvent, error)
	LLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
}

var _ EventRepo = (*EventStore)(nil)
