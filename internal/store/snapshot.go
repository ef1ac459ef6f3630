package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vocabflow/vocabflow/internal/domain"
)

// SnapshotVersion is the current ProfileSnapshot layout.
const SnapshotVersion = 1

// ProfileSnapshot captures a child's full state.
type ProfileSnapshot struct {
	Version    int       `json:"version"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	GradeLevel string    `json:"grade_level"`
	Photo      []byte    `json:"photo,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Lists    []ListSnapshot    `json:"lists"`
	Sessions []SessionSnapshot `json:"sessions,omitempty"`
	// Deferred holds list ids moved to the end of the session picker.
	Deferred []string `json:"deferred,omitempty"`
}

// ListSnapshot is a persisted word list.
type ListSnapshot struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Source    string         `json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	Words     []WordSnapshot `json:"words"`
}

// WordSnapshot is a persisted word.
type WordSnapshot struct {
	ID               string  `json:"id"`
	Text             string  `json:"text"`
	Definition       string  `json:"definition,omitempty"`
	SpellingProgress float64 `json:"spelling_progress"`
	MeaningProgress  float64 `json:"meaning_progress"`
	AllowSpelling    bool    `json:"allow_spelling"`
	AllowMeaning     bool    `json:"allow_meaning"`
	IsPriority       bool    `json:"is_priority,omitempty"`
}

// SessionSnapshot is a persisted session history record.
type SessionSnapshot struct {
	ListID        string    `json:"list_id"`
	Kind          string    `json:"kind"`
	At            time.Time `json:"at"`
	Score         int       `json:"score,omitempty"`
	Total         int       `json:"total,omitempty"`
	Mastered      []string  `json:"mastered,omitempty"`
	NewlyMastered []string  `json:"newly_mastered,omitempty"`
}

type profileRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	GradeLevel string `db:"grade_level"`
	Data       string `db:"data"`
	CreatedAt  int64  `db:"created_at"`
	UpdatedAt  int64  `db:"updated_at"`
}

type profileRepo struct {
	db *sqlx.DB
}

func (r *profileRepo) Save(ctx context.Context, snap *ProfileSnapshot) error {
	if snap.Version == 0 {
		snap.Version = SnapshotVersion
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO profiles (id, name, grade_level, data, created_at, updated_at)
		VALUES (:id, :name, :grade_level, :data, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			grade_level = excluded.grade_level,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		profileRow{
			ID:         snap.ID,
			Name:       snap.Name,
			GradeLevel: snap.GradeLevel,
			Data:       string(data),
			CreatedAt:  snap.CreatedAt.UnixMilli(),
			UpdatedAt:  snap.UpdatedAt.UnixMilli(),
		})
	if err != nil {
		return fmt.Errorf("save profile %s: %w", snap.ID, err)
	}
	return nil
}

func (r *profileRepo) Get(ctx context.Context, id string) (*ProfileSnapshot, error) {
	var row profileRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM profiles WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("profile", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query profile %s: %w", id, err)
	}
	return decodeProfile(row)
}

func (r *profileRepo) List(ctx context.Context) ([]ProfileSnapshot, error) {
	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM profiles ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	out := make([]ProfileSnapshot, 0, len(rows))
	for _, row := range rows {
		snap, err := decodeProfile(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	return out, nil
}

func (r *profileRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete profile %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFound("profile", id)
	}
	return nil
}

func decodeProfile(row profileRow) (*ProfileSnapshot, error) {
	var snap ProfileSnapshot
	if err := json.Unmarshal([]byte(row.Data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal profile %s: %w", row.ID, err)
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("profile %s: snapshot version %d is newer than supported %d", row.ID, snap.Version, SnapshotVersion)
	}
	return &snap, nil
}
