package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

var ErrDraftNotFound = errors.New("draft not found")

// draftRow keeps the payload as plain bytes so the driver buffer is copied.
type draftRow struct {
	Id        int64     `db:"id"`
	Kind      string    `db:"kind"`
	Mode      string    `db:"mode"`
	EntityId  string    `db:"entity_id"`
	ParentId  string    `db:"parent_id"`
	Payload   []byte    `db:"payload"`
	LastError string    `db:"last_error"`
	Attempts  int       `db:"attempts"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r draftRow) entity() entity.JournaledDraft {
	return entity.JournaledDraft{
		Id:        r.Id,
		Kind:      entity.Kind(r.Kind),
		Mode:      r.Mode,
		EntityId:  r.EntityId,
		ParentId:  r.ParentId,
		Payload:   append([]byte(nil), r.Payload...),
		LastError: r.LastError,
		Attempts:  r.Attempts,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const draftColumns = `id, kind, mode, entity_id, parent_id, payload, last_error, attempts, created_at, updated_at`

func (s *Store) SaveDraft(ctx context.Context, d *entity.JournaledDraftInsert) (int64, error) {
	now := s.now().UTC()
	query := `
	INSERT INTO draft_journal
	(kind, mode, entity_id, parent_id, payload, last_error, attempts, created_at, updated_at)
	VALUES (:kind, :mode, :entityId, :parentId, :payload, :lastError, 0, :now, :now)`

	id, err := ExecNamedLastId(ctx, s.db, query, map[string]any{
		"kind":      string(d.Kind),
		"mode":      d.Mode,
		"entityId":  d.EntityId,
		"parentId":  d.ParentId,
		"payload":   []byte(d.Payload),
		"lastError": d.LastError,
		"now":       now,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save draft: %w", err)
	}
	return id, nil
}

func (s *Store) ListDrafts(ctx context.Context) ([]entity.JournaledDraft, error) {
	query := `SELECT ` + draftColumns + ` FROM draft_journal ORDER BY created_at DESC, id DESC`
	rows, err := QueryListNamed[draftRow](ctx, s.db, query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	out := make([]entity.JournaledDraft, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.entity())
	}
	return out, nil
}

func (s *Store) GetDraft(ctx context.Context, id int64) (*entity.JournaledDraft, error) {
	query := `SELECT ` + draftColumns + ` FROM draft_journal WHERE id = :id`
	r, err := QueryNamedOne[draftRow](ctx, s.db, query, map[string]any{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrDraftNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft %d: %w", id, err)
	}
	d := r.entity()
	return &d, nil
}

func (s *Store) MarkAttempt(ctx context.Context, id int64, lastError string) error {
	query := `
	UPDATE draft_journal
	SET attempts = attempts + 1, last_error = :lastError, updated_at = :now
	WHERE id = :id`
	n, err := ExecNamed(ctx, s.db, query, map[string]any{
		"id":        id,
		"lastError": lastError,
		"now":       s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to mark draft %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrDraftNotFound, id)
	}
	return nil
}

// ReviseDraft replaces the payload of a journaled draft that failed again
// and records the attempt.
func (s *Store) ReviseDraft(ctx context.Context, id int64, d *entity.JournaledDraftInsert) error {
	query := `
	UPDATE draft_journal
	SET payload = :payload, last_error = :lastError, attempts = attempts + 1, updated_at = :now
	WHERE id = :id`
	n, err := ExecNamed(ctx, s.db, query, map[string]any{
		"id":        id,
		"payload":   []byte(d.Payload),
		"lastError": d.LastError,
		"now":       s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to revise draft %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrDraftNotFound, id)
	}
	return nil
}

func (s *Store) DeleteDraft(ctx context.Context, id int64) error {
	n, err := ExecNamed(ctx, s.db, `DELETE FROM draft_journal WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete draft %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrDraftNotFound, id)
	}
	return nil
}
