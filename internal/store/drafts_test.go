package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), Config{
		Driver:             DriverSQLite,
		DSN:                filepath.Join(t.TempDir(), "journal.db"),
		Automigrate:        true,
		MaxOpenConnections: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: "postgres"})
	assert.Error(t, err)
}

func TestStore_DraftLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	clock := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	first, err := s.SaveDraft(ctx, &entity.JournaledDraftInsert{
		Kind:      "products",
		Mode:      "create",
		Payload:   json.RawMessage(`{"categoryId":"cat-1"}`),
		LastError: "POST products: status 502",
	})
	require.NoError(t, err)

	clock = clock.Add(time.Minute)
	second, err := s.SaveDraft(ctx, &entity.JournaledDraftInsert{
		Kind:     "constructor/blocks",
		Mode:     "edit",
		EntityId: "blk-1",
		ParentId: "page-1",
		Payload:  json.RawMessage(`{"type":"text"}`),
	})
	require.NoError(t, err)

	drafts, err := s.ListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, second, drafts[0].Id)
	assert.Equal(t, "page-1", drafts[0].ParentId)
	assert.Equal(t, first, drafts[1].Id)

	d, err := s.GetDraft(ctx, first)
	require.NoError(t, err)
	assert.JSONEq(t, `{"categoryId":"cat-1"}`, string(d.Payload))
	assert.Equal(t, 0, d.Attempts)
	assert.True(t, d.CreatedAt.Equal(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)))

	clock = clock.Add(time.Hour)
	require.NoError(t, s.MarkAttempt(ctx, first, "timeout"))
	d, err = s.GetDraft(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Attempts)
	assert.Equal(t, "timeout", d.LastError)
	assert.True(t, d.UpdatedAt.After(d.CreatedAt))

	require.NoError(t, s.ReviseDraft(ctx, first, &entity.JournaledDraftInsert{
		Kind:      "products",
		Mode:      "create",
		Payload:   json.RawMessage(`{"categoryId":"cat-2"}`),
		LastError: "POST products: status 503",
	}))
	d, err = s.GetDraft(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, entity.KindProduct, d.Kind)
	assert.JSONEq(t, `{"categoryId":"cat-2"}`, string(d.Payload))
	assert.Equal(t, 2, d.Attempts)
	assert.Equal(t, "POST products: status 503", d.LastError)
	drafts, err = s.ListDrafts(ctx)
	require.NoError(t, err)
	assert.Len(t, drafts, 2)

	require.NoError(t, s.DeleteDraft(ctx, first))
	_, err = s.GetDraft(ctx, first)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.ErrorIs(t, s.DeleteDraft(ctx, first), ErrDraftNotFound)
	assert.ErrorIs(t, s.MarkAttempt(ctx, 999, "x"), ErrDraftNotFound)
	assert.ErrorIs(t, s.ReviseDraft(ctx, 999, &entity.JournaledDraftInsert{}), ErrDraftNotFound)
}
