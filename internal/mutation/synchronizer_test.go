package mutation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/photobooksgallery/pbg-manager/internal/apiclient"
	"github.com/photobooksgallery/pbg-manager/internal/apitest"
	"github.com/photobooksgallery/pbg-manager/internal/dependency/mocks"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storefront(t *testing.T) (*apiclient.Client, *apitest.Storefront) {
	t.Helper()
	s := apitest.NewStorefront()
	t.Cleanup(s.Close)
	cl, err := apiclient.New(&apiclient.Config{BaseURL: s.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return cl, s
}

func quietNotifier(t *testing.T) *mocks.Notifier {
	n := mocks.NewNotifier(t)
	n.On("Success", mock.Anything, mock.Anything).Maybe()
	n.On("Error", mock.Anything, mock.Anything).Maybe()
	return n
}

func TestSynchronizer_InvalidatesAfterAck(t *testing.T) {
	cl, s := storefront(t)
	inv := mocks.NewInvalidator(t)
	inv.On("Invalidate", "products").Run(func(mock.Arguments) {
		assert.Equal(t, 1, s.Count(http.MethodPost, "/api/products"), "invalidated before the write landed")
	}).Once()
	n := mocks.NewNotifier(t)
	n.On("Success", "Product created", "").Once()

	res, err := New(cl, inv, n, nil).Submit(context.Background(), entity.KindProduct, form.CreateMode(), map[string]any{"categoryId": "cat-1"})
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(res, &rec))
	assert.NotEmpty(t, rec["id"])
}

func TestSynchronizer_FailureLeavesCache(t *testing.T) {
	cl, s := storefront(t)
	s.Fail(http.MethodPut, "/api/banners/b-1", http.StatusBadRequest, 1)

	inv := mocks.NewInvalidator(t)
	n := mocks.NewNotifier(t)
	n.On("Error", "Could not save banner", "Bad Request").Once()
	j := mocks.NewDraftJournal(t)
	j.On("SaveDraft", mock.Anything, mock.MatchedBy(func(d *entity.JournaledDraftInsert) bool {
		return d.Kind == "banners" && d.Mode == "edit" && d.EntityId == "b-1" && string(d.Payload) == `{"name":"x"}`
	})).Return(int64(7), nil).Once()

	_, err := New(cl, inv, n, j).Submit(context.Background(), entity.KindBanner, form.EditMode("b-1"), map[string]string{"name": "x"})
	var ae *apiclient.APIError
	require.ErrorAs(t, err, &ae)
	inv.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestSynchronizer_Routes(t *testing.T) {
	tests := []struct {
		name   string
		kind   entity.Kind
		parent string
		mode   form.Mode
		method string
		path   string
		key    string
	}{
		{"create product", entity.KindProduct, "", form.CreateMode(), http.MethodPost, "products", "products"},
		{"update product", entity.KindProduct, "", form.EditMode("p1"), http.MethodPut, "products/p1", "products"},
		{"update offer", entity.KindSpecialOffer, "", form.EditMode("o1"), http.MethodPut, "special-offers/o1", "special-offers"},
		{"create page", entity.KindPage, "", form.CreateMode(), http.MethodPost, "constructor/pages", "constructor/pages"},
		{"update page", entity.KindPage, "", form.EditMode("pg"), http.MethodPatch, "constructor/pages/pg", "constructor/pages"},
		{"create block", entity.KindBlock, "pg", form.CreateMode(), http.MethodPost, "constructor/pages/pg/blocks", "constructor/pages/pg/blocks"},
		{"update block", entity.KindBlock, "pg", form.EditMode("bl"), http.MethodPatch, "constructor/blocks/bl", "constructor/pages/pg/blocks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewStorefront(t)
			api.On("Do", mock.Anything, tt.method, tt.path, mock.Anything, mock.Anything).Return(nil).Once()
			inv := mocks.NewInvalidator(t)
			inv.On("Invalidate", tt.key).Once()

			_, err := New(api, inv, quietNotifier(t), nil).SubmitNested(context.Background(), tt.kind, tt.parent, tt.mode, struct{}{})
			require.NoError(t, err)
		})
	}
}

func TestSynchronizer_BlockNeedsPage(t *testing.T) {
	api := mocks.NewStorefront(t)
	inv := mocks.NewInvalidator(t)
	j := mocks.NewDraftJournal(t)
	sy := New(api, inv, quietNotifier(t), j)

	_, err := sy.Submit(context.Background(), entity.KindBlock, form.CreateMode(), struct{}{})
	assert.ErrorIs(t, err, ErrNoParent)
	assert.ErrorIs(t, sy.Delete(context.Background(), entity.KindBlock, "bl"), ErrNoParent)
}

func TestSynchronizer_DeleteAndToggle(t *testing.T) {
	cl, s := storefront(t)
	s.Seed("special-offers", map[string]any{"id": "o1", "isActive": false, "status": "draft"})
	s.Seed("constructor/blocks", map[string]any{"id": "b1", "pageId": "p1"})

	inv := mocks.NewInvalidator(t)
	inv.On("Invalidate", "special-offers").Once()
	inv.On("Invalidate", "constructor/pages/p1/blocks").Once()
	sy := New(cl, inv, quietNotifier(t), nil)
	ctx := context.Background()

	res, err := sy.Toggle(ctx, entity.KindSpecialOffer, "o1")
	require.NoError(t, err)
	assert.Contains(t, string(res), `"isActive":true`)

	_, err = sy.Toggle(ctx, entity.KindProduct, "p1")
	assert.ErrorIs(t, err, ErrNotToggleable)

	require.NoError(t, sy.DeleteNested(ctx, entity.KindBlock, "p1", "b1"))
	_, ok := s.Record("constructor/blocks", "b1")
	assert.False(t, ok)

	err = sy.Delete(ctx, entity.KindBanner, "missing")
	assert.True(t, apiclient.IsNotFound(err))
}

func TestSynchronizer_Retry(t *testing.T) {
	cl, s := storefront(t)
	s.Seed("banners", map[string]any{"id": "b-1", "name": "old"})

	inv := mocks.NewInvalidator(t)
	inv.On("Invalidate", "banners").Once()
	j := mocks.NewDraftJournal(t)
	j.On("GetDraft", mock.Anything, int64(3)).Return(&entity.JournaledDraft{
		Id: 3, Kind: "banners", Mode: "edit", EntityId: "b-1", Payload: json.RawMessage(`{"name":"new"}`),
	}, nil).Once()
	j.On("DeleteDraft", mock.Anything, int64(3)).Return(nil).Once()

	_, err := New(cl, inv, quietNotifier(t), j).Retry(context.Background(), 3)
	require.NoError(t, err)
	rec, _ := s.Record("banners", "b-1")
	assert.Equal(t, "new", rec["name"])
}

func TestSynchronizer_RetryFailureMarksAttempt(t *testing.T) {
	api := mocks.NewStorefront(t)
	api.On("Do", mock.Anything, http.MethodPost, "products", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	j := mocks.NewDraftJournal(t)
	j.On("GetDraft", mock.Anything, int64(1)).Return(&entity.JournaledDraft{Id: 1, Kind: "products", Mode: "create", Payload: json.RawMessage(`{}`)}, nil).Once()
	j.On("MarkAttempt", mock.Anything, int64(1), mock.Anything).Return(nil).Once()
	n := mocks.NewNotifier(t)
	n.On("Error", "Could not save product", "The storefront could not be reached.").Once()

	_, err := New(api, mocks.NewInvalidator(t), n, j).Retry(context.Background(), 1)
	assert.Error(t, err)
}
