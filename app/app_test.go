package app

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/photobooksgallery/pbg-manager/config"
	"github.com/photobooksgallery/pbg-manager/internal/apiclient"
	"github.com/photobooksgallery/pbg-manager/internal/apitest"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/form"
	"github.com/photobooksgallery/pbg-manager/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startApp(t *testing.T) (*App, *apitest.Storefront, *bytes.Buffer) {
	t.Helper()
	s := apitest.NewStorefront()
	t.Cleanup(s.Close)

	var out bytes.Buffer
	a := New(&config.Config{
		API:    apiclient.Config{BaseURL: s.URL},
		Upload: config.UploadConfig{Transport: config.TransportLocal, Concurrency: 2},
		Store: store.Config{
			Driver:      store.DriverSQLite,
			DSN:         filepath.Join(t.TempDir(), "drafts.db"),
			Automigrate: true,
		},
		Locale: config.LocaleConfig{Display: "en", FallbackAtRead: true},
	}, &out)
	require.NoError(t, a.Start(context.Background()))
	t.Cleanup(func() { a.Stop(context.Background()) })
	return a, s, &out
}

func TestApp_CollectionsAreCached(t *testing.T) {
	a, s, _ := startApp(t)
	s.Seed("currencies",
		map[string]any{"id": "usd", "code": "USD", "isBaseCurrency": true},
		map[string]any{"id": "amd", "code": "AMD"},
	)
	ctx := context.Background()

	cur, err := a.DefaultCurrency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "amd", cur)
	_, err = a.Currencies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count(http.MethodGet, "/api/currencies"))
}

func TestApp_SubmitRefetchesAfterWrite(t *testing.T) {
	a, s, out := startApp(t)
	ctx := context.Background()

	ps, err := a.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, ps)

	d := form.NewProductDraft("amd")
	d.CategoryId = "cat-1"
	require.NoError(t, form.Bind(d).OnLocalizedFieldChange("name", entity.LocaleRU, "Книга"))
	_, err = a.Dialog(d, a.Gallery()).Submit(ctx)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[ok] Product created")

	ps, err = a.Products(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, 2, s.Count(http.MethodGet, "/api/products"))
	assert.Equal(t, "Книга", a.Text(ps[0].Name))
}

func TestApp_FailedSubmitIsJournaled(t *testing.T) {
	a, s, out := startApp(t)
	s.Fail(http.MethodPost, "/api/banners", http.StatusInternalServerError, 1)

	d := form.NewBannerDraft()
	d.Name = "Winter"
	_, err := a.Dialog(d, nil).Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "[error] Could not save banner")

	drafts, err := a.Store.ListDrafts(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "banners", drafts[0].Kind)

	_, err = a.Sync.Retry(context.Background(), drafts[0].Id)
	require.NoError(t, err)
	drafts, err = a.Store.ListDrafts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestApp_Text(t *testing.T) {
	a := New(&config.Config{Locale: config.LocaleConfig{Display: "hy", FallbackAtRead: true}}, nil)
	v := &entity.Localized{RU: "Книга"}
	assert.Equal(t, "Книга", a.Text(v))

	a.c.Locale.FallbackAtRead = false
	assert.Equal(t, "", a.Text(v))
	assert.Equal(t, "", a.Text(nil))
}

func TestApp_RequireBucket(t *testing.T) {
	a, _, _ := startApp(t)
	_, err := a.RequireBucket()
	assert.Error(t, err)
}
