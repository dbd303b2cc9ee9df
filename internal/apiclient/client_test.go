package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/photobooksgallery/pbg-manager/internal/apitest"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *apitest.Storefront) {
	t.Helper()
	s := apitest.NewStorefront()
	t.Cleanup(s.Close)
	cl, err := New(&Config{BaseURL: s.URL + "/", Timeout: 5 * time.Second})
	require.NoError(t, err)
	return cl, s
}

func textFile(name, ct, body string) entity.LocalFile {
	return entity.LocalFile{
		Name:        name,
		ContentType: ct,
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(&Config{})
	assert.Error(t, err)
}

func TestClient_Do(t *testing.T) {
	cl, s := newTestClient(t)
	ctx := context.Background()

	var created map[string]any
	require.NoError(t, cl.Do(ctx, http.MethodPost, "banners", map[string]any{"name": "Spring"}, &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	banners, err := cl.Banners(ctx)
	require.NoError(t, err)
	require.Len(t, banners, 1)
	assert.Equal(t, "Spring", banners[0].Name)

	var raw json.RawMessage
	require.NoError(t, cl.Do(ctx, http.MethodPatch, "banners/"+id+"/toggle", nil, &raw))
	assert.Contains(t, string(raw), `"status":"active"`)

	assert.Equal(t, 1, s.Count(http.MethodPost, "/api/banners"))
}

func TestClient_APIError(t *testing.T) {
	cl, s := newTestClient(t)
	s.Fail(http.MethodPut, "/api/products/", http.StatusUnprocessableEntity, 1)

	err := cl.Do(context.Background(), http.MethodPut, "products/p-1", map[string]any{}, nil)
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusUnprocessableEntity, ae.Status)
	assert.Equal(t, "Unprocessable Entity", ae.Message)

	err = cl.Do(context.Background(), http.MethodGet, "constructor/pages/missing", nil, nil)
	assert.True(t, IsNotFound(err))
}

func TestClient_Blocks(t *testing.T) {
	cl, s := newTestClient(t)
	s.Seed("constructor/blocks",
		map[string]any{"id": "b1", "pageId": "p1", "type": "button", "sortOrder": 0, "content": map[string]any{"link": "/a"}},
		map[string]any{"id": "b2", "pageId": "p2", "type": "text", "sortOrder": 0, "content": map[string]any{}},
	)

	blocks, err := cl.Blocks(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, entity.BlockButton, blocks[0].Type)
	assert.Equal(t, "/a", blocks[0].Content.(*entity.ButtonContent).Link)
	assert.Equal(t, "constructor/pages/p1/blocks", BlocksPath("p1"))
}

func TestClient_Upload(t *testing.T) {
	cl, s := newTestClient(t)
	ctx := context.Background()
	f := textFile("cover.jpg", "image/jpeg", "jpeg-bytes")

	target, err := cl.RequestUploadTarget(ctx, "att-1", f)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, target.Method)
	assert.Equal(t, s.URL+"/api/local-upload/att-1", target.URL)

	res, err := cl.Upload(ctx, target, "att-1", f)
	require.NoError(t, err)
	require.Len(t, res.Successful, 1)
	assert.Equal(t, "att-1", res.Successful[0].FileId)
	assert.Equal(t, "/objects/local-upload/att-1", res.Successful[0].UploadURL)

	reqs := s.Requests()
	assert.Equal(t, "jpeg-bytes", string(reqs[len(reqs)-1].Body))
}

func TestClient_UploadFailure(t *testing.T) {
	cl, s := newTestClient(t)
	s.Fail(http.MethodPut, "/api/local-upload/", http.StatusInternalServerError, 1)
	f := textFile("a.png", "image/png", "png")

	target, err := cl.RequestUploadTarget(context.Background(), "x", f)
	require.NoError(t, err)
	res, err := cl.Upload(context.Background(), target, "x", f)
	assert.Error(t, err)
	assert.Equal(t, []string{"x"}, res.Failed)
}

func TestClient_UploadFile(t *testing.T) {
	cl, _ := newTestClient(t)
	u, err := cl.UploadFile(context.Background(), textFile("clip.mp4", "video/mp4", "mp4"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "/objects/local-upload/upload-"))
	assert.True(t, strings.HasSuffix(u, ".mp4"))
}

func TestClient_CreateARProject(t *testing.T) {
	cl, s := newTestClient(t)
	ctx := context.Background()

	_, err := cl.CreateARProject(ctx, entity.ARProjectRequest{})
	assert.Error(t, err)

	exp := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	resp, err := cl.CreateARProject(ctx, entity.ARProjectRequest{
		ProjectName: "Wedding",
		Photo:       textFile("photo.jpg", "image/jpeg", "p"),
		Video:       textFile("video.mp4", "video/mp4", "v"),
		Email:       "a@b.am",
		ExpiresAt:   &exp,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.ARProject.Status)
	assert.NotEmpty(t, resp.ARProject.Id)
	assert.Equal(t, 1, s.Count(http.MethodPost, "/api/ar/create-admin"))
}
