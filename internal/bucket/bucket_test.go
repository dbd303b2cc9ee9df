package bucket

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBucket(t *testing.T, endpoint string) *Bucket {
	t.Helper()
	c := &Config{
		S3AccessKey:       "access",
		S3SecretAccessKey: "secret",
		S3Endpoint:        endpoint,
		S3BucketName:      "pbg-media",
		S3BucketLocation:  "us-east-1",
		Insecure:          true,
		BaseFolder:        "pbg",
		CDNEndpoint:       "cdn.example.com",
	}
	b, err := c.Init()
	require.NoError(t, err)
	return b
}

func localFile(name, contentType, body string) entity.LocalFile {
	return entity.LocalFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestRequestUploadTarget(t *testing.T) {
	b := testBucket(t, "127.0.0.1:9000")
	target, err := b.RequestUploadTarget(context.Background(), "id-1", localFile("a.jpg", "image/jpeg", "x"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, target.Method)
	u, err := url.Parse(target.URL)
	require.NoError(t, err)
	assert.Equal(t, "/pbg-media/pbg/uploads/id-1.jpg", u.Path)
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestUpload_PresignedPut(t *testing.T) {
	var (
		gotMethod, gotType string
		gotBody            []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := testBucket(t, strings.TrimPrefix(srv.URL, "http://"))
	f := localFile("clip.mp4", "video/mp4", "mp4-bytes")
	ctx := context.Background()

	target, err := b.RequestUploadTarget(ctx, "id-7", f)
	require.NoError(t, err)
	res, err := b.Upload(ctx, target, "id-7", f)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "video/mp4", gotType)
	assert.True(t, bytes.Equal([]byte("mp4-bytes"), gotBody))
	require.Len(t, res.Successful, 1)
	assert.Equal(t, "https://cdn.example.com/pbg/uploads/id-7.mp4", res.Successful[0].UploadURL)
	assert.Equal(t, "/objects/uploads/id-7.mp4", res.Successful[0].ObjectPath)
	assert.Equal(t, "/objects/uploads/id-7.mp4", media.CanonicalObjectPath(res.Successful[0].UploadURL))
}

func TestUpload_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "SignatureDoesNotMatch", http.StatusForbidden)
	}))
	defer srv.Close()

	b := testBucket(t, strings.TrimPrefix(srv.URL, "http://"))
	res, err := b.Upload(context.Background(), entity.UploadTarget{Method: http.MethodPut, URL: srv.URL + "/x"}, "id-2",
		localFile("a.gif", "image/gif", "GIF89a"))
	require.Error(t, err)
	assert.Equal(t, []string{"id-2"}, res.Failed)
	assert.Empty(t, res.Successful)
}

func TestObjectPaths(t *testing.T) {
	b := testBucket(t, "127.0.0.1:9000")
	b.ConvertWebP = true

	assert.Equal(t, "pbg/uploads/id-1.webp", b.objectPath("id-1", localFile("a.png", "image/png", "")))
	assert.Equal(t, "pbg/uploads/id-2.gif", b.objectPath("id-2", localFile("a.gif", "image/gif", "")))
	assert.Equal(t, "pbg/uploads/id-3.bin", b.objectPath("id-3", entity.LocalFile{Name: "raw"}))

	key, err := b.objectKey("/objects/uploads/id-1.webp")
	require.NoError(t, err)
	assert.Equal(t, "pbg/uploads/id-1.webp", key)

	_, err = b.objectKey("https://cdn.example.com/x.jpg")
	assert.Error(t, err)

	b.CDNEndpoint = ""
	assert.Equal(t, "https://pbg-media.127.0.0.1:9000/pbg/uploads/a.jpg", b.getCDNURL("pbg/uploads/a.jpg"))
}

func TestObjectPaths_BaseFolder(t *testing.T) {
	tests := []struct {
		name       string
		baseFolder string
		key        string
	}{
		{"none", "", "uploads/id-1.jpg"},
		{"single", "pbg", "pbg/uploads/id-1.jpg"},
		{"nested", "pbg/media/prod", "pbg/media/prod/uploads/id-1.jpg"},
		{"slashes", "/pbg/media/", "pbg/media/uploads/id-1.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBucket(t, "127.0.0.1:9000")
			b.BaseFolder = tt.baseFolder

			key := b.objectPath("id-1", localFile("a.jpg", "image/jpeg", ""))
			assert.Equal(t, tt.key, strings.TrimPrefix(key, "/"))

			p := b.canonicalPath(key)
			assert.Equal(t, "/objects/uploads/id-1.jpg", p)

			back, err := b.objectKey(p)
			require.NoError(t, err)
			assert.Equal(t, key, back)
		})
	}
}
