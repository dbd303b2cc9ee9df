package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/form"
	"github.com/photobooksgallery/pbg-manager/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopUploader struct{}

func (nopUploader) RequestUploadTarget(context.Context, string, entity.LocalFile) (entity.UploadTarget, error) {
	return entity.UploadTarget{}, nil
}

func (nopUploader) Upload(_ context.Context, _ entity.UploadTarget, id string, _ entity.LocalFile) (entity.UploadResult, error) {
	return entity.UploadResult{Successful: []entity.UploadedFile{{FileId: id, UploadURL: "https://cdn/uploads/" + id}}}, nil
}

func TestEditFlags_Apply(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "cover.JPG")
	require.NoError(t, os.WriteFile(img, []byte("not really a jpeg"), 0o600))

	d := form.NewProductDraft("amd")
	g := media.NewGallery(nopUploader{})
	g.Images.Seed([]string{"/objects/uploads/a.jpg", "/objects/uploads/b.jpg", "/objects/uploads/c.jpg"})

	f := editFlags{
		sets:        []string{"categoryId=cat-1", "price=1500"},
		setLocales:  []string{"name.hy=Ալբոմ"},
		images:      []string{img},
		removeImage: []int{0, 2},
	}
	var out bytes.Buffer
	require.NoError(t, f.apply(&out, d, g))

	assert.Equal(t, "cat-1", d.CategoryId)
	assert.Equal(t, entity.Localized{HY: "Ալբոմ"}, d.Name)
	assert.Equal(t, []string{"/objects/uploads/b.jpg"}, d.Images)
	assert.Equal(t, 1, g.Images.Pending())
	assert.Equal(t, "image cover.JPG\n", out.String())
}

func TestEditFlags_EditSetsMediaList(t *testing.T) {
	cat := "cat-1"
	d := form.ProductFromPersisted(entity.Product{
		Id:         "p-1",
		CategoryId: &cat,
		Images:     []string{"/objects/uploads/a.jpg", "/objects/uploads/b.jpg"},
		Videos:     []string{"/objects/uploads/v.mp4"},
	}, "amd")
	g := media.NewGallery(nopUploader{})
	g.Images.Seed(d.Images)
	g.Videos.Seed(d.Videos)

	f := editFlags{sets: []string{"images=/objects/uploads/new.jpg", "videos="}}
	require.NoError(t, f.apply(io.Discard, d, g))

	p := d.ToSubmission(g.Uploads())
	assert.Equal(t, []string{"/objects/uploads/new.jpg"}, p.Images)
	assert.Empty(t, p.Videos)
}

func TestEditFlags_BadAssignment(t *testing.T) {
	f := editFlags{setLocales: []string{"name=Book"}}
	assert.Error(t, f.apply(io.Discard, form.NewPageDraft(), nil))
}

func TestEditFlags_Seed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "block.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"button","content":{"text":{"en":"Buy"},"link":"/shop"}}`), 0o600))

	d := form.NewBlockDraft("page-1", entity.BlockText, 0)
	f := editFlags{draftFile: path}
	require.NoError(t, f.seed(d))
	assert.Equal(t, entity.BlockButton, d.Type)
	assert.Equal(t, "Buy", d.Content.(*entity.ButtonContent).Text.EN)
}

func TestLocalFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(p, []byte("mp4"), 0o600))

	f, err := localFile(p)
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", f.Name)
	assert.True(t, strings.HasPrefix(f.ContentType, "video/"))
	assert.EqualValues(t, 3, f.Size)
	assert.Equal(t, entity.MediaVideo, media.KindOf(f))

	_, err = localFile(dir)
	assert.Error(t, err)
	_, err = localFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
