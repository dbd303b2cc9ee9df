package media

import (
	"context"
	"errors"
	"strings"

	"github.com/photobooksgallery/pbg-manager/internal/dependency"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/form"
	"golang.org/x/sync/errgroup"
)

// Gallery holds the image and video pipelines of one draft.
type Gallery struct {
	Images *Pipeline
	Videos *Pipeline
}

func NewGallery(up dependency.Uploader, opts ...Option) *Gallery {
	return &Gallery{
		Images: NewPipeline(entity.MediaImage, up, opts...),
		Videos: NewPipeline(entity.MediaVideo, up, opts...),
	}
}

// KindOf classifies a file by content type.
func KindOf(f entity.LocalFile) entity.MediaKind {
	if strings.HasPrefix(f.ContentType, "video/") {
		return entity.MediaVideo
	}
	return entity.MediaImage
}

func (g *Gallery) pipeline(k entity.MediaKind) *Pipeline {
	if k == entity.MediaVideo {
		return g.Videos
	}
	return g.Images
}

// Add routes files to the pipeline of their kind.
func (g *Gallery) Add(files ...entity.LocalFile) []Attachment {
	var images, videos []entity.LocalFile
	for _, f := range files {
		if KindOf(f) == entity.MediaVideo {
			videos = append(videos, f)
		} else {
			images = append(images, f)
		}
	}
	out := g.Images.AddLocalPreviews(images)
	return append(out, g.Videos.AddLocalPreviews(videos)...)
}

// RemoveAt removes the attachment at index of the kind's preview list.
func (g *Gallery) RemoveAt(k entity.MediaKind, index int) bool {
	return g.pipeline(k).RemoveAt(index)
}

// UploadAll uploads pending images and videos side by side.
func (g *Gallery) UploadAll(ctx context.Context) error {
	var (
		g2     errgroup.Group
		imgErr error
		vidErr error
	)
	g2.Go(func() error {
		imgErr = g.Images.UploadAll(ctx)
		return nil
	})
	g2.Go(func() error {
		vidErr = g.Videos.UploadAll(ctx)
		return nil
	})
	_ = g2.Wait()
	return errors.Join(imgErr, vidErr)
}

// Uploads is what the draft submission merges.
func (g *Gallery) Uploads() form.Uploads {
	return form.Uploads{
		Images: g.Images.Uploaded(),
		Videos: g.Videos.Uploaded(),
	}
}

func (g *Gallery) Pending() int {
	return g.Images.Pending() + g.Videos.Pending()
}
