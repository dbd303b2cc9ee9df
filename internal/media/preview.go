package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/bbrks/go-blurhash"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	blurHashX = 4
	blurHashY = 3
	// longest side of the thumbnail the hash is computed from
	thumbSide = 64
)

// Preview is the ephemeral, local representation of a selected file.
type Preview struct {
	Ref      string `json:"ref"`
	BlurHash string `json:"blurHash,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

func previewRef(id string, f entity.LocalFile) string {
	return fmt.Sprintf("preview://%s/%s", id, f.Name)
}

func isImage(f entity.LocalFile) bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

// makePreview decodes images locally for their size and BlurHash. Files that
// cannot be decoded still get a reference.
func makePreview(id string, f entity.LocalFile) (Preview, error) {
	p := Preview{Ref: previewRef(id, f)}
	if !isImage(f) || f.Open == nil {
		return p, nil
	}
	rc, err := f.Open()
	if err != nil {
		return p, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return p, fmt.Errorf("decode %s: %w", f.Name, err)
	}
	b := img.Bounds()
	p.Width, p.Height = b.Dx(), b.Dy()

	hash, err := blurhash.Encode(blurHashX, blurHashY, thumbnail(img))
	if err != nil {
		return p, fmt.Errorf("blurhash %s: %w", f.Name, err)
	}
	p.BlurHash = hash
	return p, nil
}

func thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= thumbSide && h <= thumbSide {
		return img
	}
	if w >= h {
		h = max(1, h*thumbSide/w)
		w = thumbSide
	} else {
		w = max(1, w*thumbSide/h)
		h = thumbSide
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
