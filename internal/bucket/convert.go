package bucket

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

func convertible(contentType string) bool {
	return contentType == contentTypeJPEG || contentType == contentTypePNG
}

// encodeWebP re-encodes a JPEG or PNG as lossy WebP.
func encodeWebP(r io.Reader, quality float32) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetPhoto, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to build webp options: %w", err)
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
