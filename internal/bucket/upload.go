package bucket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

const cacheControl = "max-age=31536000"

// RequestUploadTarget presigns a PUT for the file's object key.
func (b *Bucket) RequestUploadTarget(ctx context.Context, fileId string, f entity.LocalFile) (entity.UploadTarget, error) {
	fp := b.objectPath(fileId, f)
	u, err := b.Client.PresignedPutObject(ctx, b.S3BucketName, fp, b.PresignExpiry)
	if err != nil {
		return entity.UploadTarget{}, fmt.Errorf("can't presign %s: %w", fp, err)
	}
	return entity.UploadTarget{Method: http.MethodPut, URL: u.String()}, nil
}

// body reads the file, converting it to WebP when configured.
func (b *Bucket) body(f entity.LocalFile) ([]byte, string, error) {
	if f.Open == nil {
		return nil, "", fmt.Errorf("file %s has no content", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, "", fmt.Errorf("can't open %s: %w", f.Name, err)
	}
	defer rc.Close()

	ct := b.storedContentType(f)
	if ct == contentTypeWebP && f.ContentType != contentTypeWebP {
		data, err := encodeWebP(rc, b.WebPQuality)
		if err != nil {
			return nil, "", fmt.Errorf("can't convert %s: %w", f.Name, err)
		}
		return data, ct, nil
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", fmt.Errorf("can't read %s: %w", f.Name, err)
	}
	return data, ct, nil
}

// Upload sends the file to a presigned target and reports its CDN URL and
// object path.
func (b *Bucket) Upload(ctx context.Context, target entity.UploadTarget, fileId string, f entity.LocalFile) (entity.UploadResult, error) {
	data, ct, err := b.body(f)
	if err != nil {
		return entity.UploadResult{}, err
	}
	method := target.Method
	if method == "" {
		method = http.MethodPut
	}
	req, err := http.NewRequestWithContext(ctx, method, target.URL, bytes.NewReader(data))
	if err != nil {
		return entity.UploadResult{}, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Cache-Control", cacheControl)

	resp, err := b.http.Do(req)
	if err != nil {
		return entity.UploadResult{}, fmt.Errorf("failed to upload %s: %w", f.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		slog.Default().ErrorContext(ctx, "bucket rejected upload",
			slog.String("file", f.Name),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return entity.UploadResult{Failed: []string{fileId}}, fmt.Errorf("upload %s: status %d", f.Name, resp.StatusCode)
	}

	fp := b.objectPath(fileId, f)
	return entity.UploadResult{
		Successful: []entity.UploadedFile{{
			FileId:     fileId,
			UploadURL:  b.getCDNURL(fp),
			ObjectPath: b.canonicalPath(fp),
		}},
	}, nil
}
