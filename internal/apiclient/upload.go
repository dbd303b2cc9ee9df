package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

const localUploadPath = "local-upload"

type uploadResponse struct {
	URL string `json:"url"`
}

// RequestUploadTarget returns the local-upload endpoint of the file. The
// storefront accepts the raw body there, so no round trip is needed.
func (cl *Client) RequestUploadTarget(_ context.Context, fileId string, _ entity.LocalFile) (entity.UploadTarget, error) {
	return entity.UploadTarget{
		Method: http.MethodPut,
		URL:    cl.endpoint(localUploadPath + "/" + fileId),
	}, nil
}

// Upload PUTs the file body to the target.
func (cl *Client) Upload(ctx context.Context, target entity.UploadTarget, fileId string, f entity.LocalFile) (entity.UploadResult, error) {
	if f.Open == nil {
		return entity.UploadResult{}, fmt.Errorf("file %s has no content", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return entity.UploadResult{}, fmt.Errorf("can't open %s: %w", f.Name, err)
	}
	defer rc.Close()

	method := target.Method
	if method == "" {
		method = http.MethodPut
	}
	req, err := cl.newRequest(ctx, method, target.URL, rc)
	if err != nil {
		return entity.UploadResult{}, err
	}
	if f.ContentType != "" {
		req.Header.Set("Content-Type", f.ContentType)
	}
	if f.Size > 0 {
		req.ContentLength = f.Size
	}

	var resp uploadResponse
	if err := cl.send(req, localUploadPath+"/"+fileId, &resp); err != nil {
		return entity.UploadResult{Failed: []string{fileId}}, err
	}
	u := resp.URL
	if u == "" {
		u = target.URL
	}
	return entity.UploadResult{
		Successful: []entity.UploadedFile{{FileId: fileId, UploadURL: u}},
	}, nil
}

// UploadFile posts the file as multipart field "file" and returns the
// stored /objects/local-upload/... path.
func (cl *Client) UploadFile(ctx context.Context, f entity.LocalFile) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := writeFilePart(w, "file", f); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("can't close multipart body: %w", err)
	}

	req, err := cl.newRequest(ctx, http.MethodPost, cl.endpoint(localUploadPath), &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp uploadResponse
	if err := cl.send(req, localUploadPath, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("upload of %s returned no url", f.Name)
	}
	return resp.URL, nil
}

func writeFilePart(w *multipart.Writer, field string, f entity.LocalFile) error {
	if f.Open == nil {
		return fmt.Errorf("file %s has no content", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("can't open %s: %w", f.Name, err)
	}
	defer rc.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("can't create %s part: %w", field, err)
	}
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("can't write %s: %w", f.Name, err)
	}
	return nil
}
