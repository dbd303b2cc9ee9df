package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

const arCreatePath = "ar/create-admin"

// CreateARProject submits an AR project on behalf of a customer. Compilation
// happens on the storefront side.
func (cl *Client) CreateARProject(ctx context.Context, r entity.ARProjectRequest) (*entity.ARProjectResponse, error) {
	if r.ProjectName == "" {
		return nil, fmt.Errorf("project name is required")
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := writeFilePart(w, "photo", r.Photo); err != nil {
		return nil, err
	}
	if err := writeFilePart(w, "video", r.Video); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"projectName": r.ProjectName,
		"phone":       r.Phone,
		"email":       r.Email,
		"notes":       r.Notes,
	}
	if r.ExpiresAt != nil {
		fields["expiresAt"] = r.ExpiresAt.UTC().Format(time.RFC3339)
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("can't write %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("can't close multipart body: %w", err)
	}

	req, err := cl.newRequest(ctx, http.MethodPost, cl.endpoint(arCreatePath), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp entity.ARProjectResponse
	if err := cl.send(req, arCreatePath, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
