package entity

import (
	"io"
	"time"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// UploadTarget is where one file should be sent.
type UploadTarget struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// UploadedFile is one successful upload as reported by the transport.
type UploadedFile struct {
	FileId    string `json:"fileId"`
	UploadURL string `json:"uploadURL"`
	// ObjectPath is set by transports that know the stored key.
	ObjectPath string `json:"objectPath,omitempty"`
}

// UploadResult mirrors the uploader's completion report.
type UploadResult struct {
	Successful []UploadedFile `json:"successful"`
	Failed     []string       `json:"failed,omitempty"`
}

// LocalFile is a file chosen by the operator but not yet uploaded.
type LocalFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// ARProjectRequest is the multipart body of POST /api/ar/create-admin.
type ARProjectRequest struct {
	ProjectName string
	Photo       LocalFile
	Video       LocalFile
	Phone       string
	Email       string
	Notes       string
	ExpiresAt   *time.Time
}

// ARProject is the subset of the AR project record the back office shows.
type ARProject struct {
	Id        string     `json:"id"`
	Status    string     `json:"status"`
	ViewUrl   string     `json:"viewUrl,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// ARProjectResponse is returned by POST /api/ar/create-admin.
type ARProjectResponse struct {
	ARProject ARProject      `json:"arProject"`
	Compile   map[string]any `json:"compile"`
}
