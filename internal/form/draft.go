package form

import (
	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

// Mode tells whether a draft creates a new record or edits a persisted one.
// The zero value is create mode.
type Mode struct {
	id string
}

func CreateMode() Mode {
	return Mode{}
}

func EditMode(id string) Mode {
	return Mode{id: id}
}

func (m Mode) IsEdit() bool {
	return m.id != ""
}

// ID is the persisted id in edit mode, "" in create mode.
func (m Mode) ID() string {
	return m.id
}

func (m Mode) String() string {
	if m.IsEdit() {
		return "edit"
	}
	return "create"
}

// Uploads are the canonical media paths produced by the upload pipeline.
type Uploads struct {
	Images []string
	Videos []string
}

// preferUploaded keeps the draft's list unless something was uploaded.
func preferUploaded(uploaded, current []string) []string {
	if len(uploaded) > 0 {
		return append([]string(nil), uploaded...)
	}
	return nonNil(append([]string(nil), current...))
}

// Draft is the in-memory state of one entity being created or edited.
type Draft interface {
	Editable
	Kind() entity.Kind
	Mode() Mode
	// Validate runs before any network call.
	Validate() error
	// Submission normalizes the draft into the API payload.
	Submission(up Uploads) (any, error)
}

// Nested drafts (blocks) are addressed under a parent record.
type Nested interface {
	ParentID() string
}
