package dependency

import (
	"context"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

//go:generate mockery --case underscore --all --output=./mocks
type (
	// Storefront is the REST API the back office writes to. path is relative
	// to /api, in and out are JSON encoded.
	Storefront interface {
		Do(ctx context.Context, method, path string, in, out any) error
	}

	// Uploader moves a locally selected file to storage.
	Uploader interface {
		// RequestUploadTarget asks where the file should be sent.
		RequestUploadTarget(ctx context.Context, fileId string, file entity.LocalFile) (entity.UploadTarget, error)
		// Upload sends the file to the target and reports the stored location.
		Upload(ctx context.Context, target entity.UploadTarget, fileId string, file entity.LocalFile) (entity.UploadResult, error)
	}

	// Invalidator drops cached collections after an acknowledged write.
	Invalidator interface {
		Invalidate(key string)
	}

	// Notifier shows short user-facing messages.
	Notifier interface {
		Success(title, description string)
		Error(title, description string)
	}

	// DraftJournal keeps submissions the storefront rejected.
	DraftJournal interface {
		// SaveDraft journals a rejected submission and returns its id.
		SaveDraft(ctx context.Context, d *entity.JournaledDraftInsert) (int64, error)
		// ListDrafts returns journaled drafts, newest first.
		ListDrafts(ctx context.Context) ([]entity.JournaledDraft, error)
		GetDraft(ctx context.Context, id int64) (*entity.JournaledDraft, error)
		// MarkAttempt records a failed retry.
		MarkAttempt(ctx context.Context, id int64, lastError string) error
		// ReviseDraft replaces the payload of a draft that failed again.
		ReviseDraft(ctx context.Context, id int64, d *entity.JournaledDraftInsert) error
		DeleteDraft(ctx context.Context, id int64) error
	}
)
