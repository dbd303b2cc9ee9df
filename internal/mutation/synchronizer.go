// Package mutation sends drafts to the storefront and keeps the collection
// cache in step with acknowledged writes.
package mutation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/photobooksgallery/pbg-manager/internal/apiclient"
	"github.com/photobooksgallery/pbg-manager/internal/dependency"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/form"
)

var (
	ErrNotToggleable = errors.New("kind has no toggle")
	ErrNoParent      = errors.New("a parent id is required")
)

// Synchronizer issues writes and invalidates the cached collection only
// after the storefront acknowledged them.
type Synchronizer struct {
	api     dependency.Storefront
	cache   dependency.Invalidator
	notify  dependency.Notifier
	journal dependency.DraftJournal
}

// New returns a Synchronizer. journal may be nil.
func New(api dependency.Storefront, cache dependency.Invalidator, n dependency.Notifier, journal dependency.DraftJournal) *Synchronizer {
	return &Synchronizer{
		api:     api,
		cache:   cache,
		notify:  n,
		journal: journal,
	}
}

type route struct {
	method string
	path   string
	// key is the cache key invalidated on success.
	key string
}

func writeRoute(kind entity.Kind, parentId string, mode form.Mode) (route, error) {
	if kind == entity.KindBlock {
		if parentId == "" {
			return route{}, fmt.Errorf("%w: block needs its page", ErrNoParent)
		}
		key := apiclient.BlocksPath(parentId)
		if mode.IsEdit() {
			return route{http.MethodPatch, string(kind) + "/" + mode.ID(), key}, nil
		}
		return route{http.MethodPost, key, key}, nil
	}
	if !mode.IsEdit() {
		return route{http.MethodPost, string(kind), string(kind)}, nil
	}
	method := http.MethodPut
	if kind == entity.KindPage {
		method = http.MethodPatch
	}
	return route{method, string(kind) + "/" + mode.ID(), string(kind)}, nil
}

func itemKey(kind entity.Kind, parentId string) string {
	if kind == entity.KindBlock {
		return apiclient.BlocksPath(parentId)
	}
	return string(kind)
}

// Submit creates or updates a top level record.
func (s *Synchronizer) Submit(ctx context.Context, kind entity.Kind, mode form.Mode, payload any) (json.RawMessage, error) {
	return s.SubmitNested(ctx, kind, "", mode, payload)
}

// SubmitNested creates or updates a record addressed under parentId (blocks
// under their page). On failure the payload is journaled and the cache is
// left alone.
func (s *Synchronizer) SubmitNested(ctx context.Context, kind entity.Kind, parentId string, mode form.Mode, payload any) (json.RawMessage, error) {
	res, _, err := s.submit(ctx, kind, parentId, mode, payload, 0)
	return res, err
}

// submit writes payload. journalId is the row an earlier failure of the same
// draft went to: a new failure revises it, a success drops it. The returned
// id is the row holding this failure, 0 after a success.
func (s *Synchronizer) submit(ctx context.Context, kind entity.Kind, parentId string, mode form.Mode, payload any, journalId int64) (json.RawMessage, int64, error) {
	res, err := s.write(ctx, kind, parentId, mode, payload)
	if err != nil {
		return nil, s.journalFailure(ctx, journalId, kind, parentId, mode, payload, err), err
	}
	if journalId != 0 && s.journal != nil {
		if err := s.journal.DeleteDraft(ctx, journalId); err != nil {
			slog.Default().ErrorContext(ctx, "can't drop journaled draft", slog.Int64("id", journalId), slog.String("err", err.Error()))
		}
	}
	return res, 0, nil
}

func (s *Synchronizer) write(ctx context.Context, kind entity.Kind, parentId string, mode form.Mode, payload any) (json.RawMessage, error) {
	r, err := writeRoute(kind, parentId, mode)
	if err != nil {
		return nil, err
	}

	var res json.RawMessage
	if err := s.api.Do(ctx, r.method, r.path, payload, &res); err != nil {
		slog.Default().ErrorContext(ctx, "can't submit draft",
			slog.String("kind", string(kind)),
			slog.String("mode", mode.String()),
			slog.String("err", err.Error()),
		)
		s.notify.Error(fmt.Sprintf("Could not save %s", label(kind)), describe(err))
		return nil, fmt.Errorf("failed to %s %s: %w", mode, kind, err)
	}

	s.cache.Invalidate(r.key)
	if mode.IsEdit() {
		s.notify.Success(fmt.Sprintf("%s updated", title(kind)), "")
	} else {
		s.notify.Success(fmt.Sprintf("%s created", title(kind)), "")
	}
	return res, nil
}

func (s *Synchronizer) journalFailure(ctx context.Context, id int64, kind entity.Kind, parentId string, mode form.Mode, payload any, cause error) int64 {
	if s.journal == nil || errors.Is(cause, ErrNoParent) {
		return id
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't encode draft for journal", slog.String("err", err.Error()))
		return id
	}
	d := &entity.JournaledDraftInsert{
		Kind:      kind,
		Mode:      mode.String(),
		EntityId:  mode.ID(),
		ParentId:  parentId,
		Payload:   raw,
		LastError: cause.Error(),
	}
	if id != 0 {
		err := s.journal.ReviseDraft(ctx, id, d)
		if err == nil {
			slog.Default().InfoContext(ctx, "journaled draft revised", slog.Int64("id", id), slog.String("kind", string(kind)))
			return id
		}
		slog.Default().ErrorContext(ctx, "can't revise journaled draft", slog.Int64("id", id), slog.String("err", err.Error()))
	}
	id, err = s.journal.SaveDraft(ctx, d)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't journal draft", slog.String("err", err.Error()))
		return 0
	}
	slog.Default().InfoContext(ctx, "draft journaled", slog.Int64("id", id), slog.String("kind", string(kind)))
	return id
}

// Delete removes a top level record.
func (s *Synchronizer) Delete(ctx context.Context, kind entity.Kind, id string) error {
	return s.DeleteNested(ctx, kind, "", id)
}

// DeleteNested removes a record; blocks need their page to invalidate the
// right collection.
func (s *Synchronizer) DeleteNested(ctx context.Context, kind entity.Kind, parentId, id string) error {
	if kind == entity.KindBlock && parentId == "" {
		return fmt.Errorf("%w: block needs its page", ErrNoParent)
	}
	if err := s.api.Do(ctx, http.MethodDelete, string(kind)+"/"+id, nil, nil); err != nil {
		slog.Default().ErrorContext(ctx, "can't delete",
			slog.String("kind", string(kind)),
			slog.String("id", id),
			slog.String("err", err.Error()),
		)
		s.notify.Error(fmt.Sprintf("Could not delete %s", label(kind)), describe(err))
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	s.cache.Invalidate(itemKey(kind, parentId))
	s.notify.Success(fmt.Sprintf("%s deleted", title(kind)), "")
	return nil
}

// Toggle flips isActive of a banner or special offer.
func (s *Synchronizer) Toggle(ctx context.Context, kind entity.Kind, id string) (json.RawMessage, error) {
	if !kind.Toggleable() {
		return nil, fmt.Errorf("%w: %s", ErrNotToggleable, kind)
	}
	var res json.RawMessage
	if err := s.api.Do(ctx, http.MethodPatch, string(kind)+"/"+id+"/toggle", nil, &res); err != nil {
		slog.Default().ErrorContext(ctx, "can't toggle",
			slog.String("kind", string(kind)),
			slog.String("id", id),
			slog.String("err", err.Error()),
		)
		s.notify.Error(fmt.Sprintf("Could not change %s status", label(kind)), describe(err))
		return nil, fmt.Errorf("failed to toggle %s %s: %w", kind, id, err)
	}
	s.cache.Invalidate(string(kind))
	s.notify.Success(fmt.Sprintf("%s status changed", title(kind)), "")
	return res, nil
}

// Retry resubmits a journaled draft. Success drops it from the journal,
// failure records the attempt.
func (s *Synchronizer) Retry(ctx context.Context, id int64) (json.RawMessage, error) {
	if s.journal == nil {
		return nil, errors.New("no draft journal configured")
	}
	d, err := s.journal.GetDraft(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft %d: %w", id, err)
	}
	mode := form.CreateMode()
	if d.EntityId != "" {
		mode = form.EditMode(d.EntityId)
	}
	res, err := s.write(ctx, d.Kind, d.ParentId, mode, d.Payload)
	if err != nil {
		if merr := s.journal.MarkAttempt(ctx, id, err.Error()); merr != nil {
			slog.Default().ErrorContext(ctx, "can't record retry", slog.String("err", merr.Error()))
		}
		return nil, err
	}
	if err := s.journal.DeleteDraft(ctx, id); err != nil {
		slog.Default().ErrorContext(ctx, "can't drop retried draft", slog.Int64("id", id), slog.String("err", err.Error()))
	}
	return res, nil
}

func label(kind entity.Kind) string {
	switch kind {
	case entity.KindProduct:
		return "product"
	case entity.KindBanner:
		return "banner"
	case entity.KindSpecialOffer:
		return "special offer"
	case entity.KindPage:
		return "page"
	case entity.KindBlock:
		return "block"
	}
	return string(kind)
}

func title(kind entity.Kind) string {
	l := label(kind)
	if l == "" {
		return l
	}
	return strings.ToUpper(l[:1]) + l[1:]
}

// describe turns an error into a short operator message.
func describe(err error) string {
	var ae *apiclient.APIError
	if errors.As(err, &ae) {
		if ae.Message != "" {
			return ae.Message
		}
		return fmt.Sprintf("The storefront answered %d %s.", ae.Status, http.StatusText(ae.Status))
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The storefront did not answer in time."
	}
	return "The storefront could not be reached."
}
