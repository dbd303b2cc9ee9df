package mutation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/photobooksgallery/pbg-manager/internal/form"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrDialogClosed       = errors.New("dialog is closed")
)

type State int

const (
	Idle State = iota
	Validating
	Submitting
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Media is the upload side of a dialog.
type Media interface {
	UploadAll(ctx context.Context) error
	Uploads() form.Uploads
}

// Dialog owns one draft from opening to a successful submission. It allows
// one submission at a time; a failed one leaves the draft open for edits.
type Dialog struct {
	sync  *Synchronizer
	draft form.Draft
	media Media

	mu    sync.Mutex
	state State
	// journalId is the journal row of the last failed submission.
	journalId int64
}

func NewDialog(s *Synchronizer, d form.Draft, m Media) *Dialog {
	return &Dialog{sync: s, draft: d, media: m}
}

func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Draft returns the draft being edited, nil once the dialog is closed.
func (d *Dialog) Draft() form.Draft {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Closed {
		return nil
	}
	return d.draft
}

// Binding edits the open draft.
func (d *Dialog) Binding() (*form.Binding, error) {
	dr := d.Draft()
	if dr == nil {
		return nil, ErrDialogClosed
	}
	return form.Bind(dr), nil
}

// Close discards the draft. A submission still in flight completes on the
// server but its result is dropped.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = Closed
	d.draft = nil
}

// enter moves to next and returns the draft as of the transition.
func (d *Dialog) enter(next State) (form.Draft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case Closed:
		return nil, ErrDialogClosed
	case Idle:
		d.state = next
		return d.draft, nil
	}
	if next == Validating {
		return nil, ErrSubmissionInFlight
	}
	d.state = next
	return d.draft, nil
}

// settle moves an in-flight dialog to next unless it was closed meanwhile.
func (d *Dialog) settle(next State) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Closed {
		return false
	}
	d.state = next
	if next == Closed {
		d.draft = nil
	}
	return true
}

// Submit validates, uploads pending media and sends the draft. Validation
// failures make no network call.
func (d *Dialog) Submit(ctx context.Context) (json.RawMessage, error) {
	draft, err := d.enter(Validating)
	if err != nil {
		return nil, err
	}

	if err := draft.Validate(); err != nil {
		d.settle(Idle)
		d.sync.notify.Error("Check the form", validationSummary(err))
		return nil, err
	}
	if _, err := d.enter(Submitting); err != nil {
		return nil, err
	}

	var up form.Uploads
	if d.media != nil {
		if err := d.media.UploadAll(ctx); err != nil {
			d.settle(Idle)
			d.sync.notify.Error("Upload failed", "Some files were not uploaded. Select them again and retry.")
			return nil, fmt.Errorf("failed to upload media: %w", err)
		}
		up = d.media.Uploads()
	}

	payload, err := draft.Submission(up)
	if err != nil {
		d.settle(Idle)
		d.sync.notify.Error("Check the form", err.Error())
		return nil, err
	}

	var parentId string
	if n, ok := draft.(form.Nested); ok {
		parentId = n.ParentID()
	}
	d.mu.Lock()
	journalId := d.journalId
	d.mu.Unlock()
	res, journalId, err := d.sync.submit(ctx, draft.Kind(), parentId, draft.Mode(), payload, journalId)
	d.mu.Lock()
	d.journalId = journalId
	d.mu.Unlock()
	if err != nil {
		if !d.settle(Idle) {
			return nil, ErrDialogClosed
		}
		return nil, err
	}
	if !d.settle(Closed) {
		slog.Default().DebugContext(ctx, "dropping result of closed dialog", slog.String("kind", string(draft.Kind())))
		return nil, ErrDialogClosed
	}
	return res, nil
}

func validationSummary(err error) string {
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		return strings.Join(ve.Messages(), ". ")
	}
	return err.Error()
}
