package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/photobooksgallery/pbg-manager/internal/dependency"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound     = errors.New("attachment not found")
	ErrNotSelected  = errors.New("attachment is not waiting for upload")
	ErrUploadFailed = errors.New("upload was not accepted")
)

type State int

const (
	Selected State = iota
	Uploading
	Uploaded
	Removed
)

func (s State) String() string {
	switch s {
	case Selected:
		return "selected"
	case Uploading:
		return "uploading"
	case Uploaded:
		return "uploaded"
	case Removed:
		return "removed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Attachment is one selected or stored media file. Id is assigned at
// selection and identifies the attachment through upload and removal.
type Attachment struct {
	Id        string
	Kind      entity.MediaKind
	File      entity.LocalFile
	Preview   Preview
	State     State
	Path      string
	LastError string
}

// UploadError reports one attachment that did not upload.
type UploadError struct {
	Id   string
	Name string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

type Option func(*Pipeline)

// WithConcurrency bounds parallel uploads in UploadAll.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithIDs replaces the uuid generator.
func WithIDs(next func() string) Option {
	return func(p *Pipeline) {
		p.newID = next
	}
}

// Pipeline tracks the attachments of one media list (images or videos) of a
// draft. It is safe for concurrent use: uploads complete on worker
// goroutines while the owner keeps editing.
type Pipeline struct {
	kind        entity.MediaKind
	up          dependency.Uploader
	concurrency int
	newID       func() string

	mu    sync.Mutex
	items []*Attachment
}

func NewPipeline(kind entity.MediaKind, up dependency.Uploader, opts ...Option) *Pipeline {
	p := &Pipeline{
		kind:        kind,
		up:          up,
		concurrency: 3,
		newID:       uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Pipeline) Kind() entity.MediaKind { return p.kind }

// Seed registers paths that are already stored, as in edit mode.
func (p *Pipeline) Seed(paths []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, path := range paths {
		id := p.newID()
		p.items = append(p.items, &Attachment{
			Id:      id,
			Kind:    p.kind,
			Preview: Preview{Ref: path},
			State:   Uploaded,
			Path:    path,
		})
	}
}

// Reseed replaces every uploaded attachment with paths, as when the stored
// list was edited directly. Attachments still waiting for upload are kept
// after the new paths.
func (p *Pipeline) Reseed(paths []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := make([]*Attachment, 0, len(paths)+len(p.items))
	for _, path := range paths {
		items = append(items, &Attachment{
			Id:      p.newID(),
			Kind:    p.kind,
			Preview: Preview{Ref: path},
			State:   Uploaded,
			Path:    path,
		})
	}
	for _, a := range p.items {
		if a.State != Uploaded {
			items = append(items, a)
		}
	}
	p.items = items
}

// AddLocalPreviews appends the files as Selected attachments. Nothing is
// uploaded.
func (p *Pipeline) AddLocalPreviews(files []entity.LocalFile) []Attachment {
	added := make([]*Attachment, 0, len(files))
	for _, f := range files {
		id := p.newID()
		pv, err := makePreview(id, f)
		if err != nil {
			slog.Default().Warn("can't build preview", slog.String("file", f.Name), slog.String("err", err.Error()))
		}
		added = append(added, &Attachment{
			Id:      id,
			Kind:    p.kind,
			File:    f,
			Preview: pv,
			State:   Selected,
		})
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append(p.items, added...)
	out := make([]Attachment, len(added))
	for i, a := range added {
		out[i] = *a
	}
	return out
}

func (p *Pipeline) find(id string) (int, *Attachment) {
	for i, a := range p.items {
		if a.Id == id {
			return i, a
		}
	}
	return -1, nil
}

// RequestUploadTarget asks the uploader where the attachment should go. It
// does not change any state.
func (p *Pipeline) RequestUploadTarget(ctx context.Context, id string) (entity.UploadTarget, error) {
	p.mu.Lock()
	_, a := p.find(id)
	var file entity.LocalFile
	if a != nil {
		file = a.File
	}
	p.mu.Unlock()
	if a == nil {
		return entity.UploadTarget{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t, err := p.up.RequestUploadTarget(ctx, id, file)
	if err != nil {
		return entity.UploadTarget{}, fmt.Errorf("request upload target for %s: %w", file.Name, err)
	}
	return t, nil
}

// CompleteUpload applies an upload report. Successful entries are matched to
// attachments by file id and stored under the reported object path, falling
// back to the canonical rewrite of the upload URL; entries for attachments
// removed in the meantime are ignored. It returns the paths it recorded.
func (p *Pipeline) CompleteUpload(res entity.UploadResult) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	paths := make([]string, 0, len(res.Successful))
	for _, f := range res.Successful {
		_, a := p.find(f.FileId)
		if a == nil {
			slog.Default().Debug("upload result for unknown attachment", slog.String("fileId", f.FileId))
			continue
		}
		a.Path = f.ObjectPath
		if a.Path == "" {
			a.Path = CanonicalObjectPath(f.UploadURL)
		}
		a.State = Uploaded
		a.LastError = ""
		paths = append(paths, a.Path)
	}
	for _, id := range res.Failed {
		if _, a := p.find(id); a != nil && a.State != Uploaded {
			a.State = Selected
			a.LastError = ErrUploadFailed.Error()
		}
	}
	return paths
}

func (p *Pipeline) begin(id string) (entity.LocalFile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, a := p.find(id)
	if a == nil {
		return entity.LocalFile{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if a.State != Selected {
		return entity.LocalFile{}, fmt.Errorf("%w: %s is %s", ErrNotSelected, a.File.Name, a.State)
	}
	a.State = Uploading
	return a.File, nil
}

// fail returns an in-flight attachment to Selected so it can be retried.
func (p *Pipeline) fail(id string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, a := p.find(id); a != nil && a.State == Uploading {
		a.State = Selected
		a.LastError = err.Error()
	}
}

func (p *Pipeline) state(id string) (State, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, a := p.find(id)
	if a == nil {
		return Removed, false
	}
	return a.State, true
}

// Upload runs one attachment through target request, transfer and
// completion. On failure the attachment is Selected again and no path is
// recorded.
func (p *Pipeline) Upload(ctx context.Context, id string) (string, error) {
	file, err := p.begin(id)
	if err != nil {
		return "", err
	}
	target, err := p.up.RequestUploadTarget(ctx, id, file)
	if err != nil {
		p.fail(id, err)
		return "", &UploadError{Id: id, Name: file.Name, Err: err}
	}
	res, err := p.up.Upload(ctx, target, id, file)
	if err != nil {
		p.fail(id, err)
		return "", &UploadError{Id: id, Name: file.Name, Err: err}
	}
	for i := range res.Successful {
		if res.Successful[i].FileId == "" {
			res.Successful[i].FileId = id
		}
	}
	paths := p.CompleteUpload(res)

	st, ok := p.state(id)
	if !ok {
		// removed while in flight
		return "", nil
	}
	if st != Uploaded {
		p.fail(id, ErrUploadFailed)
		return "", &UploadError{Id: id, Name: file.Name, Err: ErrUploadFailed}
	}
	if len(paths) == 0 {
		return "", nil
	}
	return paths[0], nil
}

// UploadAll uploads every Selected attachment with bounded parallelism.
// Failures do not stop the other uploads; they are joined into the returned
// error as *UploadError values.
func (p *Pipeline) UploadAll(ctx context.Context) error {
	p.mu.Lock()
	ids := make([]string, 0, len(p.items))
	for _, a := range p.items {
		if a.State == Selected {
			ids = append(ids, a.Id)
		}
	}
	p.mu.Unlock()

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(p.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			if _, err := p.Upload(ctx, id); err != nil {
				slog.Default().ErrorContext(ctx, "can't upload attachment",
					slog.String("id", id),
					slog.String("kind", string(p.kind)),
					slog.String("err", err.Error()),
				)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// Remove drops the attachment, its preview and its uploaded path together.
func (p *Pipeline) Remove(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, a := p.find(id)
	if a == nil {
		return false
	}
	a.State = Removed
	p.items = append(p.items[:i], p.items[i+1:]...)
	return true
}

// RemoveAt removes the attachment shown at index in Previews. Out of range
// indexes are a no-op.
func (p *Pipeline) RemoveAt(index int) bool {
	p.mu.Lock()
	if index < 0 || index >= len(p.items) {
		p.mu.Unlock()
		return false
	}
	id := p.items[index].Id
	p.mu.Unlock()
	return p.Remove(id)
}

// Previews lists live attachments in selection order.
func (p *Pipeline) Previews() []Attachment {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Attachment, len(p.items))
	for i, a := range p.items {
		out[i] = *a
	}
	return out
}

// Uploaded lists canonical paths of uploaded attachments in selection order,
// whatever order the uploads completed in.
func (p *Pipeline) Uploaded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.items))
	for _, a := range p.items {
		if a.State == Uploaded {
			out = append(out, a.Path)
		}
	}
	return out
}

// Pending counts attachments not uploaded yet.
func (p *Pipeline) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, a := range p.items {
		if a.State == Selected || a.State == Uploading {
			n++
		}
	}
	return n
}
