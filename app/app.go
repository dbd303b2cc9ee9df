package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/photobooksgallery/pbg-manager/config"
	"github.com/photobooksgallery/pbg-manager/internal/apiclient"
	"github.com/photobooksgallery/pbg-manager/internal/bucket"
	"github.com/photobooksgallery/pbg-manager/internal/cache"
	"github.com/photobooksgallery/pbg-manager/internal/dependency"
	"github.com/photobooksgallery/pbg-manager/internal/form"
	"github.com/photobooksgallery/pbg-manager/internal/media"
	"github.com/photobooksgallery/pbg-manager/internal/mutation"
	"github.com/photobooksgallery/pbg-manager/internal/notify"
	"github.com/photobooksgallery/pbg-manager/internal/store"
)

// App wires the back office collaborators for one command run.
type App struct {
	c   *config.Config
	out io.Writer

	API      *apiclient.Client
	Cache    *cache.Cache
	Notifier *notify.Console
	Store    *store.Store
	Bucket   *bucket.Bucket
	Uploader dependency.Uploader
	Sync     *mutation.Synchronizer

	unsubscribe func()
	done        chan struct{}
}

// New returns a new instance of App. Notifications go to out.
func New(c *config.Config, out io.Writer) *App {
	return &App{
		c:    c,
		out:  out,
		done: make(chan struct{}),
	}
}

func (a *App) Config() *config.Config { return a.c }

// Start connects the storefront client, the journal and the upload transport.
func (a *App) Start(ctx context.Context) error {
	var err error
	a.API, err = apiclient.New(&a.c.API)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create storefront client", slog.String("err", err.Error()))
		return err
	}
	a.Cache = cache.New(&a.c.Cache)
	a.Notifier = notify.NewConsole(a.out, false)

	var journal dependency.DraftJournal
	if a.c.Store.DSN != "" {
		a.Store, err = store.New(ctx, a.c.Store)
		if err != nil {
			slog.Default().ErrorContext(ctx, "couldn't open draft journal", slog.String("err", err.Error()))
			return err
		}
		journal = a.Store
	}

	switch a.c.Upload.Transport {
	case config.TransportBucket:
		a.Bucket, err = a.c.Bucket.Init()
		if err != nil {
			slog.Default().ErrorContext(ctx, "can't init bucket", slog.String("err", err.Error()))
			return err
		}
		a.Uploader = a.Bucket
	default:
		a.Uploader = a.API
	}

	a.Sync = mutation.New(a.API, a.Cache, a.Notifier, journal)

	events, unsubscribe := a.Cache.Subscribe(16)
	a.unsubscribe = unsubscribe
	go func() {
		for ev := range events {
			slog.Default().Debug("collection refetch scheduled", slog.String("key", ev.Key))
		}
	}()
	return nil
}

// Stop releases the journal and closes Done.
func (a *App) Stop(ctx context.Context) {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			slog.Default().ErrorContext(ctx, "can't close draft journal", slog.String("err", err.Error()))
		}
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}

// Gallery returns empty media pipelines bound to the configured transport.
func (a *App) Gallery() *media.Gallery {
	return media.NewGallery(a.Uploader, media.WithConcurrency(a.c.Upload.Concurrency))
}

// Dialog opens a submission dialog for d.
func (a *App) Dialog(d form.Draft, g *media.Gallery) *mutation.Dialog {
	if g == nil {
		return mutation.NewDialog(a.Sync, d, nil)
	}
	return mutation.NewDialog(a.Sync, d, g)
}

// RequireBucket returns the S3 bucket or an error when uploads are local.
func (a *App) RequireBucket() (*bucket.Bucket, error) {
	if a.Bucket == nil {
		return nil, fmt.Errorf("upload.transport is %q; bucket commands need %q", a.c.Upload.Transport, config.TransportBucket)
	}
	return a.Bucket, nil
}
