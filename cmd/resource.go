package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/form"
	"github.com/photobooksgallery/pbg-manager/internal/media"
	"github.com/spf13/cobra"
)

// resource describes one top level collection for the generic commands.
type resource struct {
	kind  entity.Kind
	name  string
	media bool

	newDraft func(ctx context.Context) (form.Draft, error)
	// load returns the edit draft and the media paths it already has.
	load func(ctx context.Context, id string) (form.Draft, form.Uploads, error)
	list func(ctx context.Context, w *tabwriter.Writer) error
}

func (r resource) command(short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.name,
		Short: short,
	}
	cmd.AddCommand(r.createCmd(), r.editCmd(), r.deleteCmd(), r.listCmd())
	if r.kind.Toggleable() {
		cmd.AddCommand(r.toggleCmd())
	}
	return cmd
}

func (r resource) gallery(seed form.Uploads) *media.Gallery {
	if !r.media {
		return nil
	}
	g := a.Gallery()
	g.Images.Seed(seed.Images)
	g.Videos.Seed(seed.Videos)
	return g
}

func (r resource) createCmd() *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s", r.name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := r.newDraft(cmd.Context())
			if err != nil {
				return err
			}
			if err := f.seed(d); err != nil {
				return err
			}
			g := r.gallery(form.Uploads{})
			if err := f.apply(cmd.OutOrStdout(), d, g); err != nil {
				return err
			}
			return submit(cmd, d, g)
		},
	}
	f.register(cmd, r.media, true)
	return cmd
}

func (r resource) editCmd() *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: fmt.Sprintf("Edit a %s", r.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, seed, err := r.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			g := r.gallery(seed)
			if err := f.apply(cmd.OutOrStdout(), d, g); err != nil {
				return err
			}
			return submit(cmd, d, g)
		},
	}
	f.register(cmd, r.media, false)
	return cmd
}

func (r resource) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete a %s", r.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Sync.Delete(cmd.Context(), r.kind, args[0])
		},
	}
}

func (r resource) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: fmt.Sprintf("Activate or deactivate a %s", r.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.Sync.Toggle(cmd.Context(), r.kind, args[0])
			return err
		},
	}
}

func (r resource) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss", r.name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := table(cmd.OutOrStdout())
			if err := r.list(cmd.Context(), w); err != nil {
				return err
			}
			return w.Flush()
		},
	}
}

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func yesNo(b *bool) string {
	if b != nil && *b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
