package main

import (
	"errors"
	"fmt"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/media"
	"github.com/spf13/cobra"
)

func uploadCmd() *cobra.Command {
	var multipart bool
	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload media files and print their object paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]entity.LocalFile, 0, len(args))
			for _, p := range args {
				f, err := localFile(p)
				if err != nil {
					return err
				}
				files = append(files, f)
			}

			if multipart {
				for _, f := range files {
					u, err := a.API.UploadFile(cmd.Context(), f)
					if err != nil {
						a.Notifier.Error("Upload failed", f.Name)
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), media.CanonicalObjectPath(u))
				}
				return nil
			}

			g := a.Gallery()
			g.Add(files...)
			err := g.UploadAll(cmd.Context())
			for _, p := range append(g.Images.Uploaded(), g.Videos.Uploaded()...) {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if err != nil {
				var ue *media.UploadError
				if errors.As(err, &ue) {
					a.Notifier.Error("Upload failed", fmt.Sprintf("%d file(s) were not uploaded, first was %s", g.Pending(), ue.Name))
				}
				return err
			}
			a.Notifier.Success("Upload complete", fmt.Sprintf("%d file(s)", len(files)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&multipart, "form", false, "post each file as a multipart form to the storefront")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored media in the bucket folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.RequireBucket()
			if err != nil {
				return err
			}
			objs, err := b.ListObjects(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintln(w, "PATH\tSIZE\tMODIFIED")
			for _, o := range objs {
				fmt.Fprintf(w, "%s\t%d\t%s\n", o.Path, o.Size, o.LastModified.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	rm := &cobra.Command{
		Use:   "rm PATH...",
		Short: "Delete stored media by object path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.RequireBucket()
			if err != nil {
				return err
			}
			if err := b.DeleteObjects(cmd.Context(), args); err != nil {
				a.Notifier.Error("Delete failed", "Some objects were not removed.")
				return err
			}
			a.Notifier.Success("Media deleted", fmt.Sprintf("%d object(s)", len(args)))
			return nil
		},
	}
	cmd.AddCommand(list, rm)
	return cmd
}
