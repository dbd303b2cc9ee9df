package main

import (
	"fmt"
	"time"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/spf13/cobra"
)

func arCmd() *cobra.Command {
	var (
		r                 entity.ARProjectRequest
		photo, video, exp string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an AR project from a photo and a video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if r.Photo, err = localFile(photo); err != nil {
				return err
			}
			if r.Video, err = localFile(video); err != nil {
				return err
			}
			if exp != "" {
				t, err := time.Parse(time.RFC3339, exp)
				if err != nil {
					return fmt.Errorf("invalid --expires: %w", err)
				}
				r.ExpiresAt = &t
			}
			resp, err := a.API.CreateARProject(cmd.Context(), r)
			if err != nil {
				a.Notifier.Error("Could not create AR project", "The storefront rejected the request.")
				return err
			}
			a.Notifier.Success("AR project created", "Compilation has started.")
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", resp.ARProject.Id, resp.ARProject.Status)
			return nil
		},
	}
	create.Flags().StringVar(&r.ProjectName, "name", "", "project name")
	create.Flags().StringVar(&photo, "photo", "", "marker photo file")
	create.Flags().StringVar(&video, "video", "", "overlay video file")
	create.Flags().StringVar(&r.Phone, "phone", "", "customer phone")
	create.Flags().StringVar(&r.Email, "email", "", "customer email")
	create.Flags().StringVar(&r.Notes, "notes", "", "internal notes")
	create.Flags().StringVar(&exp, "expires", "", "expiry time, RFC 3339")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("photo")
	_ = create.MarkFlagRequired("video")

	cmd := &cobra.Command{
		Use:   "ar",
		Short: "Manage AR projects",
	}
	cmd.AddCommand(create)
	return cmd
}
