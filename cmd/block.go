package main

import (
	"fmt"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/form"
	"github.com/spf13/cobra"
)

func blockCmd() *cobra.Command {
	var pageId string
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Manage the content blocks of a constructor page",
	}
	cmd.PersistentFlags().StringVar(&pageId, "page", "", "id of the page the blocks belong to")
	_ = cmd.MarkPersistentFlagRequired("page")

	var (
		addFlags  editFlags
		blockType string
		sortOrder int
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a block to the page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("sort") {
				existing, err := a.Blocks(cmd.Context(), pageId)
				if err != nil {
					return err
				}
				sortOrder = len(existing)
			}
			d := form.NewBlockDraft(pageId, entity.BlockType(blockType), sortOrder)
			if err := addFlags.seed(d); err != nil {
				return err
			}
			d.SetPage(pageId)
			g := a.Gallery()
			if err := addFlags.apply(cmd.OutOrStdout(), d, g); err != nil {
				return err
			}
			return submit(cmd, d, g)
		},
	}
	add.Flags().StringVar(&blockType, "type", string(entity.BlockText), "block type (hero, text, image, gallery, categories, button)")
	add.Flags().IntVar(&sortOrder, "sort", 0, "position on the page (defaults to the end)")
	addFlags.register(add, true, true)

	var editFl editFlags
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.Block(cmd.Context(), pageId, args[0])
			if err != nil {
				return err
			}
			d := form.BlockFromPersisted(b)
			g := a.Gallery()
			if err := editFl.apply(cmd.OutOrStdout(), d, g); err != nil {
				return err
			}
			return submit(cmd, d, g)
		},
	}
	editFl.register(edit, true, false)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Sync.DeleteNested(cmd.Context(), entity.KindBlock, pageId, args[0])
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the blocks of the page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := a.Blocks(cmd.Context(), pageId)
			if err != nil {
				return err
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tTYPE\tSORT")
			for _, b := range bs {
				fmt.Fprintf(w, "%s\t%s\t%d\n", b.Id, b.Type, b.SortOrder)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(add, edit, del, list)
	return cmd
}
