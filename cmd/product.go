package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/form"
	"github.com/spf13/cobra"
)

func productCmd() *cobra.Command {
	return resource{
		kind:  entity.KindProduct,
		name:  "product",
		media: true,
		newDraft: func(ctx context.Context) (form.Draft, error) {
			cur, err := a.DefaultCurrency(ctx)
			if err != nil {
				return nil, err
			}
			return form.NewProductDraft(cur), nil
		},
		load: func(ctx context.Context, id string) (form.Draft, form.Uploads, error) {
			cur, err := a.DefaultCurrency(ctx)
			if err != nil {
				return nil, form.Uploads{}, err
			}
			p, err := a.Product(ctx, id)
			if err != nil {
				return nil, form.Uploads{}, err
			}
			return form.ProductFromPersisted(p, cur), form.Uploads{Images: p.Images, Videos: p.Videos}, nil
		},
		list: func(ctx context.Context, w *tabwriter.Writer) error {
			ps, err := a.Products(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY\tACTIVE")
			for _, p := range ps {
				fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\n",
					p.Id, orDash(a.Text(p.Name)), p.Price.String(), deref(p.CurrencyId),
					orDash(deref(p.CategoryId)), yesNo(p.IsActive))
			}
			return nil
		},
	}.command("Manage catalogue products")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
