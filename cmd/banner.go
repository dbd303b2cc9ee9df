package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/form"
	"github.com/spf13/cobra"
)

func status(s *entity.PublicationStatus) string {
	if s == nil {
		return "-"
	}
	return string(*s)
}

func bannerCmd() *cobra.Command {
	return resource{
		kind:  entity.KindBanner,
		name:  "banner",
		media: true,
		newDraft: func(context.Context) (form.Draft, error) {
			return form.NewBannerDraft(), nil
		},
		load: func(ctx context.Context, id string) (form.Draft, form.Uploads, error) {
			b, err := a.Banner(ctx, id)
			if err != nil {
				return nil, form.Uploads{}, err
			}
			return form.BannerFromPersisted(b), form.Uploads{}, nil
		},
		list: func(ctx context.Context, w *tabwriter.Writer) error {
			bs, err := a.Banners(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tTITLE\tSTATUS\tACTIVE")
			for _, b := range bs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					b.Id, b.Name, b.Type, orDash(a.Text(b.Title)), status(b.Status), yesNo(b.IsActive))
			}
			return nil
		},
	}.command("Manage promotional banners")
}

func offerCmd() *cobra.Command {
	return resource{
		kind:  entity.KindSpecialOffer,
		name:  "offer",
		media: true,
		newDraft: func(ctx context.Context) (form.Draft, error) {
			cur, err := a.DefaultCurrency(ctx)
			if err != nil {
				return nil, err
			}
			return form.NewOfferDraft(cur), nil
		},
		load: func(ctx context.Context, id string) (form.Draft, form.Uploads, error) {
			cur, err := a.DefaultCurrency(ctx)
			if err != nil {
				return nil, form.Uploads{}, err
			}
			o, err := a.SpecialOffer(ctx, id)
			if err != nil {
				return nil, form.Uploads{}, err
			}
			return form.OfferFromPersisted(o, cur), form.Uploads{}, nil
		},
		list: func(ctx context.Context, w *tabwriter.Writer) error {
			offers, err := a.SpecialOffers(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tDISCOUNT\tSTATUS\tACTIVE")
			for _, o := range offers {
				discount := "-"
				if o.DiscountType != nil && o.DiscountValue.Valid {
					discount = o.DiscountValue.Decimal.String() + " " + string(*o.DiscountType)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					o.Id, o.Name, o.Type, discount, status(o.Status), yesNo(o.IsActive))
			}
			return nil
		},
	}.command("Manage special offers")
}

func pageCmd() *cobra.Command {
	return resource{
		kind: entity.KindPage,
		name: "page",
		newDraft: func(context.Context) (form.Draft, error) {
			return form.NewPageDraft(), nil
		},
		load: func(ctx context.Context, id string) (form.Draft, form.Uploads, error) {
			p, err := a.Page(ctx, id)
			if err != nil {
				return nil, form.Uploads{}, err
			}
			return form.PageFromPersisted(p), form.Uploads{}, nil
		},
		list: func(ctx context.Context, w *tabwriter.Writer) error {
			ps, err := a.Pages(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "ID\tSLUG\tTITLE\tPUBLISHED\tHEADER\tFOOTER")
			for _, p := range ps {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.Id, p.Slug, orDash(a.Text(p.Title)), yesNo(p.IsPublished), yesNo(p.ShowInHeaderNav), yesNo(p.ShowInFooter))
			}
			return nil
		},
	}.command("Manage constructor pages")
}
