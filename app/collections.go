package app

import (
	"context"
	"fmt"

	"github.com/photobooksgallery/pbg-manager/internal/apiclient"
	"github.com/photobooksgallery/pbg-manager/internal/cache"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

func (a *App) Products(ctx context.Context) ([]entity.Product, error) {
	return cache.Load(ctx, a.Cache, string(entity.KindProduct), a.API.Products)
}

func (a *App) Categories(ctx context.Context) ([]entity.Category, error) {
	return cache.Load(ctx, a.Cache, string(entity.KindCategory), a.API.Categories)
}

func (a *App) Currencies(ctx context.Context) ([]entity.Currency, error) {
	return cache.Load(ctx, a.Cache, string(entity.KindCurrency), a.API.Currencies)
}

func (a *App) Banners(ctx context.Context) ([]entity.Banner, error) {
	return cache.Load(ctx, a.Cache, string(entity.KindBanner), a.API.Banners)
}

func (a *App) SpecialOffers(ctx context.Context) ([]entity.SpecialOffer, error) {
	return cache.Load(ctx, a.Cache, string(entity.KindSpecialOffer), a.API.SpecialOffers)
}

func (a *App) Pages(ctx context.Context) ([]entity.Page, error) {
	return cache.Load(ctx, a.Cache, string(entity.KindPage), a.API.Pages)
}

func (a *App) Blocks(ctx context.Context, pageId string) ([]entity.Block, error) {
	return cache.Load(ctx, a.Cache, apiclient.BlocksPath(pageId), func(ctx context.Context) ([]entity.Block, error) {
		return a.API.Blocks(ctx, pageId)
	})
}

// DefaultCurrency is AMD when offered, else the base currency.
func (a *App) DefaultCurrency(ctx context.Context) (string, error) {
	cs, err := a.Currencies(ctx)
	if err != nil {
		return "", err
	}
	return entity.DefaultCurrencyId(cs), nil
}

// Text renders a translation for listings.
func (a *App) Text(v *entity.Localized) string {
	l := entity.EnsureCanonical(v)
	if a.c.Locale.FallbackAtRead {
		return l.Resolve(a.c.DisplayLocale())
	}
	return l.Get(a.c.DisplayLocale())
}

func find[T any](items []T, id func(T) string, want string) (T, error) {
	for _, it := range items {
		if id(it) == want {
			return it, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s not found", want)
}

func (a *App) Product(ctx context.Context, id string) (entity.Product, error) {
	ps, err := a.Products(ctx)
	if err != nil {
		return entity.Product{}, err
	}
	return find(ps, func(p entity.Product) string { return p.Id }, id)
}

func (a *App) Banner(ctx context.Context, id string) (entity.Banner, error) {
	bs, err := a.Banners(ctx)
	if err != nil {
		return entity.Banner{}, err
	}
	return find(bs, func(b entity.Banner) string { return b.Id }, id)
}

func (a *App) SpecialOffer(ctx context.Context, id string) (entity.SpecialOffer, error) {
	offers, err := a.SpecialOffers(ctx)
	if err != nil {
		return entity.SpecialOffer{}, err
	}
	return find(offers, func(o entity.SpecialOffer) string { return o.Id }, id)
}

func (a *App) Page(ctx context.Context, id string) (entity.Page, error) {
	p, err := a.API.Page(ctx, id)
	if err != nil {
		return entity.Page{}, err
	}
	return *p, nil
}

func (a *App) Block(ctx context.Context, pageId, id string) (entity.Block, error) {
	bs, err := a.Blocks(ctx, pageId)
	if err != nil {
		return entity.Block{}, err
	}
	return find(bs, func(b entity.Block) string { return b.Id }, id)
}
