package apiclient

import (
	"context"
	"net/http"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

func list[T any](ctx context.Context, cl *Client, path string) ([]T, error) {
	out := []T{}
	if err := cl.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cl *Client) Products(ctx context.Context) ([]entity.Product, error) {
	return list[entity.Product](ctx, cl, string(entity.KindProduct))
}

func (cl *Client) Categories(ctx context.Context) ([]entity.Category, error) {
	return list[entity.Category](ctx, cl, string(entity.KindCategory))
}

func (cl *Client) Currencies(ctx context.Context) ([]entity.Currency, error) {
	return list[entity.Currency](ctx, cl, string(entity.KindCurrency))
}

func (cl *Client) Banners(ctx context.Context) ([]entity.Banner, error) {
	return list[entity.Banner](ctx, cl, string(entity.KindBanner))
}

func (cl *Client) SpecialOffers(ctx context.Context) ([]entity.SpecialOffer, error) {
	return list[entity.SpecialOffer](ctx, cl, string(entity.KindSpecialOffer))
}

func (cl *Client) Pages(ctx context.Context) ([]entity.Page, error) {
	return list[entity.Page](ctx, cl, string(entity.KindPage))
}

func (cl *Client) Page(ctx context.Context, id string) (*entity.Page, error) {
	var p entity.Page
	if err := cl.Do(ctx, http.MethodGet, string(entity.KindPage)+"/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Blocks lists the blocks of a page.
func (cl *Client) Blocks(ctx context.Context, pageId string) ([]entity.Block, error) {
	return list[entity.Block](ctx, cl, BlocksPath(pageId))
}

// BlocksPath is the collection path of a page's blocks.
func BlocksPath(pageId string) string {
	return string(entity.KindPage) + "/" + pageId + "/blocks"
}
