package entity

// Kind names an administrable collection; the value is its path under /api.
type Kind string

const (
	KindProduct      Kind = "products"
	KindBanner       Kind = "banners"
	KindSpecialOffer Kind = "special-offers"
	KindPage         Kind = "constructor/pages"
	KindBlock        Kind = "constructor/blocks"
	KindCategory     Kind = "categories"
	KindCurrency     Kind = "currencies"
)

// Toggleable reports whether the kind supports PATCH /:id/toggle.
func (k Kind) Toggleable() bool {
	return k == KindBanner || k == KindSpecialOffer
}
