package entity

import "fmt"

// Category is a catalogue category as listed by /api/categories.
type Category struct {
	Id          string     `json:"id"`
	Name        Localized  `json:"name"`
	Slug        string     `json:"slug"`
	Description *Localized `json:"description"`
	ParentId    *string    `json:"parentId"`
	ImageUrl    *string    `json:"imageUrl"`
	SortOrder   int        `json:"sortOrder"`
	IsActive    bool       `json:"isActive"`
}

// Currency is a priceable currency as listed by /api/currencies.
type Currency struct {
	Id             string    `json:"id"`
	Code           string    `json:"code"` // USD, RUB, AMD
	Name           Localized `json:"name"`
	Symbol         string    `json:"symbol"`
	IsBaseCurrency bool      `json:"isBaseCurrency"`
	IsActive       bool      `json:"isActive"`
	SortOrder      int       `json:"sortOrder"`
}

// PreferredCurrencyCode is used for new prices when present.
const PreferredCurrencyCode = "AMD"

// DefaultCurrencyId picks AMD if listed, else the base currency, else "".
func DefaultCurrencyId(currencies []Currency) string {
	for _, c := range currencies {
		if c.Code == PreferredCurrencyCode {
			return c.Id
		}
	}
	for _, c := range currencies {
		if c.IsBaseCurrency {
			return c.Id
		}
	}
	return ""
}

type PhotobookFormat string

const (
	PhotobookAlbum  PhotobookFormat = "album"
	PhotobookBook   PhotobookFormat = "book"
	PhotobookSquare PhotobookFormat = "square"
)

// PhotobookSize is one printable page size in centimetres.
type PhotobookSize struct {
	Width  int
	Height int
}

// String renders the size the way it is stored, e.g. "20x15".
func (s PhotobookSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// PhotobookSizes lists the valid sizes per format.
var PhotobookSizes = map[PhotobookFormat][]PhotobookSize{
	PhotobookAlbum: {
		{Width: 20, Height: 15},
		{Width: 30, Height: 20},
		{Width: 35, Height: 25},
		{Width: 40, Height: 30},
	},
	PhotobookBook: {
		{Width: 15, Height: 20},
		{Width: 20, Height: 30},
		{Width: 35, Height: 25},
		{Width: 30, Height: 40},
	},
	PhotobookSquare: {
		{Width: 20, Height: 20},
		{Width: 25, Height: 25},
		{Width: 30, Height: 30},
	},
}

// ValidPhotobookSize reports whether size belongs to format.
func ValidPhotobookSize(format PhotobookFormat, size string) bool {
	for _, s := range PhotobookSizes[format] {
		if s.String() == size {
			return true
		}
	}
	return false
}
