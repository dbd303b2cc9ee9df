package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalogue item as persisted by the storefront.
type Product struct {
	Id          string     `json:"id"`
	Name        *Localized `json:"name"`
	Description *Localized `json:"description"`

	Price              decimal.Decimal     `json:"price"`
	CurrencyId         *string             `json:"currencyId"`
	OriginalPrice      decimal.NullDecimal `json:"originalPrice"`
	DiscountPercentage *int                `json:"discountPercentage"`
	InStock            *bool               `json:"inStock"`
	StockQuantity      *int                `json:"stockQuantity"`
	IsOnSale           *bool               `json:"isOnSale"`

	ImageUrl      *string  `json:"imageUrl"`
	Images        []string `json:"images"`
	VideoUrl      *string  `json:"videoUrl"`
	Videos        []string `json:"videos"`
	CategoryId    *string  `json:"categoryId"`
	SubcategoryId *string  `json:"subcategoryId"`

	PhotobookFormat            *string             `json:"photobookFormat"`
	PhotobookSize              *string             `json:"photobookSize"`
	MinSpreads                 *int                `json:"minSpreads"`
	AdditionalSpreadPrice      decimal.NullDecimal `json:"additionalSpreadPrice"`
	AdditionalSpreadCurrencyId *string             `json:"additionalSpreadCurrencyId"`

	PaperType     *string `json:"paperType"`
	CoverMaterial *string `json:"coverMaterial"`
	BindingType   *string `json:"bindingType"`

	ProductionTime *int                `json:"productionTime"`
	ShippingTime   *int                `json:"shippingTime"`
	Weight         decimal.NullDecimal `json:"weight"`

	AllowCustomization       *bool               `json:"allowCustomization"`
	MinCustomPrice           decimal.NullDecimal `json:"minCustomPrice"`
	MinCustomPriceCurrencyId *string             `json:"minCustomPriceCurrencyId"`
	IsReadyMade              *bool               `json:"isReadyMade"`

	CostPrice      decimal.NullDecimal `json:"costPrice"`
	CostCurrencyId *string             `json:"costCurrencyId"`

	IsActive     *bool      `json:"isActive"`
	SortOrder    *int       `json:"sortOrder"`
	SpecialPages []string   `json:"specialPages"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// ProductPayload is the normalized body of POST/PUT /api/products.
type ProductPayload struct {
	Name        Localized `json:"name"`
	Description Localized `json:"description"`

	Price              decimal.Decimal     `json:"price"`
	CurrencyId         string              `json:"currencyId"`
	OriginalPrice      decimal.NullDecimal `json:"originalPrice"`
	DiscountPercentage int                 `json:"discountPercentage"`
	InStock            bool                `json:"inStock"`
	StockQuantity      int                 `json:"stockQuantity"`
	IsOnSale           bool                `json:"isOnSale"`

	ImageUrl      *string  `json:"imageUrl"`
	Images        []string `json:"images"`
	VideoUrl      *string  `json:"videoUrl"`
	Videos        []string `json:"videos"`
	CategoryId    string   `json:"categoryId"`
	SubcategoryId *string  `json:"subcategoryId"`

	PhotobookFormat            *string             `json:"photobookFormat"`
	PhotobookSize              *string             `json:"photobookSize"`
	MinSpreads                 int                 `json:"minSpreads"`
	AdditionalSpreadPrice      decimal.NullDecimal `json:"additionalSpreadPrice"`
	AdditionalSpreadCurrencyId string              `json:"additionalSpreadCurrencyId"`

	PaperType     *string `json:"paperType"`
	CoverMaterial *string `json:"coverMaterial"`
	BindingType   *string `json:"bindingType"`

	ProductionTime int                 `json:"productionTime"`
	ShippingTime   int                 `json:"shippingTime"`
	Weight         decimal.NullDecimal `json:"weight"`

	AllowCustomization       bool                `json:"allowCustomization"`
	MinCustomPrice           decimal.NullDecimal `json:"minCustomPrice"`
	MinCustomPriceCurrencyId string              `json:"minCustomPriceCurrencyId"`
	IsReadyMade              bool                `json:"isReadyMade"`

	CostPrice      decimal.Decimal `json:"costPrice"`
	CostCurrencyId string          `json:"costCurrencyId"`

	IsActive     bool     `json:"isActive"`
	SortOrder    int      `json:"sortOrder"`
	SpecialPages []string `json:"specialPages"`
}
