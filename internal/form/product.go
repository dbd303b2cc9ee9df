package form

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/shopspring/decimal"
)

// Product defaults applied when a field is missing or does not parse.
const (
	DefaultMinSpreads     = 10
	DefaultProductionTime = 7
	DefaultShippingTime   = 3
)

// ProductDraft is the editable state of a product.
type ProductDraft struct {
	mode              Mode
	defaultCurrencyId string

	Name        entity.Localized `json:"name"`
	Description entity.Localized `json:"description"`

	Price              Number `json:"price"`
	CurrencyId         string `json:"currencyId"`
	OriginalPrice      Number `json:"originalPrice"`
	DiscountPercentage Number `json:"discountPercentage"`
	InStock            bool   `json:"inStock"`
	StockQuantity      Number `json:"stockQuantity"`
	IsOnSale           bool   `json:"isOnSale"`

	CategoryId    string   `json:"categoryId"`
	SubcategoryId Choice   `json:"subcategoryId"`
	ImageUrl      string   `json:"imageUrl"`
	Images        []string `json:"images"`
	VideoUrl      string   `json:"videoUrl"`
	Videos        []string `json:"videos"`

	PhotobookFormat            Choice `json:"photobookFormat"`
	PhotobookSize              Choice `json:"photobookSize"`
	MinSpreads                 Number `json:"minSpreads"`
	AdditionalSpreadPrice      Number `json:"additionalSpreadPrice"`
	AdditionalSpreadCurrencyId string `json:"additionalSpreadCurrencyId"`

	PaperType     Choice `json:"paperType"`
	CoverMaterial Choice `json:"coverMaterial"`
	BindingType   Choice `json:"bindingType"`

	ProductionTime Number `json:"productionTime"`
	ShippingTime   Number `json:"shippingTime"`
	Weight         Number `json:"weight"`

	AllowCustomization       bool   `json:"allowCustomization"`
	MinCustomPrice           Number `json:"minCustomPrice"`
	MinCustomPriceCurrencyId string `json:"minCustomPriceCurrencyId"`
	IsReadyMade              bool   `json:"isReadyMade"`

	CostPrice      Number `json:"costPrice"`
	CostCurrencyId string `json:"costCurrencyId"`

	IsActive     bool     `json:"isActive"`
	SortOrder    Number   `json:"sortOrder"`
	SpecialPages []string `json:"specialPages"`
}

// NewProductDraft starts a create-mode draft with the storefront defaults.
func NewProductDraft(defaultCurrencyId string) *ProductDraft {
	return &ProductDraft{
		defaultCurrencyId:          defaultCurrencyId,
		Name:                       entity.NewLocalized(),
		Description:                entity.NewLocalized(),
		Price:                      "0",
		CurrencyId:                 defaultCurrencyId,
		DiscountPercentage:         "0",
		InStock:                    true,
		StockQuantity:              "0",
		Images:                     []string{},
		Videos:                     []string{},
		MinSpreads:                 IntNumber(DefaultMinSpreads),
		AdditionalSpreadPrice:      "0",
		AdditionalSpreadCurrencyId: defaultCurrencyId,
		ProductionTime:             IntNumber(DefaultProductionTime),
		ShippingTime:               IntNumber(DefaultShippingTime),
		AllowCustomization:         true,
		MinCustomPriceCurrencyId:   defaultCurrencyId,
		IsActive:                   true,
		SortOrder:                  "0",
		CostPrice:                  "0",
		CostCurrencyId:             defaultCurrencyId,
		SpecialPages:               []string{},
	}
}

// ProductFromPersisted starts an edit-mode draft from a fetched record.
func ProductFromPersisted(p entity.Product, defaultCurrencyId string) *ProductDraft {
	d := &ProductDraft{
		mode:              EditMode(p.Id),
		defaultCurrencyId: defaultCurrencyId,

		Name:        entity.EnsureCanonical(p.Name),
		Description: entity.EnsureCanonical(p.Description),

		Price:              DecimalNumber(p.Price),
		CurrencyId:         deref(p.CurrencyId),
		OriginalPrice:      NullDecimalNumber(p.OriginalPrice),
		DiscountPercentage: IntPtrNumber(p.DiscountPercentage),
		InStock:            derefBool(p.InStock, true),
		StockQuantity:      IntPtrNumber(p.StockQuantity),
		IsOnSale:           derefBool(p.IsOnSale, false),

		CategoryId:    deref(p.CategoryId),
		SubcategoryId: ChoiceFrom(p.SubcategoryId),
		ImageUrl:      deref(p.ImageUrl),
		Images:        nonNil(append([]string(nil), p.Images...)),
		VideoUrl:      deref(p.VideoUrl),
		Videos:        nonNil(append([]string(nil), p.Videos...)),

		PhotobookFormat:            ChoiceFrom(p.PhotobookFormat),
		PhotobookSize:              ChoiceFrom(p.PhotobookSize),
		MinSpreads:                 IntNumber(DefaultMinSpreads),
		AdditionalSpreadPrice:      NullDecimalNumber(p.AdditionalSpreadPrice),
		AdditionalSpreadCurrencyId: deref(p.AdditionalSpreadCurrencyId),

		PaperType:     ChoiceFrom(p.PaperType),
		CoverMaterial: ChoiceFrom(p.CoverMaterial),
		BindingType:   ChoiceFrom(p.BindingType),

		ProductionTime: IntNumber(DefaultProductionTime),
		ShippingTime:   IntNumber(DefaultShippingTime),
		Weight:         NullDecimalNumber(p.Weight),

		AllowCustomization:       derefBool(p.AllowCustomization, true),
		MinCustomPrice:           NullDecimalNumber(p.MinCustomPrice),
		MinCustomPriceCurrencyId: deref(p.MinCustomPriceCurrencyId),
		IsReadyMade:              derefBool(p.IsReadyMade, false),

		CostPrice:      NullDecimalNumber(p.CostPrice),
		CostCurrencyId: deref(p.CostCurrencyId),

		IsActive:     derefBool(p.IsActive, true),
		SortOrder:    IntPtrNumber(p.SortOrder),
		SpecialPages: nonNil(append([]string(nil), p.SpecialPages...)),
	}
	// zero is not a meaningful spread count or lead time
	if p.MinSpreads != nil && *p.MinSpreads > 0 {
		d.MinSpreads = IntNumber(*p.MinSpreads)
	}
	if p.ProductionTime != nil && *p.ProductionTime > 0 {
		d.ProductionTime = IntNumber(*p.ProductionTime)
	}
	if p.ShippingTime != nil && *p.ShippingTime > 0 {
		d.ShippingTime = IntNumber(*p.ShippingTime)
	}
	return d
}

func (d *ProductDraft) Kind() entity.Kind { return entity.KindProduct }
func (d *ProductDraft) Mode() Mode        { return d.mode }

// SetDefaultCurrency changes the id used to fill empty currency fields.
func (d *ProductDraft) SetDefaultCurrency(id string) {
	d.defaultCurrencyId = id
}

func (d *ProductDraft) Lookup(path string) (Field, bool) {
	switch path {
	case "name":
		return LocalizedRef(&d.Name), true
	case "description":
		return LocalizedRef(&d.Description), true
	case "price":
		return numberRef(&d.Price), true
	case "currencyId":
		return stringRef(&d.CurrencyId), true
	case "originalPrice":
		return numberRef(&d.OriginalPrice), true
	case "discountPercentage":
		return numberRef(&d.DiscountPercentage), true
	case "inStock":
		return boolRef(&d.InStock), true
	case "stockQuantity":
		return numberRef(&d.StockQuantity), true
	case "isOnSale":
		return boolRef(&d.IsOnSale), true
	case "categoryId":
		return stringRef(&d.CategoryId), true
	case "subcategoryId":
		return choiceRef(&d.SubcategoryId), true
	case "imageUrl":
		return stringRef(&d.ImageUrl), true
	case "images":
		return listRef(&d.Images), true
	case "videoUrl":
		return stringRef(&d.VideoUrl), true
	case "videos":
		return listRef(&d.Videos), true
	case "photobookFormat":
		// the valid sizes depend on the format, so a new format clears the size
		return ScalarField(func(v string) error {
			next := ParseChoice(v)
			if next != d.PhotobookFormat {
				d.PhotobookSize = None()
			}
			d.PhotobookFormat = next
			return nil
		}), true
	case "photobookSize":
		return choiceRef(&d.PhotobookSize), true
	case "minSpreads":
		return numberRef(&d.MinSpreads), true
	case "additionalSpreadPrice":
		return numberRef(&d.AdditionalSpreadPrice), true
	case "additionalSpreadCurrencyId":
		return stringRef(&d.AdditionalSpreadCurrencyId), true
	case "paperType":
		return choiceRef(&d.PaperType), true
	case "coverMaterial":
		return choiceRef(&d.CoverMaterial), true
	case "bindingType":
		return choiceRef(&d.BindingType), true
	case "productionTime":
		return numberRef(&d.ProductionTime), true
	case "shippingTime":
		return numberRef(&d.ShippingTime), true
	case "weight":
		return numberRef(&d.Weight), true
	case "allowCustomization":
		return boolRef(&d.AllowCustomization), true
	case "minCustomPrice":
		return numberRef(&d.MinCustomPrice), true
	case "minCustomPriceCurrencyId":
		return stringRef(&d.MinCustomPriceCurrencyId), true
	case "isReadyMade":
		return boolRef(&d.IsReadyMade), true
	case "costPrice":
		return numberRef(&d.CostPrice), true
	case "costCurrencyId":
		return stringRef(&d.CostCurrencyId), true
	case "isActive":
		return boolRef(&d.IsActive), true
	case "sortOrder":
		return numberRef(&d.SortOrder), true
	case "specialPages":
		return listRef(&d.SpecialPages), true
	}
	return Field{}, false
}

func (d *ProductDraft) Validate() error {
	return ValidateStruct(d,
		validation.Field(&d.CategoryId, validation.Required.Error("select a category")),
		validation.Field(&d.Price, validation.By(validNumber)),
		validation.Field(&d.DiscountPercentage, validation.By(validPercentage)),
		validation.Field(&d.PhotobookSize, validation.By(func(interface{}) error {
			format, okF := d.PhotobookFormat.Value()
			size, okS := d.PhotobookSize.Value()
			if !okS {
				return nil
			}
			if !okF || !entity.ValidPhotobookSize(entity.PhotobookFormat(format), size) {
				return fmt.Errorf("size %s is not offered for format %s", size, d.PhotobookFormat.UIValue())
			}
			return nil
		})),
	)
}

// Submission normalizes the draft into a ProductPayload. Calling it twice
// yields the same payload.
func (d *ProductDraft) Submission(up Uploads) (any, error) {
	return d.ToSubmission(up), nil
}

func (d *ProductDraft) ToSubmission(up Uploads) entity.ProductPayload {
	currency := orDefault(d.CurrencyId, d.defaultCurrencyId)
	images := preferUploaded(up.Images, d.Images)
	videos := preferUploaded(up.Videos, d.Videos)

	imageUrl := optional(d.ImageUrl)
	if imageUrl == nil && len(images) > 0 {
		imageUrl = &images[0]
	}
	videoUrl := optional(d.VideoUrl)
	if videoUrl == nil && len(videos) > 0 {
		videoUrl = &videos[0]
	}

	return entity.ProductPayload{
		Name:        d.Name,
		Description: d.Description,

		Price:              d.Price.Decimal(decimal.Zero),
		CurrencyId:         currency,
		OriginalPrice:      d.OriginalPrice.NullDecimal(),
		DiscountPercentage: d.DiscountPercentage.Int(0),
		InStock:            d.InStock,
		StockQuantity:      d.StockQuantity.Int(0),
		IsOnSale:           d.IsOnSale,

		ImageUrl:      imageUrl,
		Images:        images,
		VideoUrl:      videoUrl,
		Videos:        videos,
		CategoryId:    d.CategoryId,
		SubcategoryId: d.SubcategoryId.Ptr(),

		PhotobookFormat:            d.PhotobookFormat.Ptr(),
		PhotobookSize:              d.PhotobookSize.Ptr(),
		MinSpreads:                 d.MinSpreads.Int(DefaultMinSpreads),
		AdditionalSpreadPrice:      d.AdditionalSpreadPrice.NullDecimal(),
		AdditionalSpreadCurrencyId: orDefault(d.AdditionalSpreadCurrencyId, currency),

		PaperType:     d.PaperType.Ptr(),
		CoverMaterial: d.CoverMaterial.Ptr(),
		BindingType:   d.BindingType.Ptr(),

		ProductionTime: d.ProductionTime.Int(DefaultProductionTime),
		ShippingTime:   d.ShippingTime.Int(DefaultShippingTime),
		Weight:         d.Weight.NullDecimal(),

		AllowCustomization:       d.AllowCustomization,
		MinCustomPrice:           d.MinCustomPrice.NullDecimal(),
		MinCustomPriceCurrencyId: orDefault(d.MinCustomPriceCurrencyId, currency),
		IsReadyMade:              d.IsReadyMade,

		CostPrice:      d.CostPrice.Decimal(decimal.Zero),
		CostCurrencyId: orDefault(d.CostCurrencyId, currency),

		IsActive:     d.IsActive,
		SortOrder:    d.SortOrder.Int(0),
		SpecialPages: nonNil(append([]string(nil), d.SpecialPages...)),
	}
}

func validNumber(value interface{}) error {
	n, _ := value.(Number)
	if !n.Valid() {
		return fmt.Errorf("%q is not a number", string(n))
	}
	return nil
}

func validPercentage(value interface{}) error {
	n, _ := value.(Number)
	if err := validNumber(n); err != nil {
		return err
	}
	if p := n.Int(0); p < 0 || p > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}
