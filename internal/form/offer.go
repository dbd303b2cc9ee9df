package form

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/shopspring/decimal"
)

var offerTypes = []interface{}{
	entity.OfferFlashSale,
	entity.OfferLimitedTime,
	entity.OfferPersonalized,
	entity.OfferBundle,
	entity.OfferFreeShipping,
}

var discountTypes = []interface{}{
	entity.DiscountPercentage,
	entity.DiscountFixed,
	entity.DiscountFreeShipping,
}

type OfferDraft struct {
	mode              Mode
	defaultCurrencyId string

	Name               string                   `json:"name"`
	Type               entity.OfferType         `json:"type"`
	Title              entity.Localized         `json:"title"`
	Description        entity.Localized         `json:"description"`
	ImageUrl           string                   `json:"imageUrl"`
	DiscountType       entity.DiscountType      `json:"discountType"`
	DiscountValue      Number                   `json:"discountValue"`
	CurrencyId         string                   `json:"currencyId"`
	MinOrderAmount     Number                   `json:"minOrderAmount"`
	MinOrderCurrencyId string                   `json:"minOrderCurrencyId"`
	ButtonText         entity.Localized         `json:"buttonText"`
	ButtonLink         string                   `json:"buttonLink"`
	BackgroundColor    string                   `json:"backgroundColor"`
	TextColor          string                   `json:"textColor"`
	Priority           Number                   `json:"priority"`
	IsActive           bool                     `json:"isActive"`
	Status             entity.PublicationStatus `json:"status"`
	StartDate          string                   `json:"startDate"`
	EndDate            string                   `json:"endDate"`
	TargetProducts     []string                 `json:"targetProducts"`
	TargetCategories   []string                 `json:"targetCategories"`
	TargetUsers        string                   `json:"targetUsers"`
	MaxUses            Number                   `json:"maxUses"`
	CurrentUses        int                      `json:"currentUses"`
}

func NewOfferDraft(defaultCurrencyId string) *OfferDraft {
	return &OfferDraft{
		defaultCurrencyId:  defaultCurrencyId,
		Type:               entity.OfferFlashSale,
		Title:              entity.NewLocalized(),
		Description:        entity.NewLocalized(),
		DiscountType:       entity.DiscountPercentage,
		DiscountValue:      "0",
		CurrencyId:         defaultCurrencyId,
		MinOrderCurrencyId: defaultCurrencyId,
		ButtonText:         entity.NewLocalized(),
		BackgroundColor:    defaultBackgroundColor,
		TextColor:          defaultTextColor,
		Priority:           "0",
		Status:             entity.StatusDraft,
		TargetProducts:     []string{},
		TargetCategories:   []string{},
		TargetUsers:        defaultTargetUsers,
	}
}

func OfferFromPersisted(o entity.SpecialOffer, defaultCurrencyId string) *OfferDraft {
	d := &OfferDraft{
		mode:               EditMode(o.Id),
		defaultCurrencyId:  defaultCurrencyId,
		Name:               o.Name,
		Type:               o.Type,
		Title:              entity.EnsureCanonical(o.Title),
		Description:        entity.EnsureCanonical(o.Description),
		ImageUrl:           deref(o.ImageUrl),
		DiscountType:       entity.DiscountPercentage,
		DiscountValue:      NullDecimalNumber(o.DiscountValue),
		CurrencyId:         deref(o.CurrencyId),
		MinOrderAmount:     NullDecimalNumber(o.MinOrderAmount),
		MinOrderCurrencyId: deref(o.MinOrderCurrencyId),
		ButtonText:         entity.EnsureCanonical(o.ButtonText),
		ButtonLink:         deref(o.ButtonLink),
		BackgroundColor:    orDefault(deref(o.BackgroundColor), defaultBackgroundColor),
		TextColor:          orDefault(deref(o.TextColor), defaultTextColor),
		Priority:           IntNumber(0),
		IsActive:           derefBool(o.IsActive, false),
		Status:             entity.StatusDraft,
		StartDate:          formatDateInput(o.StartDate),
		EndDate:            formatDateInput(o.EndDate),
		TargetProducts:     nonNil(append([]string(nil), o.TargetProducts...)),
		TargetCategories:   nonNil(append([]string(nil), o.TargetCategories...)),
		TargetUsers:        orDefault(deref(o.TargetUsers), defaultTargetUsers),
		MaxUses:            IntPtrNumber(o.MaxUses),
	}
	if d.Type == "" {
		d.Type = entity.OfferFlashSale
	}
	if o.DiscountType != nil && *o.DiscountType != "" {
		d.DiscountType = *o.DiscountType
	}
	if o.Priority != nil {
		d.Priority = IntNumber(*o.Priority)
	}
	if o.Status != nil && *o.Status != "" {
		d.Status = *o.Status
	}
	if o.CurrentUses != nil {
		d.CurrentUses = *o.CurrentUses
	}
	return d
}

func (d *OfferDraft) Kind() entity.Kind { return entity.KindSpecialOffer }
func (d *OfferDraft) Mode() Mode        { return d.mode }

func (d *OfferDraft) Lookup(path string) (Field, bool) {
	switch path {
	case "name":
		return stringRef(&d.Name), true
	case "type":
		return ScalarField(func(v string) error {
			d.Type = entity.OfferType(v)
			return nil
		}), true
	case "title":
		return LocalizedRef(&d.Title), true
	case "description":
		return LocalizedRef(&d.Description), true
	case "imageUrl":
		return stringRef(&d.ImageUrl), true
	case "discountType":
		return ScalarField(func(v string) error {
			d.DiscountType = entity.DiscountType(v)
			return nil
		}), true
	case "discountValue":
		return numberRef(&d.DiscountValue), true
	case "currencyId":
		return stringRef(&d.CurrencyId), true
	case "minOrderAmount":
		return numberRef(&d.MinOrderAmount), true
	case "minOrderCurrencyId":
		return stringRef(&d.MinOrderCurrencyId), true
	case "buttonText":
		return LocalizedRef(&d.ButtonText), true
	case "buttonLink":
		return stringRef(&d.ButtonLink), true
	case "backgroundColor":
		return stringRef(&d.BackgroundColor), true
	case "textColor":
		return stringRef(&d.TextColor), true
	case "priority":
		return numberRef(&d.Priority), true
	case "isActive":
		return boolRef(&d.IsActive), true
	case "status":
		return ScalarField(func(v string) error {
			d.Status = entity.PublicationStatus(v)
			return nil
		}), true
	case "startDate":
		return stringRef(&d.StartDate), true
	case "endDate":
		return stringRef(&d.EndDate), true
	case "targetProducts":
		return listRef(&d.TargetProducts), true
	case "targetCategories":
		return listRef(&d.TargetCategories), true
	case "targetUsers":
		return stringRef(&d.TargetUsers), true
	case "maxUses":
		return numberRef(&d.MaxUses), true
	}
	return Field{}, false
}

func (d *OfferDraft) Validate() error {
	return ValidateStruct(d,
		validation.Field(&d.Name, validation.Required.Error("enter an offer name")),
		validation.Field(&d.Type, validation.Required, validation.In(offerTypes...)),
		validation.Field(&d.DiscountType, validation.Required, validation.In(discountTypes...)),
		validation.Field(&d.DiscountValue, validation.By(validNumber), validation.By(d.discountInRange)),
		validation.Field(&d.MinOrderAmount, validation.By(validNumber)),
		validation.Field(&d.Status, validation.In(publicationStatuses...)),
		validation.Field(&d.ButtonLink, isLink),
		validation.Field(&d.BackgroundColor, isHexColor),
		validation.Field(&d.TextColor, isHexColor),
		validation.Field(&d.Priority, validation.By(validNumber)),
		validation.Field(&d.MaxUses, validation.By(validNumber)),
		validation.Field(&d.StartDate, validation.By(validDate)),
		validation.Field(&d.EndDate, validation.By(validDate), validation.By(func(interface{}) error {
			return checkPeriod(d.StartDate, d.EndDate)
		})),
	)
}

var hundred = decimal.NewFromInt(100)

func (d *OfferDraft) discountInRange(interface{}) error {
	v := d.DiscountValue.Decimal(decimal.Zero)
	if v.IsNegative() {
		return errors.New("must not be negative")
	}
	if d.DiscountType == entity.DiscountPercentage && v.GreaterThan(hundred) {
		return errors.New("a percentage discount cannot exceed 100")
	}
	return nil
}

func (d *OfferDraft) Submission(up Uploads) (any, error) {
	return d.ToSubmission(up)
}

func (d *OfferDraft) ToSubmission(up Uploads) (entity.SpecialOfferPayload, error) {
	start, err := parseDateInput(d.StartDate)
	if err != nil {
		return entity.SpecialOfferPayload{}, err
	}
	end, err := parseDateInput(d.EndDate)
	if err != nil {
		return entity.SpecialOfferPayload{}, err
	}
	status := d.Status
	if d.IsActive {
		status = entity.StatusActive
	}
	currency := orDefault(d.CurrencyId, d.defaultCurrencyId)
	return entity.SpecialOfferPayload{
		Name:               d.Name,
		Type:               d.Type,
		Title:              d.Title,
		Description:        d.Description,
		ImageUrl:           uploadedOr(up.Images, d.ImageUrl),
		DiscountType:       d.DiscountType,
		DiscountValue:      d.DiscountValue.Decimal(decimal.Zero),
		CurrencyId:         currency,
		MinOrderAmount:     d.MinOrderAmount.NullDecimal(),
		MinOrderCurrencyId: orDefault(d.MinOrderCurrencyId, currency),
		ButtonText:         d.ButtonText,
		ButtonLink:         optional(d.ButtonLink),
		BackgroundColor:    orDefault(d.BackgroundColor, defaultBackgroundColor),
		TextColor:          orDefault(d.TextColor, defaultTextColor),
		Priority:           d.Priority.Int(0),
		IsActive:           d.IsActive,
		Status:             status,
		StartDate:          start,
		EndDate:            end,
		TargetProducts:     nonNil(append([]string(nil), d.TargetProducts...)),
		TargetCategories:   nonNil(append([]string(nil), d.TargetCategories...)),
		TargetUsers:        orDefault(d.TargetUsers, defaultTargetUsers),
		MaxUses:            d.MaxUses.OptionalInt(),
		CurrentUses:        d.CurrentUses,
	}, nil
}
