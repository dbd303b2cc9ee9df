package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BannerType string

const (
	BannerHeader     BannerType = "header"
	BannerFullscreen BannerType = "fullscreen"
	BannerSidebar    BannerType = "sidebar"
	BannerInline     BannerType = "inline"
	BannerPopup      BannerType = "popup"
)

// PublicationStatus is shared by banners and special offers.
type PublicationStatus string

const (
	StatusDraft   PublicationStatus = "draft"
	StatusActive  PublicationStatus = "active"
	StatusPaused  PublicationStatus = "paused"
	StatusExpired PublicationStatus = "expired"
)

// Banner is a promotional banner as persisted by the storefront.
type Banner struct {
	Id              string             `json:"id"`
	Name            string             `json:"name"`
	Type            BannerType         `json:"type"`
	Title           *Localized         `json:"title"`
	Content         *Localized         `json:"content"`
	ImageUrl        *string            `json:"imageUrl"`
	ButtonText      *Localized         `json:"buttonText"`
	ButtonLink      *string            `json:"buttonLink"`
	BackgroundColor *string            `json:"backgroundColor"`
	TextColor       *string            `json:"textColor"`
	Position        *string            `json:"position"`
	Priority        *int               `json:"priority"`
	IsActive        *bool              `json:"isActive"`
	Status          *PublicationStatus `json:"status"`
	StartDate       *time.Time         `json:"startDate"`
	EndDate         *time.Time         `json:"endDate"`
	TargetPages     []string           `json:"targetPages"`
	TargetUsers     *string            `json:"targetUsers"`
	MaxImpressions  *int               `json:"maxImpressions"`
	MaxClicks       *int               `json:"maxClicks"`
	CreatedAt       *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time         `json:"updatedAt,omitempty"`
}

// BannerPayload is the normalized body of POST/PUT /api/banners.
type BannerPayload struct {
	Name            string            `json:"name"`
	Type            BannerType        `json:"type"`
	Title           Localized         `json:"title"`
	Content         Localized         `json:"content"`
	ImageUrl        *string           `json:"imageUrl"`
	ButtonText      Localized         `json:"buttonText"`
	ButtonLink      *string           `json:"buttonLink"`
	BackgroundColor string            `json:"backgroundColor"`
	TextColor       string            `json:"textColor"`
	Position        string            `json:"position"`
	Priority        int               `json:"priority"`
	IsActive        bool              `json:"isActive"`
	Status          PublicationStatus `json:"status"`
	StartDate       *time.Time        `json:"startDate"`
	EndDate         *time.Time        `json:"endDate"`
	TargetPages     []string          `json:"targetPages"`
	TargetUsers     string            `json:"targetUsers"`
	MaxImpressions  *int              `json:"maxImpressions"`
	MaxClicks       *int              `json:"maxClicks"`
}

type OfferType string

const (
	OfferFlashSale    OfferType = "flash_sale"
	OfferLimitedTime  OfferType = "limited_time"
	OfferPersonalized OfferType = "personalized"
	OfferBundle       OfferType = "bundle"
	OfferFreeShipping OfferType = "free_shipping"
)

type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixed        DiscountType = "fixed"
	DiscountFreeShipping DiscountType = "free_shipping"
)

// SpecialOffer is a time-boxed discount campaign as persisted by the storefront.
type SpecialOffer struct {
	Id                 string              `json:"id"`
	Name               string              `json:"name"`
	Type               OfferType           `json:"type"`
	Title              *Localized          `json:"title"`
	Description        *Localized          `json:"description"`
	ImageUrl           *string             `json:"imageUrl"`
	DiscountType       *DiscountType       `json:"discountType"`
	DiscountValue      decimal.NullDecimal `json:"discountValue"`
	CurrencyId         *string             `json:"currencyId"`
	MinOrderAmount     decimal.NullDecimal `json:"minOrderAmount"`
	MinOrderCurrencyId *string             `json:"minOrderCurrencyId"`
	ButtonText         *Localized          `json:"buttonText"`
	ButtonLink         *string             `json:"buttonLink"`
	BackgroundColor    *string             `json:"backgroundColor"`
	TextColor          *string             `json:"textColor"`
	Priority           *int                `json:"priority"`
	IsActive           *bool               `json:"isActive"`
	Status             *PublicationStatus  `json:"status"`
	StartDate          *time.Time          `json:"startDate"`
	EndDate            *time.Time          `json:"endDate"`
	TargetProducts     []string            `json:"targetProducts"`
	TargetCategories   []string            `json:"targetCategories"`
	TargetUsers        *string             `json:"targetUsers"`
	MaxUses            *int                `json:"maxUses"`
	CurrentUses        *int                `json:"currentUses"`
}

// SpecialOfferPayload is the normalized body of POST/PUT /api/special-offers.
type SpecialOfferPayload struct {
	Name               string              `json:"name"`
	Type               OfferType           `json:"type"`
	Title              Localized           `json:"title"`
	Description        Localized           `json:"description"`
	ImageUrl           *string             `json:"imageUrl"`
	DiscountType       DiscountType        `json:"discountType"`
	DiscountValue      decimal.Decimal     `json:"discountValue"`
	CurrencyId         string              `json:"currencyId"`
	MinOrderAmount     decimal.NullDecimal `json:"minOrderAmount"`
	MinOrderCurrencyId string              `json:"minOrderCurrencyId"`
	ButtonText         Localized           `json:"buttonText"`
	ButtonLink         *string             `json:"buttonLink"`
	BackgroundColor    string              `json:"backgroundColor"`
	TextColor          string              `json:"textColor"`
	Priority           int                 `json:"priority"`
	IsActive           bool                `json:"isActive"`
	Status             PublicationStatus   `json:"status"`
	StartDate          *time.Time          `json:"startDate"`
	EndDate            *time.Time          `json:"endDate"`
	TargetProducts     []string            `json:"targetProducts"`
	TargetCategories   []string            `json:"targetCategories"`
	TargetUsers        string              `json:"targetUsers"`
	MaxUses            *int                `json:"maxUses"`
	CurrentUses        int                 `json:"currentUses"`
}
