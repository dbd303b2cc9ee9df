package form

import (
	"testing"
	"time"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanner_ActivatingRaisesStatus(t *testing.T) {
	inactive := false
	draft := entity.StatusDraft
	d := BannerFromPersisted(entity.Banner{
		Id:       "b-1",
		Name:     "Spring",
		Type:     entity.BannerHeader,
		IsActive: &inactive,
		Status:   &draft,
	})
	require.NoError(t, Bind(d).OnFieldChange("isActive", "true"))
	require.NoError(t, d.Validate())

	p, err := d.ToSubmission(Uploads{})
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Equal(t, entity.StatusActive, p.Status)
	assert.Equal(t, entity.StatusDraft, d.Status)
}

func TestBanner_InactiveKeepsStatus(t *testing.T) {
	d := NewBannerDraft()
	d.Name = "Autumn"
	d.Status = entity.StatusPaused

	p, err := d.ToSubmission(Uploads{})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaused, p.Status)
}

func TestNewBannerDraft_Defaults(t *testing.T) {
	p, err := NewBannerDraft().ToSubmission(Uploads{})
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", p.BackgroundColor)
	assert.Equal(t, "#000000", p.TextColor)
	assert.Equal(t, "top", p.Position)
	assert.Equal(t, "all", p.TargetUsers)
	assert.Equal(t, entity.StatusDraft, p.Status)
	assert.Equal(t, 0, p.Priority)
	assert.Nil(t, p.MaxClicks)
	assert.Equal(t, entity.NewLocalized(), p.Title)
}

func TestBanner_Dates(t *testing.T) {
	d := NewBannerDraft()
	d.Name = "Sale"
	b := Bind(d)
	require.NoError(t, b.OnFieldChange("startDate", "2026-11-01T10:00"))
	require.NoError(t, b.OnFieldChange("endDate", "2026-10-01T10:00"))

	var ve *ValidationError
	require.ErrorAs(t, d.Validate(), &ve)
	assert.Contains(t, ve.Violations, "endDate")

	require.NoError(t, b.OnFieldChange("endDate", "2026-11-30T23:59:00Z"))
	require.NoError(t, d.Validate())
	p, err := d.ToSubmission(Uploads{})
	require.NoError(t, err)
	require.NotNil(t, p.StartDate)
	assert.Equal(t, time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC), *p.StartDate)
}

func TestBanner_ValidateColorsAndLink(t *testing.T) {
	d := NewBannerDraft()
	d.Name = "Promo"
	d.BackgroundColor = "white"
	d.ButtonLink = "not a link"

	var ve *ValidationError
	require.ErrorAs(t, d.Validate(), &ve)
	assert.Contains(t, ve.Violations, "backgroundColor")
	assert.Contains(t, ve.Violations, "buttonLink")

	d.BackgroundColor = "#fafafa"
	d.ButtonLink = "/catalog"
	assert.NoError(t, d.Validate())
}

func TestBanner_UploadedImage(t *testing.T) {
	d := NewBannerDraft()
	d.ImageUrl = "/objects/uploads/old.png"

	p, err := d.ToSubmission(Uploads{Images: []string{"/objects/uploads/new.png"}})
	require.NoError(t, err)
	require.NotNil(t, p.ImageUrl)
	assert.Equal(t, "/objects/uploads/new.png", *p.ImageUrl)
}

func TestOffer_PercentageCapped(t *testing.T) {
	d := NewOfferDraft("amd")
	d.Name = "Black Friday"
	require.NoError(t, Bind(d).OnFieldChange("discountValue", "150"))

	var ve *ValidationError
	require.ErrorAs(t, d.Validate(), &ve)
	assert.Contains(t, ve.Violations, "discountValue")

	require.NoError(t, Bind(d).OnFieldChange("discountType", string(entity.DiscountFixed)))
	assert.NoError(t, d.Validate())
}

func TestOffer_Submission(t *testing.T) {
	d := NewOfferDraft("amd")
	d.Name = "Flash"
	d.CurrencyId = ""
	d.IsActive = true
	require.NoError(t, Bind(d).OnLocalizedFieldChange("title", entity.LocaleHY, "Զեղչ"))

	p, err := d.ToSubmission(Uploads{})
	require.NoError(t, err)
	assert.Equal(t, entity.OfferFlashSale, p.Type)
	assert.Equal(t, entity.DiscountPercentage, p.DiscountType)
	assert.Equal(t, "amd", p.CurrencyId)
	assert.Equal(t, "amd", p.MinOrderCurrencyId)
	assert.Equal(t, entity.StatusActive, p.Status)
	assert.Equal(t, entity.Localized{HY: "Զեղչ"}, p.Title)
	assert.Nil(t, p.MaxUses)
}

func TestPage_ValidateSlug(t *testing.T) {
	d := NewPageDraft()
	b := Bind(d)

	var ve *ValidationError
	require.ErrorAs(t, d.Validate(), &ve)
	assert.Contains(t, ve.Violations, "slug")

	require.NoError(t, b.OnFieldChange("slug", "About Us"))
	require.ErrorAs(t, d.Validate(), &ve)

	require.NoError(t, b.OnFieldChange("slug", "about-us"))
	require.NoError(t, b.OnFieldChange("isPublished", "on"))
	require.NoError(t, d.Validate())
	p := d.ToSubmission()
	assert.Equal(t, "about-us", p.Slug)
	assert.True(t, p.IsPublished)
}
