package form

import (
	"encoding/json"
	"testing"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestProductFromPersisted_Defaults(t *testing.T) {
	d := ProductFromPersisted(entity.Product{
		Id:              "p-1",
		Name:            &entity.Localized{RU: "Альбом", EN: "Album"},
		Price:           decimal.RequireFromString("15000"),
		PhotobookFormat: strPtr("none"),
		MinSpreads:      intPtr(0),
	}, "amd")

	assert.True(t, d.Mode().IsEdit())
	assert.Equal(t, "p-1", d.Mode().ID())
	assert.Equal(t, entity.Localized{RU: "Альбом", EN: "Album"}, d.Name)
	assert.Equal(t, entity.NewLocalized(), d.Description)
	assert.False(t, d.PhotobookFormat.IsSet())
	assert.Equal(t, NoneSentinel, d.PhotobookFormat.UIValue())

	p := d.ToSubmission(Uploads{})
	assert.Equal(t, DefaultMinSpreads, p.MinSpreads)
	assert.Equal(t, DefaultProductionTime, p.ProductionTime)
	assert.Equal(t, DefaultShippingTime, p.ShippingTime)
	assert.True(t, p.InStock)
	assert.True(t, p.IsActive)
}

func TestProductFromPersisted_CanonicalPresent(t *testing.T) {
	d := ProductFromPersisted(entity.Product{Id: "p-2"}, "")

	for _, v := range []entity.Localized{d.Name, d.Description} {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		var raw map[string]*string
		require.NoError(t, json.Unmarshal(b, &raw))
		require.Contains(t, raw, "ru")
		assert.NotNil(t, raw["ru"])
	}
}

func TestProduct_SentinelNormalization(t *testing.T) {
	d := NewProductDraft("amd")
	b := Bind(d)
	require.NoError(t, b.OnFieldChange("photobookFormat", "none"))
	require.NoError(t, b.OnFieldChange("paperType", "none"))
	require.NoError(t, b.OnFieldChange("categoryId", "cat-1"))

	first := d.ToSubmission(Uploads{})
	second := d.ToSubmission(Uploads{})
	assert.Nil(t, first.PhotobookFormat)
	assert.Nil(t, first.PaperType)
	assert.Equal(t, first, second)

	body, err := json.Marshal(first)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"photobookFormat":null`)
	assert.NotContains(t, string(body), `"none"`)
}

func TestProduct_FormatChangeResetsSize(t *testing.T) {
	d := NewProductDraft("amd")
	b := Bind(d)
	require.NoError(t, b.OnFieldChange("photobookFormat", "album"))
	require.NoError(t, b.OnFieldChange("photobookSize", "30x20"))

	require.NoError(t, b.OnFieldChange("photobookFormat", "album"))
	size, ok := d.PhotobookSize.Value()
	assert.True(t, ok)
	assert.Equal(t, "30x20", size)

	require.NoError(t, b.OnFieldChange("photobookFormat", "square"))
	assert.False(t, d.PhotobookSize.IsSet())
	format, _ := d.PhotobookFormat.Value()
	assert.Equal(t, "square", format)
}

func TestProduct_ValidateRequiresCategory(t *testing.T) {
	d := NewProductDraft("amd")
	require.NoError(t, Bind(d).OnLocalizedFieldChange("name", entity.LocaleRU, "Книга"))

	err := d.Validate()
	require.Error(t, err)
	require.True(t, IsValidationError(err))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Select a category", ve.Violations["categoryId"])
}

func TestProduct_ValidateSizeForFormat(t *testing.T) {
	d := NewProductDraft("amd")
	d.CategoryId = "cat-1"
	d.PhotobookFormat = Some("book")
	d.PhotobookSize = Some("20x20")

	var ve *ValidationError
	require.ErrorAs(t, d.Validate(), &ve)
	assert.Contains(t, ve.Violations, "photobookSize")

	d.PhotobookSize = Some("20x30")
	assert.NoError(t, d.Validate())
}

func TestProduct_CurrencyAutoFill(t *testing.T) {
	d := NewProductDraft("cur-amd")
	d.CategoryId = "cat-1"
	d.CurrencyId = ""
	d.CostCurrencyId = ""

	p := d.ToSubmission(Uploads{})
	assert.Equal(t, "cur-amd", p.CurrencyId)
	assert.Equal(t, "cur-amd", p.CostCurrencyId)
	assert.Equal(t, "cur-amd", p.AdditionalSpreadCurrencyId)
}

func TestProduct_NumericCoercion(t *testing.T) {
	d := NewProductDraft("amd")
	b := Bind(d)
	require.NoError(t, b.OnFieldChange("price", "1250,50"))
	require.NoError(t, b.OnFieldChange("stockQuantity", "abc"))
	require.NoError(t, b.OnFieldChange("minSpreads", ""))
	require.NoError(t, b.OnFieldChange("weight", ""))

	p := d.ToSubmission(Uploads{})
	assert.True(t, decimal.RequireFromString("1250.5").Equal(p.Price))
	assert.Equal(t, 0, p.StockQuantity)
	assert.Equal(t, DefaultMinSpreads, p.MinSpreads)
	assert.False(t, p.Weight.Valid)

	var ve *ValidationError
	d.CategoryId = "cat-1"
	require.NoError(t, b.OnFieldChange("price", "12x"))
	require.ErrorAs(t, d.Validate(), &ve)
	assert.Contains(t, ve.Violations, "price")
}

func TestProduct_UploadsReplaceOnlyWhenPresent(t *testing.T) {
	d := ProductFromPersisted(entity.Product{
		Id:       "p-3",
		ImageUrl: strPtr("/objects/uploads/old.jpg"),
		Images:   []string{"/objects/uploads/old.jpg"},
		Videos:   []string{"/objects/uploads/old.mp4"},
	}, "amd")

	p := d.ToSubmission(Uploads{})
	assert.Equal(t, []string{"/objects/uploads/old.jpg"}, p.Images)
	assert.Equal(t, []string{"/objects/uploads/old.mp4"}, p.Videos)

	p = d.ToSubmission(Uploads{Images: []string{"/objects/uploads/a.jpg", "/objects/uploads/b.jpg"}})
	assert.Equal(t, []string{"/objects/uploads/a.jpg", "/objects/uploads/b.jpg"}, p.Images)
	assert.Equal(t, []string{"/objects/uploads/old.mp4"}, p.Videos)
	assert.Equal(t, []string{"/objects/uploads/old.jpg"}, d.Images)
}

func TestProduct_LocalizedPreservedAsIs(t *testing.T) {
	d := NewProductDraft("amd")
	require.NoError(t, Bind(d).OnLocalizedFieldChange("name", entity.LocaleEN, "  Book  "))

	p := d.ToSubmission(Uploads{})
	assert.Equal(t, entity.Localized{EN: "  Book  "}, p.Name)
}
