package form

import (
	"encoding/json"
	"testing"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinding_LocalizedChangeKeepsSiblings(t *testing.T) {
	d := NewProductDraft("amd")
	d.Name = entity.Localized{RU: "Книга", HY: "Գիրք", EN: "Book"}
	d.Description = entity.Localized{RU: "описание"}
	d.CategoryId = "cat-1"

	require.NoError(t, Bind(d).OnLocalizedFieldChange("name", entity.LocaleEN, "Photobook"))

	assert.Equal(t, entity.Localized{RU: "Книга", HY: "Գիրք", EN: "Photobook"}, d.Name)
	assert.Equal(t, entity.Localized{RU: "описание"}, d.Description)
	assert.Equal(t, "cat-1", d.CategoryId)
}

func TestBinding_Errors(t *testing.T) {
	b := Bind(NewProductDraft("amd"))

	assert.ErrorIs(t, b.OnFieldChange("nope", "x"), ErrUnknownField)
	assert.ErrorIs(t, b.OnFieldChange("name", "x"), ErrLocalizedOnly)
	assert.ErrorIs(t, b.OnLocalizedFieldChange("price", entity.LocaleRU, "1"), ErrNotLocalized)
	assert.ErrorIs(t, b.OnLocalizedFieldChange("name", entity.Locale("de"), "x"), ErrUnknownLocale)
	assert.Error(t, b.OnFieldChange("inStock", "maybe"))

	_, err := b.Value("price")
	assert.ErrorIs(t, err, ErrNotLocalized)
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in        string
		localized bool
		want      Assignment
		wantErr   bool
	}{
		{in: "price=100", want: Assignment{Path: "price", Value: "100"}},
		{in: "name.hy=Գիրք", localized: true, want: Assignment{Path: "name", Locale: entity.LocaleHY, Value: "Գիրք"}},
		{in: "categories.0.name.en=Albums", localized: true, want: Assignment{Path: "categories.0.name", Locale: entity.LocaleEN, Value: "Albums"}},
		{in: "link=/a?b=c", want: Assignment{Path: "link", Value: "/a?b=c"}},
		{in: "description.en=", localized: true, want: Assignment{Path: "description", Locale: entity.LocaleEN, Value: ""}},
		{in: "price", wantErr: true},
		{in: "=1", wantErr: true},
		{in: "name=Book", localized: true, wantErr: true},
		{in: "name.de=Buch", localized: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAssignment(tt.in, tt.localized)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinding_Apply(t *testing.T) {
	d := NewPageDraft()
	err := Bind(d).Apply(
		Assignment{Path: "slug", Value: "gifts"},
		Assignment{Path: "title", Locale: entity.LocaleRU, Value: "Подарки"},
		Assignment{Path: "missing", Value: "x"},
		Assignment{Path: "sortOrder", Value: "4"},
	)
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, "gifts", d.Slug)
	assert.Equal(t, "Подарки", d.Title.RU)
	assert.Equal(t, Number("0"), d.SortOrder)
}

func TestChoice(t *testing.T) {
	assert.False(t, ParseChoice("none").IsSet())
	assert.False(t, ParseChoice(" None ").IsSet())
	assert.False(t, ParseChoice("").IsSet())
	assert.False(t, ChoiceFrom(nil).IsSet())
	assert.Equal(t, "glossy", ParseChoice("glossy").UIValue())

	var c struct {
		A Choice `json:"a"`
		B Choice `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"none","b":"matte"}`), &c))
	assert.Nil(t, c.A.Ptr())
	assert.Equal(t, "matte", *c.B.Ptr())

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":"matte"}`, string(out))
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in      Number
		def     int
		wantInt int
		valid   bool
	}{
		{in: "42", def: 1, wantInt: 42, valid: true},
		{in: " 7 ", def: 1, wantInt: 7, valid: true},
		{in: "3.9", def: 1, wantInt: 3, valid: true},
		{in: "", def: 10, wantInt: 10, valid: true},
		{in: "NaN", def: 5, wantInt: 5, valid: false},
		{in: "ten", def: 5, wantInt: 5, valid: false},
		{in: "1e30", def: 5, wantInt: 5, valid: true},
		{in: "-3000000000", def: 0, wantInt: 0, valid: true},
		{in: "2147483647", def: 0, wantInt: 2147483647, valid: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.wantInt, tt.in.Int(tt.def))
			assert.Equal(t, tt.valid, tt.in.Valid())
		})
	}

	assert.Nil(t, Number("").OptionalInt())
	assert.Nil(t, Number("1e30").OptionalInt())
	assert.False(t, Number("x").NullDecimal().Valid)
	assert.True(t, decimal.RequireFromString("9.99").Equal(Number("9,99").Decimal(decimal.Zero)))

	var n struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":12.5,"b":"3","c":null}`), &n))
	assert.Equal(t, Number("12.5"), n.A)
	assert.Equal(t, Number("3"), n.B)
	assert.True(t, n.C.IsBlank())
}
