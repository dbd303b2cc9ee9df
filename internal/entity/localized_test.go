package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalized_SetKeepsOtherLocales(t *testing.T) {
	values := []Localized{
		{},
		{RU: "Книга", HY: "Գիրք", EN: "Book"},
		{RU: "  padded ", HY: "", EN: "\ttab"},
	}
	texts := []string{"", "new", "  spaced  ", "Նոր"}

	for _, v := range values {
		for _, a := range Locales {
			for _, b := range Locales {
				if a == b {
					continue
				}
				for _, s := range texts {
					got := v.Set(a, s)
					assert.Equal(t, v.Get(b), got.Get(b), "set %s changed %s", a, b)
					assert.Equal(t, s, got.Get(a))
				}
			}
		}
	}
}

func TestLocalized_SetUnknownLocale(t *testing.T) {
	v := Localized{RU: "a", HY: "b", EN: "c"}
	assert.Equal(t, v, v.Set(Locale("de"), "x"))
	assert.Equal(t, "", v.Get(Locale("de")))
}

func TestLocalized_JSON(t *testing.T) {
	b, err := json.Marshal(Localized{RU: "Книга"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ru":"Книга","hy":"","en":""}`, string(b))

	var v Localized
	require.NoError(t, json.Unmarshal([]byte(`{"ru":"Книга","de":"Buch"}`), &v))
	assert.Equal(t, Localized{RU: "Книга"}, v)

	var p struct {
		Title *Localized `json:"title"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"title":null}`), &p))
	assert.Equal(t, NewLocalized(), EnsureCanonical(p.Title))
}

func TestLocalized_Resolve(t *testing.T) {
	v := Localized{RU: "Книга", EN: "Book"}
	assert.Equal(t, "Book", v.Resolve(LocaleEN))
	assert.Equal(t, "Книга", v.Resolve(LocaleHY))
	assert.Equal(t, "", v.Get(LocaleHY))
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in      string
		want    Locale
		wantErr bool
	}{
		{in: "ru", want: LocaleRU},
		{in: "hy-AM", want: LocaleHY},
		{in: "en_US", want: LocaleEN},
		{in: "EN", want: LocaleEN},
		{in: "de", wantErr: true},
		{in: "not a tag", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocale(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
