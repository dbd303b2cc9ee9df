package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the storefront content languages.
type Locale string

const (
	LocaleRU Locale = "ru" // canonical, always present
	LocaleHY Locale = "hy"
	LocaleEN Locale = "en"

	CanonicalLocale = LocaleRU
)

// Locales lists every supported locale in display order.
var Locales = []Locale{LocaleRU, LocaleHY, LocaleEN}

func (l Locale) Valid() bool {
	switch l {
	case LocaleRU, LocaleHY, LocaleEN:
		return true
	}
	return false
}

// ParseLocale maps a BCP 47 tag (ru, hy-AM, en_US, RU) onto a supported locale.
func ParseLocale(s string) (Locale, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	if err != nil {
		return "", fmt.Errorf("parse locale %q: %w", s, err)
	}
	base, _ := tag.Base()
	l := Locale(base.String())
	if !l.Valid() {
		return "", fmt.Errorf("unsupported locale %q", s)
	}
	return l, nil
}

// Localized holds parallel translations of one user-visible string.
// The zero value is the empty canonical form {ru:"", hy:"", en:""}.
type Localized struct {
	RU string
	HY string
	EN string
}

// NewLocalized returns the empty canonical form.
func NewLocalized() Localized {
	return Localized{}
}

// Get returns the translation for the locale, or "" when absent.
func (v Localized) Get(l Locale) string {
	switch l {
	case LocaleRU:
		return v.RU
	case LocaleHY:
		return v.HY
	case LocaleEN:
		return v.EN
	}
	return ""
}

// Set returns a copy of v with the locale's entry replaced. Other entries are
// kept byte-for-byte. An unsupported locale leaves the value unchanged.
func (v Localized) Set(l Locale, text string) Localized {
	switch l {
	case LocaleRU:
		v.RU = text
	case LocaleHY:
		v.HY = text
	case LocaleEN:
		v.EN = text
	}
	return v
}

// Resolve is the read-time view: an empty translation falls back to the
// canonical text. Get never falls back.
func (v Localized) Resolve(l Locale) string {
	if s := v.Get(l); s != "" {
		return s
	}
	return v.RU
}

// IsEmpty reports whether every translation is empty.
func (v Localized) IsEmpty() bool {
	return v.RU == "" && v.HY == "" && v.EN == ""
}

// EnsureCanonical turns a possibly missing value into one with the canonical
// key present.
func EnsureCanonical(v *Localized) Localized {
	if v == nil {
		return NewLocalized()
	}
	return *v
}

// Ptr returns a pointer to a copy of v, handy for nullable record fields.
func (v Localized) Ptr() *Localized {
	return &v
}

func (v Localized) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		string(LocaleRU): v.RU,
		string(LocaleHY): v.HY,
		string(LocaleEN): v.EN,
	})
}

// UnmarshalJSON accepts null, partial objects and unknown keys; missing
// locales decode to "".
func (v *Localized) UnmarshalJSON(b []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("localized value: %w", err)
	}
	*v = Localized{}
	for k, s := range raw {
		if s == nil {
			continue
		}
		*v = v.Set(Locale(k), *s)
	}
	return nil
}
