package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrNotLocalized  = errors.New("field is not localized")
	ErrLocalizedOnly = errors.New("field is localized, a locale is required")
	ErrUnknownLocale = errors.New("unknown locale")
)

// Field is one editable slot of a draft. Scalar fields carry Set; localized
// fields carry Get/Put over the whole Localized value.
type Field struct {
	Set func(value string) error
	Get func() entity.Localized
	Put func(entity.Localized)
}

func (f Field) localized() bool {
	return f.Get != nil && f.Put != nil
}

// ScalarField wraps a setter.
func ScalarField(set func(string) error) Field {
	return Field{Set: set}
}

// LocalizedRef binds a Localized stored directly in the draft.
func LocalizedRef(v *entity.Localized) Field {
	return Field{
		Get: func() entity.Localized { return *v },
		Put: func(n entity.Localized) { *v = n },
	}
}

func stringRef(p *string) Field {
	return ScalarField(func(v string) error {
		*p = v
		return nil
	})
}

func numberRef(p *Number) Field {
	return ScalarField(func(v string) error {
		*p = Number(v)
		return nil
	})
}

func boolRef(p *bool) Field {
	return ScalarField(func(v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		*p = b
		return nil
	})
}

func choiceRef(p *Choice) Field {
	return ScalarField(func(v string) error {
		*p = ParseChoice(v)
		return nil
	})
}

func listRef(p *[]string) Field {
	return ScalarField(func(v string) error {
		*p = ParseList(v)
		return nil
	})
}

// Editable is implemented by every draft.
type Editable interface {
	Lookup(path string) (Field, bool)
}

// Binding routes input changes into a draft without touching sibling
// fields or locales. It performs no I/O.
type Binding struct {
	draft Editable
}

func Bind(d Editable) *Binding {
	return &Binding{draft: d}
}

// OnFieldChange replaces the non-localized field at path.
func (b *Binding) OnFieldChange(path, value string) error {
	f, ok := b.draft.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	if f.Set == nil {
		return fmt.Errorf("%w: %s", ErrLocalizedOnly, path)
	}
	if err := f.Set(value); err != nil {
		return fmt.Errorf("field %s: %w", path, err)
	}
	return nil
}

// OnLocalizedFieldChange replaces one locale's text of the localized field
// at path.
func (b *Binding) OnLocalizedFieldChange(path string, l entity.Locale, text string) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLocale, l)
	}
	f, ok := b.draft.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	if !f.localized() {
		return fmt.Errorf("%w: %s", ErrNotLocalized, path)
	}
	f.Put(f.Get().Set(l, text))
	return nil
}

// Value reads a localized field, mainly for display.
func (b *Binding) Value(path string) (entity.Localized, error) {
	f, ok := b.draft.Lookup(path)
	if !ok {
		return entity.Localized{}, fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	if !f.localized() {
		return entity.Localized{}, fmt.Errorf("%w: %s", ErrNotLocalized, path)
	}
	return f.Get(), nil
}

// Assignment is a parsed "path=value" or "path.locale=text" edit.
type Assignment struct {
	Path   string
	Locale entity.Locale // empty for scalar edits
	Value  string
}

// ParseAssignment splits "path=value". When localized is set the last path
// segment must be a locale ("name.hy=...").
func ParseAssignment(s string, localized bool) (Assignment, error) {
	path, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(path) == "" {
		return Assignment{}, fmt.Errorf("expected path=value, got %q", s)
	}
	path = strings.TrimSpace(path)
	if !localized {
		return Assignment{Path: path, Value: value}, nil
	}
	i := strings.LastIndex(path, ".")
	if i <= 0 {
		return Assignment{}, fmt.Errorf("expected path.locale=text, got %q", s)
	}
	l, err := entity.ParseLocale(path[i+1:])
	if err != nil {
		return Assignment{}, fmt.Errorf("%w: %v", ErrUnknownLocale, err)
	}
	return Assignment{Path: path[:i], Locale: l, Value: value}, nil
}

// Apply runs assignments in order, stopping at the first failure.
func (b *Binding) Apply(as ...Assignment) error {
	for _, a := range as {
		var err error
		if a.Locale != "" {
			err = b.OnLocalizedFieldChange(a.Path, a.Locale, a.Value)
		} else {
			err = b.OnFieldChange(a.Path, a.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
