package form

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

type PageDraft struct {
	mode Mode

	Slug            string           `json:"slug"`
	Title           entity.Localized `json:"title"`
	Description     entity.Localized `json:"description"`
	IsPublished     bool             `json:"isPublished"`
	ShowInHeaderNav bool             `json:"showInHeaderNav"`
	ShowInFooter    bool             `json:"showInFooter"`
	SortOrder       Number           `json:"sortOrder"`
}

func NewPageDraft() *PageDraft {
	return &PageDraft{
		Title:       entity.NewLocalized(),
		Description: entity.NewLocalized(),
		SortOrder:   "0",
	}
}

func PageFromPersisted(p entity.Page) *PageDraft {
	return &PageDraft{
		mode:            EditMode(p.Id),
		Slug:            p.Slug,
		Title:           entity.EnsureCanonical(p.Title),
		Description:     entity.EnsureCanonical(p.Description),
		IsPublished:     derefBool(p.IsPublished, false),
		ShowInHeaderNav: derefBool(p.ShowInHeaderNav, false),
		ShowInFooter:    derefBool(p.ShowInFooter, false),
		SortOrder:       IntNumber(derefInt(p.SortOrder)),
	}
}

func (d *PageDraft) Kind() entity.Kind { return entity.KindPage }
func (d *PageDraft) Mode() Mode        { return d.mode }

func (d *PageDraft) Lookup(path string) (Field, bool) {
	switch path {
	case "slug":
		return stringRef(&d.Slug), true
	case "title":
		return LocalizedRef(&d.Title), true
	case "description":
		return LocalizedRef(&d.Description), true
	case "isPublished":
		return boolRef(&d.IsPublished), true
	case "showInHeaderNav":
		return boolRef(&d.ShowInHeaderNav), true
	case "showInFooter":
		return boolRef(&d.ShowInFooter), true
	case "sortOrder":
		return numberRef(&d.SortOrder), true
	}
	return Field{}, false
}

func (d *PageDraft) Validate() error {
	return ValidateStruct(d,
		validation.Field(&d.Slug,
			validation.Required.Error("enter a page slug"),
			validation.Match(slugRegex).Error("use lowercase letters, digits and dashes")),
		validation.Field(&d.SortOrder, validation.By(validNumber)),
	)
}

func (d *PageDraft) Submission(Uploads) (any, error) {
	return d.ToSubmission(), nil
}

func (d *PageDraft) ToSubmission() entity.PagePayload {
	return entity.PagePayload{
		Slug:            d.Slug,
		Title:           d.Title,
		Description:     d.Description,
		IsPublished:     d.IsPublished,
		ShowInHeaderNav: d.ShowInHeaderNav,
		ShowInFooter:    d.ShowInFooter,
		SortOrder:       d.SortOrder.Int(0),
	}
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
