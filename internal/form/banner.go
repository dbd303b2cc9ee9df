package form

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

const (
	defaultBackgroundColor = "#ffffff"
	defaultTextColor       = "#000000"
	defaultPosition        = "top"
	defaultTargetUsers     = "all"
)

var bannerTypes = []interface{}{
	entity.BannerHeader,
	entity.BannerFullscreen,
	entity.BannerSidebar,
	entity.BannerInline,
	entity.BannerPopup,
}

var publicationStatuses = []interface{}{
	entity.StatusDraft,
	entity.StatusActive,
	entity.StatusPaused,
	entity.StatusExpired,
}

type BannerDraft struct {
	mode Mode

	Name            string                   `json:"name"`
	Type            entity.BannerType        `json:"type"`
	Title           entity.Localized         `json:"title"`
	Content         entity.Localized         `json:"content"`
	ImageUrl        string                   `json:"imageUrl"`
	ButtonText      entity.Localized         `json:"buttonText"`
	ButtonLink      string                   `json:"buttonLink"`
	BackgroundColor string                   `json:"backgroundColor"`
	TextColor       string                   `json:"textColor"`
	Position        string                   `json:"position"`
	Priority        Number                   `json:"priority"`
	IsActive        bool                     `json:"isActive"`
	Status          entity.PublicationStatus `json:"status"`
	StartDate       string                   `json:"startDate"`
	EndDate         string                   `json:"endDate"`
	TargetPages     []string                 `json:"targetPages"`
	TargetUsers     string                   `json:"targetUsers"`
	MaxImpressions  Number                   `json:"maxImpressions"`
	MaxClicks       Number                   `json:"maxClicks"`
}

func NewBannerDraft() *BannerDraft {
	return &BannerDraft{
		Type:            entity.BannerHeader,
		Title:           entity.NewLocalized(),
		Content:         entity.NewLocalized(),
		ButtonText:      entity.NewLocalized(),
		BackgroundColor: defaultBackgroundColor,
		TextColor:       defaultTextColor,
		Position:        defaultPosition,
		Priority:        "0",
		Status:          entity.StatusDraft,
		TargetPages:     []string{},
		TargetUsers:     defaultTargetUsers,
	}
}

func BannerFromPersisted(b entity.Banner) *BannerDraft {
	d := &BannerDraft{
		mode:            EditMode(b.Id),
		Name:            b.Name,
		Type:            b.Type,
		Title:           entity.EnsureCanonical(b.Title),
		Content:         entity.EnsureCanonical(b.Content),
		ImageUrl:        deref(b.ImageUrl),
		ButtonText:      entity.EnsureCanonical(b.ButtonText),
		ButtonLink:      deref(b.ButtonLink),
		BackgroundColor: orDefault(deref(b.BackgroundColor), defaultBackgroundColor),
		TextColor:       orDefault(deref(b.TextColor), defaultTextColor),
		Position:        orDefault(deref(b.Position), defaultPosition),
		Priority:        IntNumber(0),
		IsActive:        derefBool(b.IsActive, false),
		Status:          entity.StatusDraft,
		StartDate:       formatDateInput(b.StartDate),
		EndDate:         formatDateInput(b.EndDate),
		TargetPages:     nonNil(append([]string(nil), b.TargetPages...)),
		TargetUsers:     orDefault(deref(b.TargetUsers), defaultTargetUsers),
		MaxImpressions:  IntPtrNumber(b.MaxImpressions),
		MaxClicks:       IntPtrNumber(b.MaxClicks),
	}
	if d.Type == "" {
		d.Type = entity.BannerHeader
	}
	if b.Priority != nil {
		d.Priority = IntNumber(*b.Priority)
	}
	if b.Status != nil && *b.Status != "" {
		d.Status = *b.Status
	}
	return d
}

func (d *BannerDraft) Kind() entity.Kind { return entity.KindBanner }
func (d *BannerDraft) Mode() Mode        { return d.mode }

func (d *BannerDraft) Lookup(path string) (Field, bool) {
	switch path {
	case "name":
		return stringRef(&d.Name), true
	case "type":
		return ScalarField(func(v string) error {
			d.Type = entity.BannerType(v)
			return nil
		}), true
	case "title":
		return LocalizedRef(&d.Title), true
	case "content":
		return LocalizedRef(&d.Content), true
	case "imageUrl":
		return stringRef(&d.ImageUrl), true
	case "buttonText":
		return LocalizedRef(&d.ButtonText), true
	case "buttonLink":
		return stringRef(&d.ButtonLink), true
	case "backgroundColor":
		return stringRef(&d.BackgroundColor), true
	case "textColor":
		return stringRef(&d.TextColor), true
	case "position":
		return stringRef(&d.Position), true
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
	case "targetPages":
		return listRef(&d.TargetPages), true
	case "targetUsers":
		return stringRef(&d.TargetUsers), true
	case "maxImpressions":
		return numberRef(&d.MaxImpressions), true
	case "maxClicks":
		return numberRef(&d.MaxClicks), true
	}
	return Field{}, false
}

func (d *BannerDraft) Validate() error {
	return ValidateStruct(d,
		validation.Field(&d.Name, validation.Required.Error("enter a banner name")),
		validation.Field(&d.Type, validation.Required, validation.In(bannerTypes...)),
		validation.Field(&d.Status, validation.In(publicationStatuses...)),
		validation.Field(&d.ButtonLink, isLink),
		validation.Field(&d.BackgroundColor, isHexColor),
		validation.Field(&d.TextColor, isHexColor),
		validation.Field(&d.Priority, validation.By(validNumber)),
		validation.Field(&d.MaxImpressions, validation.By(validNumber)),
		validation.Field(&d.MaxClicks, validation.By(validNumber)),
		validation.Field(&d.StartDate, validation.By(validDate)),
		validation.Field(&d.EndDate, validation.By(validDate), validation.By(d.endAfterStart)),
	)
}

func (d *BannerDraft) endAfterStart(interface{}) error {
	return checkPeriod(d.StartDate, d.EndDate)
}

func (d *BannerDraft) Submission(up Uploads) (any, error) {
	return d.ToSubmission(up)
}

// ToSubmission normalizes the draft. An active banner is always published
// with status active.
func (d *BannerDraft) ToSubmission(up Uploads) (entity.BannerPayload, error) {
	start, err := parseDateInput(d.StartDate)
	if err != nil {
		return entity.BannerPayload{}, err
	}
	end, err := parseDateInput(d.EndDate)
	if err != nil {
		return entity.BannerPayload{}, err
	}
	status := d.Status
	if d.IsActive {
		status = entity.StatusActive
	}
	return entity.BannerPayload{
		Name:            d.Name,
		Type:            d.Type,
		Title:           d.Title,
		Content:         d.Content,
		ImageUrl:        uploadedOr(up.Images, d.ImageUrl),
		ButtonText:      d.ButtonText,
		ButtonLink:      optional(d.ButtonLink),
		BackgroundColor: orDefault(d.BackgroundColor, defaultBackgroundColor),
		TextColor:       orDefault(d.TextColor, defaultTextColor),
		Position:        orDefault(d.Position, defaultPosition),
		Priority:        d.Priority.Int(0),
		IsActive:        d.IsActive,
		Status:          status,
		StartDate:       start,
		EndDate:         end,
		TargetPages:     nonNil(append([]string(nil), d.TargetPages...)),
		TargetUsers:     orDefault(d.TargetUsers, defaultTargetUsers),
		MaxImpressions:  d.MaxImpressions.OptionalInt(),
		MaxClicks:       d.MaxClicks.OptionalInt(),
	}, nil
}

// uploadedOr picks the first uploaded path over the draft's single image.
func uploadedOr(uploaded []string, current string) *string {
	if len(uploaded) > 0 {
		v := uploaded[0]
		return &v
	}
	return optional(current)
}

func validDate(value interface{}) error {
	s, _ := value.(string)
	_, err := parseDateInput(s)
	return err
}

func checkPeriod(start, end string) error {
	s, err := parseDateInput(start)
	if err != nil || s == nil {
		return nil
	}
	e, err := parseDateInput(end)
	if err != nil || e == nil {
		return nil
	}
	if !e.After(*s) {
		return fmt.Errorf("must be after %s", s.Format(time.DateTime))
	}
	return nil
}
