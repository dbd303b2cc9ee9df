package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

// BlockDraft edits one constructor block. Content field paths depend on the
// block type; see Lookup.
type BlockDraft struct {
	mode   Mode
	pageId string

	Type      entity.BlockType    `json:"type"`
	Content   entity.BlockContent `json:"content"`
	SortOrder Number              `json:"sortOrder"`
}

// NewBlockDraft starts a block of type t appended to page pageId.
func NewBlockDraft(pageId string, t entity.BlockType, sortOrder int) *BlockDraft {
	return &BlockDraft{
		pageId:    pageId,
		Type:      t,
		Content:   entity.NewBlockContent(t),
		SortOrder: IntNumber(sortOrder),
	}
}

func BlockFromPersisted(b entity.Block) *BlockDraft {
	c := b.Content
	if c == nil {
		c = entity.NewBlockContent(b.Type)
	}
	ensureBlockCanonical(c)
	return &BlockDraft{
		mode:      EditMode(b.Id),
		pageId:    b.PageId,
		Type:      b.Type,
		Content:   c,
		SortOrder: IntNumber(b.SortOrder),
	}
}

func ensureBlockCanonical(c entity.BlockContent) {
	switch c := c.(type) {
	case *entity.HeroContent:
		if c.Settings == nil {
			c.Settings = entity.Settings{}
		}
	case *entity.TextContent:
		if c.Settings == nil {
			c.Settings = entity.Settings{}
		}
	case *entity.ImageContent:
		if c.Settings == nil {
			c.Settings = entity.Settings{}
		}
	case *entity.GalleryContent:
		if c.Images == nil {
			c.Images = []entity.GalleryImage{}
		}
		if c.Settings == nil {
			c.Settings = entity.Settings{}
		}
	case *entity.CategoriesContent:
		if c.Categories == nil {
			c.Categories = []entity.CategoryCard{}
		}
		if c.Settings == nil {
			c.Settings = entity.Settings{}
		}
	case *entity.ButtonContent:
		if c.Settings == nil {
			c.Settings = entity.Settings{}
		}
	}
}

func (d *BlockDraft) Kind() entity.Kind { return entity.KindBlock }
func (d *BlockDraft) Mode() Mode        { return d.mode }
func (d *BlockDraft) ParentID() string  { return d.pageId }

func (d *BlockDraft) Lookup(path string) (Field, bool) {
	if path == "sortOrder" {
		return numberRef(&d.SortOrder), true
	}
	if key, ok := strings.CutPrefix(path, "settings."); ok && key != "" {
		if s := settingsOf(d.Content); s != nil {
			return ScalarField(func(v string) error {
				s[key] = v
				return nil
			}), true
		}
		return Field{}, false
	}

	switch c := d.Content.(type) {
	case *entity.HeroContent:
		return heroField(c, path)
	case *entity.TextContent:
		return textField(c, path)
	case *entity.ImageContent:
		return imageField(c, path)
	case *entity.GalleryContent:
		return galleryField(c, path)
	case *entity.CategoriesContent:
		return categoriesField(c, path)
	case *entity.ButtonContent:
		return buttonField(c, path)
	case *entity.RawContent:
		if path == "content" {
			return ScalarField(func(v string) error {
				if !json.Valid([]byte(v)) {
					return errors.New("content must be valid JSON")
				}
				c.Raw = json.RawMessage(v)
				return nil
			}), true
		}
	}
	return Field{}, false
}

func settingsOf(c entity.BlockContent) entity.Settings {
	switch c := c.(type) {
	case *entity.HeroContent:
		return c.Settings
	case *entity.TextContent:
		return c.Settings
	case *entity.ImageContent:
		return c.Settings
	case *entity.GalleryContent:
		return c.Settings
	case *entity.CategoriesContent:
		return c.Settings
	case *entity.ButtonContent:
		return c.Settings
	}
	return nil
}

func heroField(c *entity.HeroContent, path string) (Field, bool) {
	switch path {
	case "title":
		return LocalizedRef(&c.Title), true
	case "subtitle":
		return LocalizedRef(&c.Subtitle), true
	case "buttonText":
		return LocalizedRef(&c.ButtonText), true
	case "backgroundImage":
		return stringRef(&c.BackgroundImage), true
	case "buttonLink":
		return stringRef(&c.ButtonLink), true
	case "overlayOpacity":
		return ScalarField(func(v string) error {
			f, err := strconv.ParseFloat(Number(v).text(), 64)
			if err != nil || f < 0 || f > 1 {
				return fmt.Errorf("overlay opacity must be between 0 and 1, got %q", v)
			}
			c.OverlayOpacity = f
			return nil
		}), true
	case "textColor":
		return stringRef(&c.TextColor), true
	case "alignment":
		return stringRef(&c.Alignment), true
	case "buttonVariant":
		return stringRef(&c.ButtonVariant), true
	case "buttonSize":
		return stringRef(&c.ButtonSize), true
	case "buttonColor":
		return stringRef(&c.ButtonColor), true
	case "titleColor":
		return stringRef(&c.TitleColor), true
	case "subtitleColor":
		return stringRef(&c.SubtitleColor), true
	}
	return Field{}, false
}

// perLocale exposes one string of a per-locale entry layout as a Localized
// field.
func perLocale(slot func(entity.Locale) *string) Field {
	return Field{
		Get: func() entity.Localized {
			v := entity.NewLocalized()
			for _, l := range entity.Locales {
				v = v.Set(l, *slot(l))
			}
			return v
		},
		Put: func(n entity.Localized) {
			for _, l := range entity.Locales {
				*slot(l) = n.Get(l)
			}
		},
	}
}

// splitLocalePath splits "en.align" into the locale and the rest.
func splitLocalePath(path string) (entity.Locale, string, bool) {
	head, rest, ok := strings.Cut(path, ".")
	if !ok {
		return "", "", false
	}
	l := entity.Locale(head)
	if !l.Valid() {
		return "", "", false
	}
	return l, rest, true
}

func textField(c *entity.TextContent, path string) (Field, bool) {
	switch path {
	case "title":
		return perLocale(func(l entity.Locale) *string { return &c.Entry(l).Title }), true
	case "text":
		return perLocale(func(l entity.Locale) *string { return &c.Entry(l).Text }), true
	}
	l, name, ok := splitLocalePath(path)
	if !ok {
		return Field{}, false
	}
	e := c.Entry(l)
	switch name {
	case "align":
		return stringRef(&e.Align), true
	case "color":
		return stringRef(&e.Color), true
	case "bold":
		return boolRef(&e.Bold), true
	case "italic":
		return boolRef(&e.Italic), true
	}
	return Field{}, false
}

func imageField(c *entity.ImageContent, path string) (Field, bool) {
	switch path {
	case "imageUrl":
		return perLocale(func(l entity.Locale) *string { return &c.Entry(l).ImageUrl }), true
	case "alt":
		return perLocale(func(l entity.Locale) *string { return &c.Entry(l).Alt }), true
	case "caption":
		return perLocale(func(l entity.Locale) *string { return &c.Entry(l).Caption }), true
	}
	l, name, ok := splitLocalePath(path)
	if !ok {
		return Field{}, false
	}
	e := c.Entry(l)
	switch name {
	case "align":
		return stringRef(&e.Align), true
	case "link":
		return stringRef(&e.Link), true
	}
	return Field{}, false
}

// indexed parses "<prefix>.<n>.<name>" against a list of length n.
func indexed(path, prefix string, n int) (int, string, bool) {
	rest, ok := strings.CutPrefix(path, prefix+".")
	if !ok {
		return 0, "", false
	}
	idx, name, ok := strings.Cut(rest, ".")
	if !ok {
		return 0, "", false
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= n {
		return 0, "", false
	}
	return i, name, true
}

func columnsRef(p *int) Field {
	return ScalarField(func(v string) error {
		n := Number(v).Int(-1)
		if n < 1 || n > 6 {
			return fmt.Errorf("columns must be between 1 and 6, got %q", v)
		}
		*p = n
		return nil
	})
}

func galleryField(c *entity.GalleryContent, path string) (Field, bool) {
	switch path {
	case "columns":
		return columnsRef(&c.Columns), true
	case "images":
		// replaces the image list, keeping alt/caption of urls that stay
		return ScalarField(func(v string) error {
			prev := make(map[string]entity.GalleryImage, len(c.Images))
			for _, img := range c.Images {
				prev[img.Url] = img
			}
			urls := ParseList(v)
			next := make([]entity.GalleryImage, 0, len(urls))
			for _, u := range urls {
				img, ok := prev[u]
				if !ok {
					img = entity.GalleryImage{Url: u}
				}
				next = append(next, img)
			}
			c.Images = next
			return nil
		}), true
	}
	i, name, ok := indexed(path, "images", len(c.Images))
	if !ok {
		return Field{}, false
	}
	img := &c.Images[i]
	switch name {
	case "url":
		return stringRef(&img.Url), true
	case "alt":
		return stringRef(&img.Alt), true
	case "caption":
		return stringRef(&img.Caption), true
	}
	return Field{}, false
}

func categoriesField(c *entity.CategoriesContent, path string) (Field, bool) {
	switch path {
	case "title":
		return LocalizedRef(&c.Title), true
	case "columns":
		return columnsRef(&c.Columns), true
	case "showDescription":
		return boolRef(&c.ShowDescription), true
	case "categories":
		return ScalarField(func(v string) error {
			prev := make(map[string]entity.CategoryCard, len(c.Categories))
			for _, cc := range c.Categories {
				prev[cc.Id] = cc
			}
			ids := ParseList(v)
			next := make([]entity.CategoryCard, 0, len(ids))
			for _, id := range ids {
				cc, ok := prev[id]
				if !ok {
					cc = entity.CategoryCard{
						Id:          id,
						Name:        entity.NewLocalized(),
						Description: entity.NewLocalized(),
						Link:        "/catalog/" + id,
					}
				}
				next = append(next, cc)
			}
			c.Categories = next
			return nil
		}), true
	}
	i, name, ok := indexed(path, "categories", len(c.Categories))
	if !ok {
		return Field{}, false
	}
	card := &c.Categories[i]
	switch name {
	case "name":
		return LocalizedRef(&card.Name), true
	case "description":
		return LocalizedRef(&card.Description), true
	case "imageUrl":
		return stringRef(&card.ImageUrl), true
	case "link":
		return stringRef(&card.Link), true
	}
	return Field{}, false
}

func buttonField(c *entity.ButtonContent, path string) (Field, bool) {
	switch path {
	case "text":
		return LocalizedRef(&c.Text), true
	case "link":
		return stringRef(&c.Link), true
	case "variant":
		return stringRef(&c.Variant), true
	case "size":
		return stringRef(&c.Size), true
	}
	return Field{}, false
}

func (d *BlockDraft) Validate() error {
	if err := ValidateStruct(d,
		validation.Field(&d.Type, validation.Required.Error("choose a block type")),
		validation.Field(&d.SortOrder, validation.By(validNumber)),
	); err != nil {
		return err
	}
	switch c := d.Content.(type) {
	case *entity.HeroContent:
		return ValidateStruct(c,
			validation.Field(&c.ButtonLink, isLink),
			validation.Field(&c.TextColor, isHexColor),
			validation.Field(&c.ButtonColor, isHexColor),
			validation.Field(&c.TitleColor, isHexColor),
			validation.Field(&c.SubtitleColor, isHexColor),
		)
	case *entity.TextContent:
		return ValidateStruct(c,
			validation.Field(&c.RU, validation.By(textEntryRule)),
			validation.Field(&c.HY, validation.By(textEntryRule)),
			validation.Field(&c.EN, validation.By(textEntryRule)),
		)
	case *entity.ImageContent:
		return ValidateStruct(c,
			validation.Field(&c.RU, validation.By(imageEntryRule)),
			validation.Field(&c.HY, validation.By(imageEntryRule)),
			validation.Field(&c.EN, validation.By(imageEntryRule)),
		)
	case *entity.GalleryContent:
		return ValidateStruct(c,
			validation.Field(&c.Columns, validation.Min(1), validation.Max(6)),
			validation.Field(&c.Images, validation.By(func(interface{}) error {
				for i, img := range c.Images {
					if strings.TrimSpace(img.Url) == "" {
						return fmt.Errorf("image %d has no url", i)
					}
				}
				return nil
			})),
		)
	case *entity.CategoriesContent:
		return ValidateStruct(c,
			validation.Field(&c.Columns, validation.Min(1), validation.Max(6)),
			validation.Field(&c.Categories, validation.By(func(interface{}) error {
				for i, cc := range c.Categories {
					if err := isLink.Validate(cc.Link); err != nil {
						return fmt.Errorf("category %d link: %w", i, err)
					}
				}
				return nil
			})),
		)
	case *entity.ButtonContent:
		return ValidateStruct(c,
			validation.Field(&c.Link, isLink),
			validation.Field(&c.Variant, validation.In("primary", "secondary", "outline", "ghost")),
			validation.Field(&c.Size, validation.In("small", "medium", "large")),
		)
	}
	return nil
}

func textEntryRule(value interface{}) error {
	e, _ := value.(entity.TextEntry)
	return isHexColor.Validate(e.Color)
}

func imageEntryRule(value interface{}) error {
	e, _ := value.(entity.ImageEntry)
	return isLink.Validate(e.Link)
}

func (d *BlockDraft) Submission(up Uploads) (any, error) {
	return d.ToSubmission(up), nil
}

// ToSubmission copies the content, merging uploaded images: hero and image
// blocks take the first upload, galleries append uploads they do not hold yet.
func (d *BlockDraft) ToSubmission(up Uploads) entity.BlockPayload {
	content := d.Content
	if content == nil {
		content = entity.NewBlockContent(d.Type)
	}
	if len(up.Images) > 0 {
		content = withUploads(content, up.Images)
	}
	return entity.BlockPayload{
		Type:      d.Type,
		Content:   content,
		SortOrder: d.SortOrder.Int(0),
	}
}

func withUploads(content entity.BlockContent, images []string) entity.BlockContent {
	switch c := content.(type) {
	case *entity.HeroContent:
		cp := *c
		cp.BackgroundImage = images[0]
		return &cp
	case *entity.ImageContent:
		cp := *c
		for _, l := range entity.Locales {
			cp.Entry(l).ImageUrl = images[0]
		}
		return &cp
	case *entity.GalleryContent:
		cp := *c
		cp.Images = append([]entity.GalleryImage(nil), c.Images...)
		held := make(map[string]bool, len(cp.Images))
		for _, img := range cp.Images {
			held[img.Url] = true
		}
		for _, u := range images {
			if !held[u] {
				cp.Images = append(cp.Images, entity.GalleryImage{Url: u})
				held[u] = true
			}
		}
		return &cp
	}
	return content
}

func (d *BlockDraft) UnmarshalJSON(b []byte) error {
	var w struct {
		Type      entity.BlockType `json:"type"`
		Content   json.RawMessage  `json:"content"`
		SortOrder Number           `json:"sortOrder"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	c, err := entity.DecodeBlockContent(w.Type, w.Content)
	if err != nil {
		return err
	}
	ensureBlockCanonical(c)
	d.Type, d.Content, d.SortOrder = w.Type, c, w.SortOrder
	return nil
}

// SetPage attaches a create-mode block to its page.
func (d *BlockDraft) SetPage(pageId string) {
	d.pageId = pageId
}
