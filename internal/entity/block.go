package entity

import (
	"encoding/json"
	"fmt"
)

type BlockType string

const (
	BlockHero       BlockType = "hero"
	BlockText       BlockType = "text"
	BlockImage      BlockType = "image"
	BlockGallery    BlockType = "gallery"
	BlockCategories BlockType = "categories"
	BlockButton     BlockType = "button"
)

// BlockTypes lists the block types that have a typed content schema.
var BlockTypes = []BlockType{BlockHero, BlockText, BlockImage, BlockGallery, BlockCategories, BlockButton}

// BlockContent is the content payload of a block; the concrete type is
// determined by the block's type tag.
type BlockContent interface {
	BlockType() BlockType
}

// Settings carries free-form presentation settings every block may hold.
type Settings map[string]any

type HeroContent struct {
	Title           Localized `json:"title"`
	Subtitle        Localized `json:"subtitle"`
	ButtonText      Localized `json:"buttonText"`
	BackgroundImage string    `json:"backgroundImage,omitempty"`
	ButtonLink      string    `json:"buttonLink,omitempty"`
	OverlayOpacity  float64   `json:"overlayOpacity,omitempty"`
	TextColor       string    `json:"textColor,omitempty"`
	Alignment       string    `json:"alignment,omitempty"`
	ButtonVariant   string    `json:"buttonVariant,omitempty"`
	ButtonSize      string    `json:"buttonSize,omitempty"`
	ButtonColor     string    `json:"buttonColor,omitempty"`
	TitleColor      string    `json:"titleColor,omitempty"`
	SubtitleColor   string    `json:"subtitleColor,omitempty"`
	Settings        Settings  `json:"settings"`
}

func (*HeroContent) BlockType() BlockType { return BlockHero }

// TextEntry is the per-locale body of a text block.
type TextEntry struct {
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Align  string `json:"align,omitempty"`
	Color  string `json:"color,omitempty"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// TextContent stores one entry per locale, keyed ru/hy/en on the wire.
type TextContent struct {
	RU       TextEntry `json:"ru"`
	HY       TextEntry `json:"hy"`
	EN       TextEntry `json:"en"`
	Settings Settings  `json:"settings"`
}

func (*TextContent) BlockType() BlockType { return BlockText }

// Entry returns a pointer to the locale's entry, nil for unsupported locales.
func (c *TextContent) Entry(l Locale) *TextEntry {
	switch l {
	case LocaleRU:
		return &c.RU
	case LocaleHY:
		return &c.HY
	case LocaleEN:
		return &c.EN
	}
	return nil
}

// ImageEntry is the per-locale body of an image block.
type ImageEntry struct {
	ImageUrl string `json:"imageUrl,omitempty"`
	Alt      string `json:"alt,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Align    string `json:"align,omitempty"`
	Link     string `json:"link,omitempty"`
}

type ImageContent struct {
	RU       ImageEntry `json:"ru"`
	HY       ImageEntry `json:"hy"`
	EN       ImageEntry `json:"en"`
	Settings Settings   `json:"settings"`
}

func (*ImageContent) BlockType() BlockType { return BlockImage }

func (c *ImageContent) Entry(l Locale) *ImageEntry {
	switch l {
	case LocaleRU:
		return &c.RU
	case LocaleHY:
		return &c.HY
	case LocaleEN:
		return &c.EN
	}
	return nil
}

type GalleryImage struct {
	Url     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type GalleryContent struct {
	Images   []GalleryImage `json:"images"`
	Columns  int            `json:"columns,omitempty"`
	Settings Settings       `json:"settings"`
}

func (*GalleryContent) BlockType() BlockType { return BlockGallery }

type CategoryCard struct {
	Id          string    `json:"id"`
	Name        Localized `json:"name"`
	ImageUrl    string    `json:"imageUrl,omitempty"`
	Link        string    `json:"link"`
	Description Localized `json:"description"`
}

type CategoriesContent struct {
	Title           Localized      `json:"title"`
	Categories      []CategoryCard `json:"categories"`
	Columns         int            `json:"columns,omitempty"`
	ShowDescription bool           `json:"showDescription"`
	Settings        Settings       `json:"settings"`
}

func (*CategoriesContent) BlockType() BlockType { return BlockCategories }

type ButtonContent struct {
	Text     Localized `json:"text"`
	Link     string    `json:"link,omitempty"`
	Variant  string    `json:"variant,omitempty"`
	Size     string    `json:"size,omitempty"`
	Settings Settings  `json:"settings"`
}

func (*ButtonContent) BlockType() BlockType { return BlockButton }

// RawContent keeps the content of block types without a schema so it
// round-trips unchanged.
type RawContent struct {
	Type BlockType
	Raw  json.RawMessage
}

func (c *RawContent) BlockType() BlockType { return c.Type }

func (c *RawContent) MarshalJSON() ([]byte, error) {
	if len(c.Raw) == 0 {
		return []byte("{}"), nil
	}
	return c.Raw, nil
}

// NewBlockContent returns the empty content for a freshly added block.
func NewBlockContent(t BlockType) BlockContent {
	switch t {
	case BlockHero:
		return &HeroContent{Settings: Settings{}}
	case BlockText:
		return &TextContent{Settings: Settings{}}
	case BlockImage:
		return &ImageContent{Settings: Settings{}}
	case BlockGallery:
		return &GalleryContent{Images: []GalleryImage{}, Columns: 3, Settings: Settings{}}
	case BlockCategories:
		return &CategoriesContent{Categories: []CategoryCard{}, Columns: 3, Settings: Settings{}}
	case BlockButton:
		return &ButtonContent{Variant: "primary", Size: "medium", Settings: Settings{}}
	default:
		return &RawContent{Type: t, Raw: json.RawMessage(`{"ru":{},"en":{},"hy":{},"settings":{}}`)}
	}
}

// DecodeBlockContent decodes raw content according to the type tag.
func DecodeBlockContent(t BlockType, raw json.RawMessage) (BlockContent, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return NewBlockContent(t), nil
	}
	c := NewBlockContent(t)
	if rc, ok := c.(*RawContent); ok {
		rc.Raw = append(json.RawMessage(nil), raw...)
		return rc, nil
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode %s block content: %w", t, err)
	}
	return c, nil
}

type blockWire struct {
	Id        string          `json:"id"`
	PageId    string          `json:"pageId"`
	Type      BlockType       `json:"type"`
	Content   json.RawMessage `json:"content"`
	SortOrder int             `json:"sortOrder"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	content, err := marshalContent(b.Type, b.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(blockWire{
		Id:        b.Id,
		PageId:    b.PageId,
		Type:      b.Type,
		Content:   content,
		SortOrder: b.SortOrder,
	})
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var w blockWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c, err := DecodeBlockContent(w.Type, w.Content)
	if err != nil {
		return err
	}
	*b = Block{Id: w.Id, PageId: w.PageId, Type: w.Type, Content: c, SortOrder: w.SortOrder}
	return nil
}

func (p *BlockPayload) UnmarshalJSON(data []byte) error {
	var w blockWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c, err := DecodeBlockContent(w.Type, w.Content)
	if err != nil {
		return err
	}
	*p = BlockPayload{Type: w.Type, Content: c, SortOrder: w.SortOrder}
	return nil
}

func marshalContent(t BlockType, c BlockContent) (json.RawMessage, error) {
	if c == nil {
		c = NewBlockContent(t)
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode %s block content: %w", t, err)
	}
	return b, nil
}
