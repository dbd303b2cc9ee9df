package entity

import "time"

// Page is a constructor page.
type Page struct {
	Id              string     `json:"id"`
	Slug            string     `json:"slug"`
	Title           *Localized `json:"title"`
	Description     *Localized `json:"description"`
	IsPublished     *bool      `json:"isPublished"`
	ShowInHeaderNav *bool      `json:"showInHeaderNav"`
	ShowInFooter    *bool      `json:"showInFooter"`
	SortOrder       *int       `json:"sortOrder"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// PagePayload is the body of POST /api/constructor/pages and PATCH .../:id.
type PagePayload struct {
	Slug            string    `json:"slug"`
	Title           Localized `json:"title"`
	Description     Localized `json:"description"`
	IsPublished     bool      `json:"isPublished"`
	ShowInHeaderNav bool      `json:"showInHeaderNav"`
	ShowInFooter    bool      `json:"showInFooter"`
	SortOrder       int       `json:"sortOrder"`
}

// Block is one typed content unit on a page.
type Block struct {
	Id        string       `json:"id"`
	PageId    string       `json:"pageId"`
	Type      BlockType    `json:"type"`
	Content   BlockContent `json:"-"`
	SortOrder int          `json:"sortOrder"`
}

// BlockPayload is the body of POST .../pages/:id/blocks and PATCH /api/constructor/blocks/:id.
type BlockPayload struct {
	Type      BlockType    `json:"type"`
	Content   BlockContent `json:"content"`
	SortOrder int          `json:"sortOrder"`
}
