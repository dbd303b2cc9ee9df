package entity

import (
	"encoding/json"
	"time"
)

// JournaledDraft is a normalized submission that the storefront rejected,
// kept so the operator can retry it later.
type JournaledDraft struct {
	Id        int64           `db:"id" json:"id"`
	Kind      Kind            `db:"kind" json:"kind"`
	Mode      string          `db:"mode" json:"mode"`
	EntityId  string          `db:"entity_id" json:"entityId,omitempty"`
	ParentId  string          `db:"parent_id" json:"parentId,omitempty"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	LastError string          `db:"last_error" json:"lastError"`
	Attempts  int             `db:"attempts" json:"attempts"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// JournaledDraftInsert is what callers provide when journaling a draft.
type JournaledDraftInsert struct {
	Kind      Kind
	Mode      string
	EntityId  string
	ParentId  string
	Payload   json.RawMessage
	LastError string
}
