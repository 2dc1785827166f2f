package models

import (
	"fmt"
	"time"
)

// ItemKind tells which identifier space a vote's item id lives in: the
// owning list's items or the session-local ad-hoc pool.
const (
	ItemKindList  = "list"
	ItemKindAdhoc = "session"
)

type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"not null;index" json:"session_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ItemKind  string    `gorm:"size:10;not null" json:"item_kind"`
	ItemID    uint      `gorm:"not null" json:"item_id"`
	Direction string    `gorm:"size:10;not null" json:"direction"`
	VotedAt   time.Time `json:"voted_at"`
}

const (
	DirectionLeft  = "left"
	DirectionRight = "right"
	DirectionUp    = "up"
)

// ItemRef identifies one candidate of the combined item set.
type ItemRef struct {
	Kind string `json:"kind"`
	ID   uint   `json:"id"`
}

func ListItemRef(id uint) ItemRef  { return ItemRef{Kind: ItemKindList, ID: id} }
func AdhocItemRef(id uint) ItemRef { return ItemRef{Kind: ItemKindAdhoc, ID: id} }

// Key renders the reference as the wire key clients vote-count maps are
// keyed by: the bare list-item id, or "session_<id>" for ad-hoc items so the
// two id spaces never collide when merged.
func (r ItemRef) Key() string {
	if r.Kind == ItemKindAdhoc {
		return fmt.Sprintf("session_%d", r.ID)
	}
	return fmt.Sprintf("%d", r.ID)
}

func (v Vote) ItemRef() ItemRef {
	return ItemRef{Kind: v.ItemKind, ID: v.ItemID}
}
