package models

import "time"

// SessionItem is a candidate a member injected into a running session, e.g.
// a movie found via external search. It never gets written back into the
// owning list.
type SessionItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SessionID      uint      `gorm:"not null;index" json:"session_id"`
	ItemType       string    `gorm:"size:20;not null" json:"item_type"`
	ExternalItemID string    `gorm:"size:100" json:"external_item_id,omitempty"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	ImageURL       string    `gorm:"size:512" json:"image_url,omitempty"`
	AddedBy        uint      `gorm:"not null" json:"added_by"`
	AddedAt        time.Time `json:"added_at"`
}
