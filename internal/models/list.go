package models

import "time"

type List struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OwnerID     uint       `gorm:"not null;index" json:"owner_id"`
	Owner       User       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"size:1000" json:"description,omitempty"`
	Items       []ListItem `gorm:"foreignKey:ListID" json:"items,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListItem struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ListID   uint      `gorm:"not null;index" json:"list_id"`
	ItemType string    `gorm:"size:20;not null" json:"item_type"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	ImageURL string    `gorm:"size:512" json:"image_url,omitempty"`
	OrderNum int       `gorm:"not null;default:0" json:"order"`
	Notes    string    `gorm:"size:1000" json:"notes,omitempty"`
	AddedBy  uint      `gorm:"not null" json:"added_by"`
	AddedAt  time.Time `json:"added_at"`
}

const (
	ItemTypeMovie    = "movie"
	ItemTypeSeries   = "series"
	ItemTypeGame     = "game"
	ItemTypePlace    = "place"
	ItemTypeEvent    = "event"
	ItemTypeActivity = "activity"
)
