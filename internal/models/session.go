package models

import "time"

type Session struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ListID     uint            `gorm:"not null;index" json:"list_id"`
	List       List            `gorm:"foreignKey:ListID" json:"list,omitempty"`
	CreatedBy  uint            `gorm:"not null;index" json:"created_by"`
	Status     string          `gorm:"size:20;not null;default:'active'" json:"status"`
	TotalVotes int             `gorm:"not null;default:0" json:"total_votes"`
	Members    []SessionMember `gorm:"foreignKey:SessionID" json:"members,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
}

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)
