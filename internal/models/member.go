package models

import "time"

type SessionMember struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionID    uint      `gorm:"not null;uniqueIndex:idx_session_user" json:"session_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_session_user" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	VotesCount   int       `gorm:"not null;default:0" json:"votes_count"`
	IsReady      bool      `gorm:"not null;default:false" json:"is_ready"`
}
