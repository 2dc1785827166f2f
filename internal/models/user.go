package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:100" json:"name"`
	ImageURL     string    `gorm:"size:512" json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
