package services

import (
	"fmt"
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdhocService manages the session-local item pool: candidates members pull
// in from external search without touching the underlying list. Items may
// appear at any point of the session; the candidate set is never locked.
type AdhocService struct {
	db *gorm.DB
}

func NewAdhocService(db *gorm.DB) *AdhocService {
	return &AdhocService{db: db}
}

func (s *AdhocService) AddItem(sessionID, userID uint, itemType, externalItemID, name, imageURL string) (*models.SessionItem, error) {
	var session models.Session
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
	}

	// Additions are attributed, so the caller must actually be in the session.
	var member models.SessionMember
	if err := s.db.Where("session_id = ? AND user_id = ?", sessionID, userID).
		First(&member).Error; err != nil {
		return nil, ErrNotMember
	}

	if externalItemID == "" {
		externalItemID = uuid.NewString()
	}

	item := models.SessionItem{
		SessionID:      sessionID,
		ItemType:       itemType,
		ExternalItemID: externalItemID,
		Name:           name,
		ImageURL:       imageURL,
		AddedBy:        userID,
		AddedAt:        time.Now(),
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *AdhocService) ListItems(sessionID uint) ([]models.SessionItem, error) {
	var items []models.SessionItem
	if err := s.db.Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
