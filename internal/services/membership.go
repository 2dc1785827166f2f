package services

import (
	"fmt"
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"

	"gorm.io/gorm"
)

// MembershipService tracks who is in a session, their readiness flag, their
// heartbeat, and handles the leave-with-cascade teardown.
type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

func (s *MembershipService) Join(sessionID, userID uint) (*models.SessionMember, error) {
	var session models.Session
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
	}
	if session.Status != models.SessionStatusActive {
		return nil, ErrInvalidState
	}

	var existing models.SessionMember
	if err := s.db.Where("session_id = ? AND user_id = ?", sessionID, userID).
		First(&existing).Error; err == nil {
		return nil, ErrAlreadyMember
	}

	now := time.Now()
	member := models.SessionMember{
		SessionID:    sessionID,
		UserID:       userID,
		JoinedAt:     now,
		LastActiveAt: now,
		VotesCount:   0,
		IsReady:      false,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&member, member.ID)
	return &member, nil
}

// SetReady flips the caller's readiness flag. No precondition beyond being a
// member; "everyone is ready" is folded by observers, never gated here.
func (s *MembershipService) SetReady(sessionID, userID uint, ready bool) error {
	var member models.SessionMember
	if err := s.db.Where("session_id = ? AND user_id = ?", sessionID, userID).
		First(&member).Error; err != nil {
		return ErrNotMember
	}

	return s.db.Model(&member).Updates(map[string]interface{}{
		"is_ready":       ready,
		"last_active_at": time.Now(),
	}).Error
}

// Heartbeat refreshes the caller's last-seen time. Callers fire this every
// HeartbeatInterval while the session view is open; failures are best-effort.
func (s *MembershipService) Heartbeat(sessionID, userID uint) error {
	res := s.db.Model(&models.SessionMember{}).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Update("last_active_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotMember
	}
	return nil
}

// Leave removes the caller from the session. Removing the last member tears
// the session down in the same transaction: all its votes, then the session
// itself, so no dangling session survives the acknowledgement.
func (s *MembershipService) Leave(sessionID, userID uint) (sessionDeleted bool, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var member models.SessionMember
		if err := tx.Where("session_id = ? AND user_id = ?", sessionID, userID).
			First(&member).Error; err != nil {
			return ErrNotMember
		}

		if err := tx.Delete(&member).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.SessionMember{}).
			Where("session_id = ?", sessionID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		// Ad-hoc items are intentionally left behind; only the ledger and
		// the session row are torn down.
		if err := tx.Where("session_id = ?", sessionID).
			Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Session{}, sessionID).Error; err != nil {
			return err
		}
		sessionDeleted = true
		return nil
	})
	return sessionDeleted, err
}
