package services

import (
	"fmt"
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"

	"gorm.io/gorm"
)

// VoteService is the append-only voting ledger plus the denormalized counters
// that ride along with it.
type VoteService struct {
	db      *gorm.DB
	scoring *ScoringService
}

func NewVoteService(db *gorm.DB, scoring *ScoringService) *VoteService {
	return &VoteService{db: db, scoring: scoring}
}

// CastVote appends one ledger entry and bumps both counters in a single
// transaction. There is no idempotency key: swiping the same item twice
// produces two entries and two increments. When every member has covered the
// combined item set the session is marked completed inside the same
// transaction; the returned flag tells the caller to announce it.
func (s *VoteService) CastVote(sessionID, userID uint, ref models.ItemRef, direction string) (completed bool, err error) {
	switch direction {
	case models.DirectionLeft, models.DirectionRight, models.DirectionUp:
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, sessionID).Error; err != nil {
			return fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
		}
		if session.Status != models.SessionStatusActive {
			return ErrInvalidState
		}

		var member models.SessionMember
		if err := tx.Where("session_id = ? AND user_id = ?", sessionID, userID).
			First(&member).Error; err != nil {
			return ErrNotMember
		}

		vote := models.Vote{
			SessionID: sessionID,
			UserID:    userID,
			ItemKind:  ref.Kind,
			ItemID:    ref.ID,
			Direction: direction,
			VotedAt:   time.Now(),
		}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Session{}).Where("id = ?", sessionID).
			Update("total_votes", gorm.Expr("total_votes + 1")).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.SessionMember{}).Where("id = ?", member.ID).
			Update("votes_count", gorm.Expr("votes_count + 1")).Error; err != nil {
			return err
		}

		done, err := s.allMembersDone(tx, &session)
		if err != nil {
			return err
		}
		if done {
			if err := tx.Model(&models.Session{}).Where("id = ?", sessionID).
				Update("status", models.SessionStatusCompleted).Error; err != nil {
				return err
			}
			completed = true
		}
		return nil
	})
	return completed, err
}

// allMembersDone checks, within the vote's transaction, whether every member
// has at least as many votes as the combined item set has candidates.
func (s *VoteService) allMembersDone(tx *gorm.DB, session *models.Session) (bool, error) {
	var listCount, adhocCount int64
	if err := tx.Model(&models.ListItem{}).
		Where("list_id = ?", session.ListID).
		Count(&listCount).Error; err != nil {
		return false, err
	}
	if err := tx.Model(&models.SessionItem{}).
		Where("session_id = ?", session.ID).
		Count(&adhocCount).Error; err != nil {
		return false, err
	}
	combined := listCount + adhocCount
	if combined == 0 {
		return false, nil
	}

	var pending int64
	if err := tx.Model(&models.SessionMember{}).
		Where("session_id = ? AND votes_count < ?", session.ID, combined).
		Count(&pending).Error; err != nil {
		return false, err
	}
	return pending == 0, nil
}

// GetVotes aggregates the session's ledger into per-item direction counts,
// keyed by the namespaced wire key shared by list and ad-hoc items.
func (s *VoteService) GetVotes(sessionID uint) (map[string]DirectionCounts, error) {
	var session models.Session
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
	}

	var votes []models.Vote
	if err := s.db.Where("session_id = ?", sessionID).Find(&votes).Error; err != nil {
		return nil, err
	}
	return s.scoring.CountVotes(votes), nil
}

// CounterDrift reports a mismatch between a denormalized counter and the
// ledger it shadows.
type CounterDrift struct {
	Field    string `json:"field"`
	MemberID uint   `json:"member_id,omitempty"`
	Stored   int    `json:"stored"`
	Actual   int    `json:"actual"`
}

// Reconcile recomputes totalVotes and every member's votesCount from the
// ledger and returns any drift. The hot path never does this; it exists for
// tests and for operators chasing a broken invariant.
func (s *VoteService) Reconcile(sessionID uint) ([]CounterDrift, error) {
	var session models.Session
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
	}

	var drifts []CounterDrift

	var total int64
	if err := s.db.Model(&models.Vote{}).
		Where("session_id = ?", sessionID).
		Count(&total).Error; err != nil {
		return nil, err
	}
	if int(total) != session.TotalVotes {
		drifts = append(drifts, CounterDrift{
			Field:  "total_votes",
			Stored: session.TotalVotes,
			Actual: int(total),
		})
	}

	var members []models.SessionMember
	if err := s.db.Where("session_id = ?", sessionID).Find(&members).Error; err != nil {
		return nil, err
	}
	for _, m := range members {
		var count int64
		if err := s.db.Model(&models.Vote{}).
			Where("session_id = ? AND user_id = ?", sessionID, m.UserID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if int(count) != m.VotesCount {
			drifts = append(drifts, CounterDrift{
				Field:    "votes_count",
				MemberID: m.ID,
				Stored:   m.VotesCount,
				Actual:   int(count),
			})
		}
	}
	return drifts, nil
}
