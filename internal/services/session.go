package services

import (
	"fmt"
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"

	"gorm.io/gorm"
)

// SessionService is the registry for voting sessions: creation, the merged
// session view observers subscribe to, and the post-session leaderboard.
type SessionService struct {
	db      *gorm.DB
	scoring *ScoringService
	ttl     time.Duration
}

func NewSessionService(db *gorm.DB, scoring *ScoringService, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{db: db, scoring: scoring, ttl: ttl}
}

// CreateSession opens a voting session on a list and joins the creator in the
// same transaction, so no observer ever sees a session with zero members.
func (s *SessionService) CreateSession(listID, creatorID uint) (*models.Session, error) {
	var list models.List
	if err := s.db.First(&list, listID).Error; err != nil {
		return nil, fmt.Errorf("%w: list %d", ErrNotFound, listID)
	}

	now := time.Now()
	session := models.Session{
		ListID:     listID,
		CreatedBy:  creatorID,
		Status:     models.SessionStatusActive,
		TotalVotes: 0,
		ExpiresAt:  now.Add(s.ttl),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		member := models.SessionMember{
			SessionID:    session.ID,
			UserID:       creatorID,
			JoinedAt:     now,
			LastActiveAt: now,
			VotesCount:   0,
			IsReady:      false,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

type MemberView struct {
	models.SessionMember
	IsOnline bool `json:"is_online"`
	IsDone   bool `json:"is_done"`
}

type SessionView struct {
	models.Session
	Members       []MemberView         `json:"members"`
	AdhocItems    []models.SessionItem `json:"adhoc_items"`
	CombinedCount int                  `json:"combined_count"`
	Phase         string               `json:"phase"`
}

// GetSession returns the full aggregate every observer renders from: the
// session, its members joined with user profiles, the owning list's items in
// stored order, the ad-hoc pool, and the derived phase.
func (s *SessionService) GetSession(sessionID uint) (*SessionView, error) {
	var session models.Session
	if err := s.db.Preload("List").
		Preload("List.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&session, sessionID).Error; err != nil {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
	}

	var members []models.SessionMember
	s.db.Where("session_id = ?", sessionID).
		Preload("User").
		Order("joined_at ASC").
		Find(&members)

	var adhoc []models.SessionItem
	s.db.Where("session_id = ?", sessionID).Order("id ASC").Find(&adhoc)

	combined := len(session.List.Items) + len(adhoc)
	now := time.Now()

	view := &SessionView{
		Session:       session,
		Members:       make([]MemberView, len(members)),
		AdhocItems:    adhoc,
		CombinedCount: combined,
		Phase:         DerivePhase(members, combined),
	}
	for i, m := range members {
		view.Members[i] = MemberView{
			SessionMember: m,
			IsOnline:      MemberOnline(m, now),
			IsDone:        MemberDone(m, combined),
		}
	}

	// Session.Members stays unloaded; the view's member list replaces it.
	view.Session.Members = nil
	return view, nil
}

// CombinedItems builds the combined item set in its fixed order: list items
// by stored order, then ad-hoc items by insertion.
func (s *SessionService) CombinedItems(sessionID uint) ([]CombinedItem, error) {
	var session models.Session
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
	}

	var listItems []models.ListItem
	s.db.Where("list_id = ?", session.ListID).Order("order_num ASC").Find(&listItems)

	var adhoc []models.SessionItem
	s.db.Where("session_id = ?", sessionID).Order("id ASC").Find(&adhoc)

	combined := make([]CombinedItem, 0, len(listItems)+len(adhoc))
	for _, it := range listItems {
		combined = append(combined, CombinedItem{
			Ref:      models.ListItemRef(it.ID),
			ItemType: it.ItemType,
			Name:     it.Name,
			ImageURL: it.ImageURL,
		})
	}
	for _, it := range adhoc {
		combined = append(combined, CombinedItem{
			Ref:      models.AdhocItemRef(it.ID),
			ItemType: it.ItemType,
			Name:     it.Name,
			ImageURL: it.ImageURL,
		})
	}
	return combined, nil
}

// GetLeaderboard ranks the combined item set over the vote ledger.
func (s *SessionService) GetLeaderboard(sessionID uint) ([]LeaderboardEntry, error) {
	combined, err := s.CombinedItems(sessionID)
	if err != nil {
		return nil, err
	}

	var votes []models.Vote
	if err := s.db.Where("session_id = ?", sessionID).Find(&votes).Error; err != nil {
		return nil, err
	}

	counts := s.scoring.CountVotes(votes)
	return s.scoring.Rank(combined, counts), nil
}
