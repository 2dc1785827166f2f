package services

import (
	"log"
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/ws"

	"gorm.io/gorm"
)

// ExpirySweeper cancels sessions whose expires_at has passed. This is an
// opt-in background guarantee: expiry is otherwise advisory and nothing
// filters on it, matching the original behavior when the sweeper is off.
type ExpirySweeper struct {
	db       *gorm.DB
	hub      *ws.Hub
	interval time.Duration
	stopCh   chan struct{}
}

func NewExpirySweeper(db *gorm.DB, hub *ws.Hub, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		db:       db,
		hub:      hub,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (s *ExpirySweeper) Start() {
	go s.loop()
	log.Printf("[ExpirySweeper] started (interval %s)", s.interval)
}

func (s *ExpirySweeper) Stop() {
	close(s.stopCh)
}

func (s *ExpirySweeper) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *ExpirySweeper) sweep() {
	var expired []models.Session
	if err := s.db.Where("status = ? AND expires_at < ?",
		models.SessionStatusActive, time.Now()).
		Find(&expired).Error; err != nil {
		log.Printf("[ExpirySweeper] query error: %v", err)
		return
	}

	for _, session := range expired {
		if err := s.db.Model(&session).
			Update("status", models.SessionStatusCancelled).Error; err != nil {
			log.Printf("[ExpirySweeper] cancel session %d error: %v", session.ID, err)
			continue
		}
		log.Printf("[ExpirySweeper] cancelled expired session %d", session.ID)
		s.hub.Broadcast(session.ID, ws.Message{
			Type: ws.EventSessionCancelled,
			Data: map[string]interface{}{"session_id": session.ID},
		})
	}
}
