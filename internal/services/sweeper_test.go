package services

import (
	"testing"
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/ws"
)

func TestSweep_CancelsOnlyExpiredActiveSessions(t *testing.T) {
	db := openTestDB(t)
	sessions, _, _, _ := newTestServices(db)

	owner := createTestUser(t, db, "owner")
	list := createTestList(t, db, owner.ID, "I1")

	expired, _ := sessions.CreateSession(list.ID, owner.ID)
	fresh, _ := sessions.CreateSession(list.ID, owner.ID)
	finished, _ := sessions.CreateSession(list.ID, owner.ID)

	past := time.Now().Add(-time.Minute)
	db.Model(&models.Session{}).Where("id = ?", expired.ID).Update("expires_at", past)
	db.Model(&models.Session{}).Where("id = ?", finished.ID).
		Updates(map[string]interface{}{
			"expires_at": past,
			"status":     models.SessionStatusCompleted,
		})

	sweeper := NewExpirySweeper(db, ws.NewHub(), time.Minute)
	sweeper.sweep()

	status := func(id uint) string {
		var s models.Session
		db.First(&s, id)
		return s.Status
	}
	if got := status(expired.ID); got != models.SessionStatusCancelled {
		t.Errorf("expired session status = %s, want %s", got, models.SessionStatusCancelled)
	}
	if got := status(fresh.ID); got != models.SessionStatusActive {
		t.Errorf("fresh session status = %s, want untouched %s", got, models.SessionStatusActive)
	}
	// Completed sessions are terminal; expiry never rewrites them.
	if got := status(finished.ID); got != models.SessionStatusCompleted {
		t.Errorf("completed session status = %s, want %s", got, models.SessionStatusCompleted)
	}
}
