package services

import (
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"
)

// Session phases as every observer derives them from raw counters. The phase
// is never latched: a member joining after everyone was ready moves the
// derived phase back to the waiting room on the next observation.
const (
	PhaseWaitingRoom = "waiting_room"
	PhaseActive      = "active"
	PhaseCompleted   = "completed"
)

// Members are shown as online while their heartbeat is fresher than this.
// Display-only; nobody gets evicted for going stale.
const (
	OnlineWindow      = 30 * time.Second
	HeartbeatInterval = 15 * time.Second
)

// MemberDone reports whether a member has swiped through the whole combined
// item set.
func MemberDone(m models.SessionMember, combinedCount int) bool {
	return m.VotesCount >= combinedCount
}

// MemberOnline reports whether a member's heartbeat is fresh as of now.
func MemberOnline(m models.SessionMember, now time.Time) bool {
	return now.Sub(m.LastActiveAt) < OnlineWindow
}

// DerivePhase folds the member list into the session phase. It is a pure
// function of the members and the combined item count so every observer
// computes the same answer from the same snapshot.
func DerivePhase(members []models.SessionMember, combinedCount int) string {
	if len(members) == 0 {
		return PhaseWaitingRoom
	}

	if combinedCount > 0 {
		done := true
		for _, m := range members {
			if !MemberDone(m, combinedCount) {
				done = false
				break
			}
		}
		if done {
			return PhaseCompleted
		}
	}

	for _, m := range members {
		if !m.IsReady {
			return PhaseWaitingRoom
		}
	}
	return PhaseActive
}
