package services

import (
	"testing"
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"
)

func member(votes int, ready bool) models.SessionMember {
	return models.SessionMember{VotesCount: votes, IsReady: ready}
}

func TestDerivePhase_EmptySessionIsWaiting(t *testing.T) {
	if got := DerivePhase(nil, 3); got != PhaseWaitingRoom {
		t.Errorf("phase = %s, want %s", got, PhaseWaitingRoom)
	}
}

func TestDerivePhase_ReadinessQuorum(t *testing.T) {
	// Two members, one item: nobody moves until everyone is ready.
	members := []models.SessionMember{member(0, true), member(0, false)}
	if got := DerivePhase(members, 1); got != PhaseWaitingRoom {
		t.Errorf("one of two ready: phase = %s, want %s", got, PhaseWaitingRoom)
	}

	members[1].IsReady = true
	if got := DerivePhase(members, 1); got != PhaseActive {
		t.Errorf("all ready: phase = %s, want %s", got, PhaseActive)
	}
}

func TestDerivePhase_SingleMember(t *testing.T) {
	members := []models.SessionMember{member(0, true)}
	if got := DerivePhase(members, 2); got != PhaseActive {
		t.Errorf("phase = %s, want %s", got, PhaseActive)
	}
}

func TestDerivePhase_GroupCompletion(t *testing.T) {
	members := []models.SessionMember{member(2, true), member(1, true)}
	if got := DerivePhase(members, 2); got != PhaseActive {
		t.Errorf("one member pending: phase = %s, want %s", got, PhaseActive)
	}

	members[1].VotesCount = 2
	if got := DerivePhase(members, 2); got != PhaseCompleted {
		t.Errorf("all members done: phase = %s, want %s", got, PhaseCompleted)
	}
}

func TestDerivePhase_LateJoinerReopensDerivedView(t *testing.T) {
	// Not latched: a member joining after everyone was ready folds the
	// observers back to the waiting room.
	members := []models.SessionMember{member(1, true)}
	if got := DerivePhase(members, 2); got != PhaseActive {
		t.Fatalf("phase = %s, want %s", got, PhaseActive)
	}

	members = append(members, member(0, false))
	if got := DerivePhase(members, 2); got != PhaseWaitingRoom {
		t.Errorf("after late join: phase = %s, want %s", got, PhaseWaitingRoom)
	}
}

func TestDerivePhase_EmptyItemSetNeverCompletes(t *testing.T) {
	members := []models.SessionMember{member(0, true)}
	if got := DerivePhase(members, 0); got != PhaseActive {
		t.Errorf("phase = %s, want %s", got, PhaseActive)
	}
}

func TestMemberDone_DenominatorGrowsWithAdhocItems(t *testing.T) {
	m := member(2, true)

	if !MemberDone(m, 2) {
		t.Error("member with 2 votes over 2 items should be done")
	}
	// An ad-hoc item landed: the denominator grows and the member has
	// cards to swipe again.
	if MemberDone(m, 3) {
		t.Error("member with 2 votes over 3 items should not be done")
	}
}

func TestMemberOnline(t *testing.T) {
	now := time.Now()

	fresh := models.SessionMember{LastActiveAt: now.Add(-10 * time.Second)}
	stale := models.SessionMember{LastActiveAt: now.Add(-45 * time.Second)}

	if !MemberOnline(fresh, now) {
		t.Error("heartbeat 10s ago should read online")
	}
	if MemberOnline(stale, now) {
		t.Error("heartbeat 45s ago should read offline")
	}
}
