package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"
)

func loadListItems(t *testing.T, svc *SessionService, sessionID uint) []CombinedItem {
	t.Helper()
	combined, err := svc.CombinedItems(sessionID)
	if err != nil {
		t.Fatalf("combined items: %v", err)
	}
	return combined
}

func TestCastVote_Validation(t *testing.T) {
	db := openTestDB(t)
	sessions, _, votes, _ := newTestServices(db)

	owner := createTestUser(t, db, "owner")
	outsider := createTestUser(t, db, "outsider")
	list := createTestList(t, db, owner.ID, "I1")
	session, _ := sessions.CreateSession(list.ID, owner.ID)
	combined := loadListItems(t, sessions, session.ID)

	if _, err := votes.CastVote(9999, owner.ID, combined[0].Ref, models.DirectionRight); !errors.Is(err, ErrNotFound) {
		t.Errorf("vote on missing session: err = %v, want ErrNotFound", err)
	}
	if _, err := votes.CastVote(session.ID, outsider.ID, combined[0].Ref, models.DirectionRight); !errors.Is(err, ErrNotMember) {
		t.Errorf("vote by non-member: err = %v, want ErrNotMember", err)
	}
	if _, err := votes.CastVote(session.ID, owner.ID, combined[0].Ref, "sideways"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("bad direction: err = %v, want ErrInvalidDirection", err)
	}

	db.Model(&models.Session{}).Where("id = ?", session.ID).
		Update("status", models.SessionStatusCancelled)
	if _, err := votes.CastVote(session.ID, owner.ID, combined[0].Ref, models.DirectionRight); !errors.Is(err, ErrInvalidState) {
		t.Errorf("vote on cancelled session: err = %v, want ErrInvalidState", err)
	}

	// Nothing was written on any failure path.
	var voteCount int64
	db.Model(&models.Vote{}).Count(&voteCount)
	if voteCount != 0 {
		t.Errorf("failed casts left %d ledger rows", voteCount)
	}
	var session2 models.Session
	db.First(&session2, session.ID)
	if session2.TotalVotes != 0 {
		t.Errorf("failed casts bumped total_votes to %d", session2.TotalVotes)
	}
}

func TestCastVote_CountersMatchLedger(t *testing.T) {
	db := openTestDB(t)
	sessions, membership, votes, _ := newTestServices(db)

	owner := createTestUser(t, db, "owner")
	guest := createTestUser(t, db, "guest")
	list := createTestList(t, db, owner.ID, "I1", "I2", "I3")
	session, _ := sessions.CreateSession(list.ID, owner.ID)
	membership.Join(session.ID, guest.ID)
	combined := loadListItems(t, sessions, session.ID)

	votes.CastVote(session.ID, owner.ID, combined[0].Ref, models.DirectionRight)
	votes.CastVote(session.ID, guest.ID, combined[0].Ref, models.DirectionLeft)
	votes.CastVote(session.ID, owner.ID, combined[1].Ref, models.DirectionUp)

	var session2 models.Session
	db.First(&session2, session.ID)
	if session2.TotalVotes != 3 {
		t.Errorf("total_votes = %d, want 3", session2.TotalVotes)
	}

	var ownerMember, guestMember models.SessionMember
	db.Where("session_id = ? AND user_id = ?", session.ID, owner.ID).First(&ownerMember)
	db.Where("session_id = ? AND user_id = ?", session.ID, guest.ID).First(&guestMember)
	if ownerMember.VotesCount != 2 || guestMember.VotesCount != 1 {
		t.Errorf("votes_count = (%d, %d), want (2, 1)", ownerMember.VotesCount, guestMember.VotesCount)
	}

	drifts, err := votes.Reconcile(session.ID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(drifts) != 0 {
		t.Errorf("reconcile found drift on a clean session: %+v", drifts)
	}
}

func TestReconcile_DetectsDrift(t *testing.T) {
	db := openTestDB(t)
	sessions, _, votes, _ := newTestServices(db)

	owner := createTestUser(t, db, "owner")
	list := createTestList(t, db, owner.ID, "I1")
	session, _ := sessions.CreateSession(list.ID, owner.ID)
	combined := loadListItems(t, sessions, session.ID)
	votes.CastVote(session.ID, owner.ID, combined[0].Ref, models.DirectionRight)

	// Corrupt the denormalized counter behind the ledger's back.
	db.Model(&models.Session{}).Where("id = ?", session.ID).Update("total_votes", 7)

	drifts, err := votes.Reconcile(session.ID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(drifts) != 1 || drifts[0].Field != "total_votes" || drifts[0].Stored != 7 || drifts[0].Actual != 1 {
		t.Errorf("drifts = %+v, want one total_votes drift 7 != 1", drifts)
	}
}

func TestCastVote_SingleMemberSessionCompletes(t *testing.T) {
	db := openTestDB(t)
	sessions, _, votes, _ := newTestServices(db)

	owner := createTestUser(t, db, "owner")
	list := createTestList(t, db, owner.ID, "I1", "I2")
	session, _ := sessions.CreateSession(list.ID, owner.ID)
	combined := loadListItems(t, sessions, session.ID)

	completed, err := votes.CastVote(session.ID, owner.ID, combined[0].Ref, models.DirectionRight)
	if err != nil || completed {
		t.Fatalf("first vote: completed=%v err=%v, want false,nil", completed, err)
	}
	completed, err = votes.CastVote(session.ID, owner.ID, combined[1].Ref, models.DirectionLeft)
	if err != nil || !completed {
		t.Fatalf("final vote: completed=%v err=%v, want true,nil", completed, err)
	}

	counts, err := votes.GetVotes(session.ID)
	if err != nil {
		t.Fatalf("get votes: %v", err)
	}
	want := map[string]DirectionCounts{
		combined[0].Ref.Key(): {Right: 1},
		combined[1].Ref.Key(): {Left: 1},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %+v, want %+v", counts, want)
	}

	board, err := sessions.GetLeaderboard(session.ID)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if board[0].Name != "I1" || board[0].Score != 2 || board[1].Name != "I2" || board[1].Score != -1 {
		t.Errorf("leaderboard = %+v, want I1(2) then I2(-1)", board)
	}

	view, _ := sessions.GetSession(session.ID)
	if view.Phase != PhaseCompleted {
		t.Errorf("phase = %s, want %s", view.Phase, PhaseCompleted)
	}
	if view.Status != models.SessionStatusCompleted {
		t.Errorf("status = %s, want %s (persisted on the final vote)", view.Status, models.SessionStatusCompleted)
	}
	if !view.Members[0].IsDone {
		t.Error("sole member not marked done")
	}

	// Completed sessions accept no more votes.
	if _, err := votes.CastVote(session.ID, owner.ID, combined[0].Ref, models.DirectionRight); !errors.Is(err, ErrInvalidState) {
		t.Errorf("vote after completion: err = %v, want ErrInvalidState", err)
	}
}

func TestCastVote_RepeatedVotesAllCount(t *testing.T) {
	db := openTestDB(t)
	sessions, _, votes, _ := newTestServices(db)

	owner := createTestUser(t, db, "owner")
	list := createTestList(t, db, owner.ID, "I1", "I2")
	session, _ := sessions.CreateSession(list.ID, owner.ID)
	combined := loadListItems(t, sessions, session.ID)

	// No uniqueness per (user, item): swiping the same card twice counts
	// twice, and both swipes advance the member toward completion.
	votes.CastVote(session.ID, owner.ID, combined[0].Ref, models.DirectionRight)
	votes.CastVote(session.ID, owner.ID, combined[0].Ref, models.DirectionRight)

	counts, _ := votes.GetVotes(session.ID)
	if got := counts[combined[0].Ref.Key()]; got.Right != 2 {
		t.Errorf("right votes = %d, want 2", got.Right)
	}

	var m models.SessionMember
	db.Where("session_id = ? AND user_id = ?", session.ID, owner.ID).First(&m)
	if m.VotesCount != 2 {
		t.Errorf("votes_count = %d, want 2", m.VotesCount)
	}
}

func TestCastVote_AdhocItemsShareLedger(t *testing.T) {
	db := openTestDB(t)
	sessions, _, votes, adhoc := newTestServices(db)

	owner := createTestUser(t, db, "owner")
	list := createTestList(t, db, owner.ID, "I1", "I2")
	session, _ := sessions.CreateSession(list.ID, owner.ID)

	item, err := adhoc.AddItem(session.ID, owner.ID, models.ItemTypeMovie, "tmdb:949", "Heat", "")
	if err != nil {
		t.Fatalf("add adhoc item: %v", err)
	}

	combined := loadListItems(t, sessions, session.ID)
	if len(combined) != 3 {
		t.Fatalf("combined set size = %d, want 3", len(combined))
	}
	// Ad-hoc items come after the list's items, in insertion order.
	if combined[2].Ref != models.AdhocItemRef(item.ID) {
		t.Errorf("last combined item = %+v, want the adhoc ref", combined[2].Ref)
	}

	// Two list votes used to be personal completion; the new denominator
	// says otherwise.
	votes.CastVote(session.ID, owner.ID, combined[0].Ref, models.DirectionRight)
	votes.CastVote(session.ID, owner.ID, combined[1].Ref, models.DirectionRight)

	view, _ := sessions.GetSession(session.ID)
	if view.CombinedCount != 3 {
		t.Errorf("combined count = %d, want 3", view.CombinedCount)
	}
	if view.Members[0].IsDone {
		t.Error("member done despite unswiped adhoc item")
	}

	completed, err := votes.CastVote(session.ID, owner.ID, models.AdhocItemRef(item.ID), models.DirectionUp)
	if err != nil || !completed {
		t.Fatalf("adhoc vote: completed=%v err=%v, want true,nil", completed, err)
	}

	counts, _ := votes.GetVotes(session.ID)
	if got := counts[models.AdhocItemRef(item.ID).Key()]; got.Up != 1 {
		t.Errorf("adhoc up votes = %d, want 1", got.Up)
	}
}

func TestGetVotes_CommutativeAcrossMembers(t *testing.T) {
	cast := func(order []int) map[string]DirectionCounts {
		db := openTestDB(t)
		sessions, membership, votes, _ := newTestServices(db)

		owner := createTestUser(t, db, "owner")
		guest := createTestUser(t, db, "guest")
		list := createTestList(t, db, owner.ID, "I1", "I2")
		session, _ := sessions.CreateSession(list.ID, owner.ID)
		membership.Join(session.ID, guest.ID)
		combined := loadListItems(t, sessions, session.ID)

		all := []struct {
			user uint
			ref  models.ItemRef
			dir  string
		}{
			{owner.ID, combined[0].Ref, models.DirectionRight},
			{guest.ID, combined[0].Ref, models.DirectionLeft},
			{owner.ID, combined[1].Ref, models.DirectionUp},
			{guest.ID, combined[1].Ref, models.DirectionRight},
		}
		for _, i := range order {
			if _, err := votes.CastVote(session.ID, all[i].user, all[i].ref, all[i].dir); err != nil {
				t.Fatalf("cast vote %d: %v", i, err)
			}
		}

		counts, err := votes.GetVotes(session.ID)
		if err != nil {
			t.Fatalf("get votes: %v", err)
		}
		return counts
	}

	first := cast([]int{0, 1, 2, 3})
	second := cast([]int{3, 1, 0, 2})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("interleavings disagree: %+v vs %+v", first, second)
	}
}
