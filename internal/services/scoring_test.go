package services

import (
	"reflect"
	"testing"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"
)

func vote(userID uint, ref models.ItemRef, direction string) models.Vote {
	return models.Vote{
		SessionID: 1,
		UserID:    userID,
		ItemKind:  ref.Kind,
		ItemID:    ref.ID,
		Direction: direction,
	}
}

func TestCountVotes_GroupsByItemAndDirection(t *testing.T) {
	scoring := NewScoringService()

	votes := []models.Vote{
		vote(1, models.ListItemRef(10), models.DirectionRight),
		vote(2, models.ListItemRef(10), models.DirectionRight),
		vote(1, models.ListItemRef(11), models.DirectionLeft),
		vote(2, models.ListItemRef(11), models.DirectionUp),
		vote(1, models.AdhocItemRef(10), models.DirectionRight),
	}

	counts := scoring.CountVotes(votes)

	if got := counts["10"]; got != (DirectionCounts{Right: 2}) {
		t.Errorf("counts[10] = %+v, want {Right:2}", got)
	}
	if got := counts["11"]; got != (DirectionCounts{Left: 1, Up: 1}) {
		t.Errorf("counts[11] = %+v, want {Left:1 Up:1}", got)
	}
	// The ad-hoc item shares the numeric id 10 but lives in its own
	// namespace.
	if got := counts["session_10"]; got != (DirectionCounts{Right: 1}) {
		t.Errorf("counts[session_10] = %+v, want {Right:1}", got)
	}
}

func TestCountVotes_OrderIndependent(t *testing.T) {
	scoring := NewScoringService()

	votes := []models.Vote{
		vote(1, models.ListItemRef(1), models.DirectionRight),
		vote(2, models.ListItemRef(1), models.DirectionLeft),
		vote(1, models.ListItemRef(2), models.DirectionUp),
		vote(2, models.ListItemRef(2), models.DirectionRight),
	}
	reversed := make([]models.Vote, len(votes))
	for i, v := range votes {
		reversed[len(votes)-1-i] = v
	}

	if !reflect.DeepEqual(scoring.CountVotes(votes), scoring.CountVotes(reversed)) {
		t.Error("aggregation differs across interleavings of the same multiset")
	}
}

func TestScore(t *testing.T) {
	scoring := NewScoringService()

	cases := []struct {
		counts DirectionCounts
		want   int
	}{
		{DirectionCounts{Right: 1}, 2},
		{DirectionCounts{Left: 1}, -1},
		{DirectionCounts{Right: 2, Left: 1}, 3},
		{DirectionCounts{Up: 5}, 0}, // up votes never enter the score
		{DirectionCounts{}, 0},
	}
	for _, c := range cases {
		if got := scoring.Score(c.counts); got != c.want {
			t.Errorf("Score(%+v) = %d, want %d", c.counts, got, c.want)
		}
	}
}

func TestRank_SingleVoterOrdering(t *testing.T) {
	scoring := NewScoringService()

	items := []CombinedItem{
		{Ref: models.ListItemRef(1), Name: "I1"},
		{Ref: models.ListItemRef(2), Name: "I2"},
	}
	counts := map[string]DirectionCounts{
		"1": {Right: 1},
		"2": {Left: 1},
	}

	entries := scoring.Rank(items, counts)

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "I1" || entries[0].Score != 2 || entries[0].Position != 1 {
		t.Errorf("first entry = %+v, want I1 with score 2 at position 1", entries[0])
	}
	if entries[1].Name != "I2" || entries[1].Score != -1 || entries[1].Position != 2 {
		t.Errorf("second entry = %+v, want I2 with score -1 at position 2", entries[1])
	}
}

func TestRank_StableTieBreak(t *testing.T) {
	scoring := NewScoringService()

	items := []CombinedItem{
		{Ref: models.ListItemRef(1), Name: "first"},
		{Ref: models.ListItemRef(2), Name: "second"},
		{Ref: models.ListItemRef(3), Name: "third"},
	}
	// All tied at score 0: combined-set order must win.
	entries := scoring.Rank(items, map[string]DirectionCounts{})

	for i, want := range []string{"first", "second", "third"} {
		if entries[i].Name != want {
			t.Errorf("tied entry %d = %s, want %s", i, entries[i].Name, want)
		}
	}
}

func TestRank_Idempotent(t *testing.T) {
	scoring := NewScoringService()

	items := []CombinedItem{
		{Ref: models.ListItemRef(1), Name: "a"},
		{Ref: models.AdhocItemRef(1), Name: "b"},
		{Ref: models.ListItemRef(2), Name: "c"},
	}
	counts := map[string]DirectionCounts{
		"1":         {Right: 1, Left: 2},
		"session_1": {Right: 3},
		"2":         {Up: 4},
	}

	first := scoring.Rank(items, counts)
	second := scoring.Rank(items, counts)

	if !reflect.DeepEqual(first, second) {
		t.Error("ranking the same inputs twice produced different orders")
	}
}

func TestRank_SavedBucket(t *testing.T) {
	scoring := NewScoringService()

	items := []CombinedItem{
		{Ref: models.ListItemRef(1), Name: "saved"},
		{Ref: models.ListItemRef(2), Name: "not saved"},
	}
	counts := map[string]DirectionCounts{
		"1": {Up: 1, Left: 1},
	}

	entries := scoring.Rank(items, counts)

	for _, e := range entries {
		if e.Name == "saved" && !e.Saved {
			t.Error("item with an up vote not marked saved")
		}
		if e.Name == "not saved" && e.Saved {
			t.Error("item without up votes marked saved")
		}
	}
}
