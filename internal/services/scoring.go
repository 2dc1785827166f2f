package services

import (
	"sort"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"
)

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// DirectionCounts holds the per-direction tallies for one item.
type DirectionCounts struct {
	Up    int `json:"up"`
	Right int `json:"right"`
	Left  int `json:"left"`
}

// CombinedItem is one candidate of the combined item set: a list item or an
// ad-hoc session item, already resolved to display metadata. Order of the
// combined set is fixed (list order, then ad-hoc items) and is the tie-break
// for ranking.
type CombinedItem struct {
	Ref      models.ItemRef `json:"ref"`
	ItemType string         `json:"item_type"`
	Name     string         `json:"name"`
	ImageURL string         `json:"image_url,omitempty"`
}

type LeaderboardEntry struct {
	Position int             `json:"position"`
	ItemKey  string          `json:"item_key"`
	ItemType string          `json:"item_type"`
	Name     string          `json:"name"`
	ImageURL string          `json:"image_url,omitempty"`
	Score    int             `json:"score"`
	Counts   DirectionCounts `json:"counts"`
	// Saved marks items at least one member swiped up on ("save to my
	// list"); up votes never enter the score.
	Saved bool `json:"saved"`
}

// CountVotes tallies a vote ledger into per-item direction counts, keyed by
// the namespaced wire key. Pure aggregation: commutative, order-independent.
func (s *ScoringService) CountVotes(votes []models.Vote) map[string]DirectionCounts {
	counts := make(map[string]DirectionCounts)
	for _, v := range votes {
		key := v.ItemRef().Key()
		c := counts[key]
		switch v.Direction {
		case models.DirectionUp:
			c.Up++
		case models.DirectionRight:
			c.Right++
		case models.DirectionLeft:
			c.Left++
		}
		counts[key] = c
	}
	return counts
}

// Score is the ranking metric: want-to-do counts double, passes subtract.
func (s *ScoringService) Score(c DirectionCounts) int {
	return c.Right*2 - c.Left
}

// Rank sorts the combined item set by score, descending, ties broken by the
// set's own order. Items nobody voted on rank with score 0.
func (s *ScoringService) Rank(items []CombinedItem, counts map[string]DirectionCounts) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(items))
	for i, item := range items {
		c := counts[item.Ref.Key()]
		entries[i] = LeaderboardEntry{
			ItemKey:  item.Ref.Key(),
			ItemType: item.ItemType,
			Name:     item.Name,
			ImageURL: item.ImageURL,
			Score:    s.Score(c),
			Counts:   c,
			Saved:    c.Up > 0,
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Score > entries[b].Score
	})

	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}
