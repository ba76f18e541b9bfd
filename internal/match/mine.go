package match

import (
	"sort"
	"time"

	"github.com/juegoya/juegoya/internal/sport"
)

// Mine is a player's own matches, split for the "my matches" page.
type Mine struct {
	Upcoming  []Match   `json:"upcoming"`
	Past      []Match   `json:"past"`
	Organized []Match   `json:"organized"`
	Stats     MineStats `json:"stats"`
}

// MineStats summarizes a player's history.
type MineStats struct {
	TotalMatches     int    `json:"total_matches"`
	OrganizedMatches int    `json:"organized_matches"`
	FavoriteSport    string `json:"favorite_sport"`
	SportsPlayed     int    `json:"sports_played"`
}

// NoFavorite is reported when a player has no past matches.
const NoFavorite = "N/A"

// SummarizeMine splits the matches a player takes part in and the ones they organize.
func SummarizeMine(participating, organized []Match, now time.Time) Mine {
	out := Mine{Upcoming: []Match{}, Past: []Match{}, Organized: []Match{}}

	for _, m := range participating {
		switch {
		case m.Status == StatusOpen && !m.IsPast(now):
			out.Upcoming = append(out.Upcoming, m)
		case m.IsPast(now) || m.Status == StatusFinished:
			out.Past = append(out.Past, m)
		}
	}
	for _, m := range organized {
		if m.Status != StatusCanceled {
			out.Organized = append(out.Organized, m)
		}
	}
	sort.SliceStable(out.Upcoming, func(i, j int) bool { return out.Upcoming[i].StartsAt.Before(out.Upcoming[j].StartsAt) })
	sort.SliceStable(out.Past, func(i, j int) bool { return out.Past[i].StartsAt.After(out.Past[j].StartsAt) })
	sort.SliceStable(out.Organized, func(i, j int) bool { return out.Organized[i].StartsAt.After(out.Organized[j].StartsAt) })

	played := map[string]Match{}
	for _, list := range [][]Match{participating, organized} {
		for _, m := range list {
			if m.IsPast(now) && m.Status != StatusCanceled {
				played[m.ID] = m
			}
		}
	}
	counts := map[sport.Sport]int{}
	for _, m := range played {
		counts[m.Sport]++
	}

	out.Stats = MineStats{
		TotalMatches:     len(played),
		OrganizedMatches: len(organized),
		FavoriteSport:    NoFavorite,
		SportsPlayed:     len(counts),
	}
	best := 0
	for _, s := range sport.All {
		if counts[s] > best {
			best = counts[s]
			out.Stats.FavoriteSport = string(s)
		}
	}
	return out
}
