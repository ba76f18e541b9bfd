package match

import "sort"

// Roster is the derived view of a match's participation rows.
type Roster struct {
	// Players are the active signed_up rows, in join order.
	Players []Player `json:"players"`
	// Substitutes are the active substitute rows, in join order.
	Substitutes []Player `json:"substitutes"`
	// Confirmed is the subset of Players that confirmed attendance.
	Confirmed   []Player `json:"confirmed"`
	FilledSlots int      `json:"filled_slots"`
	TotalSlots  int      `json:"total_slots"`
	IsFull      bool     `json:"is_full"`
}

// Summarize buckets roster rows for a match with totalSlots capacity. Canceled rows are
// history and land in no bucket.
func Summarize(rows []Player, totalSlots int) Roster {
	ordered := make([]Player, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].JoinedAt.Before(ordered[j].JoinedAt)
	})

	r := Roster{
		Players:     []Player{},
		Substitutes: []Player{},
		Confirmed:   []Player{},
		TotalSlots:  totalSlots,
	}
	for _, p := range ordered {
		if !p.Active() {
			continue
		}
		switch p.Role {
		case RoleSignedUp:
			r.Players = append(r.Players, p)
			if p.ConfirmedAt != nil {
				r.Confirmed = append(r.Confirmed, p)
			}
		case RoleSubstitute:
			r.Substitutes = append(r.Substitutes, p)
		}
	}
	r.FilledSlots = len(r.Players)
	r.IsFull = isFull(r.FilledSlots, totalSlots)
	return r
}

// OpenSlots returns how many signed_up places remain.
func (r Roster) OpenSlots() int {
	if r.IsFull {
		return 0
	}
	return r.TotalSlots - r.FilledSlots
}

// ActiveFor returns userID's active row, if any.
func ActiveFor(rows []Player, userID string) (Player, bool) {
	for _, p := range rows {
		if p.UserID == userID && p.Active() {
			return p, true
		}
	}
	return Player{}, false
}

func isFull(filled, total int) bool {
	return filled >= total
}
