package match

import (
	"time"

	"github.com/juegoya/juegoya/internal/profile"
)

// EvaluateJoin decides whether userID may join m and with which role. Checks run in the
// order clients see them: session, match availability, profile, duplicate, skill gate.
// A nil m means the match does not exist.
func EvaluateJoin(m *Match, p *profile.Profile, rows []Player, userID string, preferSubstitute bool, now time.Time) (Role, error) {
	if userID == "" {
		return "", ErrNotAuthenticated
	}
	if m == nil || !m.AcceptsChanges(now) {
		return "", ErrUnavailable
	}
	if !profile.IsComplete(p) {
		return "", ErrProfileIncomplete
	}
	if _, ok := ActiveFor(rows, userID); ok {
		return "", ErrAlreadyJoined
	}
	if err := CheckLevel(m, p); err != nil {
		return "", err
	}
	if preferSubstitute || Summarize(rows, m.TotalSlots).IsFull {
		return RoleSubstitute, nil
	}
	return RoleSignedUp, nil
}

// EvaluateLeave returns the active row userID would cancel.
func EvaluateLeave(m *Match, rows []Player, userID string, now time.Time) (Player, error) {
	if userID == "" {
		return Player{}, ErrNotAuthenticated
	}
	if m == nil || !m.AcceptsChanges(now) {
		return Player{}, ErrUnavailable
	}
	p, ok := ActiveFor(rows, userID)
	if !ok {
		return Player{}, ErrNotJoined
	}
	return p, nil
}

// EvaluateConfirm returns the row userID would confirm. A row that is already confirmed
// is returned as is; confirming twice is not an error.
func EvaluateConfirm(m *Match, rows []Player, userID string, now time.Time) (Player, error) {
	if userID == "" {
		return Player{}, ErrNotAuthenticated
	}
	if m == nil || !m.AcceptsChanges(now) {
		return Player{}, ErrUnavailable
	}
	p, ok := ActiveFor(rows, userID)
	if !ok {
		return Player{}, ErrNotJoined
	}
	if p.Role != RoleSignedUp {
		return Player{}, ErrNotSignedUp
	}
	if !m.ConfirmWindowOpen(now) {
		return Player{}, ErrConfirmUnavailable
	}
	return p, nil
}

// EvaluateDelete checks that requesterID organizes m.
func EvaluateDelete(m *Match, requesterID string) error {
	if requesterID == "" {
		return ErrNotAuthenticated
	}
	if m == nil {
		return ErrNotFound
	}
	if m.OrganizerID != requesterID {
		return ErrForbidden
	}
	return nil
}

// Viewer is what a given user can do on a match page.
type Viewer struct {
	Participation     *Player `json:"participation,omitempty"`
	IsOrganizer       bool    `json:"is_organizer"`
	ProfileComplete   bool    `json:"profile_complete"`
	CanJoin           bool    `json:"can_join"`
	CanJoinAsPlayer   bool    `json:"can_join_as_player"`
	CanConfirm        bool    `json:"can_confirm"`
	ConfirmWindowOpen bool    `json:"confirm_window_open"`
	// JoinBlockedBy is the code EvaluateJoin would reject with, if any.
	JoinBlockedBy string `json:"join_blocked_by,omitempty"`
}

// ViewFor derives the actions available to userID on m. An empty userID is an anonymous
// visitor.
func ViewFor(m *Match, p *profile.Profile, rows []Player, userID string, now time.Time) Viewer {
	v := Viewer{
		IsOrganizer:       userID != "" && m.OrganizerID == userID,
		ProfileComplete:   profile.IsComplete(p),
		ConfirmWindowOpen: m.ConfirmWindowOpen(now),
	}
	if part, ok := ActiveFor(rows, userID); ok {
		v.Participation = &part
	}
	role, err := EvaluateJoin(m, p, rows, userID, false, now)
	if err != nil {
		v.JoinBlockedBy = Code(err)
	} else {
		v.CanJoin = true
		v.CanJoinAsPlayer = role == RoleSignedUp
	}
	if part, err := EvaluateConfirm(m, rows, userID, now); err == nil {
		v.CanConfirm = part.ConfirmedAt == nil
	}
	return v
}
