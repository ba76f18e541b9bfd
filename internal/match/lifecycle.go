package match

import "time"

// ConfirmWindow is how long before kickoff attendance can be confirmed.
const ConfirmWindow = 2 * time.Hour

// IsPast reports whether the match has started.
func (m *Match) IsPast(now time.Time) bool {
	return !now.Before(m.StartsAt)
}

// AcceptsChanges reports whether roster mutations are allowed: the match must be open
// and not yet started, whatever the persisted status says.
func (m *Match) AcceptsChanges(now time.Time) bool {
	return m.Status == StatusOpen && !m.IsPast(now)
}

// DisplayStatus is the status shown to players. "finished" is derived from the clock and
// never written.
func (m *Match) DisplayStatus(now time.Time) Status {
	if m.Status == StatusOpen && m.IsPast(now) {
		return StatusFinished
	}
	return m.Status
}

// ConfirmWindowOpen reports whether now is inside the pre-match confirmation window.
func (m *Match) ConfirmWindowOpen(now time.Time) bool {
	return !now.Before(m.StartsAt.Add(-ConfirmWindow)) && now.Before(m.StartsAt)
}
