package match

import (
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/sport"
)

// maxCategoryGap is how many ladder steps a padel player may be away from the match level.
const maxCategoryGap = 1

// CheckLevel gates joins by skill. Only padel matches with a level set are gated;
// football and tennis levels are informational and never block a join.
func CheckLevel(m *Match, p *profile.Profile) error {
	if m.Sport != sport.Padel || m.PadelLevel == "" {
		return nil
	}
	if p == nil || p.PadelCategory == "" {
		return ErrSportProfileIncomplete
	}
	want, err := sport.ParseCategory(m.PadelLevel)
	if err != nil {
		return ErrLevelMismatch
	}
	have, err := sport.ParseCategory(p.PadelCategory)
	if err != nil {
		return ErrSportProfileIncomplete
	}
	gap := want - have
	if gap < 0 {
		gap = -gap
	}
	if gap > maxCategoryGap {
		return ErrLevelMismatch
	}
	return nil
}
