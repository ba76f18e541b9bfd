package match

import (
	"context"

	"github.com/juegoya/juegoya/internal/sport"
)

// Store persists matches and their rosters. Every roster mutation runs its checks and
// its write in one transaction.
type Store interface {
	Create(ctx context.Context, organizerID string, in CreateInput) (*Match, error)
	Get(ctx context.Context, id string) (*Match, error)
	// ListOpen returns open, not-yet-started matches, soonest first. An empty sport lists all.
	ListOpen(ctx context.Context, s sport.Sport) ([]ListItem, error)
	// Roster returns every participation row for a match, canceled ones included.
	Roster(ctx context.Context, matchID string) ([]Player, error)
	// ListForUser returns the matches userID actively takes part in and the ones they organize.
	ListForUser(ctx context.Context, userID string) (participating, organized []Match, err error)
	Join(ctx context.Context, matchID, userID string, preferSubstitute bool) (*JoinResult, error)
	Leave(ctx context.Context, matchID, userID string) (*Player, error)
	Confirm(ctx context.Context, matchID, userID string) (*Player, error)
	// Delete removes a match and its roster. It returns the deleted match and the rows
	// that were active, so participants can be told.
	Delete(ctx context.Context, matchID, requesterID string) (*Match, []Player, error)
}
