package match

import (
	"database/sql"
	"sync"
	"time"

	"github.com/juegoya/juegoya/internal/sport"
	"github.com/shopspring/decimal"
)

// Status is the persisted lifecycle state of a match.
type Status string

const (
	StatusOpen     Status = "open"
	StatusCanceled Status = "canceled"
	StatusFinished Status = "finished"
)

func (s Status) valid() bool {
	return s == StatusOpen || s == StatusCanceled || s == StatusFinished
}

// Role is a roster entry's role.
type Role string

const (
	RoleSignedUp   Role = "signed_up"
	RoleSubstitute Role = "substitute"
)

func (r Role) valid() bool {
	return r == RoleSignedUp || r == RoleSubstitute
}

// Match is an organized game.
type Match struct {
	ID             string           `json:"id"`
	OrganizerID    string           `json:"organizer_id"`
	Sport          sport.Sport      `json:"sport"`
	StartsAt       time.Time        `json:"starts_at"`
	Zone           string           `json:"zone"`
	LocationText   string           `json:"location_text"`
	TotalSlots     int              `json:"total_slots"`
	PricePerPerson *decimal.Decimal `json:"price_per_person,omitempty"`
	PadelLevel     string           `json:"padel_level,omitempty"`
	Status         Status           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Player is one roster row. A nil CanceledAt means the participation is active.
type Player struct {
	ID          string     `json:"id"`
	MatchID     string     `json:"match_id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name,omitempty"`
	Role        Role       `json:"role"`
	JoinedAt    time.Time  `json:"joined_at"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

// Active reports whether the row is a current participation.
func (p Player) Active() bool { return p.CanceledAt == nil }

// ListItem is a match annotated for listings.
type ListItem struct {
	Match
	OrganizerName string `json:"organizer_name"`
	FilledSlots   int    `json:"filled_slots"`
	Substitutes   int    `json:"substitutes"`
	IsFull        bool   `json:"is_full"`
}

// CreateInput is the body of a create-match request.
type CreateInput struct {
	Sport          string           `json:"sport" validate:"required"`
	StartsAt       time.Time        `json:"starts_at" validate:"required"`
	Zone           string           `json:"zone" validate:"max=100"`
	LocationText   string           `json:"location_text" validate:"required,max=200"`
	TotalSlots     int              `json:"total_slots" validate:"gte=1,lte=100"`
	PricePerPerson *decimal.Decimal `json:"price_per_person"`
	PadelLevel     string           `json:"padel_level"`
}

// JoinResult describes a successful join.
type JoinResult struct {
	Role   Role   `json:"role"`
	Match  Match  `json:"-"`
	Roster Roster `json:"-"`
}

// store handles match and roster persistence.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}
