package profile

import (
	"database/sql"
	"sync"
	"time"

	"github.com/juegoya/juegoya/internal/sport"
)

// Profile is a player's self-service record. Optional skill fields use their zero value
// when unset.
type Profile struct {
	ID            string        `json:"id"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	WhatsApp      string        `json:"whatsapp"`
	Zone          string        `json:"zone,omitempty"`
	Level         int           `json:"level,omitempty"`
	PadelCategory string        `json:"padel_category,omitempty"`
	TennisLevel   int           `json:"tennis_level,omitempty"`
	Sports        []sport.Sport `json:"sports"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// UpsertInput is the body of a profile edit.
type UpsertInput struct {
	FirstName     string   `json:"first_name" validate:"required,max=50"`
	LastName      string   `json:"last_name" validate:"required,max=50"`
	WhatsApp      string   `json:"whatsapp" validate:"required"`
	Zone          string   `json:"zone" validate:"max=100"`
	Level         *int     `json:"level" validate:"omitempty,gte=1,lte=5"`
	PadelCategory *string  `json:"padel_category"`
	TennisLevel   *int     `json:"tennis_level" validate:"omitempty,gte=1,lte=5"`
	Sports        []string `json:"sports"`
}

// store handles profile persistence.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}
