package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/juegoya/juegoya/internal/sport"
)

// ErrNotFound is returned when no profile exists for an id.
var ErrNotFound = errors.New("profile not found")

// Columns is the column list ScanRow expects, in order.
const Columns = `id, first_name, last_name, whatsapp, zone, level, padel_category, tennis_level, sports, created_at, updated_at`

// New creates a new profile Store.
func New(db *sql.DB) Store {
	return NewWithClock(db, time.Now)
}

// NewWithClock creates a Store that reads the current time from now.
func NewWithClock(db *sql.DB, now func() time.Time) Store {
	return &store{db: db, now: now}
}

func (s *store) Get(ctx context.Context, id string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+Columns+` FROM profiles WHERE id = ?`, id)
	p, err := ScanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	return p, nil
}

func (s *store) Upsert(ctx context.Context, id string, in UpsertInput) (*Profile, error) {
	p, err := in.Validate()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sportsJSON, err := json.Marshal(p.Sports)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sports: %w", err)
	}
	now := s.now().Unix()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, first_name, last_name, whatsapp, zone, level, padel_category, tennis_level, sports, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			whatsapp = excluded.whatsapp,
			zone = excluded.zone,
			level = excluded.level,
			padel_category = excluded.padel_category,
			tennis_level = excluded.tennis_level,
			sports = excluded.sports,
			updated_at = excluded.updated_at;
	`, id, p.FirstName, p.LastName, p.WhatsApp, nullString(p.Zone), nullInt(p.Level),
		nullString(p.PadelCategory), nullInt(p.TennisLevel), string(sportsJSON), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile %s: %w", id, err)
	}
	log.Info("Upserted profile", "userID", id, "sports", p.Sports)

	row := s.db.QueryRowContext(ctx, `SELECT `+Columns+` FROM profiles WHERE id = ?`, id)
	saved, err := ScanRow(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read back profile %s: %w", id, err)
	}
	return saved, nil
}

// ScanRow scans a row selected with Columns. Rows are parsed strictly: an unknown sport
// or malformed sports list is an error rather than partial data.
func ScanRow(scanner interface{ Scan(...any) error }) (*Profile, error) {
	var (
		p                   Profile
		zone, padel, sports sql.NullString
		level, tennis       sql.NullInt64
		createdAt, updated  int64
	)
	err := scanner.Scan(&p.ID, &p.FirstName, &p.LastName, &p.WhatsApp, &zone, &level, &padel, &tennis, &sports, &createdAt, &updated)
	if err != nil {
		return nil, err
	}
	p.Zone = zone.String
	p.Level = int(level.Int64)
	p.PadelCategory = padel.String
	p.TennisLevel = int(tennis.Int64)
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updated, 0)
	p.Sports = []sport.Sport{}
	if sports.Valid && sports.String != "" {
		if err := json.Unmarshal([]byte(sports.String), &p.Sports); err != nil {
			return nil, fmt.Errorf("profile %s has malformed sports: %w", p.ID, err)
		}
	}
	for _, s := range p.Sports {
		if !s.Valid() {
			return nil, fmt.Errorf("profile %s has unknown sport %q", p.ID, s)
		}
	}
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
