package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/sport"
	"github.com/shopspring/decimal"
)

const matchColumns = `m.id, m.organizer_id, m.sport, m.starts_at, m.zone, m.location_text, m.total_slots, m.price_per_person, m.padel_level, m.status, m.created_at`

const playerColumns = `mp.id, mp.match_id, mp.user_id, TRIM(COALESCE(p.first_name, '') || ' ' || COALESCE(p.last_name, '')), mp.role, mp.joined_at, mp.canceled_at, mp.confirmed_at`

// New creates a new match Store.
func New(db *sql.DB) Store {
	return NewWithClock(db, time.Now)
}

// NewWithClock creates a Store that reads the current time from now.
func NewWithClock(db *sql.DB, now func() time.Time) Store {
	return &store{db: db, now: now}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *store) Create(ctx context.Context, organizerID string, in CreateInput) (*Match, error) {
	if organizerID == "" {
		return nil, ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	organizer, err := getProfile(ctx, tx, organizerID)
	if err != nil && !errors.Is(err, profile.ErrNotFound) {
		return nil, err
	}
	if !profile.IsComplete(organizer) {
		return nil, ErrProfileIncomplete
	}

	now := s.now()
	m, err := in.Validate(now, organizer.Zone)
	if err != nil {
		return nil, err
	}
	m.ID = uuid.NewString()
	m.OrganizerID = organizerID
	m.CreatedAt = now.Truncate(time.Second)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (id, organizer_id, sport, starts_at, zone, location_text, total_slots, price_per_person, padel_level, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, m.ID, m.OrganizerID, string(m.Sport), m.StartsAt.Unix(), m.Zone, m.LocationText, m.TotalSlots,
		nullDecimal(m.PricePerPerson), nullString(m.PadelLevel), string(m.Status), m.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}
	log.Info("Created match", "matchID", m.ID, "organizer", organizerID, "sport", m.Sport, "startsAt", m.StartsAt)
	return &m, nil
}

func (s *store) Get(ctx context.Context, id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := getMatch(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *store) ListOpen(ctx context.Context, sp sport.Sport) ([]ListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + matchColumns + `,
			TRIM(COALESCE(o.first_name, '') || ' ' || COALESCE(o.last_name, '')),
			(SELECT COUNT(*) FROM match_players mp WHERE mp.match_id = m.id AND mp.role = 'signed_up' AND mp.canceled_at IS NULL),
			(SELECT COUNT(*) FROM match_players mp WHERE mp.match_id = m.id AND mp.role = 'substitute' AND mp.canceled_at IS NULL)
		FROM matches m
		LEFT JOIN profiles o ON o.id = m.organizer_id
		WHERE m.status = 'open' AND m.starts_at > ?`
	args := []any{s.now().Unix()}
	if sp != "" {
		query += ` AND m.sport = ?`
		args = append(args, string(sp))
	}
	query += ` ORDER BY m.starts_at ASC, m.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list open matches: %w", err)
	}
	defer rows.Close()

	items := []ListItem{}
	for rows.Next() {
		var (
			item ListItem
			r    matchRow
		)
		if err := rows.Scan(r.dest(&item.OrganizerName, &item.FilledSlots, &item.Substitutes)...); err != nil {
			return nil, fmt.Errorf("failed to scan open match: %w", err)
		}
		if item.Match, err = r.parse(); err != nil {
			return nil, err
		}
		item.IsFull = isFull(item.FilledSlots, item.TotalSlots)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open matches: %w", err)
	}
	return items, nil
}

func (s *store) Roster(ctx context.Context, matchID string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return getRoster(ctx, s.db, matchID)
}

func (s *store) ListForUser(ctx context.Context, userID string) ([]Match, []Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	participating, err := listMatches(ctx, s.db, `
		SELECT `+matchColumns+` FROM matches m
		JOIN match_players mp ON mp.match_id = m.id
		WHERE mp.user_id = ? AND mp.canceled_at IS NULL
		ORDER BY m.starts_at ASC`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list matches for %s: %w", userID, err)
	}
	organized, err := listMatches(ctx, s.db, `
		SELECT `+matchColumns+` FROM matches m
		WHERE m.organizer_id = ?
		ORDER BY m.starts_at DESC`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list matches organized by %s: %w", userID, err)
	}
	return participating, organized, nil
}

func (s *store) Join(ctx context.Context, matchID, userID string, preferSubstitute bool) (*JoinResult, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m, err := getMatch(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	p, err := getProfile(ctx, tx, userID)
	if err != nil && !errors.Is(err, profile.ErrNotFound) {
		return nil, err
	}
	var rows []Player
	if m != nil {
		if rows, err = getRoster(ctx, tx, matchID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	role, err := EvaluateJoin(m, p, rows, userID, preferSubstitute, now)
	if err != nil {
		return nil, err
	}

	// The role is derived again from the live count so a concurrent join that took the
	// last slot turns this one into a substitute instead of overfilling the match.
	entry := Player{ID: uuid.NewString(), MatchID: matchID, UserID: userID, JoinedAt: now.Truncate(time.Second)}
	if p != nil {
		entry.Name = p.FullName()
	}
	var saved string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO match_players (id, match_id, user_id, role, joined_at)
		SELECT ?, m.id, ?,
			CASE WHEN ? = 'signed_up' AND (
				SELECT COUNT(*) FROM match_players mp
				WHERE mp.match_id = m.id AND mp.role = 'signed_up' AND mp.canceled_at IS NULL
			) < m.total_slots THEN 'signed_up' ELSE 'substitute' END,
			?
		FROM matches m WHERE m.id = ?
		RETURNING role;
	`, entry.ID, userID, string(role), entry.JoinedAt.Unix(), matchID).Scan(&saved)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyJoined
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("failed to insert roster entry: %w", err)
	}
	entry.Role = Role(saved)
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit join: %w", err)
	}

	roster := Summarize(append(rows, entry), m.TotalSlots)
	log.Info("Player joined match", "matchID", matchID, "userID", userID, "role", entry.Role, "filled", roster.FilledSlots, "total", roster.TotalSlots)
	return &JoinResult{Role: entry.Role, Match: *m, Roster: roster}, nil
}

func (s *store) Leave(ctx context.Context, matchID, userID string) (*Player, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m, rows, err := getMatchWithRoster(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	entry, err := EvaluateLeave(m, rows, userID, now)
	if err != nil {
		return nil, err
	}
	canceledAt := now.Truncate(time.Second)
	res, err := tx.ExecContext(ctx, `UPDATE match_players SET canceled_at = ? WHERE id = ? AND canceled_at IS NULL;`, canceledAt.Unix(), entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel roster entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotJoined
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit leave: %w", err)
	}
	entry.CanceledAt = &canceledAt
	log.Info("Player left match", "matchID", matchID, "userID", userID, "role", entry.Role)
	return &entry, nil
}

func (s *store) Confirm(ctx context.Context, matchID, userID string) (*Player, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m, rows, err := getMatchWithRoster(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	entry, err := EvaluateConfirm(m, rows, userID, now)
	if err != nil {
		return nil, err
	}
	if entry.ConfirmedAt != nil {
		log.Debug("Attendance already confirmed", "matchID", matchID, "userID", userID)
		return &entry, nil
	}
	confirmedAt := now.Truncate(time.Second)
	if _, err := tx.ExecContext(ctx, `UPDATE match_players SET confirmed_at = ? WHERE id = ? AND confirmed_at IS NULL;`, confirmedAt.Unix(), entry.ID); err != nil {
		return nil, fmt.Errorf("failed to confirm roster entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit confirmation: %w", err)
	}
	entry.ConfirmedAt = &confirmedAt
	log.Info("Player confirmed attendance", "matchID", matchID, "userID", userID)
	return &entry, nil
}

func (s *store) Delete(ctx context.Context, matchID, requesterID string) (*Match, []Player, error) {
	if requesterID == "" {
		return nil, nil, ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m, rows, err := getMatchWithRoster(ctx, tx, matchID)
	if err != nil {
		return nil, nil, err
	}
	if err := EvaluateDelete(m, requesterID); err != nil {
		return nil, nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM match_players WHERE match_id = ?;`, matchID); err != nil {
		return nil, nil, fmt.Errorf("failed to delete roster of %s: %w", matchID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE id = ? AND organizer_id = ?;`, matchID, requesterID); err != nil {
		return nil, nil, fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit delete: %w", err)
	}
	active := make([]Player, 0, len(rows))
	for _, p := range rows {
		if p.Active() {
			active = append(active, p)
		}
	}
	log.Info("Deleted match", "matchID", matchID, "organizer", requesterID, "affectedPlayers", len(active))
	return m, active, nil
}

func getMatchWithRoster(ctx context.Context, q querier, matchID string) (*Match, []Player, error) {
	m, err := getMatch(ctx, q, matchID)
	if err != nil || m == nil {
		return m, nil, err
	}
	rows, err := getRoster(ctx, q, matchID)
	if err != nil {
		return nil, nil, err
	}
	return m, rows, nil
}

// getMatch returns nil, nil when the match does not exist.
func getMatch(ctx context.Context, q querier, id string) (*Match, error) {
	var r matchRow
	err := q.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches m WHERE m.id = ?`, id).Scan(r.dest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	m, err := r.parse()
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func getProfile(ctx context.Context, q querier, id string) (*profile.Profile, error) {
	row := q.QueryRowContext(ctx, `SELECT `+profile.Columns+` FROM profiles WHERE id = ?`, id)
	p, err := profile.ScanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	return p, nil
}

func getRoster(ctx context.Context, q querier, matchID string) ([]Player, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+playerColumns+`
		FROM match_players mp
		LEFT JOIN profiles p ON p.id = mp.user_id
		WHERE mp.match_id = ?
		ORDER BY mp.joined_at ASC, mp.rowid ASC`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster of %s: %w", matchID, err)
	}
	defer rows.Close()

	out := []Player{}
	for rows.Next() {
		var (
			p                   Player
			role                string
			joined              int64
			canceled, confirmed sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.MatchID, &p.UserID, &p.Name, &role, &joined, &canceled, &confirmed); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		p.Role = Role(role)
		if !p.Role.valid() {
			return nil, fmt.Errorf("roster entry %s has unknown role %q", p.ID, role)
		}
		p.JoinedAt = time.Unix(joined, 0)
		p.CanceledAt = unixPtr(canceled)
		p.ConfirmedAt = unixPtr(confirmed)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster of %s: %w", matchID, err)
	}
	return out, nil
}

func listMatches(ctx context.Context, q querier, query string, args ...any) ([]Match, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Match{}
	for rows.Next() {
		var r matchRow
		if err := rows.Scan(r.dest()...); err != nil {
			return nil, err
		}
		m, err := r.parse()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// matchRow receives a matchColumns row before it is parsed into a Match.
type matchRow struct {
	m                 Match
	sport, status     string
	startsAt, created int64
	price, padelLevel sql.NullString
}

func (r *matchRow) dest(extra ...any) []any {
	return append([]any{&r.m.ID, &r.m.OrganizerID, &r.sport, &r.startsAt, &r.m.Zone, &r.m.LocationText,
		&r.m.TotalSlots, &r.price, &r.padelLevel, &r.status, &r.created}, extra...)
}

// parse rejects rows with values outside the known vocabulary.
func (r *matchRow) parse() (Match, error) {
	m := r.m
	m.Sport = sport.Sport(r.sport)
	if !m.Sport.Valid() {
		return Match{}, fmt.Errorf("match %s has unknown sport %q", m.ID, r.sport)
	}
	m.Status = Status(r.status)
	if !m.Status.valid() {
		return Match{}, fmt.Errorf("match %s has unknown status %q", m.ID, r.status)
	}
	m.StartsAt = time.Unix(r.startsAt, 0)
	m.CreatedAt = time.Unix(r.created, 0)
	m.PadelLevel = r.padelLevel.String
	if r.price.Valid && r.price.String != "" {
		price, err := decimal.NewFromString(r.price.String)
		if err != nil {
			return Match{}, fmt.Errorf("match %s has malformed price: %w", m.ID, err)
		}
		m.PricePerPerson = &price
	}
	return m, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func unixPtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.Unix(n.Int64, 0)
	return &t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
