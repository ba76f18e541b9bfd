package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/juegoya/juegoya/internal/database"
	"github.com/juegoya/juegoya/internal/match"
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/sport"
	"github.com/shopspring/decimal"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "juegoya.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for _, key := range []string{"DB_NAME", "MIGRATIONS_DIR", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			config[key] = value
		}
	}
	return config
}

type demoPlayer struct {
	id    string
	first string
	last  string
	zone  string
	in    profile.UpsertInput
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
func pricePtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var zones = []string{"Pocitos", "Cordón", "Malvín", "Punta Carretas", "Centro"}

func demoPlayers(n int) []demoPlayer {
	firsts := []string{"Ana", "Bruno", "Carla", "Diego", "Elena", "Facundo", "Gabriela", "Hernán", "Inés", "Joaquín"}
	lasts := []string{"Pérez", "Rodríguez", "González", "Fernández", "López", "Martínez", "Silva", "Sosa"}

	players := make([]demoPlayer, 0, n)
	for i := 0; i < n; i++ {
		p := demoPlayer{
			id:    fmt.Sprintf("seed-player-%02d", i+1),
			first: firsts[i%len(firsts)],
			last:  lasts[i%len(lasts)],
			zone:  zones[i%len(zones)],
		}
		p.in = profile.UpsertInput{
			FirstName: p.first,
			LastName:  p.last,
			WhatsApp:  fmt.Sprintf("+598 99 %03d %03d", rand.Intn(1000), rand.Intn(1000)),
			Zone:      p.zone,
			Sports:    []string{string(sport.Football)},
			Level:     intPtr(1 + rand.Intn(5)),
		}
		switch i % 3 {
		case 1:
			p.in.Sports = append(p.in.Sports, string(sport.Padel))
			p.in.PadelCategory = strPtr(sport.PadelLadder[3+rand.Intn(4)])
		case 2:
			p.in.Sports = append(p.in.Sports, string(sport.Tennis))
			p.in.TennisLevel = intPtr(1 + rand.Intn(5))
		}
		players = append(players, p)
	}
	return players
}

// nextSlot returns a start time daysAhead days from now at hour:00 or hour:30.
func nextSlot(daysAhead, hour int, half bool) time.Time {
	y, m, d := time.Now().AddDate(0, 0, daysAhead).Date()
	minute := 0
	if half {
		minute = 30
	}
	return time.Date(y, m, d, hour, minute, 0, 0, time.Local)
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	log.Info("Successfully connected to the database.")

	ctx := context.Background()
	profiles := profile.New(db)
	matches := match.New(db)

	players := demoPlayers(16)
	for _, p := range players {
		if _, err := profiles.Upsert(ctx, p.id, p.in); err != nil {
			log.Fatalf("Failed to upsert demo player %s: %s", p.id, err)
		}
	}
	log.Info("Ensured demo players exist.", "count", len(players))

	inputs := []match.CreateInput{
		{Sport: string(sport.Football), StartsAt: nextSlot(1, 20, false), LocationText: "Complejo Fútbol Pocitos, cancha 2", TotalSlots: 10, PricePerPerson: pricePtr("250")},
		{Sport: string(sport.Football), StartsAt: nextSlot(2, 21, true), LocationText: "Parque Batlle", TotalSlots: 10},
		{Sport: string(sport.Padel), StartsAt: nextSlot(3, 19, false), LocationText: "Pádel Club Malvín", TotalSlots: 4, PricePerPerson: pricePtr("400"), PadelLevel: "5ta"},
		{Sport: string(sport.Tennis), StartsAt: nextSlot(5, 9, true), LocationText: "Club Carrasco Lawn Tennis", TotalSlots: 2},
		{Sport: string(sport.Football), StartsAt: nextSlot(7, 18, false), LocationText: "Cancha del Cordón", TotalSlots: 10, PricePerPerson: pricePtr("200")},
	}

	start := time.Now()
	created, joined := 0, 0
	for i, in := range inputs {
		organizer := players[(i*3)%len(players)]
		m, err := matches.Create(ctx, organizer.id, in)
		if err != nil {
			log.Fatalf("Failed to create demo match: %s", err)
		}
		created++

		// Fill about two thirds of the roster; later joiners land on the bench.
		target := m.TotalSlots*2/3 + 1
		for _, p := range rand.Perm(len(players))[:target] {
			res, err := matches.Join(ctx, m.ID, players[p].id, false)
			var matchErr *match.Error
			if errors.As(err, &matchErr) {
				log.Debug("Skipped demo join", "matchID", m.ID, "player", players[p].id, "code", matchErr.Code)
				continue
			}
			if err != nil {
				log.Fatalf("Failed to join demo match: %s", err)
			}
			joined++
			log.Debug("Joined demo match", "matchID", m.ID, "player", players[p].id, "role", res.Role)
		}
	}

	log.Info("Successfully seeded demo matches.", "matches", created, "joins", joined, "duration", time.Since(start))
}
