package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juegoya/juegoya/internal/match"
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/sport"
	"golang.org/x/sync/errgroup"
)

type profileResponse struct {
	Profile  *profile.Profile `json:"profile"`
	Complete bool             `json:"complete"`
}

func GetMyProfileHandler(profiles profile.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := profiles.Get(r.Context(), userID(r))
		if err != nil && !errors.Is(err, profile.ErrNotFound) {
			WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, profileResponse{Profile: p, Complete: profile.IsComplete(p)})
	}
}

func PutMyProfileHandler(profiles profile.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in profile.UpsertInput
		if err := readJSON(w, r, &in); err != nil {
			WriteError(w, r, err)
			return
		}
		p, err := profiles.Upsert(r.Context(), userID(r), in)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, profileResponse{Profile: p, Complete: profile.IsComplete(p)})
	}
}

type sportLevel struct {
	Sport      sport.Sport `json:"sport"`
	LevelLabel string      `json:"level_label"`
}

type playerView struct {
	ID          string       `json:"id"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Zone        string       `json:"zone,omitempty"`
	Sports      []sportLevel `json:"sports"`
	WhatsAppURL string       `json:"whatsapp_url,omitempty"`
}

func GetPlayerHandler(profiles profile.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := profiles.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, r, err)
			return
		}
		view := playerView{
			ID:          p.ID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Zone:        p.Zone,
			Sports:      []sportLevel{},
			WhatsAppURL: match.ContactURL(p.WhatsApp),
		}
		for _, s := range p.Sports {
			view.Sports = append(view.Sports, sportLevel{Sport: s, LevelLabel: p.LevelLabel(s)})
		}
		writeJSON(w, http.StatusOK, view)
	}
}

type myMatchesResponse struct {
	match.Mine
	ProfileComplete bool `json:"profile_complete"`
}

func MyMatchesHandler(matches match.Store, profiles profile.Store, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := userID(r)
		var (
			participating, organized []match.Match
			me                       *profile.Profile
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			participating, organized, err = matches.ListForUser(ctx, uid)
			return err
		})
		g.Go(func() error {
			p, err := profiles.Get(ctx, uid)
			if errors.Is(err, profile.ErrNotFound) {
				return nil
			}
			me = p
			return err
		})
		if err := g.Wait(); err != nil {
			WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, myMatchesResponse{
			Mine:            match.SummarizeMine(participating, organized, now()),
			ProfileComplete: profile.IsComplete(me),
		})
	}
}
