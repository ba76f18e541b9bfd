package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/juegoya/juegoya/internal/match"
	"github.com/juegoya/juegoya/internal/metrics"
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/pubsub"
	"github.com/juegoya/juegoya/internal/sport"
	"github.com/juegoya/juegoya/internal/validation"
	"golang.org/x/sync/errgroup"
)

// Clock returns the current time.
type Clock func() time.Time

func ListMatchesHandler(matches match.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := sport.Sport(r.URL.Query().Get("sport"))
		if filter != "" && !filter.Valid() {
			verr := &validation.Error{}
			verr.Add("sport", "deporte inválido")
			WriteError(w, r, verr)
			return
		}
		items, err := matches.ListOpen(r.Context(), filter)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		log.Debug("Listed open matches", "sport", filter, "count", len(items))
		writeJSON(w, http.StatusOK, envelope{"matches": items})
	}
}

func CreateMatchHandler(matches match.Store, m metrics.Metrics, events pubsub.PubSubClient, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in match.CreateInput
		if err := readJSON(w, r, &in); err != nil {
			WriteError(w, r, err)
			return
		}
		created, err := matches.Create(r.Context(), userID(r), in)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		m.IncMatchesCreated(string(created.Sport))
		publish(r.Context(), events, m, pubsub.MatchCreated(created, now()))
		writeJSON(w, http.StatusCreated, envelope{"id": created.ID, "match": created})
	}
}

type organizerView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

type matchDetail struct {
	Match         *match.Match  `json:"match"`
	DisplayStatus match.Status  `json:"display_status"`
	FilledSlots   int           `json:"filled_slots"`
	IsFull        bool          `json:"is_full"`
	Organizer     organizerView `json:"organizer"`
	Share         match.Share   `json:"share"`
	Roster        *match.Roster `json:"roster,omitempty"`
	Viewer        *match.Viewer `json:"viewer,omitempty"`
}

func GetMatchHandler(matches match.Store, profiles profile.Store, baseURL string, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		m, err := matches.Get(ctx, chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, r, err)
			return
		}
		viewerID := userID(r)

		var (
			organizer *profile.Profile
			viewer    *profile.Profile
			rows      []match.Player
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			p, err := profiles.Get(gctx, m.OrganizerID)
			if errors.Is(err, profile.ErrNotFound) {
				return nil
			}
			organizer = p
			return err
		})
		g.Go(func() error {
			var err error
			rows, err = matches.Roster(gctx, m.ID)
			return err
		})
		if viewerID != "" {
			g.Go(func() error {
				p, err := profiles.Get(gctx, viewerID)
				if errors.Is(err, profile.ErrNotFound) {
					return nil
				}
				viewer = p
				return err
			})
		}
		if err := g.Wait(); err != nil {
			WriteError(w, r, err)
			return
		}

		t := now()
		roster := match.Summarize(rows, m.TotalSlots)
		detail := matchDetail{
			Match:         m,
			DisplayStatus: m.DisplayStatus(t),
			FilledSlots:   roster.FilledSlots,
			IsFull:        roster.IsFull,
			Organizer:     organizerView{ID: m.OrganizerID},
			Share:         match.ShareLinks(baseURL, m),
		}
		if organizer != nil {
			detail.Organizer.Name = organizer.FullName()
		}
		if viewerID != "" {
			v := match.ViewFor(m, viewer, rows, viewerID, t)
			detail.Roster = &roster
			detail.Viewer = &v
			if organizer != nil {
				detail.Organizer.WhatsAppURL = match.ContactURL(organizer.WhatsApp)
			}
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func DeleteMatchHandler(matches match.Store, m metrics.Metrics, events pubsub.PubSubClient, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, affected, err := matches.Delete(r.Context(), chi.URLParam(r, "id"), userID(r))
		if err != nil {
			WriteError(w, r, err)
			return
		}
		m.IncMatchesDeleted()
		publish(r.Context(), events, m, pubsub.MatchDeleted(deleted, affected, now()))
		writeJSON(w, http.StatusOK, envelope{"deleted": deleted.ID})
	}
}

type joinRequest struct {
	PreferSubstitute bool `json:"prefer_substitute"`
}

func JoinMatchHandler(matches match.Store, m metrics.Metrics, events pubsub.PubSubClient, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req joinRequest
		if err := readOptionalJSON(w, r, &req); err != nil {
			WriteError(w, r, err)
			return
		}
		uid := userID(r)
		res, err := matches.Join(r.Context(), chi.URLParam(r, "id"), uid, req.PreferSubstitute)
		if err != nil {
			if code := match.Code(err); code != "" {
				m.IncJoinsRejected(code)
			}
			WriteError(w, r, err)
			return
		}
		m.IncJoins(string(res.Role))
		publish(r.Context(), events, m, pubsub.PlayerJoined(res, uid, now()))
		writeJSON(w, http.StatusOK, envelope{
			"role":         res.Role,
			"filled_slots": res.Roster.FilledSlots,
			"is_full":      res.Roster.IsFull,
		})
	}
}

func LeaveMatchHandler(matches match.Store, m metrics.Metrics, events pubsub.PubSubClient, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := chi.URLParam(r, "id")
		left, err := matches.Leave(r.Context(), matchID, userID(r))
		if err != nil {
			WriteError(w, r, err)
			return
		}
		m.IncLeaves()
		publish(r.Context(), events, m, pubsub.PlayerLeft(matchID, left, now()))
		writeJSON(w, http.StatusOK, envelope{"left": true, "role": left.Role})
	}
}

func ConfirmMatchHandler(matches match.Store, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		confirmed, err := matches.Confirm(r.Context(), chi.URLParam(r, "id"), userID(r))
		if err != nil {
			WriteError(w, r, err)
			return
		}
		m.IncConfirmations()
		writeJSON(w, http.StatusOK, envelope{"confirmed_at": confirmed.ConfirmedAt})
	}
}

func ShareMatchHandler(matches match.Store, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := matches.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, match.ShareLinks(baseURL, m))
	}
}
