package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/juegoya/juegoya/internal/auth"
	"github.com/juegoya/juegoya/internal/match"
	"github.com/juegoya/juegoya/internal/metrics"
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/pubsub"
	"github.com/juegoya/juegoya/internal/validation"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// userID returns the session's user, or "" for anonymous requests.
func userID(r *http.Request) string {
	s, ok := auth.FromContext(r.Context())
	if !ok {
		return ""
	}
	return s.UserID
}

type envelope map[string]any

const maxBodyBytes = 1_048_576

var errBadRequest = errors.New("bad request")

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("%w: body contains badly-formed JSON (at character %d)", errBadRequest, syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return fmt.Errorf("%w: body contains badly-formed JSON", errBadRequest)
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("%w: body contains incorrect JSON type for field %q", errBadRequest, unmarshalTypeError.Field)
			}
			return fmt.Errorf("%w: body contains incorrect JSON type (at character %d)", errBadRequest, unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: body must not be empty", errBadRequest)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("%w: body contains unknown key %s", errBadRequest, strings.TrimPrefix(err.Error(), "json: unknown field "))
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("%w: body must not be larger than %d bytes", errBadRequest, maxBodyBytes)
		default:
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must only contain a single JSON value", errBadRequest)
	}
	return nil
}

// readOptionalJSON is readJSON for endpoints whose body may be omitted.
func readOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.ContentLength == 0 {
		return nil
	}
	return readJSON(w, r, dst)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	js, err := json.Marshal(data)
	if err != nil {
		log.Error("Failed to encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(js, '\n')); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// WriteError maps domain errors to HTTP responses. Infrastructure errors are logged and
// answered with a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		matchErr *match.Error
		verr     *validation.Error
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, envelope{
			"error":   "validation_failed",
			"message": "Revisá los datos ingresados",
			"fields":  verr.Fields,
		})
	case errors.As(err, &matchErr):
		body := envelope{"error": matchErr.Code, "message": matchErr.Message}
		if matchErr.Field != "" {
			body["field"] = matchErr.Field
		}
		writeJSON(w, statusFor(matchErr), body)
	case errors.Is(err, profile.ErrNotFound):
		writeJSON(w, http.StatusNotFound, envelope{"error": "not_found", "message": "No encontramos este jugador"})
	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, envelope{"error": "bad_request", "message": err.Error()})
	default:
		log.Error("Request failed", "error", err, "method", r.Method, "url", r.URL.String())
		writeJSON(w, http.StatusInternalServerError, envelope{"error": "internal_error", "message": "Algo salió mal, probá de nuevo en un rato"})
	}
}

func statusFor(err *match.Error) int {
	switch err {
	case match.ErrNotAuthenticated:
		return http.StatusUnauthorized
	case match.ErrForbidden:
		return http.StatusForbidden
	case match.ErrNotFound, match.ErrUnavailable:
		return http.StatusNotFound
	case match.ErrProfileIncomplete, match.ErrSportProfileIncomplete:
		return http.StatusUnprocessableEntity
	}
	return http.StatusConflict
}

// publish sends event after a committed change. Failures are logged and never reach the
// player; the change already happened.
func publish(ctx context.Context, client pubsub.PubSubClient, m metrics.Metrics, event pubsub.RosterEvent) {
	if err := client.SendMessage(ctx, event.Type, event); err != nil {
		log.Error("Failed to publish roster event", "error", err, "type", event.Type, "matchID", event.MatchID)
		return
	}
	m.IncEventsPublished(string(event.Type))
}
