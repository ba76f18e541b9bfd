package match

import "errors"

// Error is a user-facing rejection of a match action. Code is stable for clients,
// Message is ready to show to the player.
type Error struct {
	Code    string
	Message string
	// Field names the profile field the player has to fill in, if any.
	Field string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

var (
	ErrNotAuthenticated       = &Error{Code: "not_authenticated", Message: "Necesitás iniciar sesión"}
	ErrUnavailable            = &Error{Code: "not_found_or_not_open", Message: "Este partido ya no está disponible"}
	ErrNotFound               = &Error{Code: "not_found", Message: "No encontramos este partido"}
	ErrAlreadyJoined          = &Error{Code: "already_joined", Message: "Ya estás anotado en este partido"}
	ErrLevelMismatch          = &Error{Code: "level_mismatch", Message: "Tu categoría de Pádel no es compatible con la de este partido"}
	ErrProfileIncomplete      = &Error{Code: "profile_incomplete", Message: "Completá tu perfil antes de continuar"}
	ErrSportProfileIncomplete = &Error{Code: "profile_incomplete", Message: "Cargá tu categoría de Pádel en tu perfil para anotarte", Field: "padel_category"}
	ErrNotJoined              = &Error{Code: "not_joined", Message: "No estás anotado en este partido"}
	ErrNotSignedUp            = &Error{Code: "not_signed_up", Message: "Solo los titulares pueden confirmar asistencia"}
	ErrConfirmUnavailable     = &Error{Code: "confirm_unavailable", Message: "La confirmación se habilita 2 horas antes del partido"}
	ErrForbidden              = &Error{Code: "forbidden", Message: "Solo el organizador puede hacer esto"}
)

// Code returns the client code for err, or "" when err is not a match rejection.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
