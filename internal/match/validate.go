package match

import (
	"strings"
	"time"

	"github.com/juegoya/juegoya/internal/sport"
	"github.com/juegoya/juegoya/internal/validation"
)

// MaxAdvance is how far ahead a match can be scheduled.
const MaxAdvance = 21 * 24 * time.Hour

// Validate checks in against now and returns the match it describes, without an ID or
// organizer. defaultZone fills an empty zone.
func (in CreateInput) Validate(now time.Time, defaultZone string) (Match, error) {
	in.Zone = strings.TrimSpace(in.Zone)
	in.LocationText = strings.TrimSpace(in.LocationText)
	in.PadelLevel = strings.TrimSpace(in.PadelLevel)
	if in.Zone == "" {
		in.Zone = strings.TrimSpace(defaultZone)
	}

	verr := validation.Struct(in)

	s := sport.Sport(in.Sport)
	if in.Sport != "" && !s.Valid() {
		verr.Add("sport", "deporte inválido")
	}
	if in.Zone == "" {
		verr.Add("zone", "es obligatorio")
	}

	if !in.StartsAt.IsZero() {
		// Half-hour slots hold in UTC and in Montevideo alike; the client offset is irrelevant.
		utc := in.StartsAt.UTC()
		switch {
		case !in.StartsAt.After(now):
			verr.Add("starts_at", "La fecha debe ser futura")
		case in.StartsAt.After(now.Add(MaxAdvance)):
			verr.Add("starts_at", "Solo podés crear partidos hasta 3 semanas adelante")
		case utc.Minute()%30 != 0 || utc.Second() != 0 || utc.Nanosecond() != 0:
			verr.Add("starts_at", "Los horarios son cada 30 minutos (:00 o :30)")
		}
	}

	if in.PricePerPerson != nil && in.PricePerPerson.IsNegative() {
		verr.Add("price_per_person", "no puede ser negativo")
	}

	switch {
	case s == sport.Padel && in.PadelLevel == "":
		verr.Add("padel_level", "La categoría es obligatoria para partidos de Pádel")
	case s == sport.Padel && !sport.IsPadelCategory(in.PadelLevel):
		verr.Add("padel_level", "categoría inválida")
	case s != sport.Padel && in.PadelLevel != "":
		verr.Add("padel_level", "La categoría solo aplica a partidos de Pádel")
	}

	if err := verr.OrNil(); err != nil {
		return Match{}, err
	}
	return Match{
		Sport:          s,
		StartsAt:       in.StartsAt.UTC().Truncate(time.Second),
		Zone:           in.Zone,
		LocationText:   in.LocationText,
		TotalSlots:     in.TotalSlots,
		PricePerPerson: in.PricePerPerson,
		PadelLevel:     in.PadelLevel,
		Status:         StatusOpen,
	}, nil
}
