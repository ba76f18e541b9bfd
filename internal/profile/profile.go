package profile

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/juegoya/juegoya/internal/sport"
	"github.com/juegoya/juegoya/internal/validation"
)

// IsComplete reports whether p has the contact data required to organize or join
// matches. A nil profile is incomplete.
func IsComplete(p *Profile) bool {
	return p != nil && p.FirstName != "" && p.LastName != "" && p.WhatsApp != ""
}

// FullName returns "First Last".
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Plays reports whether s is among the profile's sports.
func (p *Profile) Plays(s sport.Sport) bool {
	return slices.Contains(p.Sports, s)
}

// LevelLabel renders the profile's skill for s the way the player page shows it.
func (p *Profile) LevelLabel(s sport.Sport) string {
	switch s {
	case sport.Football:
		if p.Level > 0 {
			return fmt.Sprintf("Nivel %d", p.Level)
		}
		return "Sin nivel"
	case sport.Tennis:
		if p.TennisLevel > 0 {
			return fmt.Sprintf("Nivel %d", p.TennisLevel)
		}
		return "Sin nivel"
	case sport.Padel:
		if p.PadelCategory != "" {
			return "Categoría " + p.PadelCategory
		}
		return "Sin categoría"
	}
	return ""
}

var (
	whatsappChars = regexp.MustCompile(`^[+\d\s\-()]+$`)
	whatsappNoise = regexp.MustCompile(`[\s\-()]`)
)

// NormalizeWhatsApp strips formatting from a phone number and checks its length.
func NormalizeWhatsApp(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !whatsappChars.MatchString(raw) {
		return "", fmt.Errorf("solo números, espacios, guiones o paréntesis")
	}
	n := whatsappNoise.ReplaceAllString(raw, "")
	if len(n) < 9 || len(n) > 15 {
		return "", fmt.Errorf("debe tener entre 9 y 15 dígitos")
	}
	return n, nil
}

// Validate checks in and returns the normalized profile fields it describes.
func (in UpsertInput) Validate() (Profile, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Zone = strings.TrimSpace(in.Zone)

	verr := validation.Struct(in)
	out := Profile{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Zone:      in.Zone,
		Sports:    []sport.Sport{},
	}

	if _, failed := verr.Fields["whatsapp"]; !failed {
		phone, err := NormalizeWhatsApp(in.WhatsApp)
		if err != nil {
			verr.Add("whatsapp", err.Error())
		}
		out.WhatsApp = phone
	}

	for _, raw := range in.Sports {
		s := sport.Sport(raw)
		if !s.Valid() {
			verr.Add("sports", fmt.Sprintf("deporte inválido: %s", raw))
			continue
		}
		if !slices.Contains(out.Sports, s) {
			out.Sports = append(out.Sports, s)
		}
	}

	if in.Level != nil {
		out.Level = *in.Level
	}
	if out.Plays(sport.Football) && in.Level == nil {
		verr.Add("level", "El nivel de Fútbol 5 es obligatorio si seleccionaste Fútbol 5")
	}

	if out.Plays(sport.Padel) {
		switch {
		case in.PadelCategory == nil || *in.PadelCategory == "":
			verr.Add("padel_category", "La categoría de Pádel es obligatoria si seleccionaste Pádel")
		case !sport.IsPadelCategory(*in.PadelCategory):
			verr.Add("padel_category", "categoría inválida")
		default:
			out.PadelCategory = *in.PadelCategory
		}
	}

	if out.Plays(sport.Tennis) {
		if in.TennisLevel == nil {
			verr.Add("tennis_level", "El nivel de Tenis es obligatorio si seleccionaste Tenis")
		} else {
			out.TennisLevel = *in.TennisLevel
		}
	}

	if err := verr.OrNil(); err != nil {
		return Profile{}, err
	}
	return out, nil
}
