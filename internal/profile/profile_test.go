package profile_test

import (
	"testing"

	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/sport"
	"github.com/juegoya/juegoya/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name string
		p    *profile.Profile
		want bool
	}{
		{"nil profile", nil, false},
		{"empty profile", &profile.Profile{}, false},
		{"missing whatsapp", &profile.Profile{FirstName: "Ana", LastName: "Pérez"}, false},
		{"missing last name", &profile.Profile{FirstName: "Ana", WhatsApp: "099123456"}, false},
		{"complete without optional fields", &profile.Profile{FirstName: "Ana", LastName: "Pérez", WhatsApp: "099123456"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, profile.IsComplete(tt.p))
		})
	}
}

func TestNormalizeWhatsApp(t *testing.T) {
	n, err := profile.NormalizeWhatsApp("+598 (99) 123-456")
	require.NoError(t, err)
	assert.Equal(t, "+59899123456", n)

	_, err = profile.NormalizeWhatsApp("099 12")
	assert.Error(t, err)
	_, err = profile.NormalizeWhatsApp("099-abc-456")
	assert.Error(t, err)
	_, err = profile.NormalizeWhatsApp("1234567890123456")
	assert.Error(t, err)
}

func TestValidate_PerSportRequirements(t *testing.T) {
	base := profile.UpsertInput{FirstName: " Ana ", LastName: "Pérez", WhatsApp: "099 123 456"}

	t.Run("no sports needs no levels", func(t *testing.T) {
		p, err := base.Validate()
		require.NoError(t, err)
		assert.Equal(t, "Ana", p.FirstName)
		assert.Equal(t, "099123456", p.WhatsApp)
		assert.Empty(t, p.Sports)
	})

	t.Run("each selected sport requires its level", func(t *testing.T) {
		in := base
		in.Sports = []string{"Fútbol 5", "Pádel", "Tenis"}
		_, err := in.Validate()
		require.ErrorIs(t, err, validation.ErrInvalid)
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "level")
		assert.Contains(t, verr.Fields, "padel_category")
		assert.Contains(t, verr.Fields, "tennis_level")
	})

	t.Run("complete multi-sport profile", func(t *testing.T) {
		in := base
		in.Sports = []string{"Pádel", "Tenis", "Pádel"}
		in.PadelCategory = strPtr("6ta")
		in.TennisLevel = intPtr(3)
		p, err := in.Validate()
		require.NoError(t, err)
		assert.Equal(t, []sport.Sport{sport.Padel, sport.Tennis}, p.Sports)
		assert.Equal(t, "6ta", p.PadelCategory)
		assert.Equal(t, 3, p.TennisLevel)
	})

	t.Run("padel category must be on the ladder", func(t *testing.T) {
		in := base
		in.Sports = []string{"Pádel"}
		in.PadelCategory = strPtr("9na")
		_, err := in.Validate()
		assert.ErrorIs(t, err, validation.ErrInvalid)
	})

	t.Run("unknown sport and out of range level", func(t *testing.T) {
		in := base
		in.Sports = []string{"Rugby"}
		in.Level = intPtr(6)
		_, err := in.Validate()
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "sports")
		assert.Contains(t, verr.Fields, "level")
	})

	t.Run("padel category is dropped when padel is not selected", func(t *testing.T) {
		in := base
		in.PadelCategory = strPtr("3ra")
		p, err := in.Validate()
		require.NoError(t, err)
		assert.Empty(t, p.PadelCategory)
	})

	t.Run("required names", func(t *testing.T) {
		in := base
		in.FirstName = "   "
		in.WhatsApp = ""
		_, err := in.Validate()
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "es obligatorio", verr.Fields["first_name"])
		assert.Equal(t, "es obligatorio", verr.Fields["whatsapp"])
	})
}

func TestLevelLabel(t *testing.T) {
	p := &profile.Profile{Level: 4, PadelCategory: "6ta"}
	assert.Equal(t, "Nivel 4", p.LevelLabel(sport.Football))
	assert.Equal(t, "Categoría 6ta", p.LevelLabel(sport.Padel))
	assert.Equal(t, "Sin nivel", p.LevelLabel(sport.Tennis))
}
