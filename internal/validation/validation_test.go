package validation_test

import (
	"errors"
	"testing"

	"github.com/juegoya/juegoya/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required,max=5"`
	Slots int    `json:"slots" validate:"gte=1,lte=100"`
	Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
}

func TestStruct(t *testing.T) {
	verr := validation.Struct(sample{Name: "toolong", Slots: 0, Kind: "c"})
	err := verr.OrNil()
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalid))
	assert.Equal(t, "no puede superar los 5 caracteres", verr.Fields["name"])
	assert.Equal(t, "no puede ser menor a 1", verr.Fields["slots"])
	assert.Equal(t, "valor inválido", verr.Fields["kind"])

	assert.NoError(t, validation.Struct(sample{Name: "ok", Slots: 100}).OrNil())
}

func TestAdd_KeepsFirstMessage(t *testing.T) {
	verr := &validation.Error{}
	verr.Add("zone", "first")
	verr.Add("zone", "second")
	assert.Equal(t, "first", verr.Fields["zone"])
	assert.Contains(t, verr.Error(), "zone: first")
}
