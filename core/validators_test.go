package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type horaInput struct {
	Time string `json:"hora_salida" validate:"required,hora"`
}

type rideDaysInput struct {
	Days string `json:"dias_disponibles" validate:"required,dias_ruta"`
}

func TestHoraValidation(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"07:30", true},
		{"07:30:00", true},
		{"7:30", false},
		{"mediodía", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := Validate.Struct(horaInput{Time: tt.value})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRideDaysValidation(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"Lunes", true},
		{"Lunes,Miércoles,Viernes", true},
		{"Lunes, Martes", true},
		{"lunes", false},
		{"Lunes,Funday", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := Validate.Struct(rideDaysInput{Days: tt.value})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalizeHora(t *testing.T) {
	assert.Equal(t, "07:30:00", NormalizeHora("07:30"))
	assert.Equal(t, "07:30:00", NormalizeHora("07:30:00"))
}
