package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type displayableErr struct{ msg string }

func (e displayableErr) Error() string   { return e.msg }
func (e displayableErr) Display() string { return e.msg }

func TestDisplayError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"displayable", displayableErr{"La ruta ya no tiene cupos disponibles"}, "La ruta ya no tiene cupos disponibles"},
		{
			"wrapped displayable",
			errors.Wrap(displayableErr{"No autorizado"}, "requesting join"),
			"No autorizado",
		},
		{
			"validation error",
			NewValidationError(nil, FieldError{Field: "contenido", Error: "this field is required"}),
			"this field is required",
		},
		{"opaque", errors.New("connection refused"), "Algo salió mal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayError(tt.err, "Algo salió mal"))
		})
	}
}

func TestIsShutdown(t *testing.T) {
	err := NewShutdownError("going down")
	assert.True(t, IsShutdown(err))
	assert.True(t, IsShutdown(errors.Wrap(err, "handler")))
	assert.False(t, IsShutdown(errors.New("nope")))
}
