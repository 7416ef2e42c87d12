package academic

import (
	"github.com/go-playground/validator/v10"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
)

// NewSubject creates or replaces a subject.
type NewSubject struct {
	Name      string `json:"nombre_materia" validate:"required,min=3,max=150"`
	Code      string `json:"codigo_materia" validate:"required,min=3,max=20"`
	TeacherCI string `json:"id_doc,omitempty" validate:"omitempty"`
	Origin    string `json:"origen" validate:"required,oneof=SIU MANUAL"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = core.CleanString(ns.Code)
	if ns.Origin == "" {
		ns.Origin = OriginManual
	}
	return validate.Struct(ns)
}

// NewSchedule creates a schedule slot. Weekday is Monday through Saturday;
// times are normalized to HH:MM:SS before hitting the wire.
type NewSchedule struct {
	SubjectID string `json:"id_materia" validate:"required"`
	Weekday   string `json:"dia_semana" validate:"required,oneof=Lunes Martes Miércoles Jueves Viernes Sábado"`
	StartTime string `json:"hora_inicio" validate:"required,hora"`
	EndTime   string `json:"hora_fin" validate:"required,hora"`
	Room      string `json:"aula" validate:"required,min=1,max=50"`
	GroupID   string `json:"id_grupo" validate:"required"`
}

func (ns *NewSchedule) Validate(validate *validator.Validate) error {
	ns.Room = core.CleanString(ns.Room)
	ns.StartTime = core.NormalizeHora(ns.StartTime)
	ns.EndTime = core.NormalizeHora(ns.EndTime)
	if err := validate.Struct(ns); err != nil {
		return err
	}
	if ns.EndTime <= ns.StartTime {
		return core.NewValidationError(nil, core.FieldError{Field: "hora_fin", Error: "end time must be after start time"})
	}
	return nil
}

// NewGrade records a score for a student in a subject.
type NewGrade struct {
	UserID    string  `json:"id_user" validate:"required"`
	SubjectID string  `json:"id_materia" validate:"required"`
	Score     float64 `json:"nota" validate:"gte=0,lte=100"`
	Kind      string  `json:"tipo_nota" validate:"required,min=2,max=50"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Kind = core.CleanString(ng.Kind)
	return validate.Struct(ng)
}

// UpdateGrade replaces a grade's score and kind.
type UpdateGrade struct {
	Score float64 `json:"nota" validate:"gte=0,lte=100"`
	Kind  string  `json:"tipo_nota" validate:"required,min=2,max=50"`
}

func (ug *UpdateGrade) Validate(validate *validator.Validate) error {
	ug.Kind = core.CleanString(ug.Kind)
	return validate.Struct(ug)
}

// NewGroup creates a group ("A", "B", "1A", ...).
type NewGroup struct {
	Name string `json:"nombre_grupo" validate:"required,min=1,max=100"`
	Term string `json:"gestion_grupo,omitempty"`
}

func (ng *NewGroup) Validate(validate *validator.Validate) error {
	ng.Name = core.CleanString(ng.Name)
	return validate.Struct(ng)
}
