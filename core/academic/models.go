package academic

import "time"

// Record provenance: imported from the university system or hand-entered.
const (
	OriginSIU    = "SIU"
	OriginManual = "MANUAL"
)

// Grade kinds.
const (
	GradePartial    = "parcial"
	GradeFinal      = "final"
	GradeMakeup     = "recuperatorio"
	GradeAssignment = "tarea"
	GradeProject    = "proyecto"
	GradeOther      = "otro"
)

type Subject struct {
	ID        string                 `json:"id_materia"`
	Name      string                 `json:"nombre_materia"`
	Code      string                 `json:"codigo_materia"`
	TeacherCI string                 `json:"id_doc,omitempty"`
	Origin    string                 `json:"origen"`
	Teacher   map[string]interface{} `json:"docente,omitempty"`
}

type Group struct {
	ID     string `json:"id_grupo"`
	Name   string `json:"nombre_grupo"`
	Term   string `json:"gestion_grupo,omitempty"`
	Career string `json:"carrera,omitempty"`
}

type ScheduleSlot struct {
	ID        string `json:"id_horario"`
	SubjectID string `json:"id_materia"`
	Weekday   string `json:"dia_semana"`
	StartTime string `json:"hora_inicio"` // HH:MM:SS
	EndTime   string `json:"hora_fin"`    // HH:MM:SS
	Room      string `json:"aula"`
	GroupID   string `json:"id_grupo"`
}

type Grade struct {
	ID         string    `json:"id_nota"`
	UserID     string    `json:"id_user"`
	SubjectID  string    `json:"id_materia"`
	Score      float64   `json:"nota"`
	Kind       string    `json:"tipo_nota"`
	Origin     string    `json:"origen,omitempty"`
	RecordedAt time.Time `json:"fecha_registro_nota"`
}

type Student struct {
	CI       string      `json:"ci_est"`
	Career   string      `json:"carrera"`
	Semester int         `json:"semestre"`
	GroupID  string      `json:"id_grupo,omitempty"`
	User     interface{} `json:"id_user,omitempty"` // user object or raw id, backend-dependent
	Name     string      `json:"nombre,omitempty"`
	LastName string      `json:"apellido,omitempty"`
}

type Teacher struct {
	CI       string `json:"ci_doc"`
	UserID   string `json:"id_user,omitempty"`
	Name     string `json:"nombre,omitempty"`
	LastName string `json:"apellido,omitempty"`
}

// Assignment is the wire payload assigning a subject to a student's group
// (POST /estudiantes/materias).
type Assignment struct {
	StudentCI string `json:"ci_estudiante"`
	SubjectID string `json:"id_materia"`
	GroupID   string `json:"id_grupo"`
}
