package academic

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
)

var (
	ErrNotAdmin        = errors.New("academic admin panel requires the admin role")
	ErrStudentNotFound = errors.New("Estudiante no encontrado")

	// ErrNeedsGroup gates the subject assignment: the target student has no
	// group, so the group-selection sub-flow must complete first.
	ErrNeedsGroup = errors.New("el estudiante no tiene grupo asignado")
)

// AdminPanel is the admin's academic view: full CRUD over subjects,
// schedules and grade records, plus the subject-to-student assignment flow
// with its strict two-step group gate.
type AdminPanel struct {
	gw       Gateway
	sess     *session.Session
	conf     *core.Config
	logger   core.Logger
	validate *validator.Validate

	mu        sync.Mutex
	subjects  []Subject
	schedules []ScheduleSlot
	students  []Student
	teachers  []Teacher
	groups    []Group

	// pendingAssignment is stashed while the group modal is open; the
	// assignment call only fires after the group call succeeds.
	pendingAssignment *Assignment

	Banner core.Banner
}

func NewAdminPanel(gw Gateway, sess *session.Session, conf *core.Config, logger core.Logger, validate *validator.Validate) (*AdminPanel, error) {
	if !sess.User().IsAdmin() {
		return nil, ErrNotAdmin
	}
	return &AdminPanel{gw: gw, sess: sess, conf: conf, logger: logger, validate: validate}, nil
}

// Load fetches the admin working set: subjects, schedules, students,
// teachers and groups. Each list fails independently.
func (p *AdminPanel) Load(ctx context.Context) {
	if subjects, err := p.gw.Subjects(ctx); err == nil {
		p.mu.Lock()
		p.subjects = subjects
		p.mu.Unlock()
	} else {
		p.fail(err, "Error al cargar materias")
	}
	if schedules, err := p.gw.Schedules(ctx); err == nil {
		p.mu.Lock()
		p.schedules = schedules
		p.mu.Unlock()
	} else {
		p.fail(err, "Error al cargar horarios")
	}
	if students, err := p.gw.Students(ctx); err == nil {
		p.mu.Lock()
		p.students = students
		p.mu.Unlock()
	} else {
		p.fail(err, "Error al cargar estudiantes")
	}
	if teachers, err := p.gw.Teachers(ctx); err == nil {
		p.mu.Lock()
		p.teachers = teachers
		p.mu.Unlock()
	} else {
		p.fail(err, "Error al cargar docentes")
	}
	if groups, err := p.gw.Groups(ctx); err == nil {
		p.mu.Lock()
		p.groups = groups
		p.mu.Unlock()
	} else {
		p.fail(err, "Error al cargar grupos")
	}
}

func (p *AdminPanel) fail(err error, fallback string) {
	p.logger.Error(fallback, err, p.sess.User())
	p.Banner.Show(core.BannerError, core.DisplayError(err, fallback), p.conf.BannerDelay)
}

func (p *AdminPanel) ok(msg string) {
	p.Banner.Show(core.BannerSuccess, msg, p.conf.BannerDelay)
}

// Subjects CRUD. A failed call leaves prior state untouched and surfaces
// the backend's message verbatim.

func (p *AdminPanel) CreateSubject(ctx context.Context, ns NewSubject) error {
	if err := ns.Validate(p.validate); err != nil {
		return err
	}
	subject, err := p.gw.CreateSubject(ctx, ns)
	if err != nil {
		p.fail(err, "Error al crear materia")
		return err
	}
	p.mu.Lock()
	p.subjects = append(p.subjects, subject)
	p.mu.Unlock()
	p.ok("Materia creada exitosamente")
	return nil
}

func (p *AdminPanel) UpdateSubject(ctx context.Context, id string, ns NewSubject) error {
	if err := ns.Validate(p.validate); err != nil {
		return err
	}
	subject, err := p.gw.UpdateSubject(ctx, id, ns)
	if err != nil {
		p.fail(err, "Error al actualizar materia")
		return err
	}
	p.mu.Lock()
	for i := range p.subjects {
		if p.subjects[i].ID == id {
			p.subjects[i] = subject
		}
	}
	p.mu.Unlock()
	p.ok("Materia actualizada exitosamente")
	return nil
}

func (p *AdminPanel) DeleteSubject(ctx context.Context, id string) error {
	if err := p.gw.DeleteSubject(ctx, id); err != nil {
		p.fail(err, "Error al eliminar materia")
		return err
	}
	p.mu.Lock()
	kept := p.subjects[:0]
	for _, s := range p.subjects {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	p.subjects = kept
	p.mu.Unlock()
	p.ok("Materia eliminada")
	return nil
}

// Schedules.

func (p *AdminPanel) CreateSchedule(ctx context.Context, ns NewSchedule) error {
	if err := ns.Validate(p.validate); err != nil {
		return err
	}
	slot, err := p.gw.CreateSchedule(ctx, ns)
	if err != nil {
		p.fail(err, "Error al crear horario")
		return err
	}
	p.mu.Lock()
	p.schedules = append(p.schedules, slot)
	p.mu.Unlock()
	p.ok("Horario creado exitosamente")
	return nil
}

func (p *AdminPanel) DeleteSchedule(ctx context.Context, id string) error {
	if err := p.gw.DeleteSchedule(ctx, id); err != nil {
		p.fail(err, "Error al eliminar horario")
		return err
	}
	p.mu.Lock()
	kept := p.schedules[:0]
	for _, s := range p.schedules {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	p.schedules = kept
	p.mu.Unlock()
	p.ok("Horario eliminado")
	return nil
}

// GroupsForCareer filters the loaded groups down to those any student of
// the given career belongs to: the dependent selection feeding the
// schedule form (career first, then group).
func (p *AdminPanel) GroupsForCareer(career string) []Group {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make(map[string]bool)
	for _, st := range p.students {
		if st.Career == career && st.GroupID != "" {
			ids[st.GroupID] = true
		}
	}
	var out []Group
	for _, g := range p.groups {
		if ids[g.ID] {
			out = append(out, g)
		}
	}
	return out
}

// Grades.

func (p *AdminPanel) GradesByStudent(ctx context.Context, ci string) ([]Grade, error) {
	grades, err := p.gw.GradesByStudent(ctx, ci)
	if err != nil {
		p.fail(err, "Error al cargar notas")
		return nil, err
	}
	return grades, nil
}

func (p *AdminPanel) CreateGrade(ctx context.Context, ng NewGrade) error {
	if err := ng.Validate(p.validate); err != nil {
		return err
	}
	if _, err := p.gw.CreateGrade(ctx, ng); err != nil {
		p.fail(err, "Error al registrar nota")
		return err
	}
	p.ok("Nota registrada exitosamente")
	return nil
}

func (p *AdminPanel) UpdateGrade(ctx context.Context, id string, ug UpdateGrade) error {
	if err := ug.Validate(p.validate); err != nil {
		return err
	}
	if _, err := p.gw.UpdateGrade(ctx, id, ug); err != nil {
		p.fail(err, "Error al actualizar nota")
		return err
	}
	p.ok("Nota actualizada exitosamente")
	return nil
}

func (p *AdminPanel) DeleteGrade(ctx context.Context, id string) error {
	if err := p.gw.DeleteGrade(ctx, id); err != nil {
		p.fail(err, "Error al eliminar nota")
		return err
	}
	p.ok("Nota eliminada")
	return nil
}

// Assignment flow.

// AssignSubject starts the subject-to-student assignment. When the student
// has no group it never reaches the assignment endpoint: the payload is
// stashed, ErrNeedsGroup is returned, and the caller must complete the
// group sub-flow (AssignGroupAndResume) before the assignment fires.
func (p *AdminPanel) AssignSubject(ctx context.Context, asg Assignment) error {
	p.mu.Lock()
	var student *Student
	for i := range p.students {
		if p.students[i].CI == asg.StudentCI {
			student = &p.students[i]
			break
		}
	}
	p.mu.Unlock()

	if student == nil {
		p.Banner.Show(core.BannerError, ErrStudentNotFound.Error(), p.conf.BannerDelay)
		return ErrStudentNotFound
	}

	if student.GroupID == "" {
		p.mu.Lock()
		p.pendingAssignment = &asg
		p.mu.Unlock()
		return ErrNeedsGroup
	}

	asg.GroupID = student.GroupID
	return p.assign(ctx, asg)
}

// PendingAssignment reports whether the group modal should be open and for
// which student.
func (p *AdminPanel) PendingAssignment() (Assignment, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pendingAssignment == nil {
		return Assignment{}, false
	}
	return *p.pendingAssignment, true
}

// CancelAssignment closes the group modal without issuing any call.
func (p *AdminPanel) CancelAssignment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingAssignment = nil
}

// CreateGroup creates a new group from inside the sub-modal. It does not
// resume the assignment by itself; the admin still selects the group.
func (p *AdminPanel) CreateGroup(ctx context.Context, ng NewGroup) (Group, error) {
	if err := ng.Validate(p.validate); err != nil {
		return Group{}, err
	}
	group, err := p.gw.CreateGroup(ctx, ng)
	if err != nil {
		p.fail(err, "Error al crear grupo")
		return Group{}, err
	}
	p.mu.Lock()
	p.groups = append(p.groups, group)
	p.mu.Unlock()
	p.ok("Grupo " + group.ID + " creado exitosamente")
	return group, nil
}

// AssignGroupAndResume performs the second half of the gate: assign the
// group to the student, and only after that call succeeds fire the stashed
// subject assignment. This is strictly sequential, never parallel.
func (p *AdminPanel) AssignGroupAndResume(ctx context.Context, groupID string) error {
	p.mu.Lock()
	pending := p.pendingAssignment
	p.mu.Unlock()
	if pending == nil {
		return errors.New("no assignment in progress")
	}

	if err := p.gw.SetStudentGroup(ctx, pending.StudentCI, groupID); err != nil {
		p.fail(err, "Error al asignar grupo")
		return err
	}

	p.mu.Lock()
	for i := range p.students {
		if p.students[i].CI == pending.StudentCI {
			p.students[i].GroupID = groupID
		}
	}
	asg := *pending
	p.pendingAssignment = nil
	p.mu.Unlock()

	asg.GroupID = groupID
	return p.assign(ctx, asg)
}

func (p *AdminPanel) assign(ctx context.Context, asg Assignment) error {
	if err := p.gw.AssignSubject(ctx, asg); err != nil {
		p.fail(err, "Error al asignar materia")
		return err
	}
	p.ok("Materia asignada exitosamente al grupo del estudiante")
	return nil
}

// Accessors.

func (p *AdminPanel) Subjects() []Subject {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Subject(nil), p.subjects...)
}

func (p *AdminPanel) Schedules() []ScheduleSlot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ScheduleSlot(nil), p.schedules...)
}

func (p *AdminPanel) Students() []Student {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Student(nil), p.students...)
}

func (p *AdminPanel) Teachers() []Teacher {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Teacher(nil), p.teachers...)
}

func (p *AdminPanel) Groups() []Group {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Group(nil), p.groups...)
}
