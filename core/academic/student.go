package academic

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
)

// Student panel tabs.
const (
	StudentTabSubjects = "materias"
	StudentTabGrades   = "notas"
	StudentTabSchedule = "horario"
)

// StudentTabs in display order.
var StudentTabs = []string{StudentTabSubjects, StudentTabGrades, StudentTabSchedule}

var ErrNotStudent = errors.New("academic student panel requires the student role")

// StudentPanel is the read-only academic view: my courses, my grades, my
// schedule, each fetched on tab change using the session identity. It
// exposes no mutation operations.
type StudentPanel struct {
	gw     Gateway
	sess   *session.Session
	conf   *core.Config
	logger core.Logger

	mu       sync.Mutex
	tab      string
	subjects []Subject
	grades   []Grade
	schedule []ScheduleSlot

	Banner core.Banner
}

func NewStudentPanel(gw Gateway, sess *session.Session, conf *core.Config, logger core.Logger) (*StudentPanel, error) {
	if !sess.User().IsStudent() {
		return nil, ErrNotStudent
	}
	return &StudentPanel{gw: gw, sess: sess, conf: conf, logger: logger, tab: StudentTabSubjects}, nil
}

func (p *StudentPanel) Tab() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tab
}

// SetTab switches the active tab and fetches its data. Each switch
// re-fetches; nothing is cached across tabs.
func (p *StudentPanel) SetTab(ctx context.Context, tab string) {
	p.mu.Lock()
	p.tab = tab
	p.mu.Unlock()

	ci := p.sess.User().CI
	switch tab {
	case StudentTabSubjects:
		subjects, err := p.gw.MySubjects(ctx, ci)
		p.apply(err, "Error al cargar materias", func() { p.subjects = subjects })
	case StudentTabGrades:
		grades, err := p.gw.MyGrades(ctx, ci)
		p.apply(err, "Error al cargar notas", func() { p.grades = grades })
	case StudentTabSchedule:
		schedule, err := p.gw.MySchedule(ctx, ci)
		p.apply(err, "Error al cargar horario", func() { p.schedule = schedule })
	}
}

func (p *StudentPanel) apply(err error, fallback string, set func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.logger.Error(fallback, err, p.sess.User())
		p.Banner.Show(core.BannerError, core.DisplayError(err, fallback), p.conf.BannerDelay)
		return
	}
	set()
}

func (p *StudentPanel) Subjects() []Subject {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Subject(nil), p.subjects...)
}

func (p *StudentPanel) Grades() []Grade {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Grade(nil), p.grades...)
}

func (p *StudentPanel) Schedule() []ScheduleSlot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ScheduleSlot(nil), p.schedule...)
}
