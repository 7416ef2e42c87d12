package academic

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
)

type fakeGateway struct {
	students []Student

	groupCalls  []string // "ci:group"
	assignCalls []Assignment
	groupErr    error
	assignErr   error

	mySubjectCIs []string
	myGradeCIs   []string
}

func (g *fakeGateway) MySubjects(ctx context.Context, ci string) ([]Subject, error) {
	g.mySubjectCIs = append(g.mySubjectCIs, ci)
	return []Subject{{ID: "m-1", Name: "Cálculo I"}}, nil
}

func (g *fakeGateway) MyGrades(ctx context.Context, ci string) ([]Grade, error) {
	g.myGradeCIs = append(g.myGradeCIs, ci)
	return []Grade{{ID: "n-1", Score: 85, Kind: GradeFinal}}, nil
}

func (g *fakeGateway) MySchedule(ctx context.Context, ci string) ([]ScheduleSlot, error) {
	return []ScheduleSlot{{ID: "h-1", Weekday: "Lunes"}}, nil
}

func (g *fakeGateway) Subjects(ctx context.Context) ([]Subject, error) { return nil, nil }

func (g *fakeGateway) CreateSubject(ctx context.Context, data NewSubject) (Subject, error) {
	return Subject{ID: "m-new", Name: data.Name, Code: data.Code, Origin: data.Origin}, nil
}

func (g *fakeGateway) UpdateSubject(ctx context.Context, id string, data NewSubject) (Subject, error) {
	return Subject{ID: id, Name: data.Name}, nil
}

func (g *fakeGateway) DeleteSubject(ctx context.Context, id string) error { return nil }

func (g *fakeGateway) Schedules(ctx context.Context) ([]ScheduleSlot, error) { return nil, nil }

func (g *fakeGateway) SchedulesByGroup(ctx context.Context, groupID string) ([]ScheduleSlot, error) {
	return nil, nil
}

func (g *fakeGateway) CreateSchedule(ctx context.Context, data NewSchedule) (ScheduleSlot, error) {
	return ScheduleSlot{ID: "h-new", SubjectID: data.SubjectID, Weekday: data.Weekday}, nil
}

func (g *fakeGateway) DeleteSchedule(ctx context.Context, id string) error { return nil }

func (g *fakeGateway) GradesByStudent(ctx context.Context, ci string) ([]Grade, error) {
	return nil, nil
}

func (g *fakeGateway) CreateGrade(ctx context.Context, data NewGrade) (Grade, error) {
	return Grade{ID: "n-new", Score: data.Score, Kind: data.Kind}, nil
}

func (g *fakeGateway) UpdateGrade(ctx context.Context, id string, data UpdateGrade) (Grade, error) {
	return Grade{ID: id, Score: data.Score, Kind: data.Kind}, nil
}

func (g *fakeGateway) DeleteGrade(ctx context.Context, id string) error { return nil }

func (g *fakeGateway) Students(ctx context.Context) ([]Student, error) { return g.students, nil }

func (g *fakeGateway) Teachers(ctx context.Context) ([]Teacher, error) { return nil, nil }

func (g *fakeGateway) Groups(ctx context.Context) ([]Group, error) { return nil, nil }

func (g *fakeGateway) CreateGroup(ctx context.Context, data NewGroup) (Group, error) {
	return Group{ID: "g-new", Name: data.Name, Term: data.Term}, nil
}

func (g *fakeGateway) SetStudentGroup(ctx context.Context, ci, groupID string) error {
	if g.groupErr != nil {
		return g.groupErr
	}
	g.groupCalls = append(g.groupCalls, ci+":"+groupID)
	return nil
}

func (g *fakeGateway) AssignSubject(ctx context.Context, data Assignment) error {
	if g.assignErr != nil {
		return g.assignErr
	}
	g.assignCalls = append(g.assignCalls, data)
	return nil
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func setupAdmin(t *testing.T, gw *fakeGateway) *AdminPanel {
	t.Helper()
	sess := session.TestSession(session.User{ID: "u-0", Name: "Root", Role: session.RoleAdmin})
	p, err := NewAdminPanel(gw, sess, core.TestConfig(), nopLogger{}, core.Validate)
	if err != nil {
		t.Fatalf("NewAdminPanel() failed: %v", err)
	}
	p.Load(context.Background())
	return p
}

func TestAdminPanelRoleGate(t *testing.T) {
	sess := session.TestSession(session.User{ID: "u-1", Role: session.RoleStudent})
	_, err := NewAdminPanel(&fakeGateway{}, sess, core.TestConfig(), nopLogger{}, core.Validate)
	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestStudentPanelRoleGate(t *testing.T) {
	sess := session.TestSession(session.User{ID: "u-0", Role: session.RoleAdmin})
	_, err := NewStudentPanel(&fakeGateway{}, sess, core.TestConfig(), nopLogger{})
	assert.ErrorIs(t, err, ErrNotStudent)
}

// Assigning a subject to a student without a group must stash the payload
// and never reach the assignment endpoint until the group step succeeds.
func TestAssignSubjectGroupGate(t *testing.T) {
	gw := &fakeGateway{students: []Student{
		{CI: "E-200", Career: "Sistemas", GroupID: "g-1a"},
		{CI: "E-201", Career: "Sistemas"}, // no group yet
	}}
	p := setupAdmin(t, gw)
	ctx := context.Background()

	err := p.AssignSubject(ctx, Assignment{StudentCI: "E-201", SubjectID: "m-1"})
	assert.ErrorIs(t, err, ErrNeedsGroup)
	assert.Empty(t, gw.assignCalls)

	pending, ok := p.PendingAssignment()
	if assert.True(t, ok) {
		assert.Equal(t, "E-201", pending.StudentCI)
	}

	// second step: group first, then the stashed assignment fires with
	// the fresh group attached
	if err := p.AssignGroupAndResume(ctx, "g-1b"); err != nil {
		t.Fatalf("AssignGroupAndResume() failed: %v", err)
	}
	assert.Equal(t, []string{"E-201:g-1b"}, gw.groupCalls)
	if assert.Len(t, gw.assignCalls, 1) {
		assert.Equal(t, "g-1b", gw.assignCalls[0].GroupID)
		assert.Equal(t, "m-1", gw.assignCalls[0].SubjectID)
	}
	_, ok = p.PendingAssignment()
	assert.False(t, ok)
}

func TestAssignSubjectWithGroupGoesStraightThrough(t *testing.T) {
	gw := &fakeGateway{students: []Student{{CI: "E-200", GroupID: "g-1a"}}}
	p := setupAdmin(t, gw)

	if err := p.AssignSubject(context.Background(), Assignment{StudentCI: "E-200", SubjectID: "m-1"}); err != nil {
		t.Fatalf("AssignSubject() failed: %v", err)
	}
	if assert.Len(t, gw.assignCalls, 1) {
		assert.Equal(t, "g-1a", gw.assignCalls[0].GroupID)
	}
	assert.Empty(t, gw.groupCalls)
}

func TestAssignGroupFailureKeepsPending(t *testing.T) {
	gw := &fakeGateway{
		students: []Student{{CI: "E-201"}},
		groupErr: errors.New("backend down"),
	}
	p := setupAdmin(t, gw)
	ctx := context.Background()

	assert.ErrorIs(t, p.AssignSubject(ctx, Assignment{StudentCI: "E-201", SubjectID: "m-1"}), ErrNeedsGroup)
	assert.Error(t, p.AssignGroupAndResume(ctx, "g-1a"))
	assert.Empty(t, gw.assignCalls)

	// the modal stays open; cancelling clears it without any call
	_, ok := p.PendingAssignment()
	assert.True(t, ok)
	p.CancelAssignment()
	_, ok = p.PendingAssignment()
	assert.False(t, ok)
}

func TestAssignSubjectUnknownStudent(t *testing.T) {
	p := setupAdmin(t, &fakeGateway{})
	err := p.AssignSubject(context.Background(), Assignment{StudentCI: "E-999", SubjectID: "m-1"})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestNewScheduleValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      NewSchedule
		wantErr bool
	}{
		{"valid", NewSchedule{SubjectID: "m-1", Weekday: "Lunes", StartTime: "08:00", EndTime: "10:00", Room: "A-101", GroupID: "g-1a"}, false},
		{"bad weekday", NewSchedule{SubjectID: "m-1", Weekday: "Domingo", StartTime: "08:00", EndTime: "10:00", Room: "A-101", GroupID: "g-1a"}, true},
		{"end before start", NewSchedule{SubjectID: "m-1", Weekday: "Lunes", StartTime: "10:00", EndTime: "08:00", Room: "A-101", GroupID: "g-1a"}, true},
		{"missing room", NewSchedule{SubjectID: "m-1", Weekday: "Lunes", StartTime: "08:00", EndTime: "10:00", GroupID: "g-1a"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate(core.Validate)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGroupsForCareer(t *testing.T) {
	gw := &fakeGateway{students: []Student{
		{CI: "E-200", Career: "Sistemas", GroupID: "g-1a"},
		{CI: "E-201", Career: "Derecho", GroupID: "g-2a"},
	}}
	p := setupAdmin(t, gw)
	p.mu.Lock()
	p.groups = []Group{{ID: "g-1a", Name: "1A"}, {ID: "g-2a", Name: "2A"}}
	p.mu.Unlock()

	got := p.GroupsForCareer("Sistemas")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "g-1a", got[0].ID)
	}
}

// Each tab switch re-fetches with the session user's CI.
func TestStudentPanelTabs(t *testing.T) {
	gw := &fakeGateway{}
	sess := session.TestSession(session.User{ID: "u-2", Role: session.RoleStudent, CI: "E-200"})
	p, err := NewStudentPanel(gw, sess, core.TestConfig(), nopLogger{})
	if err != nil {
		t.Fatalf("NewStudentPanel() failed: %v", err)
	}
	ctx := context.Background()

	assert.Equal(t, StudentTabSubjects, p.Tab())
	p.SetTab(ctx, StudentTabSubjects)
	p.SetTab(ctx, StudentTabGrades)
	p.SetTab(ctx, StudentTabGrades)

	assert.Equal(t, []string{"E-200"}, gw.mySubjectCIs)
	assert.Equal(t, []string{"E-200", "E-200"}, gw.myGradeCIs)
	assert.Len(t, p.Grades(), 1)
	assert.Empty(t, p.Schedule())
}
