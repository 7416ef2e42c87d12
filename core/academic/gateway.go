package academic

import "context"

// Gateway is the slice of the remote gateway the academic controllers
// depend on.
type Gateway interface {
	// student (caller's own identity; no id parameter)
	MySubjects(ctx context.Context, ci string) ([]Subject, error)
	MyGrades(ctx context.Context, ci string) ([]Grade, error)
	MySchedule(ctx context.Context, ci string) ([]ScheduleSlot, error)

	// admin
	Subjects(ctx context.Context) ([]Subject, error)
	CreateSubject(ctx context.Context, data NewSubject) (Subject, error)
	UpdateSubject(ctx context.Context, id string, data NewSubject) (Subject, error)
	DeleteSubject(ctx context.Context, id string) error

	Schedules(ctx context.Context) ([]ScheduleSlot, error)
	SchedulesByGroup(ctx context.Context, groupID string) ([]ScheduleSlot, error)
	CreateSchedule(ctx context.Context, data NewSchedule) (ScheduleSlot, error)
	DeleteSchedule(ctx context.Context, id string) error

	GradesByStudent(ctx context.Context, ci string) ([]Grade, error)
	CreateGrade(ctx context.Context, data NewGrade) (Grade, error)
	UpdateGrade(ctx context.Context, id string, data UpdateGrade) (Grade, error)
	DeleteGrade(ctx context.Context, id string) error

	Students(ctx context.Context) ([]Student, error)
	Teachers(ctx context.Context) ([]Teacher, error)
	Groups(ctx context.Context) ([]Group, error)
	CreateGroup(ctx context.Context, data NewGroup) (Group, error)
	SetStudentGroup(ctx context.Context, ci, groupID string) error
	AssignSubject(ctx context.Context, data Assignment) error
}
