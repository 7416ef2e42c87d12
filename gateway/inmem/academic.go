package inmem

import (
	"context"

	"github.com/google/uuid"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/academic"
)

var _ academic.Gateway = (*Store)(nil)

func (s *Store) MySubjects(ctx context.Context, ci string) ([]academic.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []academic.Subject
	for _, a := range s.assignments {
		if a.StudentCI != ci {
			continue
		}
		for _, subj := range s.subjects {
			if subj.ID == a.SubjectID {
				out = append(out, subj)
			}
		}
	}
	return out, nil
}

func (s *Store) MyGrades(ctx context.Context, ci string) ([]academic.Grade, error) {
	return s.GradesByStudent(ctx, ci)
}

func (s *Store) MySchedule(ctx context.Context, ci string) ([]academic.ScheduleSlot, error) {
	s.mu.Lock()
	groupID := ""
	for _, st := range s.students {
		if st.CI == ci {
			groupID = st.GroupID
		}
	}
	s.mu.Unlock()
	if groupID == "" {
		return nil, nil
	}
	return s.SchedulesByGroup(ctx, groupID)
}

func (s *Store) Subjects(ctx context.Context) ([]academic.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]academic.Subject, len(s.subjects))
	copy(out, s.subjects)
	return out, nil
}

func (s *Store) CreateSubject(ctx context.Context, data academic.NewSubject) (academic.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subj := academic.Subject{
		ID:        uuid.NewString(),
		Name:      data.Name,
		Code:      data.Code,
		TeacherCI: data.TeacherCI,
		Origin:    data.Origin,
	}
	s.subjects = append(s.subjects, subj)
	return subj, nil
}

func (s *Store) UpdateSubject(ctx context.Context, id string, data academic.NewSubject) (academic.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subjects {
		if s.subjects[i].ID == id {
			s.subjects[i].Name = data.Name
			s.subjects[i].Code = data.Code
			s.subjects[i].TeacherCI = data.TeacherCI
			s.subjects[i].Origin = data.Origin
			return s.subjects[i], nil
		}
	}
	return academic.Subject{}, ErrNotFound
}

func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subjects {
		if s.subjects[i].ID == id {
			s.subjects = append(s.subjects[:i], s.subjects[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) Schedules(ctx context.Context) ([]academic.ScheduleSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]academic.ScheduleSlot, len(s.schedules))
	copy(out, s.schedules)
	return out, nil
}

func (s *Store) SchedulesByGroup(ctx context.Context, groupID string) ([]academic.ScheduleSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []academic.ScheduleSlot
	for _, slot := range s.schedules {
		if slot.GroupID == groupID {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *Store) CreateSchedule(ctx context.Context, data academic.NewSchedule) (academic.ScheduleSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := academic.ScheduleSlot{
		ID:        uuid.NewString(),
		SubjectID: data.SubjectID,
		Weekday:   data.Weekday,
		StartTime: data.StartTime,
		EndTime:   data.EndTime,
		Room:      data.Room,
		GroupID:   data.GroupID,
	}
	s.schedules = append(s.schedules, slot)
	return slot, nil
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.schedules {
		if s.schedules[i].ID == id {
			s.schedules = append(s.schedules[:i], s.schedules[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) GradesByStudent(ctx context.Context, ci string) ([]academic.Grade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := ci
	for _, acct := range s.accounts {
		if acct.user.CI == ci {
			userID = acct.user.ID
		}
	}
	var out []academic.Grade
	for _, g := range s.grades {
		if g.UserID == userID || g.UserID == ci {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *Store) CreateGrade(ctx context.Context, data academic.NewGrade) (academic.Grade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := academic.Grade{
		ID:         uuid.NewString(),
		UserID:     data.UserID,
		SubjectID:  data.SubjectID,
		Score:      data.Score,
		Kind:       data.Kind,
		Origin:     academic.OriginManual,
		RecordedAt: nowFunc(),
	}
	s.grades = append(s.grades, g)
	return g, nil
}

func (s *Store) UpdateGrade(ctx context.Context, id string, data academic.UpdateGrade) (academic.Grade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.grades {
		if s.grades[i].ID == id {
			s.grades[i].Score = data.Score
			s.grades[i].Kind = data.Kind
			return s.grades[i], nil
		}
	}
	return academic.Grade{}, ErrNotFound
}

func (s *Store) DeleteGrade(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.grades {
		if s.grades[i].ID == id {
			s.grades = append(s.grades[:i], s.grades[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) Students(ctx context.Context) ([]academic.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]academic.Student, len(s.students))
	copy(out, s.students)
	return out, nil
}

func (s *Store) Teachers(ctx context.Context) ([]academic.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]academic.Teacher, len(s.teachers))
	copy(out, s.teachers)
	return out, nil
}

func (s *Store) Groups(ctx context.Context) ([]academic.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]academic.Group, len(s.groups))
	copy(out, s.groups)
	return out, nil
}

func (s *Store) CreateGroup(ctx context.Context, data academic.NewGroup) (academic.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := academic.Group{ID: uuid.NewString(), Name: data.Name, Term: data.Term}
	s.groups = append(s.groups, g)
	return g, nil
}

func (s *Store) SetStudentGroup(ctx context.Context, ci, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.students {
		if s.students[i].CI == ci {
			s.students[i].GroupID = groupID
			return nil
		}
	}
	return ErrNotFound
}

// AssignSubject enforces the backend rule that a student must already
// belong to a group before receiving subjects.
func (s *Store) AssignSubject(ctx context.Context, data academic.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.CI == data.StudentCI {
			if st.GroupID == "" {
				return ErrStudentNoGroup
			}
			s.assignments = append(s.assignments, data)
			return nil
		}
	}
	return ErrNotFound
}
