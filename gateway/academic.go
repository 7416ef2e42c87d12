package gateway

import (
	"context"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/academic"
)

var _ academic.Gateway = (*Client)(nil)

func (c *Client) MySubjects(ctx context.Context, ci string) ([]academic.Subject, error) {
	var subjects []academic.Subject
	if err := c.get(ctx, "/estudiantes/"+ci+"/materias", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) MyGrades(ctx context.Context, ci string) ([]academic.Grade, error) {
	return c.GradesByStudent(ctx, ci)
}

func (c *Client) MySchedule(ctx context.Context, ci string) ([]academic.ScheduleSlot, error) {
	var slots []academic.ScheduleSlot
	if err := c.get(ctx, "/horarios/estudiante/"+ci, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) Subjects(ctx context.Context) ([]academic.Subject, error) {
	var subjects []academic.Subject
	if err := c.get(ctx, "/materias", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) CreateSubject(ctx context.Context, data academic.NewSubject) (academic.Subject, error) {
	var s academic.Subject
	if err := c.post(ctx, "/materias", data, &s); err != nil {
		return academic.Subject{}, err
	}
	return s, nil
}

func (c *Client) UpdateSubject(ctx context.Context, id string, data academic.NewSubject) (academic.Subject, error) {
	var s academic.Subject
	if err := c.put(ctx, "/materias/"+id, data, &s); err != nil {
		return academic.Subject{}, err
	}
	return s, nil
}

func (c *Client) DeleteSubject(ctx context.Context, id string) error {
	return c.delete(ctx, "/materias/"+id)
}

func (c *Client) Schedules(ctx context.Context) ([]academic.ScheduleSlot, error) {
	var slots []academic.ScheduleSlot
	if err := c.get(ctx, "/horarios", nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) SchedulesByGroup(ctx context.Context, groupID string) ([]academic.ScheduleSlot, error) {
	var slots []academic.ScheduleSlot
	if err := c.get(ctx, "/horarios/grupo/"+groupID, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) CreateSchedule(ctx context.Context, data academic.NewSchedule) (academic.ScheduleSlot, error) {
	var s academic.ScheduleSlot
	if err := c.post(ctx, "/horarios", data, &s); err != nil {
		return academic.ScheduleSlot{}, err
	}
	return s, nil
}

func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	return c.delete(ctx, "/horarios/"+id)
}

func (c *Client) GradesByStudent(ctx context.Context, ci string) ([]academic.Grade, error) {
	var grades []academic.Grade
	if err := c.get(ctx, "/notas/estudiante/"+ci, nil, &grades); err != nil {
		return nil, err
	}
	return grades, nil
}

func (c *Client) CreateGrade(ctx context.Context, data academic.NewGrade) (academic.Grade, error) {
	var g academic.Grade
	if err := c.post(ctx, "/notas", data, &g); err != nil {
		return academic.Grade{}, err
	}
	return g, nil
}

func (c *Client) UpdateGrade(ctx context.Context, id string, data academic.UpdateGrade) (academic.Grade, error) {
	var g academic.Grade
	if err := c.put(ctx, "/notas/"+id, data, &g); err != nil {
		return academic.Grade{}, err
	}
	return g, nil
}

func (c *Client) DeleteGrade(ctx context.Context, id string) error {
	return c.delete(ctx, "/notas/"+id)
}

func (c *Client) Students(ctx context.Context) ([]academic.Student, error) {
	var students []academic.Student
	if err := c.get(ctx, "/estudiantes", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) Teachers(ctx context.Context) ([]academic.Teacher, error) {
	var teachers []academic.Teacher
	if err := c.get(ctx, "/docentes", nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (c *Client) Groups(ctx context.Context) ([]academic.Group, error) {
	var groups []academic.Group
	if err := c.get(ctx, "/grupos", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) CreateGroup(ctx context.Context, data academic.NewGroup) (academic.Group, error) {
	var g academic.Group
	if err := c.post(ctx, "/grupos", data, &g); err != nil {
		return academic.Group{}, err
	}
	return g, nil
}

// SetStudentGroup persists the student's group before any subject can be
// assigned to them.
func (c *Client) SetStudentGroup(ctx context.Context, ci, groupID string) error {
	payload := struct {
		GroupID string `json:"id_grupo"`
	}{groupID}
	return c.put(ctx, "/estudiantes/"+ci, payload, nil)
}

func (c *Client) AssignSubject(ctx context.Context, data academic.Assignment) error {
	return c.post(ctx, "/estudiantes/materias", data, nil)
}
