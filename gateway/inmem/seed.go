package inmem

import (
	"context"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/academic"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/messaging"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/notify"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

// Seed loads a small campus worth of demo data. All demo logins use the
// password "secret".
func (s *Store) Seed() error {
	users := []session.User{
		{ID: "u-admin", Name: "Carla", LastName: "Rojas", Email: "admin@uni.edu", Role: session.RoleAdmin},
		{ID: "u-doc", Name: "Marco", LastName: "Villca", Email: "docente@uni.edu", Role: session.RoleTeacher, CI: "D-100"},
		{ID: "u-est1", Name: "Ana", LastName: "Quispe", Email: "ana@uni.edu", Role: session.RoleStudent, CI: "E-200"},
		{ID: "u-est2", Name: "Luis", LastName: "Mamani", Email: "luis@uni.edu", Role: session.RoleStudent, CI: "E-201"},
	}
	for _, u := range users {
		if err := s.RegisterUser(u, "secret"); err != nil {
			return err
		}
	}

	ctx := context.Background()
	s.SetSelf(users[2]) // Ana authors the demo content

	s.mu.Lock()
	s.groups = []academic.Group{
		{ID: "g-1a", Name: "1A", Term: "2026-2", Career: "Ingeniería de Sistemas"},
		{ID: "g-1b", Name: "1B", Term: "2026-2", Career: "Ingeniería de Sistemas"},
	}
	s.subjects = []academic.Subject{
		{ID: "m-calc", Name: "Cálculo I", Code: "MAT-101", TeacherCI: "D-100", Origin: academic.OriginSIU},
		{ID: "m-prog", Name: "Programación I", Code: "INF-110", TeacherCI: "D-100", Origin: academic.OriginManual},
	}
	s.students = []academic.Student{
		{CI: "E-200", Career: "Ingeniería de Sistemas", Semester: 3, GroupID: "g-1a", Name: "Ana", LastName: "Quispe"},
		{CI: "E-201", Career: "Ingeniería de Sistemas", Semester: 3, Name: "Luis", LastName: "Mamani"},
	}
	s.teachers = []academic.Teacher{
		{CI: "D-100", UserID: "u-doc", Name: "Marco", LastName: "Villca"},
	}
	s.assignments = []academic.Assignment{
		{StudentCI: "E-200", SubjectID: "m-calc", GroupID: "g-1a"},
		{StudentCI: "E-200", SubjectID: "m-prog", GroupID: "g-1a"},
	}
	s.schedules = []academic.ScheduleSlot{
		{ID: "h-1", SubjectID: "m-calc", Weekday: "Lunes", StartTime: "08:00:00", EndTime: "10:00:00", Room: "A-301", GroupID: "g-1a"},
		{ID: "h-2", SubjectID: "m-prog", Weekday: "Miércoles", StartTime: "10:00:00", EndTime: "12:00:00", Room: "LAB-2", GroupID: "g-1a"},
	}
	s.grades = []academic.Grade{
		{ID: "n-1", UserID: "u-est1", SubjectID: "m-calc", Score: 78, Kind: academic.GradePartial, Origin: academic.OriginSIU, RecordedAt: nowFunc()},
	}
	s.mu.Unlock()

	if _, err := s.CreatePost(ctx, social.CreatePost{
		Content: "[EVENTO] Feria de proyectos\nEste viernes en el bloque central.",
		Kind:    social.PostText,
	}); err != nil {
		return err
	}
	if _, err := s.CreatePost(ctx, social.CreatePost{
		Content: "¿Alguien tiene los apuntes de Cálculo de ayer?",
		Kind:    social.PostText,
	}); err != nil {
		return err
	}

	s.mu.Lock()
	s.friends = []social.Friend{
		{RelationID: "rel-1", User: social.UserInfo{ID: "u-est2", Name: "Luis", LastName: "Mamani"}, Since: nowFunc()},
	}
	s.mu.Unlock()

	conv, err := s.CreateConversation(ctx, messaging.CreateConversation{
		Kind:         messaging.KindPrivate,
		Participants: []string{"u-est1", "u-est2"},
	})
	if err != nil {
		return err
	}
	if _, err := s.Send(ctx, messaging.SendMessage{ConversationID: conv.ID, Content: "Hola! ¿vas a la feria?"}); err != nil {
		return err
	}

	s.SetSelf(users[3]) // Luis drives the demo ride
	if _, err := s.CreateRide(ctx, carpool.NewRide{
		Origin:        "Plaza del Estudiante",
		Destination:   "Campus Central",
		DepartureTime: "07:30:00",
		Days:          "Lunes,Miércoles,Viernes",
		Capacity:      3,
	}); err != nil {
		return err
	}

	s.PushNotification(notify.Notification{
		UserID:  "u-est1",
		Content: "Marco Villca registró una nueva nota en Cálculo I",
		Kind:    notify.KindNewGrade,
	})

	s.SetSelf(session.User{})
	return nil
}
