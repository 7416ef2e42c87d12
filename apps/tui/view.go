package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/academic"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/inspect"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

func (a *app) View() string {
	var b strings.Builder

	b.WriteString(a.viewTabs())
	b.WriteString("\n")

	if kind, msg := a.activeBanner(); msg != "" {
		style := successBannerStyle
		if kind == core.BannerError {
			style = errorBannerStyle
		}
		b.WriteString(style.Render(msg))
		b.WriteString("\n")
	}

	list := a.viewList()
	if item := a.detail.Item(); item != nil {
		detail := paneStyle.Render(a.viewDetail(item))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, detail))
	} else {
		b.WriteString(list)
	}
	b.WriteString("\n")

	if a.mode != InputNone {
		b.WriteString(a.input.View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(a.helpLine()))
	return b.String()
}

func (a *app) viewTabs() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == int(TabAlerts) {
			if n := a.alerts.Unread(); n > 0 {
				label = fmt.Sprintf("%s (%d)", label, n)
			}
		}
		if Tab(i) == a.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *app) viewList() string {
	var lines []string
	switch a.tab {
	case TabFeed:
		lines = a.feedLines()
	case TabMessages:
		lines = a.messageLines()
	case TabRides:
		lines = a.rideLines()
	case TabAcademic:
		lines = a.academicLines()
	case TabAlerts:
		lines = a.alertLines()
	}
	if len(lines) == 0 {
		return dimStyle.Render(a.emptyMessage())
	}
	for i := range lines {
		marker := "  "
		if i == a.cursor {
			marker = cursorStyle.Render("> ")
		}
		lines[i] = marker + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (a *app) emptyMessage() string {
	switch a.tab {
	case TabFeed:
		if a.feed.Loading() {
			return a.spin.View() + " cargando..."
		}
		return a.feed.EmptyMessage()
	case TabMessages:
		return "No tienes conversaciones"
	case TabRides:
		return "No hay rutas disponibles"
	case TabAlerts:
		return "No tienes notificaciones"
	}
	return "Sin datos"
}

func (a *app) feedLines() []string {
	posts := a.feed.Visible()
	lines := make([]string, 0, len(posts))
	for _, p := range posts {
		who := "alguien"
		if p.Author != nil {
			who = strings.TrimSpace(p.Author.Name + " " + p.Author.LastName)
		}
		text := p.Content
		if social.IsEvent(p) {
			text = eventStyle.Render("EVENTO ") + social.EventTitle(p)
		}
		line := fmt.Sprintf("%s: %s %s",
			who, firstLine(text),
			dimStyle.Render(fmt.Sprintf("[%d com, %d reac]", p.Comments, p.Reactions)))
		if a.feed.PendingDelete() == p.ID {
			line += errorBannerStyle.Render("  ¿eliminar? y/esc")
		}
		lines = append(lines, line)
	}
	return lines
}

func (a *app) messageLines() []string {
	if len(a.results) > 0 {
		lines := make([]string, 0, len(a.results))
		for _, u := range a.results {
			lines = append(lines, strings.TrimSpace(u.Name+" "+u.LastName))
		}
		return lines
	}
	convs := a.msgs.Conversations()
	self := a.sess.User().ID
	lines := make([]string, 0, len(convs))
	for _, c := range convs {
		name := c.Name
		if !c.IsGroup() {
			if other, ok := c.Other(self); ok {
				name = strings.TrimSpace(other.Name + " " + other.LastName)
			}
		}
		line := name
		if c.LastMessage != nil {
			line += dimStyle.Render(" — " + firstLine(c.LastMessage.Content))
		}
		if c.Unread > 0 {
			line += cursorStyle.Render(fmt.Sprintf(" (%d)", c.Unread))
		}
		lines = append(lines, line)
	}
	return lines
}

func (a *app) rideLines() []string {
	rides := a.visibleRides()
	lines := make([]string, 0, len(rides))
	for _, r := range rides {
		line := fmt.Sprintf("%s → %s  %s  %s",
			r.Origin, r.Destination, r.DepartureTime,
			dimStyle.Render(fmt.Sprintf("%d/%d asientos", r.Accepted, r.Capacity)))
		if r.Full() {
			line += errorBannerStyle.Render(" COMPLETA")
		}
		lines = append(lines, line)
	}
	return lines
}

func (a *app) academicLines() []string {
	if a.student != nil {
		switch a.student.Tab() {
		case academic.StudentTabGrades:
			grades := a.student.Grades()
			lines := make([]string, 0, len(grades))
			for _, g := range grades {
				lines = append(lines, fmt.Sprintf("%s: %.1f (%s)", g.SubjectID, g.Score, g.Kind))
			}
			return lines
		case academic.StudentTabSchedule:
			slots := a.student.Schedule()
			lines := make([]string, 0, len(slots))
			for _, s := range slots {
				lines = append(lines, fmt.Sprintf("%s %s-%s  %s  aula %s", s.Weekday, s.StartTime, s.EndTime, s.SubjectID, s.Room))
			}
			return lines
		default:
			subjects := a.student.Subjects()
			lines := make([]string, 0, len(subjects))
			for _, s := range subjects {
				lines = append(lines, fmt.Sprintf("%s (%s)", s.Name, s.Code))
			}
			return lines
		}
	}
	if a.admin != nil {
		students := a.admin.Students()
		lines := make([]string, 0, len(students))
		for _, st := range students {
			group := st.GroupID
			if group == "" {
				group = dimStyle.Render("sin grupo")
			}
			lines = append(lines, fmt.Sprintf("%s %s  CI %s  %s", st.Name, st.LastName, st.CI, group))
		}
		return lines
	}
	return nil
}

func (a *app) alertLines() []string {
	items := a.alerts.Notifications()
	lines := make([]string, 0, len(items))
	for _, n := range items {
		line := firstLine(n.Content)
		if !n.Read {
			line = cursorStyle.Render("● ") + line
		} else {
			line = dimStyle.Render("○ ") + line
		}
		lines = append(lines, line)
	}
	return lines
}

func (a *app) viewDetail(item inspect.Item) string {
	var b strings.Builder
	switch it := item.(type) {
	case inspect.PostItem:
		b.WriteString(it.Post.Content)
		b.WriteString("\n\n")
		for _, cm := range a.detail.Comments() {
			who := "alguien"
			if cm.Author != nil {
				who = cm.Author.Name
			}
			b.WriteString(fmt.Sprintf("%s: %s\n", who, cm.Content))
		}
	case inspect.ConversationItem:
		if a.detail.ConversationState() == inspect.ConvLoading {
			b.WriteString(a.spin.View() + " cargando mensajes...")
			break
		}
		self := a.sess.User().ID
		for _, m := range a.detail.Messages() {
			prefix := "ellos"
			if m.AuthorID == self {
				prefix = "yo"
			}
			b.WriteString(fmt.Sprintf("%s: %s\n", prefix, m.Content))
		}
	case inspect.RideItem:
		r := it.Ride
		b.WriteString(fmt.Sprintf("%s → %s\nSalida %s\nDías: %s\nAsientos: %d/%d\n",
			r.Origin, r.Destination, r.DepartureTime, r.Days, r.Accepted, r.Capacity))
		for _, stop := range r.Stops {
			b.WriteString(fmt.Sprintf("  parada %d: %s\n", stop.Order, stop.Location))
		}
	case inspect.GradeItem:
		b.WriteString(fmt.Sprintf("%s\n%s: %.1f\n", it.Subject.Name, it.Grade.Kind, it.Grade.Score))
	case inspect.NotificationItem:
		b.WriteString(it.Notification.Content)
	}
	return b.String()
}

func (a *app) helpLine() string {
	common := "1-5 secciones · ←/→ pestañas · ↑/↓ mover · enter abrir · R recargar · q salir"
	switch a.tab {
	case TabFeed:
		return common + " · n publicar · e editar · r reaccionar · d eliminar · c comentar"
	case TabMessages:
		return common + " · / buscar · m mensaje · f agregar amigo"
	case TabRides:
		return common + " · u unirse · d eliminar"
	case TabAlerts:
		return common + " · a marcar todas · x borrar · y/r aceptar/rechazar"
	}
	return common
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len([]rune(s)) > 80 {
		return string([]rune(s)[:77]) + "..."
	}
	return s
}
