package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/academic"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/inspect"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/messaging"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/notify"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

// Tab identifies the active section.
type Tab int

const (
	TabFeed Tab = iota
	TabMessages
	TabRides
	TabAcademic
	TabAlerts
)

var tabNames = []string{"Inicio", "Mensajes", "Carpooling", "Académico", "Avisos"}

// InputMode says where typed characters go when the prompt is open.
type InputMode int

const (
	InputNone InputMode = iota
	InputCompose
	InputEdit
	InputSearch
	InputSend
	InputComment
	InputPickup
)

// refreshedMsg is sent when a background controller call finishes; the
// model re-reads controller state on receipt.
type refreshedMsg struct{}

// tickMsg drives banner redraws while a transient notice is visible.
type tickMsg struct{}

type app struct {
	conf *core.Config
	sess *session.Session

	feed    *social.Feed
	msgs    *messaging.Controller
	rides   *carpool.Controller
	alerts  *notify.Controller
	detail  *inspect.Detail
	student *academic.StudentPanel
	admin   *academic.AdminPanel

	tab    Tab
	cursor int
	mode   InputMode
	input  textinput.Model
	spin   spinner.Model

	results []social.UserInfo // user search hits, messages tab

	width, height int
}

func newApp(
	conf *core.Config,
	sess *session.Session,
	feed *social.Feed,
	msgs *messaging.Controller,
	rides *carpool.Controller,
	alerts *notify.Controller,
	detail *inspect.Detail,
) *app {
	in := textinput.New()
	in.CharLimit = 500
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &app{
		conf:   conf,
		sess:   sess,
		feed:   feed,
		msgs:   msgs,
		rides:  rides,
		alerts: alerts,
		detail: detail,
		input:  in,
		spin:   sp,
	}
}

func (a *app) Init() tea.Cmd {
	return tea.Batch(
		a.refresh(func(ctx context.Context) { a.feed.Load(ctx) }),
		a.refresh(func(ctx context.Context) { a.alerts.Load(ctx) }),
		a.spin.Tick,
	)
}

// refresh runs a controller call off the event loop and wakes the view
// when it is done.
func (a *app) refresh(fn func(ctx context.Context)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.conf.API.Timeout)
		defer cancel()
		fn(ctx)
		return refreshedMsg{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case refreshedMsg:
		return a, tick()
	case tickMsg:
		if _, msg := a.activeBanner(); msg != "" {
			return a, tick()
		}
		return a, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		if a.mode != InputNone {
			return a.updateInput(msg)
		}
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a *app) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "1", "2", "3", "4", "5":
		return a.switchTab(Tab(int(msg.String()[0] - '1')))
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "down", "j":
		if a.cursor < a.listLen()-1 {
			a.cursor++
		}
		return a, nil
	case "left", "right":
		return a.cycleSubTab(msg.String() == "right")
	case "enter":
		return a.open()
	case "esc":
		a.detail.Close()
		a.feed.CancelDelete()
		a.rides.CancelDelete()
		a.rides.CancelJoinFlow()
		a.results = nil
		return a, nil
	case "R":
		return a, a.reload()
	}

	switch a.tab {
	case TabFeed:
		return a.feedKeys(msg)
	case TabMessages:
		return a.messageKeys(msg)
	case TabRides:
		return a.rideKeys(msg)
	case TabAlerts:
		return a.alertKeys(msg)
	}
	return a, nil
}

func (a *app) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	a.tab = tab
	a.cursor = 0
	a.detail.Close()
	switch tab {
	case TabFeed:
		return a, a.refresh(func(ctx context.Context) { a.feed.Load(ctx) })
	case TabMessages:
		return a, a.refresh(func(ctx context.Context) { a.msgs.Load(ctx) })
	case TabRides:
		return a, a.refresh(func(ctx context.Context) { a.rides.Load(ctx) })
	case TabAcademic:
		if a.student != nil {
			return a, a.refresh(func(ctx context.Context) { a.student.SetTab(ctx, academic.StudentTabSubjects) })
		}
		if a.admin != nil {
			return a, a.refresh(func(ctx context.Context) { a.admin.Load(ctx) })
		}
	case TabAlerts:
		return a, a.refresh(func(ctx context.Context) { a.alerts.Load(ctx) })
	}
	return a, nil
}

func (a *app) reload() tea.Cmd {
	tab := a.tab
	return a.refresh(func(ctx context.Context) {
		switch tab {
		case TabFeed:
			a.feed.Load(ctx)
		case TabMessages:
			a.msgs.Load(ctx)
		case TabRides:
			a.rides.Load(ctx)
		case TabAlerts:
			a.alerts.Load(ctx)
		}
	})
}

func (a *app) cycleSubTab(forward bool) (tea.Model, tea.Cmd) {
	cycle := func(tabs []string, cur string) string {
		for i, t := range tabs {
			if t == cur {
				if forward {
					return tabs[(i+1)%len(tabs)]
				}
				return tabs[(i+len(tabs)-1)%len(tabs)]
			}
		}
		return tabs[0]
	}
	a.cursor = 0
	switch a.tab {
	case TabFeed:
		next := cycle(social.FeedTabs, a.feed.Tab())
		return a, a.refresh(func(ctx context.Context) { a.feed.SetTab(ctx, next) })
	case TabRides:
		next := cycle(carpool.Tabs, a.rides.Tab())
		return a, a.refresh(func(ctx context.Context) { a.rides.SetTab(ctx, next) })
	case TabAcademic:
		if a.student != nil {
			next := cycle(academic.StudentTabs, a.student.Tab())
			return a, a.refresh(func(ctx context.Context) { a.student.SetTab(ctx, next) })
		}
	}
	return a, nil
}

// open inspects the item under the cursor.
func (a *app) open() (tea.Model, tea.Cmd) {
	switch a.tab {
	case TabFeed:
		posts := a.feed.Visible()
		if a.cursor < len(posts) {
			item := inspect.PostItem{Post: posts[a.cursor]}
			return a, a.refresh(func(ctx context.Context) { _ = a.detail.Open(ctx, item) })
		}
	case TabMessages:
		if len(a.results) > 0 {
			other := a.results[a.cursor%len(a.results)]
			a.results = nil
			return a, a.refresh(func(ctx context.Context) {
				conv, err := a.msgs.StartIndividual(ctx, other)
				if err == nil {
					_ = a.detail.Open(ctx, inspect.ConversationItem{Conversation: conv})
				}
			})
		}
		convs := a.msgs.Conversations()
		if a.cursor < len(convs) {
			item := inspect.ConversationItem{Conversation: convs[a.cursor]}
			return a, a.refresh(func(ctx context.Context) { _ = a.detail.Open(ctx, item) })
		}
	case TabRides:
		rides := a.visibleRides()
		if a.cursor < len(rides) {
			item := inspect.RideItem{Ride: rides[a.cursor]}
			return a, a.refresh(func(ctx context.Context) { _ = a.detail.Open(ctx, item) })
		}
	case TabAlerts:
		items := a.alerts.Notifications()
		if a.cursor < len(items) {
			n := items[a.cursor]
			item := inspect.NotificationItem{Notification: n}
			return a, a.refresh(func(ctx context.Context) {
				_ = a.detail.Open(ctx, item)
				_ = a.alerts.MarkRead(ctx, n.ID)
			})
		}
	}
	return a, nil
}

func (a *app) feedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	posts := a.feed.Visible()
	switch msg.String() {
	case "n":
		return a.openInput(InputCompose, "¿Qué está pasando?")
	case "e":
		if a.cursor < len(posts) {
			a.feed.StartEdit(posts[a.cursor].ID)
			a.mode = InputEdit
			_, content := a.feed.Editing()
			a.input.Placeholder = ""
			a.input.SetValue(content)
			a.input.Focus()
		}
		return a, nil
	case "c":
		if it, ok := a.detail.Item().(inspect.PostItem); ok {
			_ = it
			return a.openInput(InputComment, "Escribe un comentario")
		}
		return a, nil
	case "r":
		if a.cursor < len(posts) {
			id := posts[a.cursor].ID
			return a, a.refresh(func(ctx context.Context) { _ = a.feed.React(ctx, id, social.ReactionLike) })
		}
		return a, nil
	case "d":
		if a.cursor < len(posts) {
			a.feed.RequestDelete(posts[a.cursor].ID)
		}
		return a, nil
	case "y":
		if a.feed.PendingDelete() != "" {
			return a, a.refresh(func(ctx context.Context) { _ = a.feed.ConfirmDelete(ctx) })
		}
		return a, nil
	}
	return a, nil
}

func (a *app) messageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		return a.openInput(InputSearch, "Buscar usuarios (mínimo 2 letras)")
	case "m":
		if _, ok := a.detail.Item().(inspect.ConversationItem); ok {
			return a.openInput(InputSend, "Escribe un mensaje")
		}
	case "f":
		// send a friend request to the highlighted search hit
		if len(a.results) > 0 {
			other := a.results[a.cursor%len(a.results)]
			return a, a.refresh(func(ctx context.Context) { _ = a.feed.AddFriend(ctx, other.ID) })
		}
	}
	return a, nil
}

func (a *app) rideKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rides := a.visibleRides()
	switch msg.String() {
	case "u":
		if a.rides.Tab() == carpool.TabAvailable && a.cursor < len(rides) {
			if err := a.rides.StartJoin(rides[a.cursor]); err == nil {
				return a.openInput(InputPickup, "Punto de recogida (opcional)")
			}
		}
	case "d":
		if a.rides.Tab() == carpool.TabMine && a.cursor < len(rides) {
			a.rides.RequestDelete(rides[a.cursor].ID)
		}
	case "y":
		return a, a.refresh(func(ctx context.Context) { _ = a.rides.ConfirmDelete(ctx) })
	}
	return a, nil
}

func (a *app) alertKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := a.alerts.Notifications()
	if a.cursor >= len(items) {
		return a, nil
	}
	n := items[a.cursor]
	switch msg.String() {
	case "a":
		return a, a.refresh(func(ctx context.Context) { _ = a.alerts.MarkAllRead(ctx) })
	case "x":
		return a, a.refresh(func(ctx context.Context) { _ = a.alerts.Delete(ctx, n.ID) })
	case "y":
		if n.Kind == notify.KindRideRequest {
			return a, a.refresh(func(ctx context.Context) { _ = a.alerts.RespondRideRequest(ctx, n, true) })
		}
	case "r":
		if n.Kind == notify.KindRideRequest {
			return a, a.refresh(func(ctx context.Context) { _ = a.alerts.RespondRideRequest(ctx, n, false) })
		}
	}
	return a, nil
}

func (a *app) openInput(mode InputMode, placeholder string) (tea.Model, tea.Cmd) {
	a.mode = mode
	a.input.Placeholder = placeholder
	a.input.SetValue("")
	a.input.Focus()
	return a, textinput.Blink
}

func (a *app) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if a.mode == InputEdit {
			a.feed.CancelEdit()
		}
		if a.mode == InputPickup {
			a.rides.CancelJoinFlow()
		}
		a.mode = InputNone
		a.input.Blur()
		return a, nil
	case "enter":
		return a.submitInput()
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.mode == InputEdit {
		a.feed.SetEditContent(a.input.Value())
	}
	return a, cmd
}

func (a *app) submitInput() (tea.Model, tea.Cmd) {
	value := a.input.Value()
	mode := a.mode
	a.mode = InputNone
	a.input.Blur()

	switch mode {
	case InputCompose:
		return a, a.refresh(func(ctx context.Context) {
			_, _ = a.feed.Create(ctx, social.NewPost{Content: value})
		})
	case InputEdit:
		a.feed.SetEditContent(value)
		return a, a.refresh(func(ctx context.Context) { _ = a.feed.SubmitEdit(ctx) })
	case InputComment:
		return a, a.refresh(func(ctx context.Context) { _ = a.detail.SubmitComment(ctx, value) })
	case InputSearch:
		return a, a.refresh(func(ctx context.Context) {
			a.results = a.msgs.SearchUsers(ctx, value)
		})
	case InputSend:
		return a, a.refresh(func(ctx context.Context) { _ = a.detail.Send(ctx, value) })
	case InputPickup:
		a.rides.SetPickup(value)
		return a, a.refresh(func(ctx context.Context) { _ = a.rides.SubmitJoin(ctx) })
	}
	return a, nil
}

func (a *app) visibleRides() []carpool.Ride {
	if a.rides.Tab() == carpool.TabMine {
		return a.rides.Driving()
	}
	return a.rides.Available()
}

func (a *app) listLen() int {
	switch a.tab {
	case TabFeed:
		return len(a.feed.Visible())
	case TabMessages:
		if len(a.results) > 0 {
			return len(a.results)
		}
		return len(a.msgs.Conversations())
	case TabRides:
		return len(a.visibleRides())
	case TabAcademic:
		if a.student != nil {
			switch a.student.Tab() {
			case academic.StudentTabGrades:
				return len(a.student.Grades())
			case academic.StudentTabSchedule:
				return len(a.student.Schedule())
			default:
				return len(a.student.Subjects())
			}
		}
		if a.admin != nil {
			return len(a.admin.Students())
		}
	case TabAlerts:
		return len(a.alerts.Notifications())
	}
	return 0
}

func (a *app) banners() []*core.Banner {
	bs := []*core.Banner{
		&a.feed.Banner, &a.msgs.Banner, &a.rides.Banner, &a.alerts.Banner, &a.detail.Banner,
	}
	if a.student != nil {
		bs = append(bs, &a.student.Banner)
	}
	if a.admin != nil {
		bs = append(bs, &a.admin.Banner)
	}
	return bs
}

func (a *app) activeBanner() (core.BannerKind, string) {
	for _, b := range a.banners() {
		if kind, msg := b.Message(); msg != "" {
			return kind, msg
		}
	}
	return core.BannerNone, ""
}
