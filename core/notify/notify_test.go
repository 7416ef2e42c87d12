package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
)

type fakeGateway struct {
	notifications []Notification
	unread        int

	readIDs    []string
	markedAll  bool
	stateCalls map[string]string
}

func (g *fakeGateway) Notifications(ctx context.Context, skip, limit int) ([]Notification, error) {
	return g.notifications, nil
}

func (g *fakeGateway) UnreadCount(ctx context.Context) (int, error) { return g.unread, nil }

func (g *fakeGateway) MarkNotificationRead(ctx context.Context, id string) error {
	g.readIDs = append(g.readIDs, id)
	return nil
}

func (g *fakeGateway) MarkAllRead(ctx context.Context) error {
	g.markedAll = true
	return nil
}

func (g *fakeGateway) DeleteNotification(ctx context.Context, id string) error { return nil }

func (g *fakeGateway) SetJoinState(ctx context.Context, requestID, state string) error {
	if g.stateCalls == nil {
		g.stateCalls = make(map[string]string)
	}
	g.stateCalls[requestID] = state
	return nil
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func setupController(t *testing.T, gw *fakeGateway) (*Controller, *core.Broadcast) {
	t.Helper()
	sess := session.TestSession(session.User{ID: "u-1", Name: "Ana"})
	bus := core.NewBroadcast()
	c := NewController(gw, sess, core.TestConfig(), nopLogger{}, bus)
	c.Load(context.Background())
	return c, bus
}

func someNotifications() []Notification {
	now := time.Now()
	return []Notification{
		{ID: "nt-1", Kind: KindComment, Content: "Luis comentó tu publicación", SentAt: now},
		{ID: "nt-2", Kind: KindRideRequest, Content: "Luis quiere unirse a tu ruta", ReferenceID: "jr-1", SentAt: now},
		{ID: "nt-3", Kind: KindNewGrade, Content: "Nueva nota registrada", Read: true, SentAt: now},
	}
}

func TestMarkReadAdjustsUnread(t *testing.T) {
	gw := &fakeGateway{notifications: someNotifications(), unread: 2}
	c, _ := setupController(t, gw)
	ctx := context.Background()

	if err := c.MarkRead(ctx, "nt-1"); err != nil {
		t.Fatalf("MarkRead() failed: %v", err)
	}
	assert.Equal(t, 1, c.Unread())
	assert.True(t, c.Notifications()[0].Read)

	// marking an already-read entry keeps the counter stable
	if err := c.MarkRead(ctx, "nt-1"); err != nil {
		t.Fatalf("MarkRead() failed: %v", err)
	}
	assert.Equal(t, 1, c.Unread())
}

func TestMarkAllRead(t *testing.T) {
	gw := &fakeGateway{notifications: someNotifications(), unread: 2}
	c, _ := setupController(t, gw)

	if err := c.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead() failed: %v", err)
	}
	assert.True(t, gw.markedAll)
	assert.Zero(t, c.Unread())
	for _, n := range c.Notifications() {
		assert.True(t, n.Read)
	}
}

func TestDeleteRemovesLocally(t *testing.T) {
	gw := &fakeGateway{notifications: someNotifications(), unread: 2}
	c, _ := setupController(t, gw)

	if err := c.Delete(context.Background(), "nt-2"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	assert.Len(t, c.Notifications(), 2)
}

// Answering a ride-request notification resolves the join request, marks
// the notification read and broadcasts the carpooling update.
func TestRespondRideRequest(t *testing.T) {
	gw := &fakeGateway{notifications: someNotifications(), unread: 2}
	c, bus := setupController(t, gw)

	var published int
	bus.Subscribe(core.TopicCarpoolingUpdated, func() { published++ })

	n := c.Notifications()[1]
	if err := c.RespondRideRequest(context.Background(), n, true); err != nil {
		t.Fatalf("RespondRideRequest() failed: %v", err)
	}
	assert.Equal(t, "aceptado", gw.stateCalls["jr-1"])
	assert.Contains(t, gw.readIDs, "nt-2")
	assert.Equal(t, 1, published)

	if err := c.RespondRideRequest(context.Background(), someNotifications()[1], false); err != nil {
		t.Fatalf("RespondRideRequest() failed: %v", err)
	}
	assert.Equal(t, "rechazado", gw.stateCalls["jr-1"])
}
