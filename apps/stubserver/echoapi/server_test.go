package echoapi_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/apps/stubserver/echoapi"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/gateway"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/gateway/inmem"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

// setupStub brings up the seeded stub server and a real client pointed at
// it: the full wire round trip the TUI runs against in development.
func setupStub(t *testing.T) *gateway.Client {
	t.Helper()
	conf := core.TestConfig()

	store := inmem.New([]byte(conf.SecretKey), conf.AppName)
	if err := store.Seed(); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	srv := httptest.NewServer(echoapi.NewServer(&echoapi.Options{
		DisableReqLogs: true,
		Store:          store,
		Conf:           conf,
		Logger:         nopLogger{},
	}))
	t.Cleanup(srv.Close)

	conf.API.BaseURL = srv.URL
	return gateway.NewClient(conf, nopLogger{})
}

func login(t *testing.T, c *gateway.Client, email string) {
	t.Helper()
	tok, err := c.Authenticate(context.Background(), email, "secret")
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	c.SetToken(tok)
}

// A graceful Stop makes Start return a shutdown error, which is how main
// distinguishes an orderly exit from a serve failure.
func TestServerGracefulStop(t *testing.T) {
	conf := core.TestConfig()
	store := inmem.New([]byte(conf.SecretKey), conf.AppName)
	app := echoapi.NewServer(&echoapi.Options{
		Address:        "127.0.0.1:0",
		DisableReqLogs: true,
		Store:          store,
		Conf:           conf,
		Logger:         nopLogger{},
	})

	done := make(chan error, 1)
	go func() { done <- app.Start() }()
	time.Sleep(50 * time.Millisecond) // let the listener bind

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	assert.True(t, core.IsShutdown(<-done))
}

func TestLoginAndMe(t *testing.T) {
	c := setupStub(t)
	login(t, c, "ana@uni.edu")

	me, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me() failed: %v", err)
	}
	assert.Equal(t, "u-est1", me.ID)
	assert.Equal(t, "E-200", me.CI)
	assert.True(t, me.IsStudent())
}

func TestLoginBadCredentials(t *testing.T) {
	c := setupStub(t)
	_, err := c.Authenticate(context.Background(), "ana@uni.edu", "wrong")
	assert.ErrorIs(t, err, gateway.ErrUnauthorized)
}

func TestRequestWithoutToken(t *testing.T) {
	c := setupStub(t)
	_, err := c.Feed(context.Background(), 0, 20)
	assert.ErrorIs(t, err, gateway.ErrUnauthorized)
}

func TestFeedRoundTrip(t *testing.T) {
	c := setupStub(t)
	login(t, c, "ana@uni.edu")
	ctx := context.Background()

	posts, err := c.Feed(ctx, 0, 20)
	if err != nil {
		t.Fatalf("Feed() failed: %v", err)
	}
	assert.NotEmpty(t, posts)

	// commenting comes back with a fresh id and the thread grows
	comment, err := c.CreateComment(ctx, posts[0].ID, "buen aporte")
	if err != nil {
		t.Fatalf("CreateComment() failed: %v", err)
	}
	assert.NotEmpty(t, comment.ID)

	thread, err := c.Comments(ctx, posts[0].ID)
	if err != nil {
		t.Fatalf("Comments() failed: %v", err)
	}
	assert.NotEmpty(t, thread)
}

func TestErrorEnvelopeFromStub(t *testing.T) {
	c := setupStub(t)
	login(t, c, "ana@uni.edu")

	_, err := c.ConversationInfo(context.Background(), "conv-nope")
	var apiErr *gateway.APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, 404, apiErr.Status)
		assert.Equal(t, "Recurso no encontrado", apiErr.Display())
	}
}

func TestCarpoolJoinFullRide(t *testing.T) {
	c := setupStub(t)
	login(t, c, "ana@uni.edu")
	ctx := context.Background()

	rides, err := c.Rides(ctx, 0, 20)
	if err != nil {
		t.Fatalf("Rides() failed: %v", err)
	}
	if assert.NotEmpty(t, rides) {
		jr, err := c.RequestJoin(ctx, carpool.NewJoinRequest{RideID: rides[0].ID})
		if err != nil {
			t.Fatalf("RequestJoin() failed: %v", err)
		}
		assert.Equal(t, rides[0].ID, jr.RideID)

		// a second request for the same ride is refused
		_, err = c.RequestJoin(ctx, carpool.NewJoinRequest{RideID: rides[0].ID})
		var apiErr *gateway.APIError
		if assert.ErrorAs(t, err, &apiErr) {
			assert.Equal(t, 400, apiErr.Status)
		}
	}
}

func TestFriendRequestRoundTrip(t *testing.T) {
	c := setupStub(t)
	login(t, c, "ana@uni.edu")
	ctx := context.Background()

	req, err := c.SendFriendRequest(ctx, "u-doc")
	if err != nil {
		t.Fatalf("SendFriendRequest() failed: %v", err)
	}
	assert.Equal(t, "pendiente", req.Status)
	assert.Equal(t, "u-est1", req.From.ID)

	// a second request to the same user is refused
	_, err = c.SendFriendRequest(ctx, "u-doc")
	var apiErr *gateway.APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, 400, apiErr.Status)
	}

	_, err = c.SendFriendRequest(ctx, "u-nope")
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, 404, apiErr.Status)
	}
}

func TestNotificationsRoundTrip(t *testing.T) {
	c := setupStub(t)
	login(t, c, "ana@uni.edu")
	ctx := context.Background()

	n, err := c.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("UnreadCount() failed: %v", err)
	}
	assert.Greater(t, n, 0)

	if err := c.MarkAllRead(ctx); err != nil {
		t.Fatalf("MarkAllRead() failed: %v", err)
	}
	n, err = c.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("UnreadCount() failed: %v", err)
	}
	assert.Zero(t, n)
}
