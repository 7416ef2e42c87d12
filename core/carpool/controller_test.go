package carpool

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
)

type fakeGateway struct {
	rides      []Ride
	mine       MyRides
	joinCalls  []NewJoinRequest
	joinErr    error
	stateCalls map[string]string
	loadCount  int
}

func (g *fakeGateway) Rides(ctx context.Context, skip, limit int) ([]Ride, error) {
	g.loadCount++
	return g.rides, nil
}

func (g *fakeGateway) MyRides(ctx context.Context) (MyRides, error) { return g.mine, nil }

func (g *fakeGateway) CreateRide(ctx context.Context, data NewRide) (Ride, error) {
	r := Ride{ID: "rt-new", DriverID: "u-1", Origin: data.Origin, Destination: data.Destination,
		DepartureTime: data.DepartureTime, Days: data.Days, Capacity: data.Capacity, State: RideActive}
	g.mine.AsDriver = append(g.mine.AsDriver, r)
	return r, nil
}

func (g *fakeGateway) UpdateRide(ctx context.Context, id string, data NewRide) (Ride, error) {
	return Ride{ID: id, Origin: data.Origin}, nil
}

func (g *fakeGateway) DeleteRide(ctx context.Context, id string) error { return nil }

func (g *fakeGateway) RequestJoin(ctx context.Context, data NewJoinRequest) (JoinRequest, error) {
	if g.joinErr != nil {
		return JoinRequest{}, g.joinErr
	}
	g.joinCalls = append(g.joinCalls, data)
	return JoinRequest{ID: "jr-1", RideID: data.RideID, State: JoinPending, Pickup: data.Pickup}, nil
}

func (g *fakeGateway) SetJoinState(ctx context.Context, requestID, state string) error {
	if g.stateCalls == nil {
		g.stateCalls = make(map[string]string)
	}
	g.stateCalls[requestID] = state
	return nil
}

func (g *fakeGateway) CancelJoin(ctx context.Context, requestID string) error { return nil }

type fakeGeocoder struct {
	name string
	err  error
}

func (g fakeGeocoder) ReverseGeocode(ctx context.Context, pos Coordinate) (string, error) {
	return g.name, g.err
}

type fakeRouter struct{}

func (fakeRouter) Route(ctx context.Context, origin, destination Coordinate) ([]Coordinate, error) {
	return []Coordinate{origin, destination}, nil
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func setupController(t *testing.T, gw Gateway, geo Geocoder) (*Controller, *core.Broadcast) {
	t.Helper()
	sess := session.TestSession(session.User{ID: "u-1", Name: "Ana"})
	bus := core.NewBroadcast()
	c := NewController(gw, geo, fakeRouter{}, sess, core.TestConfig(), nopLogger{}, core.Validate, bus)
	return c, bus
}

func openRide(id, driver string, capacity, accepted int) Ride {
	return Ride{
		ID: id, DriverID: driver, Origin: "Plaza", Destination: "Campus",
		DepartureTime: "07:30:00", Days: "Lunes", Capacity: capacity,
		Accepted: accepted, State: RideActive,
	}
}

func TestCanJoinGates(t *testing.T) {
	gw := &fakeGateway{
		mine: MyRides{AsPassenger: []JoinRequest{{RideID: "rt-joined", State: JoinPending}}},
	}
	c, _ := setupController(t, gw, fakeGeocoder{})
	c.Load(context.Background())

	assert.NoError(t, c.CanJoin(openRide("rt-ok", "u-9", 3, 1)))
	assert.ErrorIs(t, c.CanJoin(openRide("rt-full", "u-9", 2, 2)), ErrRideFull)
	assert.ErrorIs(t, c.CanJoin(openRide("rt-own", "u-1", 3, 0)), ErrOwnRide)
	assert.ErrorIs(t, c.CanJoin(openRide("rt-joined", "u-9", 3, 0)), ErrAlreadyJoined)
}

// A gated ride must never arm the join prompt, and no request may reach the
// gateway without an armed join.
func TestJoinFlow(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := setupController(t, gw, fakeGeocoder{})
	ctx := context.Background()

	assert.Error(t, c.StartJoin(openRide("rt-full", "u-9", 1, 1)))
	assert.Error(t, c.SubmitJoin(ctx)) // nothing armed
	assert.Empty(t, gw.joinCalls)

	if err := c.StartJoin(openRide("rt-1", "u-9", 3, 0)); err != nil {
		t.Fatalf("StartJoin() failed: %v", err)
	}
	c.SetPickup("  Av. Ballivián 123  ")
	if err := c.SubmitJoin(ctx); err != nil {
		t.Fatalf("SubmitJoin() failed: %v", err)
	}
	if assert.Len(t, gw.joinCalls, 1) {
		assert.Equal(t, "rt-1", gw.joinCalls[0].RideID)
		assert.Equal(t, "Av. Ballivián 123", gw.joinCalls[0].Pickup)
	}
	// the new request shows up among my rides immediately
	assert.Len(t, c.Riding(), 1)
}

// The pickup step is optional: a geocoder failure leaves it empty and the
// join still goes through.
func TestJoinPickupGeocoderFailure(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := setupController(t, gw, fakeGeocoder{err: errors.New("timeout")})
	ctx := context.Background()

	if err := c.StartJoin(openRide("rt-1", "u-9", 3, 0)); err != nil {
		t.Fatalf("StartJoin() failed: %v", err)
	}
	c.UsePositionAsPickup(ctx, Coordinate{Lat: -16.5, Lon: -68.1})
	if err := c.SubmitJoin(ctx); err != nil {
		t.Fatalf("SubmitJoin() failed: %v", err)
	}
	if assert.Len(t, gw.joinCalls, 1) {
		assert.Empty(t, gw.joinCalls[0].Pickup)
	}
}

func TestJoinCancelledFlowSendsNothing(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := setupController(t, gw, fakeGeocoder{})

	_ = c.StartJoin(openRide("rt-1", "u-9", 3, 0))
	c.CancelJoinFlow()
	assert.Error(t, c.SubmitJoin(context.Background()))
	assert.Empty(t, gw.joinCalls)
}

func TestCreateRideValidation(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := setupController(t, gw, fakeGeocoder{})
	ctx := context.Background()

	err := c.Create(ctx, NewRide{Origin: "Plaza", Destination: "Campus", DepartureTime: "siete", Days: "Lunes", Capacity: 3})
	assert.Error(t, err)

	err = c.Create(ctx, NewRide{Origin: "Plaza", Destination: "Campus", DepartureTime: "07:30", Days: "Lunes,Viernes", Capacity: 3})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	assert.Len(t, c.Driving(), 1)
}

func TestRespondRequestReloads(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := setupController(t, gw, fakeGeocoder{})
	ctx := context.Background()

	if err := c.AcceptRequest(ctx, "jr-7"); err != nil {
		t.Fatalf("AcceptRequest() failed: %v", err)
	}
	assert.Equal(t, JoinAccepted, gw.stateCalls["jr-7"])
	assert.GreaterOrEqual(t, gw.loadCount, 1)
}

// An out-of-band carpooling update (published when a ride-request
// notification is answered) reloads the list.
func TestBroadcastReload(t *testing.T) {
	gw := &fakeGateway{}
	_, bus := setupController(t, gw, fakeGeocoder{})
	before := gw.loadCount

	bus.Publish(core.TopicCarpoolingUpdated)
	assert.Greater(t, gw.loadCount, before)
}

func TestPlanRoute(t *testing.T) {
	c, _ := setupController(t, &fakeGateway{}, fakeGeocoder{})
	path, err := c.PlanRoute(context.Background(), Coordinate{Lat: 1}, Coordinate{Lat: 2})
	if err != nil {
		t.Fatalf("PlanRoute() failed: %v", err)
	}
	assert.Len(t, path, 2)
}
