package carpool

import "context"

// Gateway is the slice of the remote gateway the carpooling controller
// depends on.
type Gateway interface {
	Rides(ctx context.Context, skip, limit int) ([]Ride, error)
	MyRides(ctx context.Context) (MyRides, error)
	CreateRide(ctx context.Context, data NewRide) (Ride, error)
	UpdateRide(ctx context.Context, id string, data NewRide) (Ride, error)
	DeleteRide(ctx context.Context, id string) error
	RequestJoin(ctx context.Context, data NewJoinRequest) (JoinRequest, error)
	SetJoinState(ctx context.Context, requestID, state string) error
	CancelJoin(ctx context.Context, requestID string) error
}

// Geocoder resolves a position into a human-readable place name
// (the "use my current location" pickup option). External collaborator.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, pos Coordinate) (string, error)
}

// Router resolves a human-picked origin/destination pair into a drawable
// path. External collaborator; path rendering itself is up to the view.
type Router interface {
	Route(ctx context.Context, origin, destination Coordinate) ([]Coordinate, error)
}
