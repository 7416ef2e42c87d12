package geosvc

import (
	"context"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
)

// DummyGeocoder returns a fixed place name; used in tests and when no
// geocoder URL is configured.
type DummyGeocoder struct {
	Name string
	Err  error
}

var _ carpool.Geocoder = (*DummyGeocoder)(nil)

func (g DummyGeocoder) ReverseGeocode(ctx context.Context, pos carpool.Coordinate) (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	if g.Name != "" {
		return g.Name, nil
	}
	return "Campus Central", nil
}

// DummyRouter returns a straight line between the endpoints.
type DummyRouter struct {
	Err error
}

var _ carpool.Router = (*DummyRouter)(nil)

func (r DummyRouter) Route(ctx context.Context, origin, destination carpool.Coordinate) ([]carpool.Coordinate, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return []carpool.Coordinate{origin, destination}, nil
}
