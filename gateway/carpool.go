package gateway

import (
	"context"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
)

var _ carpool.Gateway = (*Client)(nil)

func (c *Client) Rides(ctx context.Context, skip, limit int) ([]carpool.Ride, error) {
	var rides []carpool.Ride
	if err := c.get(ctx, "/rutas-carpooling", pageQuery(skip, limit), &rides); err != nil {
		return nil, err
	}
	return rides, nil
}

func (c *Client) MyRides(ctx context.Context) (carpool.MyRides, error) {
	var mine carpool.MyRides
	if err := c.get(ctx, "/rutas-carpooling/mis-rutas", nil, &mine); err != nil {
		return carpool.MyRides{}, err
	}
	return mine, nil
}

func (c *Client) CreateRide(ctx context.Context, data carpool.NewRide) (carpool.Ride, error) {
	var r carpool.Ride
	if err := c.post(ctx, "/rutas-carpooling", data, &r); err != nil {
		return carpool.Ride{}, err
	}
	return r, nil
}

func (c *Client) UpdateRide(ctx context.Context, id string, data carpool.NewRide) (carpool.Ride, error) {
	var r carpool.Ride
	if err := c.put(ctx, "/rutas-carpooling/"+id, data, &r); err != nil {
		return carpool.Ride{}, err
	}
	return r, nil
}

func (c *Client) DeleteRide(ctx context.Context, id string) error {
	return c.delete(ctx, "/rutas-carpooling/"+id)
}

func (c *Client) RequestJoin(ctx context.Context, data carpool.NewJoinRequest) (carpool.JoinRequest, error) {
	var jr carpool.JoinRequest
	if err := c.post(ctx, "/pasajeros", data, &jr); err != nil {
		return carpool.JoinRequest{}, err
	}
	return jr, nil
}

func (c *Client) SetJoinState(ctx context.Context, requestID, state string) error {
	payload := struct {
		State string `json:"estado"`
	}{state}
	return c.put(ctx, "/pasajeros/"+requestID, payload, nil)
}

func (c *Client) CancelJoin(ctx context.Context, requestID string) error {
	return c.delete(ctx, "/pasajeros/"+requestID)
}
