package inmem

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
)

var _ carpool.Gateway = (*Store)(nil)

func (s *Store) Rides(ctx context.Context, skip, limit int) ([]carpool.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rides := sortedByTimeDesc(s.rides, func(r carpool.Ride) time.Time { return r.CreatedAt })
	for i := range rides {
		s.fillCounts(&rides[i])
	}
	return paginate(rides, skip, limit), nil
}

func (s *Store) fillCounts(r *carpool.Ride) {
	accepted, total := 0, 0
	for _, j := range s.joins {
		if j.RideID != r.ID || j.State == carpool.JoinCancelled {
			continue
		}
		total++
		if j.State == carpool.JoinAccepted {
			accepted++
		}
	}
	r.Accepted = accepted
	r.Requests = total
}

func (s *Store) MyRides(ctx context.Context) (carpool.MyRides, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var mine carpool.MyRides
	for _, r := range s.rides {
		if r.DriverID == s.self.ID {
			s.fillCounts(&r)
			mine.AsDriver = append(mine.AsDriver, r)
		}
	}
	for _, j := range s.joins {
		if j.UserID != s.self.ID || j.State == carpool.JoinCancelled {
			continue
		}
		for _, r := range s.rides {
			if r.ID == j.RideID {
				ride := r
				s.fillCounts(&ride)
				j.Ride = &ride
			}
		}
		mine.AsPassenger = append(mine.AsPassenger, j)
	}
	return mine, nil
}

func (s *Store) CreateRide(ctx context.Context, data carpool.NewRide) (carpool.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := carpool.Ride{
		ID:            uuid.NewString(),
		DriverID:      s.self.ID,
		Origin:        data.Origin,
		Destination:   data.Destination,
		DepartureTime: data.DepartureTime,
		Days:          data.Days,
		Capacity:      data.Capacity,
		State:         carpool.RideActive,
		Stops:         data.Stops,
		CreatedAt:     nowFunc(),
	}
	s.rides = append(s.rides, r)
	return r, nil
}

func (s *Store) UpdateRide(ctx context.Context, id string, data carpool.NewRide) (carpool.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rides {
		if s.rides[i].ID == id {
			if s.rides[i].DriverID != s.self.ID {
				return carpool.Ride{}, ErrForbidden
			}
			s.rides[i].Origin = data.Origin
			s.rides[i].Destination = data.Destination
			s.rides[i].DepartureTime = data.DepartureTime
			s.rides[i].Days = data.Days
			s.rides[i].Capacity = data.Capacity
			s.rides[i].Stops = data.Stops
			return s.rides[i], nil
		}
	}
	return carpool.Ride{}, ErrNotFound
}

func (s *Store) DeleteRide(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rides {
		if s.rides[i].ID == id {
			if s.rides[i].DriverID != s.self.ID {
				return ErrForbidden
			}
			s.rides[i].State = carpool.RideCancelled
			return nil
		}
	}
	return ErrNotFound
}

// RequestJoin refuses duplicates and full rides, like the backend does.
func (s *Store) RequestJoin(ctx context.Context, data carpool.NewJoinRequest) (carpool.JoinRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.joins {
		if j.RideID == data.RideID && j.UserID == s.self.ID && j.State != carpool.JoinCancelled {
			return carpool.JoinRequest{}, ErrDuplicateJoin
		}
	}
	for i := range s.rides {
		if s.rides[i].ID != data.RideID {
			continue
		}
		ride := s.rides[i]
		s.fillCounts(&ride)
		if ride.Full() {
			return carpool.JoinRequest{}, ErrRideFull
		}
		j := carpool.JoinRequest{
			ID:       uuid.NewString(),
			RideID:   data.RideID,
			UserID:   s.self.ID,
			State:    carpool.JoinPending,
			Pickup:   data.Pickup,
			JoinedAt: nowFunc(),
		}
		s.joins = append(s.joins, j)
		return j, nil
	}
	return carpool.JoinRequest{}, ErrNotFound
}

func (s *Store) SetJoinState(ctx context.Context, requestID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.joins {
		if s.joins[i].ID == requestID {
			s.joins[i].State = state
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) CancelJoin(ctx context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.joins {
		if s.joins[i].ID == requestID {
			if s.joins[i].UserID != s.self.ID {
				return ErrForbidden
			}
			s.joins[i].State = carpool.JoinCancelled
			return nil
		}
	}
	return ErrNotFound
}
