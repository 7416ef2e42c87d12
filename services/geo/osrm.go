package geosvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
)

type OSRMRouter struct {
	http    *http.Client
	baseURL string
}

var _ carpool.Router = (*OSRMRouter)(nil)

func NewOSRMRouter(conf *core.Config) *OSRMRouter {
	return &OSRMRouter{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(conf.RoutingURL, "/"),
	}
}

// Route asks OSRM for the driving path between two points. Coordinates are
// lon,lat on the wire.
func (r *OSRMRouter) Route(ctx context.Context, origin, destination carpool.Coordinate) ([]carpool.Coordinate, error) {
	path := fmt.Sprintf("/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson",
		origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "routing")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("router: unexpected status %s", resp.Status)
	}

	var out struct {
		Code   string `json:"code"`
		Routes []struct {
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
			} `json:"geometry"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decoding router response")
	}
	if out.Code != "Ok" || len(out.Routes) == 0 {
		return nil, errors.New("router: no route found")
	}

	coords := out.Routes[0].Geometry.Coordinates
	line := make([]carpool.Coordinate, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		line = append(line, carpool.Coordinate{Lat: c[1], Lon: c[0]})
	}
	return line, nil
}
