// Package geosvc talks to the map collaborators: reverse geocoding for the
// "use my location" pickup option and route shapes for the ride planner.
package geosvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
)

type NominatimGeocoder struct {
	http    *http.Client
	baseURL string
	agent   string
}

var _ carpool.Geocoder = (*NominatimGeocoder)(nil)

func NewNominatimGeocoder(conf *core.Config) *NominatimGeocoder {
	return &NominatimGeocoder{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(conf.GeocoderURL, "/"),
		agent:   conf.AppName,
	}
}

func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, pos carpool.Coordinate) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%.6f", pos.Lat))
	q.Set("lon", fmt.Sprintf("%.6f", pos.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	req.Header.Set("User-Agent", g.agent)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "reverse geocoding")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("geocoder: unexpected status %s", resp.Status)
	}

	var out struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, "decoding geocoder response")
	}
	if out.DisplayName == "" {
		return "", errors.New("geocoder: no result for position")
	}
	return out.DisplayName, nil
}
