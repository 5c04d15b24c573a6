package geocoding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://geocode.maps.co"

var ErrEmptyQuery = errors.New("empty query")

// Candidate is one place matching a free text query.
type Candidate struct {
	Name      string
	Latitude  float64
	Longitude float64
}

type Option func(*Geocoder)

func WithBaseURL(baseURL string) Option {
	return func(g *Geocoder) {
		g.baseURL = baseURL
	}
}

func WithTransport(transport http.RoundTripper) Option {
	return func(g *Geocoder) {
		g.http.SetTransport(transport)
	}
}

func New(apiKey string, opts ...Option) *Geocoder {
	g := &Geocoder{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    resty.New(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

type Geocoder struct {
	apiKey  string
	baseURL string
	http    *resty.Client
}

func (g *Geocoder) Search(ctx context.Context, query string) ([]Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	params := map[string]string{
		"api_key": g.apiKey,
		"q":       query,
	}

	return g.processRequest(ctx, strings.TrimSuffix(g.baseURL, "/")+"/search", params)
}

func (g *Geocoder) processRequest(ctx context.Context, path string, params map[string]string) ([]Candidate, error) {
	type responseStruct struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}

	request := g.http.R().SetContext(ctx)
	request.SetQueryParams(params)

	response, err := request.Get(path)
	if err != nil {
		return nil, err
	}

	if response.StatusCode() != http.StatusOK {
		buf := &bytes.Buffer{}

		if err = json.Indent(buf, response.Body(), "", "  "); err != nil {
			return nil, fmt.Errorf("status code: %d", response.StatusCode())
		}

		return nil, fmt.Errorf("status code: %d\n%s", response.StatusCode(), buf.String())
	}

	responseStr := make([]responseStruct, 0, 8)
	if err = json.Unmarshal(response.Body(), &responseStr); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(responseStr))
	for i := range responseStr {
		lat, err := strconv.ParseFloat(responseStr[i].Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("lat %q: %w", responseStr[i].Lat, err)
		}

		lon, err := strconv.ParseFloat(responseStr[i].Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("lon %q: %w", responseStr[i].Lon, err)
		}

		name, _, _ := strings.Cut(responseStr[i].DisplayName, ",")

		candidates = append(candidates, Candidate{
			Name:      strings.TrimSpace(name),
			Latitude:  lat,
			Longitude: lon,
		})
	}

	return candidates, nil
}
