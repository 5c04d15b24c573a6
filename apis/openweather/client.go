package openweather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	units          = "metric"
)

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTransport replaces the round tripper of the underlying HTTP client.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.http.SetTransport(transport)
	}
}

func WithHTTPClient(client *resty.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// Client fetches current weather and forecasts by coordinates.
// It keeps no state between calls and is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	http    *resty.Client
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    resty.New().SetRetryCount(0),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (CurrentWeather, error) {
	return processRequest[CurrentWeather](ctx, c, "weather", lat, lon)
}

func (c *Client) Forecast(ctx context.Context, lat, lon float64) (ForecastResponse, error) {
	return processRequest[ForecastResponse](ctx, c, "forecast", lat, lon)
}

func (c *Client) endpoint(path string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return "", ErrInvalidURL
	}

	return base.JoinPath(path).String(), nil
}

func processRequest[T any](ctx context.Context, c *Client, path string, lat, lon float64) (T, error) {
	var result T

	endpoint, err := c.endpoint(path)
	if err != nil {
		return result, err
	}

	request := c.http.R().SetContext(ctx)
	request.SetQueryParams(map[string]string{
		"lat":   strconv.FormatFloat(lat, 'f', -1, 64),
		"lon":   strconv.FormatFloat(lon, 'f', -1, 64),
		"appid": c.apiKey,
		"units": units,
	})

	response, err := request.Get(endpoint)

	outcome := Outcome{Err: err}
	if err == nil {
		outcome.HTTP = response != nil && response.RawResponse != nil
		if outcome.HTTP {
			outcome.StatusCode = response.StatusCode()
		}
	}

	if outcome.Err == nil && outcome.HTTP && outcome.StatusCode == http.StatusOK {
		var decoded T
		if outcome.DecodeErr = json.Unmarshal(response.Body(), &decoded); outcome.DecodeErr == nil {
			result = decoded
		}
	}

	if err := Classify(outcome); err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
