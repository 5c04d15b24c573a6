package openweather

import (
	"errors"
	"fmt"
)

// Errors that can be matched with errors.Is.
var (
	ErrInvalidURL      = errors.New("invalid request url")
	ErrInvalidResponse = errors.New("invalid response")
	ErrInvalidData     = errors.New("invalid data")
)

const (
	msgNotConnected = "No internet connection"
	msgTimedOut     = "Request timed out"
)

// NetworkError is a transport failure: no connectivity, DNS, TLS or a timeout.
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// APIError is an upstream rejection with a status the caller may act on (401, 404, 5xx).
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

func IsAPIError(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

// StatusCode extracts the upstream status of an APIError.
func StatusCode(err error) (int, bool) {
	var target *APIError
	if errors.As(err, &target) {
		return target.StatusCode, true
	}
	return 0, false
}

// Retryable reports whether offering the user a retry makes sense.
// Authentication failures are a configuration problem and are not retryable.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	code, ok := StatusCode(err)
	return !ok || code != 401
}

// Description is the user facing rendering of a client error.
type Description struct {
	Title      string
	Suggestion string
}

func Describe(err error) Description {
	var netErr *NetworkError
	var apiErr *APIError

	switch {
	case err == nil:
		return Description{}
	case errors.As(err, &netErr):
		return Description{
			Title:      "Connection Problem",
			Suggestion: "Please check your internet connection and try again",
		}
	case errors.As(err, &apiErr):
		d := Description{Title: fmt.Sprintf("Weather Service Error (%d)", apiErr.StatusCode)}
		switch {
		case apiErr.StatusCode == 404:
			d.Suggestion = "Location not found. Please try searching again"
		case apiErr.StatusCode == 401:
			d.Suggestion = "Authentication error. Please contact support"
		case apiErr.StatusCode >= 500:
			d.Suggestion = "The weather service is temporarily unavailable"
		default:
			d.Suggestion = "Please try again later"
		}
		return d
	case errors.Is(err, ErrInvalidURL):
		return Description{Title: "Invalid Request", Suggestion: "Something went wrong. Please try again"}
	case errors.Is(err, ErrInvalidResponse):
		return Description{Title: "Invalid Response", Suggestion: "Something went wrong. Please try again"}
	case errors.Is(err, ErrInvalidData):
		return Description{Title: "Invalid Data", Suggestion: "Something went wrong. Please try again"}
	default:
		return Description{Title: "Something went wrong", Suggestion: "Please try again later"}
	}
}
