package openweather

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// Outcome is everything known about one request once it has completed.
type Outcome struct {
	// Err is the transport error, if the request never produced a response.
	Err error
	// HTTP is false when the transport returned something that is not an HTTP response.
	HTTP       bool
	StatusCode int
	// DecodeErr is the result of decoding the body. Only meaningful for 200.
	DecodeErr error
}

// Classify maps a request outcome to the client error taxonomy.
// A nil result is the only success.
func Classify(o Outcome) error {
	switch {
	case o.Err != nil:
		return &NetworkError{Message: networkMessage(o.Err), Cause: o.Err}
	case !o.HTTP:
		return ErrInvalidResponse
	}

	switch code := o.StatusCode; {
	case code == http.StatusOK:
		if o.DecodeErr != nil {
			return fmt.Errorf("%w: %v", ErrInvalidData, o.DecodeErr)
		}
		return nil
	case code == http.StatusUnauthorized, code == http.StatusNotFound:
		return &APIError{StatusCode: code}
	case code >= 500 && code <= 599:
		return &APIError{StatusCode: code}
	default:
		return ErrInvalidResponse
	}
}

func networkMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return msgTimedOut
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return msgTimedOut
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return msgNotConnected
	}

	for _, errno := range []syscall.Errno{syscall.ENETUNREACH, syscall.ENETDOWN, syscall.EHOSTUNREACH} {
		if errors.Is(err, errno) {
			return msgNotConnected
		}
	}

	return err.Error()
}
