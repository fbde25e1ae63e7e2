package domain

import "fmt"

// ConfigurationError is returned when a required setting is missing. It is
// always raised before any network or process I/O.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s is not set", e.Setting)
}

// TransportError is an HTTP-level failure talking to the image service.
// StatusCode is zero when no response was received.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport: %v", e.Err)
	}
	return fmt.Sprintf("transport: unexpected status code: %d, response: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError means the image service reported failure in its own envelope.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream: status %d: %s", e.StatusCode, e.Message)
}

type EmptyResultError struct{}

func (e *EmptyResultError) Error() string {
	return "empty result: no image url in response"
}

// DispatchError is a delivery failure of any transport.
type DispatchError struct {
	Transport  string
	StatusCode int
	ExitCode   int
	Body       string
	Err        error
}

func (e *DispatchError) Error() string {
	switch {
	case e.Err != nil && e.Body != "":
		return fmt.Sprintf("dispatch via %s: %v: %s", e.Transport, e.Err, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("dispatch via %s: %v", e.Transport, e.Err)
	case e.ExitCode != 0:
		return fmt.Sprintf("dispatch via %s: exit code %d: %s", e.Transport, e.ExitCode, e.Body)
	default:
		return fmt.Sprintf("dispatch via %s: unexpected status code: %d, response: %s", e.Transport, e.StatusCode, e.Body)
	}
}

func (e *DispatchError) Unwrap() error { return e.Err }
