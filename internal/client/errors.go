package client

import "fmt"

// ErrorKind classifies an API failure.
type ErrorKind string

const (
	ErrConnection ErrorKind = "connection" // transport-level failure
	ErrHTTP       ErrorKind = "http"       // engine answered non-200
	ErrMalformed  ErrorKind = "malformed"  // 200 with an undecodable body
)

// ConnKind refines a connection failure.
type ConnKind string

const (
	ConnTimeout ConnKind = "timeout"
	ConnRefused ConnKind = "refused"
	ConnDNS     ConnKind = "dns"
	ConnOther   ConnKind = "other"
)

// APIError carries everything the dashboard needs to render an upstream
// failure inline: the failure class, the HTTP status when there is one,
// a body snippet, and the request ID sent to the engine so the two sides'
// logs can be correlated.
type APIError struct {
	Kind      ErrorKind
	Conn      ConnKind // set when Kind is ErrConnection
	Status    int      // set when Kind is ErrHTTP
	Body      string   // response snippet, when available
	Endpoint  string
	RequestID string
	Err       error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case ErrHTTP:
		if e.Body != "" {
			return fmt.Sprintf("%s returned %d: %s", e.Endpoint, e.Status, e.Body)
		}
		return fmt.Sprintf("%s returned %d", e.Endpoint, e.Status)
	case ErrMalformed:
		return fmt.Sprintf("%s returned an unexpected body: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("%s unreachable (%s): %v", e.Endpoint, e.Conn, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timed-out connection.
func (e *APIError) Timeout() bool {
	return e.Kind == ErrConnection && e.Conn == ConnTimeout
}

// Display is the short human-readable line shown inline on a page.
func (e *APIError) Display() string {
	switch e.Kind {
	case ErrHTTP:
		return fmt.Sprintf("API Error: %d", e.Status)
	case ErrMalformed:
		return "API returned an unexpected response"
	default:
		switch e.Conn {
		case ConnTimeout:
			return "Connection Error: request timed out"
		case ConnRefused:
			return "Connection Error: connection refused"
		case ConnDNS:
			return "Connection Error: host not found"
		default:
			return "Connection Error: API unreachable"
		}
	}
}
