package yield

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

type loggerTransport struct {
	transport http.RoundTripper
	logger    *log.Logger
}

func (l *loggerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Strip the API key from logged URLs
	u := *req.URL
	q := u.Query()
	if q.Has("apikey") {
		q.Set("apikey", "REDACTED")
		u.RawQuery = q.Encode()
	}

	l.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", u.String(),
	)

	startTime := time.Now()
	resp, err := l.transport.RoundTrip(req)
	if err != nil {
		l.logger.Error("HTTP Request failed", "error", err)
		return nil, err
	}

	l.logger.Debug("HTTP Response",
		"status", resp.Status,
		"duration", time.Since(startTime),
		"url", u.String(),
		"method", req.Method,
	)

	return resp, nil
}

// NewLoggingTransport wraps transport so every request is logged at debug level.
func NewLoggingTransport(transport http.RoundTripper, logger *log.Logger) http.RoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &loggerTransport{transport: transport, logger: logger}
}
