// middleware/logging.go
package middleware

import (
	"bytes"
	"net/http"
	"time"

	"streamhouse/api/internal/auth"
	"streamhouse/api/internal/logging"
)

const maxLoggedBody = 2048

type respLogger struct {
	http.ResponseWriter
	status int
	buf    *bytes.Buffer
}

func (l *respLogger) WriteHeader(code int) {
	l.status = code
	l.ResponseWriter.WriteHeader(code)
}

func (l *respLogger) Write(b []byte) (int, error) {
	if room := maxLoggedBody - l.buf.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		l.buf.Write(b[:room])
	}
	return l.ResponseWriter.Write(b)
}

var redactedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
}

// DebugLogging dumps request headers and response bodies at debug level.
// Only mounted outside production.
func DebugLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.Named("http_debug").With("request_id", auth.GetRequestID(r.Context()))

		headers := make(map[string]string, len(r.Header))
		for name := range r.Header {
			if redactedHeaders[name] {
				headers[name] = "[redacted]"
				continue
			}
			headers[name] = r.Header.Get(name)
		}
		log.Debugw("→ request", "method", r.Method, "url", r.URL.String(), "headers", headers)

		// wrap response
		lw := &respLogger{ResponseWriter: w, status: http.StatusOK, buf: &bytes.Buffer{}}

		start := time.Now()
		next.ServeHTTP(lw, r)

		log.Debugw("← response",
			"status", lw.status,
			"duration", time.Since(start).String(),
			"body", lw.buf.String(),
		)
	})
}
