package common

import (
	"github.com/valyala/fasthttp"

	"streamhouse/api/internal/logging"
)

// LogHTTPRequest dumps an outbound request at debug level. The body is
// logged by size only.
func LogHTTPRequest(req *fasthttp.Request) {
	logging.Debug("HTTP request",
		"method", string(req.Header.Method()),
		"uri", string(req.URI().Path()),
		"host", string(req.URI().Host()),
		"body_bytes", len(req.Body()),
	)
}

// LogHTTPResponse dumps a provider response at debug level.
func LogHTTPResponse(resp *fasthttp.Response) {
	logging.Debug("HTTP response",
		"status", resp.StatusCode(),
		"body", string(resp.Body()),
	)
}
