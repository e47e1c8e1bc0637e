package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Telemetry instruments the whole API surface with OpenTelemetry: a span
// per request plus the standard http.server duration/size metrics. Spans
// are named method + path; repository spans nest under them, so a slow
// ledger write shows up as its statement spans inside the POST span.
func Telemetry(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "forge.http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
