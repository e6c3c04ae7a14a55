package httpx

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// corsMaxAge is how long browsers may cache a preflight answer, in seconds.
const corsMaxAge = 3600

// CORS allows the listed origins to call the BFF from a browser. A single "*"
// entry allows any origin, without credentials. An empty list also allows any
// origin, so callers skip the middleware when nothing is configured.
func CORS(allowedOrigins ...string) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Content-Type",
			HXRequestHeader,
			"HX-Target",
			"HX-Trigger",
			"HX-Current-URL",
			"X-Request-ID",
		},
		ExposedHeaders:   []string{"HX-Trigger"},
		AllowCredentials: !slices.Contains(allowedOrigins, "*"),
		MaxAge:           corsMaxAge,
	})
}
