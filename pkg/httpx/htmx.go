package httpx

import "net/http"

// HXRequestHeader is sent by htmx on every request it issues.
const HXRequestHeader = "HX-Request"

// WantsFragment reports whether the caller asked for an HTML fragment rather
// than JSON. Presence of the header is the signal, its value is ignored.
func WantsFragment(r *http.Request) bool {
	_, ok := r.Header[http.CanonicalHeaderKey(HXRequestHeader)]
	return ok
}
