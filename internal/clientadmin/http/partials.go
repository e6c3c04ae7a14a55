package http

import (
	"net/http"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/render"
	"github.com/aussiebroadwan/clientadmin/pkg/httpx"
)

// PartialsHandler serves the empty repeatable inputs the edit and create
// forms append.
type PartialsHandler struct {
	Renderer *render.Renderer
}

// ServeHTTP handles GET /partial/{kind}
//
//	@Summary		Repeatable Form Input
//	@Description	Returns one empty input for redirect-uri-input, scope-input or contact-input.
//	@Tags			Partials
//	@Produce		html
//	@Param			kind	path	string	true	"Input kind"	Enums(redirect-uri-input, scope-input, contact-input)
//	@Success		200		{string}	string	"HTML fragment"
//	@Failure		404		{string}	string	"unknown kind"
//	@Router			/partial/{kind} [get].
func (h *PartialsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := h.Renderer.Partial(r.PathValue("kind"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	httpx.WriteHTML(w, http.StatusOK, body)
}
