package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/render"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/service"
	"github.com/aussiebroadwan/clientadmin/pkg/httpx"
	"github.com/aussiebroadwan/clientadmin/pkg/slogx"
)

// responder writes records, fragments and failures in the representation
// the caller negotiated.
type responder struct {
	Renderer *render.Renderer
}

// fragment writes a rendered fragment, or the fallback message when
// rendering failed.
func (rs responder) fragment(w http.ResponseWriter, r *http.Request, body []byte, err error, fallback string) {
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to render fragment", "error", err)
		httpx.WriteHTML(w, http.StatusInternalServerError, rs.Renderer.Error(fallback))
		return
	}
	httpx.WriteHTML(w, http.StatusOK, body)
}

func (rs responder) message(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if render.FormatFor(r) == render.FormatFragment {
		httpx.WriteHTML(w, code, rs.Renderer.Error(msg))
		return
	}
	httpx.WriteJSON(w, code, render.ErrorResponse{Error: msg})
}

// failure maps err onto a response. Problems with the operator's input are
// echoed with 400. Anything else is reported with the generic message only;
// the upstream detail has already been logged.
func (rs responder) failure(w http.ResponseWriter, r *http.Request, err error, generic string) {
	var ve *service.ValidationError
	var pe *service.InvalidPatchError

	switch {
	case errors.As(err, &pe):
		rs.message(w, r, http.StatusBadRequest, pe.Error())
	case errors.As(err, &ve):
		rs.message(w, r, http.StatusBadRequest, "Error: "+ve.Message)
	case errors.Is(err, errMalformedBody):
		rs.message(w, r, http.StatusBadRequest, "Error: the request body could not be read.")
	default:
		rs.message(w, r, http.StatusInternalServerError, generic)
	}
}
