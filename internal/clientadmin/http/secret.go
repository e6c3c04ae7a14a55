package http

import (
	"net/http"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/render"
	"github.com/aussiebroadwan/clientadmin/pkg/httpx"
)

// HandleSecretForm handles GET /api/clients/{id}/change-secret-form
//
//	@Summary		Change Secret Form
//	@Description	Returns the change-secret form fragment for one client. No upstream call is made.
//	@Tags			Clients
//	@Produce		html
//	@Param			id	path	string	true	"Client ID"
//	@Success		200	{string}	string	"HTML fragment"
//	@Router			/api/clients/{id}/change-secret-form [get].
func (h *ClientsHandler) HandleSecretForm(w http.ResponseWriter, r *http.Request) {
	body, err := h.Renderer.SecretForm(r.PathValue("id"))
	h.fragment(w, r, body, err, msgSecretFailed)
}

// HandleSecret handles PUT /api/clients/{id}/secret
//
//	@Summary		Rotate Client Secret
//	@Description	Replaces the client secret with a single JSON Patch replace on /client_secret. Secrets shorter than 6 characters are rejected before any upstream call.
//	@Tags			Clients
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json,html
//	@Param			id			path		string					true	"Client ID"
//	@Param			request		body		SecretRequest			true	"New secret"
//	@Param			HX-Request	header		string					false	"Ask for an HTML fragment"
//	@Success		200			{object}	render.MessageResponse	"message"
//	@Failure		400			{object}	render.ErrorResponse	"error"
//	@Failure		500			{object}	render.ErrorResponse	"error"
//	@Router			/api/clients/{id}/secret [put].
func (h *ClientsHandler) HandleSecret(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	secret, err := parseSecretForm(w, r)
	if err != nil {
		h.failure(w, r, err, msgSecretFailed)
		return
	}

	rec, err := h.ClientService.RotateSecret(ctx, httpx.SessionIDFromContext(ctx), r.PathValue("id"), secret)
	if err != nil {
		h.failure(w, r, err, msgSecretFailed)
		return
	}

	if render.FormatFor(r) == render.FormatFragment {
		w.Header().Set("HX-Trigger", eventSecretUpdated)
		body, err := h.Renderer.SecretUpdated(*rec)
		h.fragment(w, r, body, err, msgSecretFailed)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, render.MessageResponse{Message: msgSecretUpdated})
}
