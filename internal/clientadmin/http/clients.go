package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/render"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/service"
	"github.com/aussiebroadwan/clientadmin/pkg/httpx"
)

// Generic failure messages. Upstream details never reach the browser.
const (
	msgListFailed    = "Error fetching clients"
	msgGetFailed     = "Error fetching client details"
	msgEditFailed    = "Error fetching client for editing"
	msgCreateFailed  = "Error registering client"
	msgUpdateFailed  = "Error updating client"
	msgSecretFailed  = "Error updating client secret"
	msgSecretUpdated = "Client secret updated successfully"
)

// HX-Trigger events the shell can listen for.
const (
	eventClientCreated = "clientCreated"
	eventClientUpdated = "clientUpdated"
	eventSecretUpdated = "clientSecretUpdated"
)

// ClientsHandler serves the client list, detail, form and write endpoints.
type ClientsHandler struct {
	ClientService *service.ClientService
	responder
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

// HandleList handles GET /api/clients
//
//	@Summary		List OAuth2 Clients
//	@Description	Returns one page of clients filtered by name (case-insensitive) and id. HTMX callers get the list fragment with pagination buttons.
//	@Tags			Clients
//	@Produce		json,html
//	@Param			clientName	query		string					false	"Substring of the client name"
//	@Param			clientId	query		string					false	"Substring of the client id"
//	@Param			page		query		int						false	"1-based page number"	default(1)
//	@Param			limit		query		int						false	"Page size"				default(10)
//	@Param			HX-Request	header		string					false	"Ask for an HTML fragment"
//	@Success		200			{object}	render.ListResponse		"clients, totalClients, totalPages"
//	@Failure		500			{object}	render.ErrorResponse	"error"
//	@Router			/api/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := service.Filter{
		ClientName: r.URL.Query().Get("clientName"),
		ClientID:   r.URL.Query().Get("clientId"),
	}
	res, err := h.ClientService.ListPage(ctx, httpx.SessionIDFromContext(ctx), filter,
		queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		h.failure(w, r, err, msgListFailed)
		return
	}

	if render.FormatFor(r) == render.FormatFragment {
		body, err := h.Renderer.List(res, filter)
		h.fragment(w, r, body, err, msgListFailed)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, render.ListResponse{
		Clients:      res.Clients,
		TotalClients: res.TotalClients,
		TotalPages:   res.TotalPages,
	})
}

// HandleGet handles GET /api/clients/{id}
//
//	@Summary		Get OAuth2 Client
//	@Description	Returns one client. HTMX callers get the detail fragment with the change-secret button.
//	@Tags			Clients
//	@Produce		json,html
//	@Param			id			path		string					true	"Client ID"
//	@Param			HX-Request	header		string					false	"Ask for an HTML fragment"
//	@Success		200			{object}	registrysdk.ClientRecord
//	@Failure		500			{object}	render.ErrorResponse	"error"
//	@Router			/api/clients/{id} [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.ClientService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.failure(w, r, err, msgGetFailed)
		return
	}

	if render.FormatFor(r) == render.FormatFragment {
		body, err := h.Renderer.Details(*rec)
		h.fragment(w, r, body, err, msgGetFailed)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

// HandleEdit handles GET /api/clients/{id}/edit
//
//	@Summary		Get OAuth2 Client Edit Form
//	@Description	Returns the edit form pre-populated from the client. Non-HTMX callers get the raw record.
//	@Tags			Clients
//	@Produce		json,html
//	@Param			id			path		string					true	"Client ID"
//	@Param			HX-Request	header		string					false	"Ask for an HTML fragment"
//	@Success		200			{object}	registrysdk.ClientRecord
//	@Failure		500			{object}	render.ErrorResponse	"error"
//	@Router			/api/clients/{id}/edit [get].
func (h *ClientsHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	rec, err := h.ClientService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.failure(w, r, err, msgEditFailed)
		return
	}

	if render.FormatFor(r) == render.FormatFragment {
		body, err := h.Renderer.EditForm(*rec)
		h.fragment(w, r, body, err, msgEditFailed)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

// HandleCreate handles POST /api/clients
//
//	@Summary		Register OAuth2 Client
//	@Description	Registers a client from the create form. Every URI is validated before the registration API is called.
//	@Tags			Clients
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json,html
//	@Param			request		body		service.FormInput		true	"Form fields"
//	@Param			HX-Request	header		string					false	"Ask for an HTML fragment"
//	@Success		200			{object}	registrysdk.ClientRecord
//	@Failure		400			{object}	render.ErrorResponse	"error"
//	@Failure		500			{object}	render.ErrorResponse	"error"
//	@Router			/api/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := ParseDraftForm(w, r)
	if err != nil {
		h.failure(w, r, err, msgCreateFailed)
		return
	}

	rec, err := h.ClientService.Create(ctx, httpx.SessionIDFromContext(ctx), in.Draft())
	if err != nil {
		h.failure(w, r, err, msgCreateFailed)
		return
	}

	if render.FormatFor(r) == render.FormatFragment {
		w.Header().Set("HX-Trigger", eventClientCreated)
		body, err := h.Renderer.Created(*rec)
		h.fragment(w, r, body, err, msgCreateFailed)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

// HandleUpdate handles PUT /api/clients/{id}
//
//	@Summary		Update OAuth2 Client
//	@Description	Applies the edit form. Every editable field is resent, as JSON Patch replace operations or as a full replacement depending on UPDATE_STRATEGY.
//	@Tags			Clients
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json,html
//	@Param			id			path		string					true	"Client ID"
//	@Param			request		body		service.FormInput		true	"Form fields"
//	@Param			HX-Request	header		string					false	"Ask for an HTML fragment"
//	@Success		200			{object}	registrysdk.ClientRecord
//	@Failure		400			{object}	render.ErrorResponse	"error"
//	@Failure		500			{object}	render.ErrorResponse	"error"
//	@Router			/api/clients/{id} [put].
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := ParseDraftForm(w, r)
	if err != nil {
		h.failure(w, r, err, msgUpdateFailed)
		return
	}

	rec, err := h.ClientService.Update(ctx, httpx.SessionIDFromContext(ctx), r.PathValue("id"), in.Draft())
	if err != nil {
		h.failure(w, r, err, msgUpdateFailed)
		return
	}
	h.writeUpdated(w, r, rec, eventClientUpdated, msgUpdateFailed)
}

// HandlePatch handles PATCH /api/clients/{id}
//
//	@Summary		Patch OAuth2 Client
//	@Description	Forwards a JSON Patch (RFC 6902) batch. The whole batch is rejected with 400 if any operation is malformed or targets an immutable or unknown field.
//	@Tags			Clients
//	@Accept			json-patch+json,json
//	@Produce		json,html
//	@Param			id			path		string						true	"Client ID"
//	@Param			request		body		[]registrysdk.PatchOperation	true	"Patch operations"
//	@Param			HX-Request	header		string						false	"Ask for an HTML fragment"
//	@Success		200			{object}	registrysdk.ClientRecord
//	@Failure		400			{object}	render.ErrorResponse		"error"
//	@Failure		500			{object}	render.ErrorResponse		"error"
//	@Router			/api/clients/{id} [patch].
func (h *ClientsHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var ops []domain.PatchOperation
	if err := decodeJSONBody(w, r, &ops); err != nil {
		h.failure(w, r, &service.InvalidPatchError{
			Index:  -1,
			Reason: "body must be a JSON array of operations",
			Err:    err,
		}, msgUpdateFailed)
		return
	}

	rec, err := h.ClientService.Patch(ctx, httpx.SessionIDFromContext(ctx), r.PathValue("id"), ops)
	if err != nil {
		h.failure(w, r, err, msgUpdateFailed)
		return
	}
	h.writeUpdated(w, r, rec, eventClientUpdated, msgUpdateFailed)
}

func (h *ClientsHandler) writeUpdated(w http.ResponseWriter, r *http.Request, rec *domain.ClientRecord, event, fallback string) {
	if render.FormatFor(r) == render.FormatFragment {
		w.Header().Set("HX-Trigger", event)
		body, err := h.Renderer.Updated(*rec)
		h.fragment(w, r, body, err, fallback)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}
