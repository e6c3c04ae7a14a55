// Package render turns client records into HTML fragments for the HTMX shell.
// Every interpolated value passes through html/template's contextual escaping.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/service"
	"github.com/aussiebroadwan/clientadmin/pkg/httpx"
)

// Format is the representation a caller asked for.
type Format int

const (
	FormatJSON Format = iota
	FormatFragment
)

func (f Format) String() string {
	if f == FormatFragment {
		return "fragment"
	}
	return "json"
}

// FormatFor picks the representation for r. HTMX requests get fragments,
// everything else gets JSON.
func FormatFor(r *http.Request) Format {
	if httpx.WantsFragment(r) {
		return FormatFragment
	}
	return FormatJSON
}

// ListPath is where the shell fetches the client list from.
const ListPath = "/api/clients"

// Partial input kinds served under /partial.
const (
	PartialRedirectURI = "redirect-uri-input"
	PartialScope       = "scope-input"
	PartialContact     = "contact-input"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"clientPath":      ClientPath,
	"listPath":        func() string { return ListPath },
	"minNameLength":   func() int { return domain.MinClientNameLength },
	"minSecretLength": func() int { return domain.MinSecretLength },
}

// ClientPath is the BFF path of one client, with the id escaped as a single
// path segment.
func ClientPath(clientID string) string {
	return ListPath + "/" + url.PathEscape(clientID)
}

type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("fragments").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNew is New for package initialisation and tests.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

type listItem struct {
	ID   string
	Name string
}

type pageLink struct {
	Number int
	URL    string
	Active bool
}

type listView struct {
	Items []listItem
	Pages []pageLink
}

// List renders one page of clients and a button per page. Page links carry
// the active filter and page size.
func (r *Renderer) List(res service.PageResult, f service.Filter) ([]byte, error) {
	view := listView{
		Items: make([]listItem, len(res.Clients)),
		Pages: make([]pageLink, res.TotalPages),
	}
	for i, c := range res.Clients {
		view.Items[i] = listItem{ID: c.ClientID, Name: c.ClientName}
	}
	for i := range view.Pages {
		n := i + 1
		q := url.Values{"page": {strconv.Itoa(n)}}
		if f.ClientName != "" {
			q.Set("clientName", f.ClientName)
		}
		if f.ClientID != "" {
			q.Set("clientId", f.ClientID)
		}
		if res.PageSize != service.DefaultPageSize {
			q.Set("limit", strconv.Itoa(res.PageSize))
		}
		view.Pages[i] = pageLink{Number: n, URL: ListPath + "?" + q.Encode(), Active: n == res.Page}
	}
	return r.execute("list", view)
}

type detailsView struct {
	ID      string
	Display service.DisplayModel
}

func newDetailsView(rec domain.ClientRecord) detailsView {
	return detailsView{ID: rec.ClientID, Display: service.ToDisplay(rec)}
}

// Details renders the detail view with its change-secret button.
func (r *Renderer) Details(rec domain.ClientRecord) ([]byte, error) {
	return r.execute("details", newDetailsView(rec))
}

// EditForm renders the edit form pre-populated from rec.
func (r *Renderer) EditForm(rec domain.ClientRecord) ([]byte, error) {
	return r.execute("edit", service.ToFormDefaults(rec))
}

// SecretForm renders the change-secret form for one client.
func (r *Renderer) SecretForm(clientID string) ([]byte, error) {
	return r.execute("secret-form", clientID)
}

// Created refreshes the list and loads the new client's details.
func (r *Renderer) Created(rec domain.ClientRecord) ([]byte, error) {
	return r.execute("created", newDetailsView(rec))
}

// Updated shows the updated details, refreshes the list and clears the edit
// form.
func (r *Renderer) Updated(rec domain.ClientRecord) ([]byte, error) {
	return r.execute("updated", newDetailsView(rec))
}

// SecretUpdated shows the details again with a confirmation notice.
func (r *Renderer) SecretUpdated(rec domain.ClientRecord) ([]byte, error) {
	return r.execute("secret-updated", newDetailsView(rec))
}

// Partial renders one empty repeatable input of the given kind.
func (r *Renderer) Partial(kind string) ([]byte, error) {
	switch kind {
	case PartialRedirectURI, PartialScope, PartialContact:
		return r.execute(kind, "")
	}
	return nil, fmt.Errorf("unknown partial %q", kind)
}

// Error renders msg as a paragraph.
func (r *Renderer) Error(msg string) []byte {
	out, err := r.execute("error", msg)
	if err != nil {
		return []byte("<p>" + template.HTMLEscapeString(msg) + "</p>")
	}
	return out
}
