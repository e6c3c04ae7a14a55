package service

import (
	"slices"
	"strings"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
)

// Placeholder is shown for any field the record does not carry.
const Placeholder = "N/A"

// DefaultAuthMethod is used when a submitted form leaves the auth method
// unset, matching the RFC 7591 default.
const DefaultAuthMethod = "client_secret_basic"

// DisplayModel is a read-only projection of a record where every field is
// already a display string.
type DisplayModel struct {
	ClientID                string
	ClientName              string
	ClientSecret            string
	RedirectURIs            string
	GrantTypes              string
	ResponseTypes           string
	Scope                   string
	TokenEndpointAuthMethod string
	Owner                   string
	Contacts                string
	ClientURI               string
	LogoURI                 string
	TOSURI                  string
	CreatedAt               string
	UpdatedAt               string
}

// ToDisplay never fails. Absent or empty values render as Placeholder and
// lists are joined with ", ".
func ToDisplay(rec domain.ClientRecord) DisplayModel {
	return DisplayModel{
		ClientID:                orPlaceholder(rec.ClientID),
		ClientName:              orPlaceholder(rec.ClientName),
		ClientSecret:            optional(rec.ClientSecret),
		RedirectURIs:            joined(rec.RedirectURIs),
		GrantTypes:              joined(rec.GrantTypes),
		ResponseTypes:           joined(rec.ResponseTypes),
		Scope:                   orPlaceholder(domain.NormalizeScope(rec.Scope)),
		TokenEndpointAuthMethod: orPlaceholder(rec.TokenEndpointAuthMethod),
		Owner:                   optional(rec.Owner),
		Contacts:                joined(rec.Contacts),
		ClientURI:               optional(rec.ClientURI),
		LogoURI:                 optional(rec.LogoURI),
		TOSURI:                  optional(rec.TOSURI),
		CreatedAt:               orPlaceholder(rec.CreatedAt.String()),
		UpdatedAt:               orPlaceholder(rec.UpdatedAt.String()),
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func optional(s *string) string {
	if s == nil {
		return Placeholder
	}
	return orPlaceholder(*s)
}

func joined(list []string) string {
	if len(list) == 0 {
		return Placeholder
	}
	return orPlaceholder(strings.Join(list, ", "))
}

// Choice is one checkbox or radio button of a form.
type Choice struct {
	Value   string
	Label   string
	Checked bool
}

// FormModel pre-populates the edit form of an existing client.
type FormModel struct {
	ClientID   string
	ClientName string

	RedirectURIs      []string
	CanAddRedirectURI bool

	GrantTypes    []Choice
	ResponseTypes []Choice
	AuthMethods   []Choice

	Scopes      []string
	CanAddScope bool

	Owner         string
	Contacts      []string
	CanAddContact bool

	ClientURI string
	LogoURI   string
	TOSURI    string
}

// ToFormDefaults has the same tolerance as ToDisplay. Lists expand to one
// input per entry, capped at the admission bounds.
func ToFormDefaults(rec domain.ClientRecord) FormModel {
	redirects := capped(rec.RedirectURIs, domain.MaxRedirectURIs)
	scopes := capped(domain.ScopeTokens(rec.Scope), domain.MaxScopeTokens)
	contacts := capped(rec.Contacts, domain.MaxContacts)

	return FormModel{
		ClientID:          rec.ClientID,
		ClientName:        rec.ClientName,
		RedirectURIs:      redirects,
		CanAddRedirectURI: len(redirects) < domain.MaxRedirectURIs,
		GrantTypes:        choices(domain.GrantTypes, rec.GrantTypes),
		ResponseTypes:     choices(domain.ResponseTypes, rec.ResponseTypes),
		AuthMethods:       choices(domain.AuthMethods, []string{rec.TokenEndpointAuthMethod}),
		Scopes:            scopes,
		CanAddScope:       len(scopes) < domain.MaxScopeTokens,
		Owner:             deref(rec.Owner),
		Contacts:          contacts,
		CanAddContact:     len(contacts) < domain.MaxContacts,
		ClientURI:         deref(rec.ClientURI),
		LogoURI:           deref(rec.LogoURI),
		TOSURI:            deref(rec.TOSURI),
	}
}

func capped(list []string, limit int) []string {
	out := make([]string, 0, min(len(list), limit))
	for _, v := range list {
		if len(out) == limit {
			break
		}
		out = append(out, v)
	}
	return out
}

func choices(opts []domain.Option, selected []string) []Choice {
	out := make([]Choice, len(opts))
	for i, o := range opts {
		out[i] = Choice{Value: o.Value, Label: o.Label, Checked: slices.Contains(selected, o.Value)}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormInput is what the create and edit forms submit.
type FormInput struct {
	ClientName              string   `json:"clientName"`
	RedirectURIs            []string `json:"redirectUris"`
	GrantTypes              []string `json:"grantTypes"`
	ResponseTypes           []string `json:"responseTypes"`
	Scopes                  []string `json:"scopes"`
	TokenEndpointAuthMethod string   `json:"tokenEndpointAuthMethod"`
	Owner                   string   `json:"owner"`
	Contacts                []string `json:"contacts"`
	ClientURI               string   `json:"clientUri"`
	LogoURI                 string   `json:"logoUri"`
	TOSURI                  string   `json:"tosUri"`
}

// Input returns what the form would submit if the operator changed nothing.
func (m FormModel) Input() FormInput {
	return FormInput{
		ClientName:              m.ClientName,
		RedirectURIs:            slices.Clone(m.RedirectURIs),
		GrantTypes:              checked(m.GrantTypes),
		ResponseTypes:           checked(m.ResponseTypes),
		Scopes:                  slices.Clone(m.Scopes),
		TokenEndpointAuthMethod: firstChecked(m.AuthMethods),
		Owner:                   m.Owner,
		Contacts:                slices.Clone(m.Contacts),
		ClientURI:               m.ClientURI,
		LogoURI:                 m.LogoURI,
		TOSURI:                  m.TOSURI,
	}
}

func checked(cs []Choice) []string {
	out := []string{}
	for _, c := range cs {
		if c.Checked {
			out = append(out, c.Value)
		}
	}
	return out
}

func firstChecked(cs []Choice) string {
	for _, c := range cs {
		if c.Checked {
			return c.Value
		}
	}
	return ""
}

// Draft converts submitted form values into a normalised draft. Blank list
// entries are dropped, scope inputs are joined into one scope string and
// blank optional fields become absent.
func (in FormInput) Draft() domain.Draft {
	d := domain.Draft{
		ClientName:              in.ClientName,
		RedirectURIs:            compact(in.RedirectURIs),
		GrantTypes:              compact(in.GrantTypes),
		ResponseTypes:           compact(in.ResponseTypes),
		Scope:                   domain.JoinScope(in.Scopes),
		TokenEndpointAuthMethod: strings.TrimSpace(in.TokenEndpointAuthMethod),
		Owner:                   &in.Owner,
		Contacts:                compact(in.Contacts),
		ClientURI:               &in.ClientURI,
		LogoURI:                 &in.LogoURI,
		TOSURI:                  &in.TOSURI,
	}
	if d.TokenEndpointAuthMethod == "" {
		d.TokenEndpointAuthMethod = DefaultAuthMethod
	}
	NormalizeDraft(&d)
	return d
}

func compact(list []string) []string {
	out := []string{}
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
