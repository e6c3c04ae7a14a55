package domain

import (
	"strconv"
	"strings"

	"github.com/aussiebroadwan/clientadmin/pkg/registrysdk"
)

// The registration API is the system of record, so the wire types are the
// domain types.
type (
	ClientRecord   = registrysdk.ClientRecord
	Draft          = registrysdk.ClientMetadata
	PatchOperation = registrysdk.PatchOperation
)

// Field names as they appear in records and patch paths.
const (
	FieldClientID                = "client_id"
	FieldClientSecret            = "client_secret"
	FieldClientName              = "client_name"
	FieldRedirectURIs            = "redirect_uris"
	FieldGrantTypes              = "grant_types"
	FieldResponseTypes           = "response_types"
	FieldScope                   = "scope"
	FieldTokenEndpointAuthMethod = "token_endpoint_auth_method"
	FieldOwner                   = "owner"
	FieldContacts                = "contacts"
	FieldClientURI               = "client_uri"
	FieldLogoURI                 = "logo_uri"
	FieldTOSURI                  = "tos_uri"
	FieldCreatedAt               = "created_at"
	FieldUpdatedAt               = "updated_at"
)

// EditableFields lists the operator editable fields in form order. A full
// resend update walks this list.
var EditableFields = []string{
	FieldClientName,
	FieldRedirectURIs,
	FieldGrantTypes,
	FieldResponseTypes,
	FieldScope,
	FieldTokenEndpointAuthMethod,
	FieldOwner,
	FieldContacts,
	FieldClientURI,
	FieldLogoURI,
	FieldTOSURI,
}

var fieldLabels = map[string]string{
	FieldClientID:                "Client ID",
	FieldClientSecret:            "Client secret",
	FieldClientName:              "Client name",
	FieldRedirectURIs:            "Redirect URIs",
	FieldGrantTypes:              "Grant types",
	FieldResponseTypes:           "Response types",
	FieldScope:                   "Scope",
	FieldTokenEndpointAuthMethod: "Token endpoint auth method",
	FieldOwner:                   "Owner",
	FieldContacts:                "Contacts",
	FieldClientURI:               "Client URI",
	FieldLogoURI:                 "Logo URI",
	FieldTOSURI:                  "Terms of service URI",
	FieldCreatedAt:               "Created at",
	FieldUpdatedAt:               "Updated at",
}

// FieldLabel is the human name of a field. Unknown fields are quoted as-is.
func FieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return strconv.Quote(field)
}

// ImmutableFields are assigned by the server and never patched.
var ImmutableFields = []string{FieldClientID, FieldCreatedAt, FieldUpdatedAt}

// Admission bounds.
const (
	MinClientNameLength = 3
	MinSecretLength     = 6
	MaxRedirectURIs     = 10
	MaxContacts         = 10
	MaxScopeTokens      = 20
)

// Option is a selectable enum value with its form label.
type Option struct {
	Value string
	Label string
}

var (
	GrantTypes = []Option{
		{"authorization_code", "Authorization Code"},
		{"client_credentials", "Client Credentials"},
		{"refresh_token", "Refresh Token"},
	}

	ResponseTypes = []Option{
		{"code", "Code"},
		{"token", "Token"},
	}

	AuthMethods = []Option{
		{"client_secret_basic", "Client Secret Basic"},
		{"client_secret_post", "Client Secret Post"},
		{"none", "None"},
	}
)

// IsOption reports whether v is one of opts.
func IsOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// ScopeTokens splits a stored scope string into its tokens. Runs of
// whitespace never produce empty tokens.
func ScopeTokens(scope string) []string {
	return strings.Fields(scope)
}

// JoinScope builds the canonical scope string from tokens: blank tokens are
// dropped, surrounding whitespace trimmed, and the rest joined with single
// spaces. JoinScope(ScopeTokens(s)) is idempotent.
func JoinScope(tokens []string) string {
	var parts []string
	for _, t := range tokens {
		parts = append(parts, strings.Fields(t)...)
	}
	return strings.Join(parts, " ")
}

// NormalizeScope rewrites scope into canonical form.
func NormalizeScope(scope string) string {
	return JoinScope(ScopeTokens(scope))
}
