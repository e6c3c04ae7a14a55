package registrysdk

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// PatchMediaType is the content type of PATCH request bodies.
const PatchMediaType = "application/json-patch+json"

// ============================================================================
// Client Records
// ============================================================================

// ClientMetadata holds the operator editable fields of a registration. It is
// also the body of a create call, where the server assigns everything else.
type ClientMetadata struct {
	ClientName              string   `json:"client_name"`
	RedirectURIs            []string `json:"redirect_uris"`
	GrantTypes              []string `json:"grant_types"`
	ResponseTypes           []string `json:"response_types"`
	Scope                   string   `json:"scope"`
	TokenEndpointAuthMethod string   `json:"token_endpoint_auth_method"`
	Owner                   *string  `json:"owner,omitempty"`
	Contacts                []string `json:"contacts"`
	ClientURI               *string  `json:"client_uri,omitempty"`
	LogoURI                 *string  `json:"logo_uri,omitempty"`
	TOSURI                  *string  `json:"tos_uri,omitempty"`
}

// ClientRecord is a registered OAuth2 client as returned by the registration
// API.
//
// A decoded record remembers the object it was decoded from. Encoding it
// again reproduces that object: members the typed fields do not model are
// kept, members the server never sent stay absent, and only typed fields
// changed since decoding are rewritten.
type ClientRecord struct {
	ClientID     string  `json:"client_id"`
	ClientSecret *string `json:"client_secret,omitempty"`

	ClientMetadata

	CreatedAt OpaqueTime `json:"created_at,omitempty"`
	UpdatedAt OpaqueTime `json:"updated_at,omitempty"`

	wire map[string]json.RawMessage // object as received
	seen map[string]json.RawMessage // typed encoding at decode time
}

// recordFields has the fields of ClientRecord without its methods.
type recordFields ClientRecord

// UnmarshalJSON implements json.Unmarshaler.
func (r *ClientRecord) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}

	var fields recordFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	*r = ClientRecord(fields)
	seen, err := r.typedFields()
	if err != nil {
		return err
	}
	r.wire, r.seen = wire, seen
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r ClientRecord) MarshalJSON() ([]byte, error) {
	if r.wire == nil {
		return json.Marshal(recordFields(r))
	}

	now, err := r.typedFields()
	if err != nil {
		return nil, err
	}

	out := maps.Clone(r.wire)
	for k, v := range now {
		if seen, ok := r.seen[k]; ok && bytes.Equal(seen, v) {
			continue
		}
		out[k] = v
	}
	for k := range r.seen {
		if _, ok := now[k]; !ok {
			delete(out, k)
		}
	}
	return json.Marshal(out)
}

// Extra returns the members of the received object that no typed field
// models, such as jwks_uri. It is nil for records built in code.
func (r ClientRecord) Extra() map[string]json.RawMessage {
	if r.wire == nil {
		return nil
	}
	extra := make(map[string]json.RawMessage)
	for k, v := range r.wire {
		if !slices.Contains(knownMembers, k) {
			extra[k] = v
		}
	}
	return extra
}

func (r ClientRecord) typedFields() (map[string]json.RawMessage, error) {
	b, err := json.Marshal(recordFields(r))
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

var knownMembers = []string{
	"client_id", "client_secret", "client_name", "redirect_uris",
	"grant_types", "response_types", "scope", "token_endpoint_auth_method",
	"owner", "contacts", "client_uri", "logo_uri", "tos_uri",
	"created_at", "updated_at",
}

// OpaqueTime keeps a server timestamp exactly as it was sent. The format is
// not ours to interpret.
type OpaqueTime json.RawMessage

// MarshalJSON implements json.Marshaler.
func (t OpaqueTime) MarshalJSON() ([]byte, error) {
	if len(t) == 0 {
		return []byte("null"), nil
	}
	return []byte(t), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *OpaqueTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = nil
		return nil
	}
	*t = append((*t)[:0], b...)
	return nil
}

// String renders the timestamp for display. JSON strings are unquoted, other
// values are shown verbatim.
func (t OpaqueTime) String() string {
	if len(t) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(t, &s); err == nil {
		return s
	}
	return string(t)
}

// ============================================================================
// Patch Operations (RFC 6902)
// ============================================================================

// Patch operation names.
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpMove    = "move"
	OpCopy    = "copy"
	OpTest    = "test"
)

// PatchOperation is a single JSON Patch instruction. Value is kept raw so an
// explicit JSON null survives the round trip and can be told apart from an
// absent value.
type PatchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
	From  string          `json:"from,omitempty"`
}

// Replace builds a replace operation for path, encoding value as JSON.
func Replace(path string, value any) (PatchOperation, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return PatchOperation{}, err
	}
	return PatchOperation{Op: OpReplace, Path: path, Value: raw}, nil
}

// ============================================================================
// Error Responses
// ============================================================================

// ErrorResponse is the RFC 7591 style error body many registration servers use.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// messageResponse covers servers that answer with {"message": "..."}.
type messageResponse struct {
	Message string `json:"message"`
}
