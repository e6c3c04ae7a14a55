package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/service"
)

// maxBodyBytes caps every request body the BFF reads.
const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("malformed request body")

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

// formList returns every value submitted under name, accepting both the
// bracketed "name[]" convention and repeated plain keys.
func formList(r *http.Request, name string) []string {
	out := append([]string{}, r.PostForm[name+"[]"]...)
	return append(out, r.PostForm[name]...)
}

// ParseDraftForm reads the create and edit form from a JSON or form encoded
// body.
func ParseDraftForm(w http.ResponseWriter, r *http.Request) (service.FormInput, error) {
	var in service.FormInput
	if isJSON(r) {
		err := decodeJSONBody(w, r, &in)
		return in, err
	}

	if err := parseForm(w, r); err != nil {
		return in, err
	}
	in = service.FormInput{
		ClientName:              r.PostForm.Get("clientName"),
		RedirectURIs:            formList(r, "redirectUris"),
		GrantTypes:              formList(r, "grantTypes"),
		ResponseTypes:           formList(r, "responseTypes"),
		Scopes:                  formList(r, "scopes"),
		TokenEndpointAuthMethod: r.PostForm.Get("tokenEndpointAuthMethod"),
		Owner:                   r.PostForm.Get("owner"),
		Contacts:                formList(r, "contacts"),
		ClientURI:               r.PostForm.Get("clientUri"),
		LogoURI:                 r.PostForm.Get("logoUri"),
		TOSURI:                  r.PostForm.Get("tosUri"),
	}
	return in, nil
}

// parseSecretForm reads the new secret from a JSON or form encoded body.
func parseSecretForm(w http.ResponseWriter, r *http.Request) (string, error) {
	if isJSON(r) {
		var req SecretRequest
		err := decodeJSONBody(w, r, &req)
		return req.NewClientSecret, err
	}
	if err := parseForm(w, r); err != nil {
		return "", err
	}
	return r.PostForm.Get("newClientSecret"), nil
}
