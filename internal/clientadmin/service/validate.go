package service

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports operator input that cannot be sent upstream.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// invalid builds a ValidationError whose message starts with the field's
// label, so format reads as the rest of the sentence.
func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: domain.FieldLabel(field) + " " + fmt.Sprintf(format, args...),
	}
}

// absoluteURI matches a scheme followed by a colon and at least one more
// character. The same rule the browser form applies.
var absoluteURI = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*:.+$`)

// ValidateURI checks that s is an absolute URI with a scheme.
func ValidateURI(field, s string) error {
	if !absoluteURI.MatchString(s) {
		return invalid(field, "must contain absolute URIs with a scheme, got %q.", s)
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return invalid(field, "must contain absolute URIs with a scheme, got %q.", s)
	}
	return nil
}

// ValidateClientName enforces the minimum name length on the trimmed value.
func ValidateClientName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < domain.MinClientNameLength {
		return invalid(domain.FieldClientName, "must be at least %d characters long.", domain.MinClientNameLength)
	}
	return nil
}

// ValidateSecret enforces the minimum client secret length.
func ValidateSecret(secret string) error {
	if utf8.RuneCountInString(secret) < domain.MinSecretLength {
		return invalid(domain.FieldClientSecret, "must be at least %d characters long.", domain.MinSecretLength)
	}
	return nil
}

func validateURIList(field string, uris []string, limit int) error {
	if len(uris) > limit {
		return invalid(field, "allows at most %d entries.", limit)
	}
	for _, u := range uris {
		if err := ValidateURI(field, u); err != nil {
			return err
		}
	}
	return nil
}

func validateOptions(field string, opts []domain.Option, values []string) error {
	for _, v := range values {
		if !domain.IsOption(opts, v) {
			return invalid(field, "does not support %q.", v)
		}
	}
	return nil
}

func validateAuthMethod(method string) error {
	if !domain.IsOption(domain.AuthMethods, method) {
		return invalid(domain.FieldTokenEndpointAuthMethod, "does not support %q.", method)
	}
	return nil
}

func validateScope(scope string) error {
	if n := len(domain.ScopeTokens(scope)); n > domain.MaxScopeTokens {
		return invalid(domain.FieldScope, "allows at most %d tokens.", domain.MaxScopeTokens)
	}
	return nil
}

func validateContacts(contacts []string) error {
	if len(contacts) > domain.MaxContacts {
		return invalid(domain.FieldContacts, "allows at most %d entries.", domain.MaxContacts)
	}
	for _, c := range contacts {
		if strings.TrimSpace(c) == "" {
			return invalid(domain.FieldContacts, "must not be blank.")
		}
	}
	return nil
}

func validateOptionalURI(field string, v *string) error {
	if v == nil || *v == "" {
		return nil
	}
	return ValidateURI(field, *v)
}

// NormalizeDraft canonicalises a draft in place: names are trimmed, the scope
// is rewritten with single spaces and blank optional fields become absent.
func NormalizeDraft(d *domain.Draft) {
	d.ClientName = strings.TrimSpace(d.ClientName)
	d.Scope = domain.NormalizeScope(d.Scope)
	d.Owner = blankToNil(d.Owner)
	d.ClientURI = blankToNil(d.ClientURI)
	d.LogoURI = blankToNil(d.LogoURI)
	d.TOSURI = blankToNil(d.TOSURI)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ValidateDraft checks every field of a draft and returns the first failure.
// An empty grant type list is accepted; the registration server decides
// whether such a client is usable.
func ValidateDraft(d domain.Draft) error {
	checks := []func() error{
		func() error { return ValidateClientName(d.ClientName) },
		func() error { return validateURIList(domain.FieldRedirectURIs, d.RedirectURIs, domain.MaxRedirectURIs) },
		func() error { return validateOptions(domain.FieldGrantTypes, domain.GrantTypes, d.GrantTypes) },
		func() error { return validateOptions(domain.FieldResponseTypes, domain.ResponseTypes, d.ResponseTypes) },
		func() error { return validateScope(d.Scope) },
		func() error { return validateAuthMethod(d.TokenEndpointAuthMethod) },
		func() error { return validateContacts(d.Contacts) },
		func() error { return validateOptionalURI(domain.FieldClientURI, d.ClientURI) },
		func() error { return validateOptionalURI(domain.FieldLogoURI, d.LogoURI) },
		func() error { return validateOptionalURI(domain.FieldTOSURI, d.TOSURI) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
