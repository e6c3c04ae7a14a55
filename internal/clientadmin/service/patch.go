package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
	"github.com/aussiebroadwan/clientadmin/pkg/registrysdk"
)

// ErrInvalidPatch is matched by every *InvalidPatchError.
var ErrInvalidPatch = errors.New("invalid patch")

// InvalidPatchError names the first operation of a batch that failed
// validation. Index is -1 when the batch as a whole is unusable.
type InvalidPatchError struct {
	Index  int
	Op     string
	Path   string
	Reason string
	Err    error
}

func (e *InvalidPatchError) Error() string {
	if e.Index < 0 {
		return "Invalid patch: " + e.Reason
	}
	return fmt.Sprintf("Invalid patch operation %d (%s %s): %s", e.Index, e.Op, e.Path, e.Reason)
}

func (e *InvalidPatchError) Is(target error) bool { return target == ErrInvalidPatch }

func (e *InvalidPatchError) Unwrap() error { return e.Err }

// FieldUpdate sets one top level field to a new value.
type FieldUpdate struct {
	Field string
	Value any
}

// UpdateIntent is an ordered set of field updates. The order of the intent is
// the order of the generated operations.
type UpdateIntent []FieldUpdate

// patchableFields are the top level fields an operation may target.
var patchableFields = append(slices.Clone(domain.EditableFields), domain.FieldClientSecret)

// requiredFields cannot be removed or set to null.
var requiredFields = []string{domain.FieldClientName, domain.FieldTokenEndpointAuthMethod}

// arrayFields accept element paths such as /redirect_uris/0 or /contacts/-.
var arrayFields = []string{
	domain.FieldRedirectURIs,
	domain.FieldGrantTypes,
	domain.FieldResponseTypes,
	domain.FieldContacts,
}

var validOps = []string{
	registrysdk.OpAdd,
	registrysdk.OpRemove,
	registrysdk.OpReplace,
	registrysdk.OpMove,
	registrysdk.OpCopy,
	registrysdk.OpTest,
}

// BuildPatch turns an update intent into one replace operation per field, in
// intent order. Unknown, immutable and repeated fields fail with
// ErrInvalidPatch; bad values fail with ErrValidation. Nothing is returned
// unless every field passes.
func BuildPatch(intent UpdateIntent) ([]domain.PatchOperation, error) {
	if len(intent) == 0 {
		return nil, &InvalidPatchError{Index: -1, Reason: "update intent names no fields"}
	}

	seen := make(map[string]bool, len(intent))
	ops := make([]domain.PatchOperation, 0, len(intent))

	for i, u := range intent {
		path := "/" + u.Field
		if err := checkField(u.Field); err != "" {
			return nil, &InvalidPatchError{Index: i, Op: registrysdk.OpReplace, Path: path, Reason: err}
		}
		if seen[u.Field] {
			return nil, &InvalidPatchError{
				Index:  i,
				Op:     registrysdk.OpReplace,
				Path:   path,
				Reason: fmt.Sprintf("field %q named more than once", u.Field),
			}
		}
		seen[u.Field] = true

		op, err := registrysdk.Replace(path, u.Value)
		if err != nil {
			return nil, invalid(u.Field, "cannot be encoded: %v.", err)
		}
		if err := validateFieldValue(u.Field, op.Value); err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return ops, nil
}

// IntentFromDraft produces the full resend intent: every editable field, in
// form order, with the draft's values.
func IntentFromDraft(d domain.Draft) UpdateIntent {
	return UpdateIntent{
		{domain.FieldClientName, d.ClientName},
		{domain.FieldRedirectURIs, nonNil(d.RedirectURIs)},
		{domain.FieldGrantTypes, nonNil(d.GrantTypes)},
		{domain.FieldResponseTypes, nonNil(d.ResponseTypes)},
		{domain.FieldScope, d.Scope},
		{domain.FieldTokenEndpointAuthMethod, d.TokenEndpointAuthMethod},
		{domain.FieldOwner, d.Owner},
		{domain.FieldContacts, nonNil(d.Contacts)},
		{domain.FieldClientURI, d.ClientURI},
		{domain.FieldLogoURI, d.LogoURI},
		{domain.FieldTOSURI, d.TOSURI},
	}
}

// SecretRotation builds the single operation that replaces a client secret.
func SecretRotation(secret string) ([]domain.PatchOperation, error) {
	if err := ValidateSecret(secret); err != nil {
		return nil, err
	}
	return BuildPatch(UpdateIntent{{domain.FieldClientSecret, secret}})
}

// ValidatePatch checks a caller supplied operation batch before dispatch. The
// first bad operation fails the whole batch.
func ValidatePatch(ops []domain.PatchOperation) error {
	if len(ops) == 0 {
		return &InvalidPatchError{Index: -1, Reason: "patch contains no operations"}
	}

	for i, op := range ops {
		if err := validateOperation(op); err != nil {
			err.Index, err.Op, err.Path = i, op.Op, op.Path
			return err
		}
	}
	return nil
}

func validateOperation(op domain.PatchOperation) *InvalidPatchError {
	fail := func(format string, args ...any) *InvalidPatchError {
		return &InvalidPatchError{Reason: fmt.Sprintf(format, args...)}
	}

	if op.Op == "" {
		return fail("missing op")
	}
	if !slices.Contains(validOps, op.Op) {
		return fail("unsupported op %q", op.Op)
	}
	if op.Path == "" {
		return fail("missing path")
	}

	field, elem, reason := parsePath(op.Path, op.Op == registrysdk.OpAdd)
	if reason != "" {
		return fail("%s", reason)
	}

	switch op.Op {
	case registrysdk.OpAdd, registrysdk.OpReplace, registrysdk.OpTest:
		if len(op.Value) == 0 {
			return fail("missing value")
		}
	case registrysdk.OpMove, registrysdk.OpCopy:
		if op.From == "" {
			return fail("missing from")
		}
		fromField, fromElem, reason := parsePath(op.From, false)
		if reason != "" {
			return fail("from: %s", reason)
		}
		if op.Op == registrysdk.OpMove && fromElem == "" && slices.Contains(requiredFields, fromField) {
			return fail("field %q is required", fromField)
		}
	}

	if op.Op == registrysdk.OpRemove && elem == "" && slices.Contains(requiredFields, field) {
		return fail("field %q is required", field)
	}

	if op.Op == registrysdk.OpAdd || op.Op == registrysdk.OpReplace {
		var err error
		if elem == "" {
			err = validateFieldValue(field, op.Value)
		} else {
			err = validateElementValue(field, op.Value)
		}
		if err != nil {
			return &InvalidPatchError{Reason: err.Error(), Err: err}
		}
	}

	return nil
}

// checkField returns a reason when field cannot be the target of an update.
func checkField(field string) string {
	switch {
	case slices.Contains(domain.ImmutableFields, field):
		return fmt.Sprintf("field %q is immutable", field)
	case !slices.Contains(patchableFields, field):
		return fmt.Sprintf("unknown field %q", field)
	}
	return ""
}

// parsePath splits a JSON pointer into a top level field and an optional
// array element token, returning a reason when the pointer is unusable.
func parsePath(path string, allowAppend bool) (field, elem, reason string) {
	if !strings.HasPrefix(path, "/") {
		return "", "", fmt.Sprintf("path %q is not a JSON pointer", path)
	}

	segments := strings.Split(path[1:], "/")
	for i, s := range segments {
		segments[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
	}

	field = segments[0]
	if r := checkField(field); r != "" {
		return "", "", r
	}

	switch len(segments) {
	case 1:
		return field, "", ""
	case 2:
		if !slices.Contains(arrayFields, field) {
			return "", "", fmt.Sprintf("field %q has no elements", field)
		}
		elem = segments[1]
		if elem == "-" {
			if !allowAppend {
				return "", "", fmt.Sprintf("path %q: \"-\" is only valid for add", path)
			}
			return field, elem, ""
		}
		if n, err := strconv.Atoi(elem); err != nil || n < 0 || (len(elem) > 1 && elem[0] == '0') {
			return "", "", fmt.Sprintf("path %q: %q is not an array index", path, elem)
		}
		return field, elem, ""
	default:
		return "", "", fmt.Sprintf("path %q is too deep", path)
	}
}

func validateFieldValue(field string, raw json.RawMessage) error {
	isNull := string(raw) == "null"
	if isNull && slices.Contains(requiredFields, field) {
		return invalid(field, "is required.")
	}

	switch field {
	case domain.FieldClientName:
		s, err := decodeString(field, raw)
		if err != nil {
			return err
		}
		return ValidateClientName(s)

	case domain.FieldClientSecret:
		if isNull {
			return nil
		}
		s, err := decodeString(field, raw)
		if err != nil {
			return err
		}
		return ValidateSecret(s)

	case domain.FieldTokenEndpointAuthMethod:
		s, err := decodeString(field, raw)
		if err != nil {
			return err
		}
		return validateAuthMethod(s)

	case domain.FieldScope:
		s, err := decodeString(field, raw)
		if err != nil {
			return err
		}
		if s != domain.NormalizeScope(s) {
			return invalid(field, "tokens must be separated by single spaces.")
		}
		return validateScope(s)

	case domain.FieldOwner:
		if isNull {
			return nil
		}
		_, err := decodeString(field, raw)
		return err

	case domain.FieldClientURI, domain.FieldLogoURI, domain.FieldTOSURI:
		if isNull {
			return nil
		}
		s, err := decodeString(field, raw)
		if err != nil {
			return err
		}
		return validateOptionalURI(field, &s)

	case domain.FieldRedirectURIs:
		list, err := decodeList(field, raw)
		if err != nil {
			return err
		}
		return validateURIList(field, list, domain.MaxRedirectURIs)

	case domain.FieldGrantTypes:
		list, err := decodeList(field, raw)
		if err != nil {
			return err
		}
		return validateOptions(field, domain.GrantTypes, list)

	case domain.FieldResponseTypes:
		list, err := decodeList(field, raw)
		if err != nil {
			return err
		}
		return validateOptions(field, domain.ResponseTypes, list)

	case domain.FieldContacts:
		list, err := decodeList(field, raw)
		if err != nil {
			return err
		}
		return validateContacts(list)
	}

	return invalid(field, "is not a known field.")
}

func validateElementValue(field string, raw json.RawMessage) error {
	s, err := decodeString(field, raw)
	if err != nil {
		return err
	}

	switch field {
	case domain.FieldRedirectURIs:
		return ValidateURI(field, s)
	case domain.FieldGrantTypes:
		return validateOptions(field, domain.GrantTypes, []string{s})
	case domain.FieldResponseTypes:
		return validateOptions(field, domain.ResponseTypes, []string{s})
	case domain.FieldContacts:
		return validateContacts([]string{s})
	}
	return invalid(field, "has no elements.")
}

func decodeString(field string, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || string(raw) == "null" {
		return "", invalid(field, "must be a string.")
	}
	return s, nil
}

func decodeList(field string, raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, invalid(field, "must be a list of strings.")
	}
	return list, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
