package registrysdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/clientadmin/pkg/registrysdk"
	"github.com/aussiebroadwan/clientadmin/pkg/registrysdk/registrysdktest"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func seedRecord(id, name string) registrysdk.ClientRecord {
	return registrysdk.ClientRecord{
		ClientID: id,
		ClientMetadata: registrysdk.ClientMetadata{
			ClientName:              name,
			RedirectURIs:            []string{"https://app.example.com/cb"},
			GrantTypes:              []string{"authorization_code"},
			ResponseTypes:           []string{"code"},
			Scope:                   "openid profile",
			TokenEndpointAuthMethod: "client_secret_basic",
			Contacts:                []string{},
		},
		CreatedAt: registrysdk.OpaqueTime(`"2024-01-02T03:04:05Z"`),
	}
}

func newClient(t *testing.T) (*registrysdk.SDKClient, *registrysdktest.Server) {
	t.Helper()
	srv := registrysdktest.NewServer()
	t.Cleanup(srv.Close)
	return registrysdk.NewSDKClient(srv.URL + "/"), srv
}

func TestListAndGet(t *testing.T) {
	t.Parallel()
	client, srv := newClient(t)

	list, err := client.ListClients(t.Context())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	srv.Seed(seedRecord("b", "Beta"), seedRecord("a", "Alpha"))

	list, err = client.ListClients(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "b", list[0].ClientID, "upstream order is kept")
	require.Nil(t, list[0].Owner)

	got, err := client.GetClient(t.Context(), "a")
	require.NoError(t, err)
	require.Equal(t, "Alpha", got.ClientName)
	require.Equal(t, "2024-01-02T03:04:05Z", got.CreatedAt.String())
}

func TestCreateAndReplace(t *testing.T) {
	t.Parallel()
	client, srv := newClient(t)

	created, err := client.CreateClient(t.Context(), registrysdk.ClientMetadata{
		ClientName:              "Gamma",
		GrantTypes:              []string{"client_credentials"},
		TokenEndpointAuthMethod: "client_secret_post",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ClientID)
	require.NotNil(t, created.ClientSecret)

	write := srv.LastWrite()
	require.Equal(t, "application/json", write.ContentType)
	require.NotContains(t, string(write.Body), "client_id")

	next := *created
	next.ClientName = "Gamma Two"
	next.Owner = ptr("platform")

	replaced, err := client.ReplaceClient(t.Context(), created.ClientID, next)
	require.NoError(t, err)
	require.Equal(t, created.ClientID, replaced.ClientID)
	require.Equal(t, "Gamma Two", replaced.ClientName)
	require.Equal(t, *created.ClientSecret, *replaced.ClientSecret, "secret survives replace")
	require.Equal(t, http.MethodPut, srv.LastWrite().Method)
}

func TestPatchClient(t *testing.T) {
	t.Parallel()
	client, srv := newClient(t)
	srv.Seed(seedRecord("abc", "Alpha"))

	op, err := registrysdk.Replace("/owner", "team-a")
	require.NoError(t, err)

	updated, err := client.PatchClient(t.Context(), "abc", []registrysdk.PatchOperation{op})
	require.NoError(t, err)
	require.Equal(t, "team-a", *updated.Owner)
	require.Equal(t, "openid profile", updated.Scope)

	write := srv.LastWrite()
	require.Equal(t, registrysdk.PatchMediaType, write.ContentType)
	require.Equal(t, "/clients/abc", write.Path)

	var sent []map[string]any
	require.NoError(t, json.Unmarshal(write.Body, &sent))
	require.Equal(t, []map[string]any{{"op": "replace", "path": "/owner", "value": "team-a"}}, sent)
}

func TestClientIDIsPathEscaped(t *testing.T) {
	t.Parallel()
	client, srv := newClient(t)

	srv.Seed(seedRecord("a", "Alpha"))

	// "a/b" must stay one path segment and miss, not resolve to another route
	_, err := client.GetClient(t.Context(), "a/b")
	require.ErrorIs(t, err, registrysdk.ErrBackendRejected)

	var be *registrysdk.BackendError
	require.True(t, errors.As(err, &be))
	require.Equal(t, http.StatusNotFound, be.StatusCode)
	require.Equal(t, 1, srv.Calls(http.MethodGet))
}

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx is rejected", func(t *testing.T) {
		client, srv := newClient(t)
		srv.FailNext(1, http.StatusBadRequest, `{"error":"invalid_redirect_uri","error_description":"bad uri"}`)

		_, err := client.ListClients(t.Context())
		require.ErrorIs(t, err, registrysdk.ErrBackendRejected)
		require.NotErrorIs(t, err, registrysdk.ErrBackendUnavailable)

		var be *registrysdk.BackendError
		require.True(t, errors.As(err, &be))
		require.Equal(t, http.StatusBadRequest, be.StatusCode)
		require.Equal(t, "invalid_redirect_uri: bad uri", be.Message)
		require.Equal(t, "list clients", be.Op)
	})

	t.Run("message body and plain text", func(t *testing.T) {
		client, srv := newClient(t)

		srv.FailNext(1, http.StatusConflict, `{"message":"busy"}`)
		_, err := client.GetClient(t.Context(), "x")
		var be *registrysdk.BackendError
		require.True(t, errors.As(err, &be))
		require.Equal(t, "busy", be.Message)

		srv.FailNext(1, http.StatusBadGateway, "  upstream down \n")
		_, err = client.GetClient(t.Context(), "x")
		require.True(t, errors.As(err, &be))
		require.Equal(t, "upstream down", be.Message)
	})

	t.Run("malformed body is unavailable", func(t *testing.T) {
		client, srv := newClient(t)
		srv.FailNext(1, http.StatusOK, `{"client_id":`)

		_, err := client.GetClient(t.Context(), "x")
		require.ErrorIs(t, err, registrysdk.ErrBackendUnavailable)
	})

	t.Run("empty body is unavailable", func(t *testing.T) {
		client, srv := newClient(t)
		srv.FailNext(1, http.StatusOK, "")

		_, err := client.ListClients(t.Context())
		require.ErrorIs(t, err, registrysdk.ErrBackendUnavailable)
	})

	t.Run("network failure is unavailable", func(t *testing.T) {
		srv := registrysdktest.NewServer()
		url := srv.URL
		srv.Close()

		client := registrysdk.NewSDKClient(url)
		_, err := client.ListClients(t.Context())
		require.ErrorIs(t, err, registrysdk.ErrBackendUnavailable)
		require.Equal(t, 0, srv.Calls(""))
	})

	t.Run("long text is cut on a rune boundary", func(t *testing.T) {
		client, srv := newClient(t)
		srv.FailNext(1, http.StatusBadGateway, "x"+strings.Repeat("é", 600))

		_, err := client.ListClients(t.Context())
		var be *registrysdk.BackendError
		require.True(t, errors.As(err, &be))
		require.True(t, utf8.ValidString(be.Message))
		require.LessOrEqual(t, len(be.Message), 512)
		require.Equal(t, 511, len(be.Message))
	})

	t.Run("unencodable body is unavailable", func(t *testing.T) {
		client, srv := newClient(t)
		ops := []registrysdk.PatchOperation{{Op: "replace", Path: "/scope", Value: json.RawMessage(`{`)}}

		_, err := client.PatchClient(t.Context(), "x", ops)
		require.ErrorIs(t, err, registrysdk.ErrBackendUnavailable)
		require.Zero(t, srv.Calls(""))
	})

	t.Run("bad base URL is unavailable", func(t *testing.T) {
		client := registrysdk.NewSDKClient("http://[::1")

		_, err := client.GetClient(t.Context(), "x")
		require.ErrorIs(t, err, registrysdk.ErrBackendUnavailable)

		var be *registrysdk.BackendError
		require.True(t, errors.As(err, &be))
		require.Equal(t, "get client", be.Op)
	})

	t.Run("no retries", func(t *testing.T) {
		client, srv := newClient(t)
		srv.FailNext(1, http.StatusServiceUnavailable, "")

		_, err := client.ListClients(t.Context())
		require.ErrorIs(t, err, registrysdk.ErrBackendRejected)
		require.Equal(t, 1, srv.Calls(http.MethodGet))
	})
}

func TestPing(t *testing.T) {
	t.Parallel()
	client, srv := newClient(t)

	require.NoError(t, client.Ping(t.Context()))

	srv.FailNext(1, http.StatusInternalServerError, "")
	require.ErrorIs(t, client.Ping(t.Context()), registrysdk.ErrBackendRejected)

	ctx, cancel := context.WithTimeout(t.Context(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)
	require.ErrorIs(t, client.Ping(ctx), registrysdk.ErrBackendUnavailable)
}

func TestOpaqueTime(t *testing.T) {
	t.Parallel()

	var rec registrysdk.ClientRecord
	require.NoError(t, json.Unmarshal([]byte(`{"client_id":"a","created_at":1700000000,"updated_at":null}`), &rec))
	require.Equal(t, "1700000000", rec.CreatedAt.String())
	require.Empty(t, rec.UpdatedAt.String())

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	require.Contains(t, string(out), `"created_at":1700000000`)
	require.Contains(t, string(out), `"updated_at":null`)

	out, err = json.Marshal(registrysdk.ClientRecord{ClientID: "b"})
	require.NoError(t, err)
	require.NotContains(t, string(out), "updated_at")
}

func TestClientRecord_PassThrough(t *testing.T) {
	t.Parallel()

	const upstream = `{"client_id":"c1","client_name":"Alpha","jwks_uri":"https://x/jwks","client_id_issued_at":1700000000}`

	t.Run("unchanged record encodes as received", func(t *testing.T) {
		var rec registrysdk.ClientRecord
		require.NoError(t, json.Unmarshal([]byte(upstream), &rec))

		out, err := json.Marshal(rec)
		require.NoError(t, err)
		require.JSONEq(t, upstream, string(out))
		require.JSONEq(t, `"https://x/jwks"`, string(rec.Extra()["jwks_uri"]))
		require.NotContains(t, rec.Extra(), "client_name")
	})

	t.Run("edits rewrite only the edited members", func(t *testing.T) {
		var rec registrysdk.ClientRecord
		require.NoError(t, json.Unmarshal([]byte(upstream), &rec))
		rec.ClientName = "Alpha Prime"
		rec.Owner = ptr("platform")

		out, err := json.Marshal(rec)
		require.NoError(t, err)
		require.JSONEq(t, `{"client_id":"c1","client_name":"Alpha Prime","owner":"platform",`+
			`"jwks_uri":"https://x/jwks","client_id_issued_at":1700000000}`, string(out))
	})

	t.Run("cleared optional member is dropped", func(t *testing.T) {
		var rec registrysdk.ClientRecord
		require.NoError(t, json.Unmarshal([]byte(`{"client_id":"c1","owner":"platform","x":1}`), &rec))
		rec.Owner = nil

		out, err := json.Marshal(rec)
		require.NoError(t, err)
		require.JSONEq(t, `{"client_id":"c1","x":1}`, string(out))
	})

	t.Run("get echoes unknown members", func(t *testing.T) {
		client, srv := newClient(t)
		srv.SeedJSON(upstream)

		got, err := client.GetClient(t.Context(), "c1")
		require.NoError(t, err)

		out, err := json.Marshal(got)
		require.NoError(t, err)
		require.Contains(t, string(out), `"jwks_uri":"https://x/jwks"`)
		require.Contains(t, string(out), `"client_id_issued_at":1700000000`)
		require.NotContains(t, string(out), `"scope"`)
	})

	t.Run("replace keeps unknown members", func(t *testing.T) {
		client, srv := newClient(t)
		srv.SeedJSON(upstream)

		current, err := client.GetClient(t.Context(), "c1")
		require.NoError(t, err)
		current.ClientName = "Renamed"

		replaced, err := client.ReplaceClient(t.Context(), "c1", *current)
		require.NoError(t, err)
		require.Equal(t, "Renamed", replaced.ClientName)
		require.JSONEq(t, `"https://x/jwks"`, string(replaced.Extra()["jwks_uri"]))
		require.Contains(t, string(srv.LastWrite().Body), "jwks_uri")
	})
}
