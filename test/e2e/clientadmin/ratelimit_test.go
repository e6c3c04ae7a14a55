package clientadmin_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clientadmin/pkg/registrysdk/registrysdktest"
	"github.com/stretchr/testify/require"
)

// TestSecretRotationRateLimit uses the production limits, so the sixth
// rotation inside a minute is rejected.
func TestSecretRotationRateLimit(t *testing.T) {
	upstream := registrysdktest.NewServer()
	defer upstream.Close()
	seedClients(upstream, 1)

	baseURL, cleanup := setupClientAdminContainer(t, upstream)
	defer cleanup()

	browser := newBrowser(t)
	target := baseURL + "/api/clients/client-seed-00/secret"

	for i := range 5 {
		code, _, body := call(t, browser, http.MethodPut, target, "application/json", `{"newClientSecret":"secret-value"}`, false)
		require.Equal(t, http.StatusOK, code, "request %d: %s", i+1, body)
	}

	code, headers, _ := call(t, browser, http.MethodPut, target, "application/json", `{"newClientSecret":"secret-value"}`, false)
	require.Equal(t, http.StatusTooManyRequests, code)
	require.NotEmpty(t, headers.Get("Retry-After"))
	require.Equal(t, 5, upstream.Calls(http.MethodPatch))
}
