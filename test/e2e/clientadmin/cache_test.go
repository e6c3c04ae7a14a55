package clientadmin_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clientadmin/pkg/registrysdk/registrysdktest"
	"github.com/stretchr/testify/require"
)

// TestRedisListCache runs the BFF with the redis cache driver.
func TestRedisListCache(t *testing.T) {
	upstream := registrysdktest.NewServer()
	defer upstream.Close()
	seedClients(upstream, 12)

	redisPort, redisURL, stopRedis := setupRedisContainer(t)
	defer stopRedis()

	baseURL, cleanup := setupClientAdminContainer(t, upstream, withRelaxedRateLimits, withRedis(redisURL, redisPort))
	defer cleanup()

	browser := newBrowser(t)
	before := upstream.Calls(http.MethodGet)

	require.Equal(t, 12, listClients(t, browser, baseURL, "page=1").TotalClients)
	require.Len(t, listClients(t, browser, baseURL, "page=2").Clients, 2)
	require.Equal(t, 1, upstream.Calls(http.MethodGet)-before)

	// A second browser gets its own cache entry.
	listClients(t, newBrowser(t), baseURL, "page=1")
	require.Equal(t, 2, upstream.Calls(http.MethodGet)-before)

	code, _, body := call(t, browser, http.MethodGet, baseURL+"/readyz", "", "", false)
	require.Equal(t, http.StatusOK, code, body)
}
