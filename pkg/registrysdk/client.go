package registrysdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single upstream call when no HTTP client is given.
const DefaultTimeout = 10 * time.Second

// SDKClient talks to an OAuth2 dynamic client registration API. Every method
// issues exactly one HTTP call and never retries.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a registration API client rooted at baseURL, for
// example "https://api.example.com/oauth2".
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}
