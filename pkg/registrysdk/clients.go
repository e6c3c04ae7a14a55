package registrysdk

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// ListClients returns every registered client in upstream order.
func (c *SDKClient) ListClients(ctx context.Context) ([]ClientRecord, error) {
	var out []ClientRecord
	if err := c.doJSON(ctx, "list clients", http.MethodGet, "/clients", "", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []ClientRecord{}
	}
	return out, nil
}

// GetClient fetches a single client by id.
func (c *SDKClient) GetClient(ctx context.Context, clientID string) (*ClientRecord, error) {
	var out ClientRecord
	if err := c.doJSON(ctx, "get client", http.MethodGet, clientPath(clientID), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateClient registers a new client. The server assigns the id and, where
// the auth method needs one, the secret.
func (c *SDKClient) CreateClient(ctx context.Context, draft ClientMetadata) (*ClientRecord, error) {
	var out ClientRecord
	err := c.doJSON(ctx, "create client", http.MethodPost, "/clients", "application/json", draft, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ReplaceClient sends full as the new state of a client (PUT semantics). A
// record obtained from GetClient keeps every upstream member it arrived with.
func (c *SDKClient) ReplaceClient(ctx context.Context, clientID string, full ClientRecord) (*ClientRecord, error) {
	var out ClientRecord
	err := c.doJSON(ctx, "replace client", http.MethodPut, clientPath(clientID), "application/json", full, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchClient applies ops to a client as one JSON Patch document.
func (c *SDKClient) PatchClient(ctx context.Context, clientID string, ops []PatchOperation) (*ClientRecord, error) {
	if ops == nil {
		ops = []PatchOperation{}
	}
	var out ClientRecord
	err := c.doJSON(ctx, "patch client", http.MethodPatch, clientPath(clientID), PatchMediaType, ops, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks that the registration API answers HTTP at all. Any status below
// 500 counts as reachable.
func (c *SDKClient) Ping(ctx context.Context) error {
	const op = "ping"

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url("/clients"), nil)
	if err != nil {
		return unavailable(op, 0, err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return unavailable(op, 0, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return rejected(op, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return nil
}

func clientPath(clientID string) string {
	return "/clients/" + url.PathEscape(clientID)
}
