/*
Package registrysdk is a thin client for an OAuth2 dynamic client registration
API (RFC 7591 style). It lists, reads, creates, replaces and patches client
registrations, and nothing else.

	client := registrysdk.NewSDKClient("https://api.example.com/oauth2")

	clients, err := client.ListClients(ctx)

	op, _ := registrysdk.Replace("/client_name", "Billing Portal")
	updated, err := client.PatchClient(ctx, "abc123", []registrysdk.PatchOperation{op})

# Errors

Every failed call returns a *BackendError that matches exactly one sentinel:

  - ErrBackendUnavailable: the request could not be sent, or the response body
    could not be read or decoded.
  - ErrBackendRejected: the server answered with a non-2xx status.

The upstream status and message are kept on the error for logging:

	var be *registrysdk.BackendError
	if errors.As(err, &be) {
		log.Error("registration api failed", "status", be.StatusCode, "message", be.Message)
	}

The client never retries.

# Testing

Package registrysdktest provides an in-memory implementation of the API that
applies PATCH documents with RFC 6902 semantics.
*/
package registrysdk
