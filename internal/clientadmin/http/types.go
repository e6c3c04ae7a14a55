package http

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency of the readiness probe.
type HealthChecks struct {
	Upstream string `json:"upstream"`
	Cache    string `json:"cache"`
}

// SecretRequest is the body of a secret rotation.
type SecretRequest struct {
	NewClientSecret string `json:"newClientSecret"`
}
