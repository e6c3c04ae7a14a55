package render

import "github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"

// ListResponse is the structured form of a client list page.
type ListResponse struct {
	Clients      []domain.ClientRecord `json:"clients"`
	TotalClients int                   `json:"totalClients"`
	TotalPages   int                   `json:"totalPages"`
}

// MessageResponse acknowledges a write that returns no record.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the structured form of every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
