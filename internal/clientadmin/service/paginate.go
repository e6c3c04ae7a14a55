package service

import (
	"strings"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
)

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 10

// Filter narrows a client list. Empty terms match everything.
type Filter struct {
	ClientName string
	ClientID   string
}

// Matches reports whether rec satisfies both terms. Names match
// case-insensitively, ids case-sensitively. Terms are used as given, so a
// single space is a term like any other.
func (f Filter) Matches(rec domain.ClientRecord) bool {
	if f.ClientName != "" && !strings.Contains(strings.ToLower(rec.ClientName), strings.ToLower(f.ClientName)) {
		return false
	}
	return f.ClientID == "" || strings.Contains(rec.ClientID, f.ClientID)
}

// PageResult is one page of a filtered list.
type PageResult struct {
	Clients      []domain.ClientRecord
	TotalClients int
	TotalPages   int
	Page         int
	PageSize     int
}

// Paginate filters all and slices out the requested 1-based page. Upstream
// order is kept. A page past the end yields no clients but still reports the
// filtered totals.
func Paginate(all []domain.ClientRecord, f Filter, page, pageSize int) PageResult {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	matched := make([]domain.ClientRecord, 0, len(all))
	for _, rec := range all {
		if f.Matches(rec) {
			matched = append(matched, rec)
		}
	}

	n := len(matched)
	res := PageResult{
		Clients:      []domain.ClientRecord{},
		TotalClients: n,
		TotalPages:   n / pageSize,
		Page:         page,
		PageSize:     pageSize,
	}
	if n%pageSize != 0 {
		res.TotalPages++
	}

	// page-1 < TotalPages keeps the products below within n.
	if page-1 >= res.TotalPages {
		return res
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, n-start)
	res.Clients = matched[start:end]
	return res
}
