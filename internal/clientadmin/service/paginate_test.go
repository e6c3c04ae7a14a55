package service

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
)

func named(names ...string) []domain.ClientRecord {
	out := make([]domain.ClientRecord, len(names))
	for i, n := range names {
		out[i].ClientID = fmt.Sprintf("id-%02d", i)
		out[i].ClientName = n
	}
	return out
}

func TestPaginate_PageSizes(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 25; n++ {
		all := named(make([]string, n)...)
		for size := 1; size <= 12; size++ {
			pages := (n + size - 1) / size

			for page := 1; page <= pages+2; page++ {
				res := Paginate(all, Filter{}, page, size)
				require.Equal(t, n, res.TotalClients)
				require.Equal(t, pages, res.TotalPages)
				require.NotNil(t, res.Clients)

				if page > pages {
					require.Empty(t, res.Clients, "n=%d size=%d page=%d", n, size, page)
					continue
				}
				require.Len(t, res.Clients, min(size, n-(page-1)*size), "n=%d size=%d page=%d", n, size, page)
				require.Equal(t, all[(page-1)*size].ClientID, res.Clients[0].ClientID)
			}
		}
	}
}

func TestPaginate_Defaults(t *testing.T) {
	t.Parallel()

	all := named("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l")

	res := Paginate(all, Filter{}, 0, 0)
	require.Equal(t, 1, res.Page)
	require.Equal(t, DefaultPageSize, res.PageSize)
	require.Len(t, res.Clients, 10)
	require.Equal(t, 2, res.TotalPages)

	res = Paginate(all, Filter{}, -3, -1)
	require.Equal(t, 1, res.Page)
	require.Equal(t, DefaultPageSize, res.PageSize)
}

func TestPaginate_ExtremeValues(t *testing.T) {
	t.Parallel()

	all := named("a", "b", "c", "d", "e")

	cases := []struct {
		name      string
		page      int
		size      int
		wantPages int
		wantLen   int
	}{
		{"huge size", 1, math.MaxInt, 1, 5},
		{"huge size minus one", 1, math.MaxInt - 1, 1, 5},
		{"huge page", 1_000_000_000_000_000_000, 10, 1, 0},
		{"huge page and size", math.MaxInt, math.MaxInt, 1, 0},
		{"second page of huge size", 2, math.MaxInt, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Paginate(all, Filter{}, tc.page, tc.size)
			require.Equal(t, 5, res.TotalClients)
			require.Equal(t, tc.wantPages, res.TotalPages)
			require.NotNil(t, res.Clients)
			require.Len(t, res.Clients, tc.wantLen)
		})
	}

	res := Paginate(nil, Filter{}, math.MaxInt, math.MaxInt)
	require.Zero(t, res.TotalPages)
	require.Empty(t, res.Clients)
}

func TestPaginate_AlphaScenario(t *testing.T) {
	t.Parallel()

	all := named("Alpha", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L")

	res := Paginate(all, Filter{ClientName: "a"}, 1, 10)
	require.Equal(t, 1, res.TotalClients)
	require.Equal(t, 1, res.TotalPages)
	require.Len(t, res.Clients, 1)
	require.Equal(t, "Alpha", res.Clients[0].ClientName)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	all := named("Alpha", "alphabet", "Beta", "Gamma")
	all[3].ClientID = "Special-ID"

	t.Run("empty filter keeps everything in order", func(t *testing.T) {
		res := Paginate(all, Filter{}, 1, 100)
		require.Equal(t, all, res.Clients)
	})

	t.Run("name is case-insensitive", func(t *testing.T) {
		res := Paginate(all, Filter{ClientName: "ALPHA"}, 1, 100)
		require.Len(t, res.Clients, 2)
	})

	t.Run("id is case-sensitive", func(t *testing.T) {
		require.Equal(t, 1, Paginate(all, Filter{ClientID: "Special"}, 1, 100).TotalClients)
		require.Equal(t, 0, Paginate(all, Filter{ClientID: "special"}, 1, 100).TotalClients)
	})

	t.Run("terms are combined", func(t *testing.T) {
		res := Paginate(all, Filter{ClientName: "a", ClientID: "id-01"}, 1, 100)
		require.Len(t, res.Clients, 1)
		require.Equal(t, "alphabet", res.Clients[0].ClientName)
	})

	t.Run("terms are not trimmed", func(t *testing.T) {
		spaced := named("Alpha One", "Beta")
		res := Paginate(spaced, Filter{ClientName: " "}, 1, 100)
		require.Len(t, res.Clients, 1)
		require.Equal(t, "Alpha One", res.Clients[0].ClientName)
		require.Zero(t, Paginate(spaced, Filter{ClientID: " id-00"}, 1, 100).TotalClients)
	})

	t.Run("idempotent", func(t *testing.T) {
		f := Filter{ClientName: "a"}
		once := Paginate(all, f, 1, 100).Clients
		twice := Paginate(once, f, 1, 100).Clients
		require.Equal(t, once, twice)
	})
}
