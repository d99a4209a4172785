package client

import (
	"context"
	"slices"
	"strings"
	"sync"

	"vendorly/internal/domain/vendors"
)

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type VendorState struct {
	Vendors       []vendors.Vendor
	CurrentVendor *vendors.Vendor
	SearchResults []vendors.Vendor
	Pagination    Pagination
	Filters       vendors.Filter
	IsLoading     bool
	IsSearching   bool
	Error         string
}

// VendorStore tracks the browse, detail and quick-search views. Each kind of
// request carries a generation number; a response that arrives after a newer
// request of the same kind was started is dropped.
type VendorStore struct {
	backend Backend

	mu        sync.Mutex
	state     VendorState
	listGen   uint64
	detailGen uint64
	searchGen uint64
}

func NewVendorStore(backend Backend) *VendorStore {
	return &VendorStore{
		backend: backend,
		state: VendorState{
			Vendors:       []vendors.Vendor{},
			SearchResults: []vendors.Vendor{},
			Pagination:    Pagination{Page: 1, PageSize: DefaultPageSize},
		},
	}
}

func (s *VendorStore) Snapshot() VendorState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Vendors = cloneList(s.state.Vendors)
	out.SearchResults = cloneList(s.state.SearchResults)
	if s.state.CurrentVendor != nil {
		v := *s.state.CurrentVendor
		out.CurrentVendor = &v
	}
	return out
}

// FetchVendors loads one page. A nil filters uses the stored filters.
func (s *VendorStore) FetchVendors(ctx context.Context, page int, filters *vendors.Filter) error {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	s.listGen++
	gen := s.listGen
	current := s.state.Filters
	if filters != nil {
		current = *filters
	}
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()

	resp, err := s.backend.ListVendors(ctx, page, DefaultPageSize, current)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.listGen {
		return err
	}

	s.state.IsLoading = false
	if err != nil {
		s.state.Error = err.Error()
		return err
	}

	s.state.Vendors = resp.Data
	s.state.Pagination = Pagination{
		Page:       resp.Page,
		PageSize:   resp.PageSize,
		Total:      resp.Total,
		TotalPages: resp.TotalPages,
	}
	return nil
}

func (s *VendorStore) FetchVendor(ctx context.Context, id string) error {
	s.mu.Lock()
	s.detailGen++
	gen := s.detailGen
	s.state.IsLoading = true
	s.state.Error = ""
	s.state.CurrentVendor = nil
	s.mu.Unlock()

	v, err := s.backend.GetVendor(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.detailGen {
		return err
	}

	s.state.IsLoading = false
	if err != nil {
		s.state.Error = err.Error()
		return err
	}
	s.state.CurrentVendor = v
	return nil
}

// Search runs a quick search. A blank query clears the results without
// calling the backend. Failures also leave the results empty.
func (s *VendorStore) Search(ctx context.Context, query string) error {
	s.mu.Lock()
	s.searchGen++
	gen := s.searchGen
	if strings.TrimSpace(query) == "" {
		s.state.SearchResults = []vendors.Vendor{}
		s.state.IsSearching = false
		s.mu.Unlock()
		return nil
	}
	s.state.IsSearching = true
	s.mu.Unlock()

	results, err := s.backend.SearchVendors(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.searchGen {
		return err
	}

	s.state.IsSearching = false
	if err != nil {
		s.state.SearchResults = []vendors.Vendor{}
		return err
	}
	s.state.SearchResults = results
	return nil
}

// SetFilters only updates local state; call FetchVendors to apply them.
func (s *VendorStore) SetFilters(f vendors.Filter) {
	s.mu.Lock()
	s.state.Filters = f
	s.mu.Unlock()
}

func (s *VendorStore) ClearSearch() {
	s.mu.Lock()
	s.searchGen++
	s.state.SearchResults = []vendors.Vendor{}
	s.state.IsSearching = false
	s.mu.Unlock()
}

func (s *VendorStore) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

// cloneList copies s, returning an empty slice rather than nil so that
// snapshots encode as [] in JSON.
func cloneList[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
