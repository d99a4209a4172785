package services

import (
	"context"
	"errors"

	"vendorly/internal/domain/vendors"
	"vendorly/internal/latency"
	"vendorly/internal/params"
)

const searchLimit = 5

// Page is one window of a paginated listing.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

type VendorService struct {
	vendors vendors.Store
	latency *latency.Simulator
}

// ListVendors returns a 1-indexed page of vendors matching filter. A page past
// the end is empty but still reports the real total and page count.
func (s *VendorService) ListVendors(ctx context.Context, page, pageSize int, filter vendors.Filter) (*Page[vendors.Vendor], error) {
	if err := s.latency.Wait(ctx, latency.Default); err != nil {
		return nil, err
	}

	p := params.NewPagination(page, pageSize)
	data, total, err := s.vendors.List(ctx, filter, p.Offset, p.PageSize)
	if err != nil {
		return nil, err
	}
	p.ComputeMeta(total)

	return &Page[vendors.Vendor]{
		Data:       data,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}, nil
}

func (s *VendorService) GetVendor(ctx context.Context, id string) (*vendors.Vendor, error) {
	if err := s.latency.Wait(ctx, latency.Default); err != nil {
		return nil, err
	}

	v, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vendors.ErrVendorNotFound) {
			return nil, wrapNotFound(err)
		}
		return nil, err
	}
	return v, nil
}

// SearchVendors matches name or category and returns at most five vendors.
func (s *VendorService) SearchVendors(ctx context.Context, query string) ([]vendors.Vendor, error) {
	if err := s.latency.Wait(ctx, latency.Search); err != nil {
		return nil, err
	}
	return s.vendors.Search(ctx, query, searchLimit)
}

func (s *VendorService) ListAllVendors(ctx context.Context) ([]vendors.Vendor, error) {
	if err := s.latency.Wait(ctx, latency.Default); err != nil {
		return nil, err
	}
	return s.vendors.All(ctx)
}

// GetVendorName never fails; unknown ids yield vendors.UnknownName.
func (s *VendorService) GetVendorName(ctx context.Context, id string) string {
	return s.vendors.Name(ctx, id)
}
