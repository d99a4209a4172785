package vendors

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

type Store interface {
	GetByID(ctx context.Context, id string) (*Vendor, error)
	// List returns the requested window of vendors matching filter together
	// with the total match count.
	List(ctx context.Context, filter Filter, offset, limit int) ([]Vendor, int, error)
	Search(ctx context.Context, query string, limit int) ([]Vendor, error)
	All(ctx context.Context) ([]Vendor, error)
	UpdateAggregates(ctx context.Context, id string, rating float64, count int) error
	Name(ctx context.Context, id string) string
}

type Repository struct {
	mu    sync.RWMutex
	byID  map[string]*Vendor
	order []string
}

func NewRepository(seed ...Vendor) *Repository {
	r := &Repository{byID: make(map[string]*Vendor, len(seed))}
	for i := range seed {
		v := clone(&seed[i])
		r.byID[v.ID] = v
		r.order = append(r.order, v.ID)
	}
	return r
}

func clone(v *Vendor) *Vendor {
	cp := *v
	cp.Images = append([]string(nil), v.Images...)
	return &cp
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return nil, ErrVendorNotFound
	}
	return clone(v), nil
}

func (r *Repository) List(ctx context.Context, filter Filter, offset, limit int) ([]Vendor, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	everything := filter.IsZero()
	search := fold(filter.Search)
	matched := make([]*Vendor, 0, len(r.order))
	for _, id := range r.order {
		v := r.byID[id]
		if everything {
			matched = append(matched, v)
			continue
		}
		if search != "" && !strings.Contains(fold(v.Name), search) && !strings.Contains(fold(v.Description), search) {
			continue
		}
		if filter.Category != "" && v.Category != filter.Category {
			continue
		}
		if filter.MinRating > 0 && v.Rating < filter.MinRating {
			continue
		}
		matched = append(matched, v)
	}

	total := len(matched)
	if offset < 0 || offset >= total || limit <= 0 {
		return []Vendor{}, total, nil
	}

	end := total
	if limit < total-offset {
		end = offset + limit
	}

	out := make([]Vendor, 0, end-offset)
	for _, v := range matched[offset:end] {
		out = append(out, *clone(v))
	}
	return out, total, nil
}

// Search matches query against name or category. A blank query matches
// nothing rather than everything.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]Vendor, error) {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return []Vendor{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Vendor{}
	for _, id := range r.order {
		if limit > 0 && len(out) == limit {
			break
		}
		v := r.byID[id]
		if strings.Contains(fold(v.Name), q) || strings.Contains(fold(v.Category), q) {
			out = append(out, *clone(v))
		}
	}
	return out, nil
}

func (r *Repository) All(ctx context.Context) ([]Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Vendor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *clone(r.byID[id]))
	}
	return out, nil
}

func (r *Repository) UpdateAggregates(ctx context.Context, id string, rating float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[id]
	if !ok {
		return ErrVendorNotFound
	}
	v.Rating = rating
	v.ReviewCount = count
	return nil
}

func (r *Repository) Name(ctx context.Context, id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if v, ok := r.byID[id]; ok && v.Name != "" {
		return v.Name
	}
	return UnknownName
}

// cases.Caser is stateful, so a fresh one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
