package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorly/internal/domain/reviews"
	"vendorly/internal/domain/users"
	"vendorly/internal/domain/vendors"
	"vendorly/internal/services"
)

// fakeBackend records the token it was given and serves canned answers.
// Unset funcs fail the call.
type fakeBackend struct {
	token string

	login       func(email, password string) (*services.Session, error)
	currentUser func(token string) (*users.User, error)
	listVendors func(page int, f vendors.Filter) (*services.Page[vendors.Vendor], error)
	getVendor   func(id string) (*vendors.Vendor, error)
	search      func(q string) ([]vendors.Vendor, error)
	submit      func(form ReviewForm) (*reviews.Review, error)
	moderate    func(id string, to reviews.Status) (*reviews.Review, error)
	pending     []reviews.Review
	flagged     []reviews.Review

	submitCalls int
	searchCalls int
}

var errUnexpected = errors.New("unexpected call")

func (f *fakeBackend) SetToken(token string) { f.token = token }

func (f *fakeBackend) Login(_ context.Context, email, password string) (*services.Session, error) {
	if f.login == nil {
		return nil, errUnexpected
	}
	return f.login(email, password)
}

func (f *fakeBackend) Signup(_ context.Context, name, email, _ string) (*services.Session, error) {
	return &services.Session{User: &users.User{ID: "user-new", Name: name, Email: email, Role: users.RoleUser}, Token: "signup-token"}, nil
}

func (f *fakeBackend) CurrentUser(context.Context) (*users.User, error) {
	if f.currentUser == nil {
		return nil, errUnexpected
	}
	return f.currentUser(f.token)
}

func (f *fakeBackend) ListVendors(_ context.Context, page, _ int, filter vendors.Filter) (*services.Page[vendors.Vendor], error) {
	if f.listVendors == nil {
		return nil, errUnexpected
	}
	return f.listVendors(page, filter)
}

func (f *fakeBackend) GetVendor(_ context.Context, id string) (*vendors.Vendor, error) {
	if f.getVendor == nil {
		return nil, errUnexpected
	}
	return f.getVendor(id)
}

func (f *fakeBackend) SearchVendors(_ context.Context, q string) ([]vendors.Vendor, error) {
	f.searchCalls++
	if f.search == nil {
		return nil, errUnexpected
	}
	return f.search(q)
}

func (f *fakeBackend) VendorName(context.Context, string) (string, error) { return "", errUnexpected }
func (f *fakeBackend) ListAllVendors(context.Context) ([]vendors.Vendor, error) {
	return nil, errUnexpected
}

func (f *fakeBackend) ListReviews(_ context.Context, vendorID, status string) ([]reviews.Review, error) {
	if status != services.FilterApproved {
		return nil, errUnexpected
	}
	return []reviews.Review{{ID: "review-1", VendorID: vendorID, Status: reviews.StatusApproved}}, nil
}

func (f *fakeBackend) SubmitReview(_ context.Context, form ReviewForm) (*reviews.Review, error) {
	f.submitCalls++
	if f.submit == nil {
		return nil, errUnexpected
	}
	return f.submit(form)
}

func (f *fakeBackend) ListPending(context.Context) ([]reviews.Review, error) { return f.pending, nil }
func (f *fakeBackend) ListFlagged(context.Context) ([]reviews.Review, error) { return f.flagged, nil }
func (f *fakeBackend) ListAllReviews(context.Context) ([]reviews.Review, error) {
	return nil, errUnexpected
}

func (f *fakeBackend) ApproveReview(_ context.Context, id string) (*reviews.Review, error) {
	return f.moderate(id, reviews.StatusApproved)
}

func (f *fakeBackend) RejectReview(_ context.Context, id string) (*reviews.Review, error) {
	return f.moderate(id, reviews.StatusRejected)
}

func (f *fakeBackend) FlagReview(_ context.Context, id string) (*reviews.Review, error) {
	return f.moderate(id, reviews.StatusFlagged)
}

func (f *fakeBackend) CheckRateLimit(context.Context) (*services.RateLimitResult, error) {
	return &services.RateLimitResult{Allowed: false, WaitTimeSeconds: 42}, nil
}

func (f *fakeBackend) PeekRateLimit(context.Context) (*services.RateLimitResult, error) {
	return &services.RateLimitResult{Allowed: true}, nil
}

var validText = "Solid food and friendly staff, would return."

func TestAuthStoreLogin(t *testing.T) {
	tokens := &MemoryTokenStore{}
	fb := &fakeBackend{
		login: func(email, password string) (*services.Session, error) {
			if password != "password123" {
				return nil, &APIError{Status: http.StatusUnauthorized, Message: "invalid email or password"}
			}
			return &services.Session{User: &users.User{ID: "user-1", Email: email}, Token: "tok-1"}, nil
		},
	}
	store := NewAuthStore(fb, tokens)

	err := store.Login(context.Background(), "john@example.com", "nope")
	require.Error(t, err)
	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Equal(t, "invalid email or password", st.Error)

	store.ClearError()
	assert.Empty(t, store.Snapshot().Error)

	require.NoError(t, store.Login(context.Background(), "john@example.com", "password123"))
	st = store.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, "tok-1", st.Token)
	assert.Equal(t, "user-1", st.User.ID)
	assert.Equal(t, "tok-1", fb.token)

	saved, _ := tokens.Load()
	assert.Equal(t, "tok-1", saved)

	require.NoError(t, store.Logout())
	assert.Equal(t, AuthState{}, store.Snapshot())
	assert.Empty(t, fb.token)
	saved, _ = tokens.Load()
	assert.Empty(t, saved)
}

func TestAuthStoreSignup(t *testing.T) {
	tokens := &MemoryTokenStore{}
	store := NewAuthStore(&fakeBackend{}, tokens)

	require.NoError(t, store.Signup(context.Background(), "Ann", "ann@example.com", "secret1"))
	st := store.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, "Ann", st.User.Name)

	saved, _ := tokens.Load()
	assert.Equal(t, "signup-token", saved)
}

func TestAuthStoreCheckAuth(t *testing.T) {
	resolve := func(token string) (*users.User, error) {
		switch token {
		case "good":
			return &users.User{ID: "user-1"}, nil
		case "broken":
			return nil, errors.New("connection refused")
		}
		return nil, nil
	}

	tests := []struct {
		name     string
		token    string
		wantAuth bool
	}{
		{"no token", "", false},
		{"valid token", "good", true},
		{"stale token", "stale", false},
		{"backend failure", "broken", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &MemoryTokenStore{}
			require.NoError(t, tokens.Save(tt.token))
			fb := &fakeBackend{currentUser: resolve}
			store := NewAuthStore(fb, tokens)

			require.NoError(t, store.CheckAuth(context.Background()))

			st := store.Snapshot()
			assert.Equal(t, tt.wantAuth, st.IsAuthenticated)
			assert.False(t, st.IsLoading)

			saved, _ := tokens.Load()
			if tt.wantAuth {
				assert.Equal(t, tt.token, saved)
				assert.Equal(t, tt.token, fb.token)
			} else {
				assert.Empty(t, saved)
				assert.Empty(t, fb.token)
				assert.Nil(t, st.User)
			}
		})
	}
}

func TestVendorStoreFetchVendors(t *testing.T) {
	var gotFilter vendors.Filter
	fb := &fakeBackend{
		listVendors: func(page int, f vendors.Filter) (*services.Page[vendors.Vendor], error) {
			gotFilter = f
			return &services.Page[vendors.Vendor]{
				Data:       []vendors.Vendor{{ID: "vendor-19"}},
				Total:      23,
				Page:       page,
				PageSize:   DefaultPageSize,
				TotalPages: 3,
			}, nil
		},
	}
	store := NewVendorStore(fb)

	st := store.Snapshot()
	assert.Equal(t, Pagination{Page: 1, PageSize: DefaultPageSize}, st.Pagination)
	assert.NotNil(t, st.Vendors)

	store.SetFilters(vendors.Filter{Category: "Restaurant"})
	require.NoError(t, store.FetchVendors(context.Background(), 3, nil))
	assert.Equal(t, "Restaurant", gotFilter.Category)

	st = store.Snapshot()
	assert.Equal(t, Pagination{Page: 3, PageSize: 9, Total: 23, TotalPages: 3}, st.Pagination)
	require.Len(t, st.Vendors, 1)
	assert.False(t, st.IsLoading)

	require.NoError(t, store.FetchVendors(context.Background(), 1, &vendors.Filter{MinRating: 4.5}))
	assert.Equal(t, vendors.Filter{MinRating: 4.5}, gotFilter)
	assert.Equal(t, "Restaurant", store.Snapshot().Filters.Category)
}

func TestVendorStoreFetchVendorError(t *testing.T) {
	fb := &fakeBackend{
		getVendor: func(id string) (*vendors.Vendor, error) {
			if id == "vendor-1" {
				return &vendors.Vendor{ID: id, Name: "Bella Italia Trattoria"}, nil
			}
			return nil, &APIError{Status: http.StatusNotFound, Message: "vendor not found"}
		},
	}
	store := NewVendorStore(fb)

	require.NoError(t, store.FetchVendor(context.Background(), "vendor-1"))
	require.NotNil(t, store.Snapshot().CurrentVendor)

	require.Error(t, store.FetchVendor(context.Background(), "vendor-999"))
	st := store.Snapshot()
	assert.Nil(t, st.CurrentVendor)
	assert.Equal(t, "vendor not found", st.Error)
}

func TestVendorStoreSearch(t *testing.T) {
	fb := &fakeBackend{
		search: func(q string) ([]vendors.Vendor, error) {
			if q == "boom" {
				return nil, errors.New("network down")
			}
			return []vendors.Vendor{{ID: "vendor-5"}}, nil
		},
	}
	store := NewVendorStore(fb)
	ctx := context.Background()

	require.NoError(t, store.Search(ctx, "seoul"))
	assert.Len(t, store.Snapshot().SearchResults, 1)

	require.NoError(t, store.Search(ctx, "   "))
	assert.Empty(t, store.Snapshot().SearchResults)
	assert.Equal(t, 1, fb.searchCalls)

	require.NoError(t, store.Search(ctx, "seoul"))
	require.Error(t, store.Search(ctx, "boom"))
	st := store.Snapshot()
	assert.Empty(t, st.SearchResults)
	assert.False(t, st.IsSearching)

	require.NoError(t, store.Search(ctx, "seoul"))
	store.ClearSearch()
	assert.Empty(t, store.Snapshot().SearchResults)
}

func TestVendorStoreDropsStaleSearch(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fb := &fakeBackend{
		search: func(q string) ([]vendors.Vendor, error) {
			if q == "slow" {
				close(started)
				<-release
				return []vendors.Vendor{{ID: "stale"}}, nil
			}
			return []vendors.Vendor{{ID: "fresh"}}, nil
		},
	}
	store := NewVendorStore(fb)

	done := make(chan error, 1)
	go func() { done <- store.Search(context.Background(), "slow") }()
	<-started

	require.NoError(t, store.Search(context.Background(), "fast"))
	close(release)
	require.NoError(t, <-done)

	results := store.Snapshot().SearchResults
	require.Len(t, results, 1)
	assert.Equal(t, "fresh", results[0].ID)
}

func TestReviewStoreSubmit(t *testing.T) {
	fb := &fakeBackend{
		submit: func(form ReviewForm) (*reviews.Review, error) {
			return &reviews.Review{ID: "review-17", VendorID: form.VendorID, Text: form.Text, Status: reviews.StatusPending}, nil
		},
	}
	store := NewReviewStore(fb)
	ctx := context.Background()

	_, err := store.Submit(ctx, ReviewForm{VendorID: "vendor-1", Rating: 6, Text: "short"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, fb.submitCalls)
	assert.NotEmpty(t, store.Snapshot().Error)

	rv, err := store.Submit(ctx, ReviewForm{VendorID: "vendor-1", Rating: 4, Text: "  " + validText + "  "})
	require.NoError(t, err)
	assert.Equal(t, validText, rv.Text)

	st := store.Snapshot()
	assert.Empty(t, st.Error)
	assert.False(t, st.IsSubmitting)
	require.Len(t, st.PendingReviews, 1)
	assert.Equal(t, "review-17", st.PendingReviews[0].ID)
}

func TestReviewStoreModeration(t *testing.T) {
	fb := &fakeBackend{
		pending: []reviews.Review{{ID: "review-12"}, {ID: "review-13"}, {ID: "review-14"}},
		flagged: []reviews.Review{{ID: "review-15"}},
		moderate: func(id string, to reviews.Status) (*reviews.Review, error) {
			if id == "review-999" {
				return nil, &APIError{Status: http.StatusNotFound, Message: "review not found"}
			}
			return &reviews.Review{ID: id, Status: to}, nil
		},
	}
	store := NewReviewStore(fb)
	ctx := context.Background()

	require.NoError(t, store.FetchPending(ctx))
	require.NoError(t, store.FetchFlagged(ctx))
	require.NoError(t, store.FetchReviewsByVendor(ctx, "vendor-1"))

	require.NoError(t, store.Approve(ctx, "review-15"))
	st := store.Snapshot()
	assert.Empty(t, st.FlaggedReviews)
	assert.Len(t, st.PendingReviews, 3)
	require.Len(t, st.Reviews, 2)
	assert.Equal(t, reviews.StatusApproved, st.Reviews[1].Status)

	require.NoError(t, store.Flag(ctx, "review-12"))
	require.NoError(t, store.Reject(ctx, "review-13"))
	st = store.Snapshot()
	require.Len(t, st.PendingReviews, 1)
	assert.Equal(t, "review-14", st.PendingReviews[0].ID)
	require.Len(t, st.FlaggedReviews, 1)
	assert.Equal(t, "review-12", st.FlaggedReviews[0].ID)

	require.Error(t, store.Approve(ctx, "review-999"))
	assert.Equal(t, "review not found", store.Snapshot().Error)
	assert.Len(t, store.Snapshot().PendingReviews, 1)

	res, err := store.CheckRateLimit(ctx)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 42, res.WaitTimeSeconds)
}

func TestReviewFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		form    ReviewForm
		wantErr string
	}{
		{"valid", ReviewForm{VendorID: "vendor-1", Rating: 5, Text: validText}, ""},
		{"valid with photo", ReviewForm{VendorID: "vendor-1", Rating: 1, Text: validText, PhotoURL: "https://example.com/a.png"}, ""},
		{"missing vendor", ReviewForm{Rating: 3, Text: validText}, "vendor is required"},
		{"rating zero", ReviewForm{VendorID: "vendor-1", Text: validText}, "rating must be between 1 and 5"},
		{"rating too high", ReviewForm{VendorID: "vendor-1", Rating: 6, Text: validText}, "rating must be between 1 and 5"},
		{"padded short text", ReviewForm{VendorID: "vendor-1", Rating: 3, Text: "   too short       "}, "review must be between 20 and 1000 characters"},
		{"long text", ReviewForm{VendorID: "vendor-1", Rating: 3, Text: strings.Repeat("a", 1001)}, "review must be between 20 and 1000 characters"},
		{"bad photo", ReviewForm{VendorID: "vendor-1", Rating: 3, Text: validText, PhotoURL: "not a url"}, "photo must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFileTokenStore(t *testing.T) {
	store := FileTokenStore{Path: filepath.Join(t.TempDir(), "nested", "token")}

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("abc.def.ghi"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	info, err := os.Stat(store.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestHTTPBackend(t *testing.T) {
	var lastAuth string
	var lastQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/vendors", func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.RawQuery
		writeData(w, http.StatusOK, services.Page[vendors.Vendor]{
			Data:       []vendors.Vendor{{ID: "vendor-1"}},
			Total:      1,
			Page:       1,
			PageSize:   9,
			TotalPages: 1,
		})
	})
	mux.HandleFunc("/v1/vendors/vendor-999", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "vendor not found", "status": 404})
	})
	mux.HandleFunc("/v1/authentication/session", func(w http.ResponseWriter, r *http.Request) {
		lastAuth = r.Header.Get("Authorization")
		if lastAuth != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid or expired token", "status": 401})
			return
		}
		writeData(w, http.StatusOK, users.User{ID: "user-1", Role: users.RoleAdmin})
	})
	mux.HandleFunc("/v1/admin/reviews/review-12/approve", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeData(w, http.StatusOK, reviews.Review{ID: "review-12", Status: reviews.StatusApproved})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	b := NewHTTPBackend(srv.URL+"/", srv.Client())
	ctx := context.Background()

	page, err := b.ListVendors(ctx, 1, 9, vendors.Filter{Category: "Café", MinRating: 4.5})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	assert.Contains(t, lastQuery, "min_rating=4.5")
	assert.Contains(t, lastQuery, "page_size=9")
	assert.NotContains(t, lastQuery, "search=")

	_, err = b.GetVendor(ctx, "vendor-999")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "vendor not found", apiErr.Error())

	user, err := b.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Empty(t, lastAuth, "no request without a token")

	b.SetToken("stale")
	user, err = b.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	b.SetToken("good")
	user, err = b.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsAdmin())

	rv, err := b.ApproveReview(ctx, "review-12")
	require.NoError(t, err)
	assert.Equal(t, reviews.StatusApproved, rv.Status)
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func TestSnapshotsEncodeEmptyListsAsArrays(t *testing.T) {
	fb := &fakeBackend{
		search: func(q string) ([]vendors.Vendor, error) { return nil, nil },
	}

	vendorStore := NewVendorStore(fb)
	require.NoError(t, vendorStore.Search(context.Background(), "nothing"))
	vs := vendorStore.Snapshot()
	assert.NotNil(t, vs.Vendors)
	assert.NotNil(t, vs.SearchResults)

	raw, err := json.Marshal(vs.SearchResults)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	reviewStore := NewReviewStore(fb)
	require.NoError(t, reviewStore.FetchPending(context.Background()))
	rs := reviewStore.Snapshot()
	assert.NotNil(t, rs.Reviews)
	assert.NotNil(t, rs.PendingReviews)
	assert.NotNil(t, rs.FlaggedReviews)
}
