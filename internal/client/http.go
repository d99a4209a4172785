package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"vendorly/internal/domain/reviews"
	"vendorly/internal/domain/users"
	"vendorly/internal/domain/vendors"
	"vendorly/internal/services"
)

// HTTPBackend talks to a running vendorly API. baseURL is the server root;
// the /v1 prefix is added here.
type HTTPBackend struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPBackend(baseURL string, httpClient *http.Client) *HTTPBackend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/") + "/v1",
		http:    httpClient,
	}
}

func (b *HTTPBackend) SetToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

func (b *HTTPBackend) bearer() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token
}

// do sends body as JSON and decodes the data envelope into out. A nil out
// discards the response body.
func (b *HTTPBackend) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := b.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return b.send(req, out)
}

func (b *HTTPBackend) send(req *http.Request, out any) error {
	if token := b.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	envelope := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var envelope struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Message = envelope.Message
	}
	return apiErr
}

func (b *HTTPBackend) Login(ctx context.Context, email, password string) (*services.Session, error) {
	var session services.Session
	body := map[string]string{"email": email, "password": password}
	if err := b.do(ctx, http.MethodPost, "/authentication/login", nil, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (b *HTTPBackend) Signup(ctx context.Context, name, email, password string) (*services.Session, error) {
	var session services.Session
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := b.do(ctx, http.MethodPost, "/authentication/signup", nil, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (b *HTTPBackend) CurrentUser(ctx context.Context) (*users.User, error) {
	if b.bearer() == "" {
		return nil, nil
	}

	var user users.User
	err := b.do(ctx, http.MethodGet, "/authentication/session", nil, nil, &user)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (b *HTTPBackend) ListVendors(ctx context.Context, page, pageSize int, filter vendors.Filter) (*services.Page[vendors.Vendor], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
	}

	var out services.Page[vendors.Vendor]
	if err := b.do(ctx, http.MethodGet, "/vendors", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *HTTPBackend) GetVendor(ctx context.Context, id string) (*vendors.Vendor, error) {
	var v vendors.Vendor
	if err := b.do(ctx, http.MethodGet, "/vendors/"+url.PathEscape(id), nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (b *HTTPBackend) SearchVendors(ctx context.Context, query string) ([]vendors.Vendor, error) {
	var out []vendors.Vendor
	if err := b.do(ctx, http.MethodGet, "/vendors/search", url.Values{"q": {query}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *HTTPBackend) VendorName(ctx context.Context, id string) (string, error) {
	var out struct {
		Name string `json:"name"`
	}
	if err := b.do(ctx, http.MethodGet, "/vendors/"+url.PathEscape(id)+"/name", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Name, nil
}

func (b *HTTPBackend) ListAllVendors(ctx context.Context) ([]vendors.Vendor, error) {
	var out []vendors.Vendor
	if err := b.do(ctx, http.MethodGet, "/admin/vendors", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *HTTPBackend) ListReviews(ctx context.Context, vendorID, status string) ([]reviews.Review, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	return b.reviewList(ctx, "/vendors/"+url.PathEscape(vendorID)+"/reviews", q)
}

func (b *HTTPBackend) SubmitReview(ctx context.Context, form ReviewForm) (*reviews.Review, error) {
	var rv reviews.Review
	if err := b.do(ctx, http.MethodPost, "/reviews", nil, form, &rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

// UploadReviewPhoto sends an image as multipart form data and returns the
// hosted URL to put in a ReviewForm.
func (b *HTTPBackend) UploadReviewPhoto(ctx context.Context, filename string, photo io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, photo); err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/reviews/photos", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		PhotoURL string `json:"photo_url"`
	}
	if err := b.send(req, &out); err != nil {
		return "", err
	}
	return out.PhotoURL, nil
}

func (b *HTTPBackend) ListPending(ctx context.Context) ([]reviews.Review, error) {
	return b.reviewList(ctx, "/admin/reviews/pending", nil)
}

func (b *HTTPBackend) ListFlagged(ctx context.Context) ([]reviews.Review, error) {
	return b.reviewList(ctx, "/admin/reviews/flagged", nil)
}

func (b *HTTPBackend) ListAllReviews(ctx context.Context) ([]reviews.Review, error) {
	return b.reviewList(ctx, "/admin/reviews", nil)
}

func (b *HTTPBackend) ApproveReview(ctx context.Context, id string) (*reviews.Review, error) {
	return b.moderate(ctx, id, "approve")
}

func (b *HTTPBackend) RejectReview(ctx context.Context, id string) (*reviews.Review, error) {
	return b.moderate(ctx, id, "reject")
}

func (b *HTTPBackend) FlagReview(ctx context.Context, id string) (*reviews.Review, error) {
	return b.moderate(ctx, id, "flag")
}

func (b *HTTPBackend) CheckRateLimit(ctx context.Context) (*services.RateLimitResult, error) {
	return b.rateLimit(ctx, http.MethodPost)
}

func (b *HTTPBackend) PeekRateLimit(ctx context.Context) (*services.RateLimitResult, error) {
	return b.rateLimit(ctx, http.MethodGet)
}

func (b *HTTPBackend) reviewList(ctx context.Context, path string, q url.Values) ([]reviews.Review, error) {
	var out []reviews.Review
	if err := b.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *HTTPBackend) moderate(ctx context.Context, id, action string) (*reviews.Review, error) {
	var rv reviews.Review
	if err := b.do(ctx, http.MethodPost, "/admin/reviews/"+url.PathEscape(id)+"/"+action, nil, nil, &rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (b *HTTPBackend) rateLimit(ctx context.Context, method string) (*services.RateLimitResult, error) {
	var out services.RateLimitResult
	if err := b.do(ctx, method, "/reviews/rate-limit", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
