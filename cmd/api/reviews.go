package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vendorly/internal/media"
	"vendorly/internal/services"
)

const maxPhotoBytes = 5 << 20

type SubmitReviewPayload struct {
	VendorID string `json:"vendor_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Text     string `json:"text" validate:"required,notblank,min=20,max=1000"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

// ReviewDoc mirrors reviews.Review for the docs.
//
//	@name	Review
type ReviewDoc struct {
	ID        string `json:"id" example:"review-1"`
	VendorID  string `json:"vendor_id" example:"vendor-1"`
	UserID    string `json:"user_id" example:"user-1"`
	UserName  string `json:"user_name" example:"John Doe"`
	Rating    int    `json:"rating" example:"5"`
	Text      string `json:"text"`
	PhotoURL  string `json:"photo_url,omitempty"`
	Status    string `json:"status" example:"pending" enums:"pending,approved,rejected,flagged"`
	CreatedAt string `json:"created_at" example:"2024-04-02T19:10:00Z"`
}

// listVendorReviewsHandler godoc
//
//	@Summary		Reviews of a vendor
//	@Description	Approved reviews by default; status=all includes every moderation state.
//	@Tags			reviews
//	@Produce		json
//	@Param			vendorID	path		string	true	"Vendor ID"
//	@Param			status		query		string	false	"approved or all"	Enums(approved, all)
//	@Success		200			{array}		ReviewDoc
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Router			/vendors/{vendorID}/reviews [get]
func (app *application) listVendorReviewsHandler(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "vendorID")
	status := r.URL.Query().Get("status")

	list, err := app.services.Reviews.ListReviews(r.Context(), vendorID, status)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// submitReviewHandler godoc
//
//	@Summary		Submit a review
//	@Description	Queues a review for moderation, authored by the token's user. Vendor ratings change only once it is approved.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SubmitReviewPayload	true	"Review"
//	@Success		201		{object}	ReviewDoc
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		401		{object}	ErrorUnauthorizedResponse
//	@Failure		404		{object}	ErrorBadRequestResponse	"Vendor not found"
//	@Security		ApiKeyAuth
//	@Router			/reviews [post]
func (app *application) submitReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload SubmitReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	review, err := app.services.Reviews.SubmitReview(r.Context(), payload.VendorID, user.ID, user.Name, services.ReviewInput{
		Rating:   payload.Rating,
		Text:     strings.TrimSpace(payload.Text),
		PhotoURL: payload.PhotoURL,
	})
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadReviewPhotoHandler godoc
//
//	@Summary		Upload a review photo
//	@Description	Stores an image and returns the URL to put in photo_url. Limited to 5MB.
//	@Tags			reviews
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			photo	formData	file	true	"Image file"
//	@Success		201		{object}	map[string]string
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		503		{object}	ErrorBadRequestResponse	"Uploads not configured"
//	@Security		ApiKeyAuth
//	@Router			/reviews/photos [post]
func (app *application) uploadReviewPhotoHandler(w http.ResponseWriter, r *http.Request) {
	if app.uploader == nil {
		app.serviceUnavailableResponse(w, r, media.ErrNotConfigured)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes+1024)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("photo must be at most 5MB: %w", err))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("photo field is required"))
		return
	}
	defer file.Close()

	if header.Size > maxPhotoBytes {
		app.badRequestResponse(w, r, errors.New("photo must be at most 5MB"))
		return
	}

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		app.badRequestResponse(w, r, fmt.Errorf("read photo: %w", err))
		return
	}
	if ct := http.DetectContentType(sniff[:n]); !strings.HasPrefix(ct, "image/") {
		app.badRequestResponse(w, r, fmt.Errorf("unsupported photo type %s", ct))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	user := getUserFromContext(r)
	url, err := app.uploader.UploadReviewPhoto(r.Context(), user.ID, file)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, map[string]string{"photo_url": url}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// peekRateLimitHandler godoc
//
//	@Summary		Review cooldown status
//	@Description	Reports whether the caller may submit now without starting a cooldown.
//	@Tags			reviews
//	@Produce		json
//	@Success		200	{object}	services.RateLimitResult
//	@Security		ApiKeyAuth
//	@Router			/reviews/rate-limit [get]
func (app *application) peekRateLimitHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	result, err := app.services.RateLimit.PeekRateLimit(r.Context(), user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// checkRateLimitHandler godoc
//
//	@Summary		Claim a review slot
//	@Description	Allowed checks start a new 60 second cooldown for the caller.
//	@Tags			reviews
//	@Produce		json
//	@Success		200	{object}	services.RateLimitResult
//	@Security		ApiKeyAuth
//	@Router			/reviews/rate-limit [post]
func (app *application) checkRateLimitHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	result, err := app.services.RateLimit.CheckRateLimit(r.Context(), user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}
