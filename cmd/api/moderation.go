package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendorly/internal/domain/reviews"
)

// adminListReviewsHandler godoc
//
//	@Summary	All reviews, newest first
//	@Tags		admin
//	@Produce	json
//	@Success	200	{array}		ReviewDoc
//	@Failure	403	{object}	ErrorBadRequestResponse
//	@Security	ApiKeyAuth
//	@Router		/admin/reviews [get]
func (app *application) adminListReviewsHandler(w http.ResponseWriter, r *http.Request) {
	app.listReviews(w, r, app.services.Reviews.ListAll)
}

// listPendingReviewsHandler godoc
//
//	@Summary	Moderation queue
//	@Tags		admin
//	@Produce	json
//	@Success	200	{array}		ReviewDoc
//	@Failure	403	{object}	ErrorBadRequestResponse
//	@Security	ApiKeyAuth
//	@Router		/admin/reviews/pending [get]
func (app *application) listPendingReviewsHandler(w http.ResponseWriter, r *http.Request) {
	app.listReviews(w, r, app.services.Reviews.ListPending)
}

// listFlaggedReviewsHandler godoc
//
//	@Summary	Flagged reviews
//	@Tags		admin
//	@Produce	json
//	@Success	200	{array}		ReviewDoc
//	@Failure	403	{object}	ErrorBadRequestResponse
//	@Security	ApiKeyAuth
//	@Router		/admin/reviews/flagged [get]
func (app *application) listFlaggedReviewsHandler(w http.ResponseWriter, r *http.Request) {
	app.listReviews(w, r, app.services.Reviews.ListFlagged)
}

// approveReviewHandler godoc
//
//	@Summary		Approve a review
//	@Description	Publishes the review and recomputes the vendor's rating and review count.
//	@Tags			admin
//	@Produce		json
//	@Param			reviewID	path		string	true	"Review ID"
//	@Success		200			{object}	ReviewDoc
//	@Failure		404			{object}	ErrorBadRequestResponse	"Review not found"
//	@Failure		409			{object}	ErrorBadRequestResponse	"Transition not allowed"
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews/{reviewID}/approve [post]
func (app *application) approveReviewHandler(w http.ResponseWriter, r *http.Request) {
	app.moderateReview(w, r, app.services.Reviews.ApproveReview)
}

// rejectReviewHandler godoc
//
//	@Summary	Reject a review
//	@Tags		admin
//	@Produce	json
//	@Param		reviewID	path		string	true	"Review ID"
//	@Success	200			{object}	ReviewDoc
//	@Failure	404			{object}	ErrorBadRequestResponse	"Review not found"
//	@Failure	409			{object}	ErrorBadRequestResponse	"Transition not allowed"
//	@Security	ApiKeyAuth
//	@Router		/admin/reviews/{reviewID}/reject [post]
func (app *application) rejectReviewHandler(w http.ResponseWriter, r *http.Request) {
	app.moderateReview(w, r, app.services.Reviews.RejectReview)
}

// flagReviewHandler godoc
//
//	@Summary	Flag a review
//	@Tags		admin
//	@Produce	json
//	@Param		reviewID	path		string	true	"Review ID"
//	@Success	200			{object}	ReviewDoc
//	@Failure	404			{object}	ErrorBadRequestResponse	"Review not found"
//	@Failure	409			{object}	ErrorBadRequestResponse	"Transition not allowed"
//	@Security	ApiKeyAuth
//	@Router		/admin/reviews/{reviewID}/flag [post]
func (app *application) flagReviewHandler(w http.ResponseWriter, r *http.Request) {
	app.moderateReview(w, r, app.services.Reviews.FlagReview)
}

// resetRateLimitHandler godoc
//
//	@Summary	Clear a user's review cooldown
//	@Tags		admin
//	@Param		userID	path	string	true	"User ID"
//	@Success	204
//	@Security	ApiKeyAuth
//	@Router		/admin/rate-limit/{userID} [delete]
func (app *application) resetRateLimitHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	app.services.RateLimit.ResetRateLimit(userID)

	app.logger.Infow("review cooldown reset", "user_id", userID, "by", getUserFromContext(r).ID)
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) listReviews(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]reviews.Review, error)) {
	out, err := list(r.Context())
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, out); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) moderateReview(w http.ResponseWriter, r *http.Request, action func(context.Context, string) (*reviews.Review, error)) {
	review, err := action(r.Context(), chi.URLParam(r, "reviewID"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}
	app.notifyModerated(review)

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}
