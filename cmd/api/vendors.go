package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendorly/internal/params"
)

// VendorPage documents the paginated listing payload.
//
//	@name	VendorPage
type VendorPage struct {
	Data       []VendorDoc `json:"data"`
	Total      int         `json:"total" example:"23"`
	Page       int         `json:"page" example:"1"`
	PageSize   int         `json:"page_size" example:"9"`
	TotalPages int         `json:"total_pages" example:"3"`
}

// VendorDoc mirrors vendors.Vendor for the docs.
//
//	@name	Vendor
type VendorDoc struct {
	ID          string   `json:"id" example:"vendor-1"`
	Name        string   `json:"name" example:"The Golden Fork"`
	Category    string   `json:"category" example:"Restaurant"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Rating      float64  `json:"rating" example:"4.7"`
	ReviewCount int      `json:"review_count" example:"3"`
	Location    string   `json:"location" example:"Portland, OR"`
	CreatedAt   string   `json:"created_at" example:"2023-06-01T12:00:00Z"`
}

// listVendorsHandler godoc
//
//	@Summary		List vendors
//	@Description	Paginated vendor listing. search matches name or description case-insensitively, category is exact, min_rating is inclusive.
//	@Tags			vendors
//	@Produce		json
//	@Param			page		query		int		false	"Page (1-based)"	default(1)
//	@Param			page_size	query		int		false	"Page size"			default(9)
//	@Param			search		query		string	false	"Free text"
//	@Param			category	query		string	false	"Exact category"
//	@Param			min_rating	query		number	false	"Minimum rating 0-5"
//	@Success		200			{object}	VendorPage
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Router			/vendors [get]
func (app *application) listVendorsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)
	filter := params.ParseVendorFilter(q)

	page, err := app.services.Vendors.ListVendors(r.Context(), p.Page, p.PageSize, filter)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

// searchVendorsHandler godoc
//
//	@Summary		Search vendors
//	@Description	Quick search on name or category, at most five results. A blank query returns an empty list.
//	@Tags			vendors
//	@Produce		json
//	@Param			q	query		string	false	"Query"
//	@Success		200	{array}		VendorDoc
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Router			/vendors/search [get]
func (app *application) searchVendorsHandler(w http.ResponseWriter, r *http.Request) {
	results, err := app.services.Vendors.SearchVendors(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, results); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getVendorHandler godoc
//
//	@Summary	Get vendor
//	@Tags		vendors
//	@Produce	json
//	@Param		vendorID	path		string	true	"Vendor ID"
//	@Success	200			{object}	VendorDoc
//	@Failure	404			{object}	ErrorBadRequestResponse	"Vendor not found"
//	@Router		/vendors/{vendorID} [get]
func (app *application) getVendorHandler(w http.ResponseWriter, r *http.Request) {
	vendor, err := app.services.Vendors.GetVendor(r.Context(), chi.URLParam(r, "vendorID"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, vendor); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getVendorNameHandler godoc
//
//	@Summary		Vendor display name
//	@Description	Never fails; unknown vendors are reported as "Unknown Vendor".
//	@Tags			vendors
//	@Produce		json
//	@Param			vendorID	path		string	true	"Vendor ID"
//	@Success		200			{object}	map[string]string
//	@Router			/vendors/{vendorID}/name [get]
func (app *application) getVendorNameHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "vendorID")
	name := app.services.Vendors.GetVendorName(r.Context(), id)

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"id": id, "name": name}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminListVendorsHandler godoc
//
//	@Summary	All vendors
//	@Tags		admin
//	@Produce	json
//	@Success	200	{array}		VendorDoc
//	@Failure	403	{object}	ErrorBadRequestResponse	"Not an admin"
//	@Security	ApiKeyAuth
//	@Router		/admin/vendors [get]
func (app *application) adminListVendorsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := app.services.Vendors.ListAllVendors(r.Context())
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, all); err != nil {
		app.internalServerError(w, r, err)
	}
}
