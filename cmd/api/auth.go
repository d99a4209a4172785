package main

import (
	"net/http"
)

// ErrorBadRequestResponse represents the standard error format for bad request API responses.
//
//	@name			ErrorBadRequestResponse
//	@description	Standard error response format returned by all bad request API endpoints
type ErrorBadRequestResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"It show error from err.Error()"`
	Status  int    `json:"status" example:"400"`
}

// ErrorUnauthorizedResponse is returned for bad credentials and missing or
// expired tokens.
//
//	@name	ErrorUnauthorizedResponse
type ErrorUnauthorizedResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"invalid email or password"`
	Status  int    `json:"status" example:"401"`
}

// ErrorInternalServerResponse represents the standard error format for internal server API responses.
//
//	@name			ErrorInternalServerResponse
//	@description	Standard error response format returned by all internal server error API endpoints
type ErrorInternalServerResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"the server encountered a problem"`
	Status  int    `json:"status" example:"500"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type SignupPayload struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// loginHandler godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a session token. Unknown email and wrong password are indistinguishable.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		LoginPayload				true	"Credentials"
//	@Success		200		{object}	services.Session			"Session"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		401		{object}	ErrorUnauthorizedResponse	"Invalid credentials"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/authentication/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.services.Auth.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

// signupHandler godoc
//
//	@Summary		Sign up
//	@Description	Creates a user account and returns a session for it. A welcome email is sent in the background.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SignupPayload				true	"New account"
//	@Success		201		{object}	services.Session			"User registered"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		409		{object}	ErrorBadRequestResponse		"Email already exists"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/authentication/signup [post]
func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.services.Auth.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

// sessionHandler godoc
//
//	@Summary		Current user
//	@Description	Resolves the bearer token to its user.
//	@Tags			authentication
//	@Produce		json
//	@Success		200	{object}	users.User					"User"
//	@Failure		401	{object}	ErrorUnauthorizedResponse	"Invalid or expired token"
//	@Security		ApiKeyAuth
//	@Router			/authentication/session [get]
func (app *application) sessionHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}
