package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"vendorly/internal/client"
)

var errNotLoggedIn = errors.New(`not logged in; run "vendorctl login" first`)

type session struct {
	backend *client.HTTPBackend
	auth    *client.AuthStore
	out     *OutputFormatter
}

// newSession wires a backend and auth store for one command run and
// restores any saved login. With requireLogin, a missing or expired login
// is an error.
func newSession(cmd *cobra.Command, opts *RootOptions, requireLogin bool) (*session, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	backend := client.NewHTTPBackend(opts.Server, &http.Client{Timeout: opts.Timeout})
	auth := client.NewAuthStore(backend, client.FileTokenStore{Path: opts.TokenFile})
	s := &session{backend: backend, auth: auth, out: out}

	if err := auth.CheckAuth(ctxOf(cmd)); err != nil {
		return s, out.Fail(err)
	}

	st := auth.Snapshot()
	if st.IsAuthenticated {
		out.VerboseLog("signed in as %s (%s)", st.User.Email, st.User.Role)
	}
	if requireLogin && !st.IsAuthenticated {
		return s, out.Fail(errNotLoggedIn)
	}
	return s, nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
