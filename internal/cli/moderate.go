package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"vendorly/internal/client"
	"vendorly/internal/domain/reviews"
)

// NewModerateCommand groups the admin review queue. The server rejects
// non-admin sessions with 403.
func NewModerateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moderate",
		Short: "Work the review moderation queue (admins only)",
	}

	cmd.AddCommand(newQueueCommand(rootOpts, "pending", "List reviews waiting for a decision",
		func(ctx context.Context, store *client.ReviewStore) ([]reviews.Review, error) {
			err := store.FetchPending(ctx)
			return store.Snapshot().PendingReviews, err
		}))
	cmd.AddCommand(newQueueCommand(rootOpts, "flagged", "List reviews flagged for a second look",
		func(ctx context.Context, store *client.ReviewStore) ([]reviews.Review, error) {
			err := store.FetchFlagged(ctx)
			return store.Snapshot().FlaggedReviews, err
		}))

	cmd.AddCommand(newDecisionCommand(rootOpts, "approve", "Publish a review", "approved", (*client.ReviewStore).Approve))
	cmd.AddCommand(newDecisionCommand(rootOpts, "reject", "Reject a review", "rejected", (*client.ReviewStore).Reject))
	cmd.AddCommand(newDecisionCommand(rootOpts, "flag", "Flag a review for a second look", "flagged", (*client.ReviewStore).Flag))
	return cmd
}

func newQueueCommand(rootOpts *RootOptions, use, short string, load func(context.Context, *client.ReviewStore) ([]reviews.Review, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, true)
			if err != nil {
				return err
			}

			list, err := load(ctxOf(cmd), client.NewReviewStore(s.backend))
			if err != nil {
				return s.out.Fail(err)
			}
			return s.out.Success(list, func(w io.Writer) error {
				return renderReviews(w, list, false)
			})
		},
	}
}

func newDecisionCommand(rootOpts *RootOptions, use, short, past string, decide func(*client.ReviewStore, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <review-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, true)
			if err != nil {
				return err
			}

			id := args[0]
			if err := decide(client.NewReviewStore(s.backend), ctxOf(cmd), id); err != nil {
				return s.out.Fail(err)
			}
			return s.out.Success(map[string]string{"id": id, "status": past}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Review %s %s\n", id, past)
				return err
			})
		},
	}
}
