package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"vendorly/internal/client"
	"vendorly/internal/domain/reviews"
	"vendorly/internal/services"
)

func NewReviewsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write vendor reviews",
	}

	cmd.AddCommand(newReviewsListCommand(rootOpts))
	cmd.AddCommand(newReviewsSubmitCommand(rootOpts))
	cmd.AddCommand(newReviewsRateLimitCommand(rootOpts))
	return cmd
}

func newReviewsListCommand(rootOpts *RootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list <vendor-id>",
		Short: "List a vendor's approved reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, false)
			if err != nil {
				return err
			}

			var list []reviews.Review
			if all {
				list, err = s.backend.ListReviews(ctxOf(cmd), args[0], services.FilterAll)
			} else {
				store := client.NewReviewStore(s.backend)
				err = store.FetchReviewsByVendor(ctxOf(cmd), args[0])
				list = store.Snapshot().Reviews
			}
			if err != nil {
				return s.out.Fail(err)
			}

			return s.out.Success(list, func(w io.Writer) error {
				return renderReviews(w, list, all)
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include reviews in every status")
	return cmd
}

func newReviewsSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		form  client.ReviewForm
		photo string
	)

	cmd := &cobra.Command{
		Use:   "submit <vendor-id>",
		Short: "Submit a review for moderation",
		Long: `Submit a review for moderation.

Reviews are held as pending until an admin approves them. One review can
be sent per cooldown window; --photo uploads a local image first and
attaches its URL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, true)
			if err != nil {
				return err
			}
			ctx := ctxOf(cmd)
			store := client.NewReviewStore(s.backend)

			form.VendorID = args[0]
			if err := form.Validate(); err != nil {
				return s.out.Fail(err)
			}

			limit, err := store.CheckRateLimit(ctx)
			if err != nil {
				return s.out.Fail(err)
			}
			if !limit.Allowed {
				return s.out.Fail(fmt.Errorf("%w: please wait %d seconds before submitting another review", client.ErrValidation, limit.WaitTimeSeconds))
			}

			if photo != "" {
				url, err := uploadPhoto(cmd, s, photo)
				if err != nil {
					return s.out.Fail(err)
				}
				s.out.VerboseLog("uploaded %s to %s", photo, url)
				form.PhotoURL = url
			}

			rv, err := store.Submit(ctx, form)
			if err != nil {
				return s.out.Fail(err)
			}
			return s.out.Success(rv, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Review %s submitted; it will appear once approved\n", rv.ID)
				return err
			})
		},
	}

	cmd.Flags().IntVar(&form.Rating, "rating", 0, "stars, 1 to 5")
	cmd.Flags().StringVar(&form.Text, "text", "", "review text, 20 to 1000 characters")
	cmd.Flags().StringVar(&form.PhotoURL, "photo-url", "", "link to an already hosted photo")
	cmd.Flags().StringVar(&photo, "photo", "", "local image file to upload")
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("text")
	cmd.MarkFlagsMutuallyExclusive("photo", "photo-url")
	return cmd
}

func uploadPhoto(cmd *cobra.Command, s *session, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "open photo", err)
	}
	defer f.Close()
	return s.backend.UploadReviewPhoto(ctxOf(cmd), filepath.Base(path), f)
}

func newReviewsRateLimitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rate-limit",
		Short: "Show whether a review can be submitted now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, true)
			if err != nil {
				return err
			}

			res, err := s.backend.PeekRateLimit(ctxOf(cmd))
			if err != nil {
				return s.out.Fail(err)
			}
			return s.out.Success(res, func(w io.Writer) error {
				if res.Allowed {
					_, err := fmt.Fprintln(w, "Ready: you can submit a review now")
					return err
				}
				_, err := fmt.Fprintf(w, "Cooling down: next review in %ds\n", res.WaitTimeSeconds)
				return err
			})
		},
	}
}

func renderReviews(w io.Writer, list []reviews.Review, withStatus bool) error {
	header := []string{"ID", "VENDOR", "AUTHOR", "RATING", "DATE", "TEXT"}
	if withStatus {
		header = append(header, "STATUS")
	}

	rows := make([][]string, 0, len(list))
	for _, rv := range list {
		row := []string{
			rv.ID,
			rv.VendorID,
			rv.UserName,
			strconv.Itoa(rv.Rating),
			rv.CreatedAt.Format("2006-01-02"),
			truncate(rv.Text, 48),
		}
		if withStatus {
			row = append(row, string(rv.Status))
		}
		rows = append(rows, row)
	}
	return renderTable(w, header, rows)
}
