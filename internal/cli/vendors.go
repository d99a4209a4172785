package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vendorly/internal/client"
	"vendorly/internal/domain/vendors"
)

func NewVendorsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Browse and search vendors",
	}

	cmd.AddCommand(newVendorsListCommand(rootOpts))
	cmd.AddCommand(newVendorsShowCommand(rootOpts))
	cmd.AddCommand(newVendorsSearchCommand(rootOpts))
	return cmd
}

// vendorPage is the json shape of "vendors list".
type vendorPage struct {
	Vendors    []vendors.Vendor  `json:"vendors"`
	Pagination client.Pagination `json:"pagination"`
}

func newVendorsListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		page   int
		filter vendors.Filter
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vendors one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, false)
			if err != nil {
				return err
			}

			store := client.NewVendorStore(s.backend)
			store.SetFilters(filter)
			if err := store.FetchVendors(ctxOf(cmd), page, nil); err != nil {
				return s.out.Fail(err)
			}

			st := store.Snapshot()
			return s.out.Success(vendorPage{Vendors: st.Vendors, Pagination: st.Pagination}, func(w io.Writer) error {
				if err := renderVendors(w, st.Vendors); err != nil {
					return err
				}
				p := st.Pagination
				_, err := fmt.Fprintf(w, "Page %d of %d (%d vendors)\n", p.Page, max(p.TotalPages, 1), p.Total)
				return err
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().StringVar(&filter.Search, "search", "", "match name, description or location")
	cmd.Flags().StringVar(&filter.Category, "category", "", "exact category, e.g. Restaurant")
	cmd.Flags().Float64Var(&filter.MinRating, "min-rating", 0, "only vendors rated at least this")
	return cmd
}

func newVendorsShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <vendor-id>",
		Short: "Show one vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, false)
			if err != nil {
				return err
			}

			store := client.NewVendorStore(s.backend)
			if err := store.FetchVendor(ctxOf(cmd), args[0]); err != nil {
				return s.out.Fail(err)
			}

			v := store.Snapshot().CurrentVendor
			return s.out.Success(v, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s (%s)\n%s | %s | %.1f stars from %d reviews\n\n%s\n",
					v.Name, v.ID, v.Category, v.Location, v.Rating, v.ReviewCount, v.Description)
				return err
			})
		},
	}
}

func newVendorsSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Quick search across all vendors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, false)
			if err != nil {
				return err
			}

			store := client.NewVendorStore(s.backend)
			if err := store.Search(ctxOf(cmd), strings.Join(args, " ")); err != nil {
				return s.out.Fail(err)
			}

			results := store.Snapshot().SearchResults
			return s.out.Success(results, func(w io.Writer) error {
				return renderVendors(w, results)
			})
		},
	}
}

func renderVendors(w io.Writer, list []vendors.Vendor) error {
	rows := make([][]string, 0, len(list))
	for _, v := range list {
		rows = append(rows, []string{
			v.ID,
			v.Name,
			v.Category,
			strconv.FormatFloat(v.Rating, 'f', 1, 64),
			strconv.Itoa(v.ReviewCount),
			v.Location,
		})
	}
	return renderTable(w, []string{"ID", "NAME", "CATEGORY", "RATING", "REVIEWS", "LOCATION"}, rows)
}
