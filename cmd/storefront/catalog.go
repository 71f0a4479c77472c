package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/five82/storefront/internal/app"
	"github.com/five82/storefront/internal/catalog"
)

const (
	emptyProducts   = "No products available at the moment."
	emptyCategories = "No categories available at the moment."
)

func newProductsCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			return withServices(cmd, flags, func(s *app.Services) error {
				loader, err := s.Catalog()
				if err != nil {
					return err
				}
				state := loader.Products(cmd.Context(), productLimit(cmd, s, limit))
				return printProducts(cmd.OutOrStdout(), state)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of products (default [content] product_limit, 0 for all)")
	return cmd
}

func newCategoriesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, flags, func(s *app.Services) error {
				loader, err := s.Catalog()
				if err != nil {
					return err
				}
				return printCategories(cmd.OutOrStdout(), loader.Categories(cmd.Context()))
			})
		},
	}
}

func newCatalogCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Load products and categories together",
		Long: `Loads products and categories concurrently. Each listing succeeds or
fails on its own; a failed listing does not hide the other.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, flags, func(s *app.Services) error {
				loader, err := s.Catalog()
				if err != nil {
					return err
				}
				products, categories := loadBoth(cmd, loader, productLimit(cmd, s, limit))

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Products")
				perr := printProducts(out, products)
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Categories")
				cerr := printCategories(out, categories)
				return errors.Join(perr, cerr)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of products (default [content] product_limit, 0 for all)")
	return cmd
}

// productLimit is the --limit flag when given, else the configured limit.
func productLimit(cmd *cobra.Command, s *app.Services, flag int) int {
	if cmd.Flags().Changed("limit") {
		return flag
	}
	return s.Config.Content.ProductLimit
}

// loadBoth runs both listing loads at once. The group has no shared context,
// so one failure never cancels the other load.
func loadBoth(cmd *cobra.Command, loader *catalog.Loader, limit int) (catalog.State[catalog.Product], catalog.State[catalog.Category]) {
	var (
		g          errgroup.Group
		products   catalog.State[catalog.Product]
		categories catalog.State[catalog.Category]
	)
	ctx := cmd.Context()
	g.Go(func() error {
		products = loader.Products(ctx, limit)
		return products.Err
	})
	g.Go(func() error {
		categories = loader.Categories(ctx)
		return categories.Err
	})
	// Each state carries its own error; Wait is only the join point.
	_ = g.Wait()
	return products, categories
}

func printProducts(w io.Writer, state catalog.State[catalog.Product]) error {
	if state.Status == catalog.StatusFailed {
		return fmt.Errorf("%s: %w", state.Reason(), state.Err)
	}
	if len(state.Items) == 0 {
		fmt.Fprintln(w, emptyProducts)
		return nil
	}
	rows := make([][]string, 0, len(state.Items))
	for _, p := range state.Items {
		price := p.DisplayPrice()
		if p.Discounted() {
			price += " (was " + catalog.FormatPrice(*p.PriceWithoutDiscount) + ")"
		}
		rows = append(rows, []string{p.ID, p.Title, price, p.Badge, p.Category.Title, p.ImageURL})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "TITLE", "PRICE", "BADGE", "CATEGORY", "IMAGE"}, rows))
	return nil
}

func printCategories(w io.Writer, state catalog.State[catalog.Category]) error {
	if state.Status == catalog.StatusFailed {
		return fmt.Errorf("%s: %w", state.Reason(), state.Err)
	}
	if len(state.Items) == 0 {
		fmt.Fprintln(w, emptyCategories)
		return nil
	}
	rows := make([][]string, 0, len(state.Items))
	for _, c := range state.Items {
		rows = append(rows, []string{c.ID, c.Title, strconv.Itoa(c.ProductCount), c.ImageURL})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "TITLE", "PRODUCTS", "IMAGE"}, rows))
	return nil
}
