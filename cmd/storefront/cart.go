package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/storefront/internal/app"
	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/catalog"
)

func newCartCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, flags, func(s *app.Services) error {
				out := cmd.OutOrStdout()
				entries := s.Cart.Entries()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Your cart is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{e.ID, e.Title, e.Category, catalog.FormatPrice(e.Price)})
				}
				fmt.Fprintln(out, renderTable([]string{"ID", "TITLE", "CATEGORY", "PRICE"}, rows))
				total := catalog.FormatPrice(s.Cart.Total())
				fmt.Fprintf(out, "Subtotal: %s\n", total)
				fmt.Fprintln(out, "Estimated Delivery & Handling: Free")
				fmt.Fprintf(out, "Total: %s\n", total)
				return nil
			})
		},
	}
	cmd.AddCommand(newCartAddCmd(flags), newCartRemoveCmd(flags), newCartTotalCmd(flags))
	return cmd
}

func newCartAddCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, flags, func(s *app.Services) error {
				loader, err := s.Catalog()
				if err != nil {
					return err
				}
				p, err := loader.Product(cmd.Context(), args[0])
				if errors.Is(err, catalog.ErrNotFound) {
					return fmt.Errorf("product %q not found", args[0])
				}
				if err != nil {
					return err
				}

				res, err := s.Cart.Add(cmd.Context(), p)
				out := cmd.OutOrStdout()
				switch {
				case errors.Is(err, cart.ErrPersist):
					fmt.Fprintf(out, "%s added to cart!\n", p.Title)
					return err
				case err != nil:
					return err
				case res == cart.AlreadyInCart:
					fmt.Fprintf(out, "%s is already in the cart!\n", p.Title)
				default:
					fmt.Fprintf(out, "%s added to cart!\n", p.Title)
				}
				return nil
			})
		},
	}
}

func newCartRemoveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, flags, func(s *app.Services) error {
				title := args[0]
				for _, e := range s.Cart.Entries() {
					if e.ID == args[0] {
						title = e.Title
					}
				}
				removed, err := s.Cart.Remove(cmd.Context(), args[0])
				out := cmd.OutOrStdout()
				if !removed {
					fmt.Fprintf(out, "%s is not in the cart\n", args[0])
					return err
				}
				fmt.Fprintf(out, "%s removed from cart\n", title)
				return err
			})
		},
	}
}

func newCartTotalCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the cart total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, flags, func(s *app.Services) error {
				fmt.Fprintln(cmd.OutOrStdout(), catalog.FormatPrice(s.Cart.Total()))
				return nil
			})
		},
	}
}
