package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	cartview "github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/adapters/render/cart"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/application"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

func newCartCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Assemble the in-progress order",
	}

	cmd.AddCommand(
		newCartAddCmd(app),
		newCartSetCmd(app),
		newCartRemoveCmd(app),
		newCartShowCmd(app),
		newCartClearCmd(app),
	)

	return cmd
}

func newCartAddCmd(app *app) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart, or replace its quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCustomer(cmd.Context(), app); err != nil {
				return err
			}

			// Stock is checked against a fresh catalog snapshot.
			if err := runWithSpinner(cmd.Context(), cmd.OutOrStdout(), "Loading products...", func(ctx context.Context) error {
				return app.catalog.Load(ctx)
			}); err != nil {
				return err
			}

			product, ok := app.catalog.Get(domain.ProductID(args[0]))
			if !ok {
				return fmt.Errorf("%w: #%s", domain.ErrProductNotFound, args[0])
			}

			cart, err := loadCart(cmd.Context(), app)
			if err != nil {
				return err
			}
			if err := cart.AddOrUpdate(product, quantity); err != nil {
				return err
			}
			if err := saveCart(cmd.Context(), app, cart); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cart: %s x%d ($%.2f total)\n", product.Name, quantity, cart.Total())
			return err
		},
	}

	cmd.Flags().IntVar(&quantity, "qty", 1, "Desired total quantity for this product")

	return cmd
}

func newCartSetCmd(app *app) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "set <product-id>",
		Short: "Change the quantity of an existing cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCustomer(cmd.Context(), app); err != nil {
				return err
			}

			cart, err := loadCart(cmd.Context(), app)
			if err != nil {
				return err
			}
			if err := cart.SetQuantity(domain.ProductID(args[0]), quantity); err != nil {
				return err
			}
			if err := saveCart(cmd.Context(), app, cart); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cart total: $%.2f\n", cart.Total())
			return err
		},
	}

	cmd.Flags().IntVar(&quantity, "qty", 1, "New quantity for the line")
	_ = cmd.MarkFlagRequired("qty")

	return cmd
}

func newCartRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCustomer(cmd.Context(), app); err != nil {
				return err
			}

			cart, err := loadCart(cmd.Context(), app)
			if err != nil {
				return err
			}
			cart.Remove(domain.ProductID(args[0]))
			if err := saveCart(cmd.Context(), app, cart); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cart total: $%.2f\n", cart.Total())
			return err
		},
	}
}

func newCartShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents and total",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireCustomer(cmd.Context(), app); err != nil {
				return err
			}

			cart, err := loadCart(cmd.Context(), app)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cartview.Render(cart.Items(), cart.Total()))
			return err
		},
	}
}

func newCartClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireCustomer(cmd.Context(), app); err != nil {
				return err
			}

			if err := app.cartRepo.Clear(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared")
			return err
		},
	}
}

func requireCustomer(ctx context.Context, app *app) error {
	session, err := requireSession(ctx, app)
	if err != nil {
		return err
	}

	if !domain.ResolveRolePolicy(session.Roles).CanOrder {
		return fmt.Errorf("ordering is only available to customer sessions")
	}
	return nil
}

func loadCart(ctx context.Context, app *app) (*application.CartAssembler, error) {
	items, err := app.cartRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart := application.NewCartAssembler()
	cart.Restore(items)
	return cart, nil
}

func saveCart(ctx context.Context, app *app, cart *application.CartAssembler) error {
	if err := app.cartRepo.Save(ctx, cart.Items()); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
