package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	ordersview "github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/adapters/render/orders"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

func newOrdersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Submit and review orders",
	}

	cmd.AddCommand(
		newOrdersSubmitCmd(app),
		newOrdersListCmd(app),
	)

	return cmd
}

func newOrdersSubmitCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Submit the cart as an order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := requireSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			if !domain.ResolveRolePolicy(session.Roles).CanOrder {
				return fmt.Errorf("ordering is only available to customer sessions")
			}

			cart, err := loadCart(cmd.Context(), app)
			if err != nil {
				return err
			}

			var order domain.Order
			if err := runWithSpinner(cmd.Context(), cmd.OutOrStdout(), "Submitting order...", func(ctx context.Context) error {
				created, submitErr := app.orders.Submit(ctx, cart, session.DisplayName())
				if submitErr != nil {
					return submitErr
				}
				order = created
				return nil
			}); err != nil {
				// The cart is untouched on failure; persist nothing.
				return err
			}

			if err := app.cartRepo.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cart after submission: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Order #%s confirmed, total $%.2f\n", order.ID, order.TotalAmount)
			return err
		},
	}
}

func newOrdersListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List orders (all for admins, own otherwise)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := requireSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			policy := domain.ResolveRolePolicy(session.Roles)

			var list []domain.Order
			if err := runWithSpinner(cmd.Context(), cmd.OutOrStdout(), "Loading commands...", func(ctx context.Context) error {
				// Catalog load is auxiliary here: item names degrade
				// to raw ids when it fails.
				_ = app.catalog.Load(ctx)

				loaded, listErr := app.orders.ListForSession(ctx, session)
				if listErr != nil {
					return listErr
				}
				list = loaded
				return nil
			}); err != nil {
				return err
			}

			products := map[domain.ProductID]domain.Product{}
			for _, product := range app.catalog.Products() {
				products[product.ID] = product
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), ordersview.Render(list, policy.OrderScope(), products))
			return err
		},
	}
}
