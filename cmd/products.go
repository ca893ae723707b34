package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	catalogview "github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/adapters/render/catalog"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

func newProductsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage the product catalog",
	}

	cmd.AddCommand(
		newProductsListCmd(app),
		newProductsCreateCmd(app),
		newProductsUpdateCmd(app),
		newProductsDeleteCmd(app),
		newProductsUploadImageCmd(app),
	)

	return cmd
}

func newProductsListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the product catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := requireSession(cmd.Context(), app)
			if err != nil {
				return err
			}

			if err := runWithSpinner(cmd.Context(), cmd.OutOrStdout(), "Loading products...", func(ctx context.Context) error {
				return app.catalog.Load(ctx)
			}); err != nil {
				return err
			}

			policy := domain.ResolveRolePolicy(session.Roles)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), catalogview.Render(app.catalog.Products(), policy))
			return err
		},
	}
}

type productFlags struct {
	name        string
	description string
	price       float64
	quantity    int
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Product name")
	cmd.Flags().StringVar(&f.description, "description", "", "Product description")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Product price")
	cmd.Flags().IntVar(&f.quantity, "quantity", 0, "Stock quantity")
}

func (f *productFlags) input() ports.ProductInput {
	return ports.ProductInput{
		Name:        f.name,
		Description: f.description,
		Price:       f.price,
		Quantity:    f.quantity,
	}
}

func newProductsCreateCmd(app *app) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a catalog product (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireCatalogManager(cmd.Context(), app); err != nil {
				return err
			}

			product, err := app.catalogEd.CreateProduct(cmd.Context(), flags.input())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created product %s (#%s)\n", product.Name, product.ID)
			return err
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProductsUpdateCmd(app *app) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Update a catalog product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCatalogManager(cmd.Context(), app); err != nil {
				return err
			}

			product, err := app.catalogEd.UpdateProduct(cmd.Context(), domain.ProductID(args[0]), flags.input())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated product %s (#%s)\n", product.Name, product.ID)
			return err
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProductsDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a catalog product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCatalogManager(cmd.Context(), app); err != nil {
				return err
			}

			if err := app.catalogEd.DeleteProduct(cmd.Context(), domain.ProductID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted product #%s\n", args[0])
			return err
		},
	}
}

func newProductsUploadImageCmd(app *app) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "upload-image <product-id>",
		Short: "Upload a product image (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCatalogManager(cmd.Context(), app); err != nil {
				return err
			}

			file, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("open image file: %w", err)
			}
			defer func() { _ = file.Close() }()

			id := domain.ProductID(args[0])
			if err := app.catalogEd.UploadProductImage(cmd.Context(), id, filepath.Base(filePath), file); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Uploaded image for product #%s\n", id)
			return err
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to the image file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func requireCatalogManager(ctx context.Context, app *app) error {
	session, err := requireSession(ctx, app)
	if err != nil {
		return err
	}

	if !domain.ResolveRolePolicy(session.Roles).CanManageCatalog {
		return fmt.Errorf("catalog management requires the %s role", domain.RoleAdmin)
	}
	return nil
}
