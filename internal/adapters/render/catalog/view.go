// Package catalog renders the product catalog for the terminal.
package catalog

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

func Render(products []domain.Product, policy domain.RolePolicy) string {
	return renderView(products, policy, newStyles())
}

func renderView(products []domain.Product, policy domain.RolePolicy, s styles) string {
	heading := "Catalog"
	if policy.CanManageCatalog {
		heading = "Catalog (managed)"
	}

	lines := []string{
		s.title.Render(heading),
		s.header.Render(fmt.Sprintf("products: %d", len(products))),
	}

	if len(products) == 0 {
		lines = append(lines, s.empty.Render("No products available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, product := range products {
		lines = append(lines, s.section.Render(renderProduct(product, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProduct(product domain.Product, s styles) string {
	parts := []string{
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.name.Render(product.Name),
			" ",
			s.id.Render(fmt.Sprintf("#%s", product.ID)),
		),
	}
	if product.Description != "" {
		parts = append(parts, s.desc.Render(product.Description))
	}
	parts = append(parts, lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.price.Render(fmt.Sprintf("$%.2f", product.Price)),
		" ",
		stockChip(product, s),
	))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func stockChip(product domain.Product, s styles) string {
	if !product.InStock() {
		return s.depleted.Render("out of stock")
	}
	return s.stock.Render(fmt.Sprintf("%d in stock", product.Quantity))
}
