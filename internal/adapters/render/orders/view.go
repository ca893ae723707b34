// Package orders renders order listings, resolving product names through
// the catalog snapshot when one is available.
package orders

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	order   lipgloss.Style
	detail  lipgloss.Style
	item    lipgloss.Style
	total   lipgloss.Style
	empty   lipgloss.Style
	section lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		order:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		item:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(2),
		total:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		empty:   lipgloss.NewStyle().Faint(true),
		section: lipgloss.NewStyle().MarginTop(1),
	}
}

// Render draws the listing. The title reflects the scope the caller was
// entitled to; products may be nil when the catalog could not be loaded,
// in which case items fall back to their raw ids.
func Render(list []domain.Order, scope domain.OrderScope, products map[domain.ProductID]domain.Product) string {
	s := newStyles()

	heading := "My commands"
	if scope == domain.OrderScopeAll {
		heading = "All commands"
	}

	lines := []string{
		s.title.Render(heading),
		s.header.Render(fmt.Sprintf("orders: %d", len(list))),
	}

	if len(list) == 0 {
		lines = append(lines, s.empty.Render("No commands yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, order := range list {
		lines = append(lines, s.section.Render(renderOrder(order, products, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderOrder(order domain.Order, products map[domain.ProductID]domain.Product, s styles) string {
	head := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.order.Render(fmt.Sprintf("Order #%s", order.ID)),
		" ",
		s.detail.Render(fmt.Sprintf("%s · %s", order.ClientID, order.Status)),
	)
	if !order.OrderDate.IsZero() {
		head = lipgloss.JoinHorizontal(lipgloss.Top, head, " ", s.detail.Render(order.OrderDate.Format("2006-01-02 15:04")))
	}

	parts := []string{head}
	for _, item := range order.Items {
		parts = append(parts, s.item.Render(fmt.Sprintf(
			"%s x%d @ $%.2f = $%.2f",
			productLabel(item.ProductID, products),
			item.Quantity,
			item.Price,
			item.LineTotal,
		)))
	}
	parts = append(parts, s.total.Render(fmt.Sprintf("Total: $%.2f", order.TotalAmount)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func productLabel(id domain.ProductID, products map[domain.ProductID]domain.Product) string {
	if product, ok := products[id]; ok {
		return fmt.Sprintf("%s (#%s)", product.Name, id)
	}
	return "#" + string(id)
}
