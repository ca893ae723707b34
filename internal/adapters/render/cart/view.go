// Package cart renders the in-progress order.
package cart

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

type styles struct {
	title   lipgloss.Style
	name    lipgloss.Style
	line    lipgloss.Style
	total   lipgloss.Style
	empty   lipgloss.Style
	section lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		name:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		line:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		total:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		empty:   lipgloss.NewStyle().Faint(true),
		section: lipgloss.NewStyle().MarginTop(1),
	}
}

func Render(items []domain.CartItem, total float64) string {
	s := newStyles()

	lines := []string{s.title.Render("Your order")}
	if len(items) == 0 {
		lines = append(lines, s.empty.Render("Your cart is empty."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, item := range items {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.name.Render(item.Name),
			" ",
			s.line.Render(fmt.Sprintf("x%d @ $%.2f = $%.2f", item.Quantity, item.Price, item.LineTotal())),
		))
	}
	lines = append(lines, s.section.Render(s.total.Render(fmt.Sprintf("Total: $%.2f", total))))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
