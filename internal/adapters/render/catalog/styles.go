package catalog

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	name     lipgloss.Style
	desc     lipgloss.Style
	price    lipgloss.Style
	stock    lipgloss.Style
	depleted lipgloss.Style
	id       lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		desc:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		price:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		stock:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		depleted: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		id:       lipgloss.NewStyle().Faint(true),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
	}
}
