package ui

import (
	"github.com/charmbracelet/lipgloss"

	"scorch/internal/domain"
)

// Ember palette: hotter colors for the file categories that usually hold
// the big bytes, cool embers for the rest.
type uiStyles struct {
	headerStyle lipgloss.Style
	mutedStyle  lipgloss.Style
	statusStyle lipgloss.Style
	warnStyle   lipgloss.Style
	crumbStyle  lipgloss.Style
	focusStyle  lipgloss.Style
	category    map[domain.Category]lipgloss.Style
	protected   lipgloss.Style
	residual    lipgloss.Style
	selected    lipgloss.Style
}

func stylesFor(theme string) uiStyles {
	styles := uiStyles{
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		crumbStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		focusStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		category: map[domain.Category]lipgloss.Style{
			domain.CategoryDirectory: lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
			domain.CategoryVideo:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			domain.CategoryImage:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
			domain.CategoryAudio:     lipgloss.NewStyle().Foreground(lipgloss.Color("168")),
			domain.CategoryArchive:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			domain.CategoryDocument:  lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
			domain.CategoryCode:      lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
			domain.CategoryOther:     lipgloss.NewStyle().Foreground(lipgloss.Color("95")),
		},
		protected: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		residual:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")),
	}
	if theme == "plain" {
		styles.category = map[domain.Category]lipgloss.Style{}
	}
	return styles
}

func (styles uiStyles) categoryStyle(category domain.Category) lipgloss.Style {
	if style, ok := styles.category[category]; ok {
		return style
	}
	return styles.mutedStyle
}
