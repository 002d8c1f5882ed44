package ui

import "charm.land/lipgloss/v2"

type styles struct {
	key       lipgloss.Style
	value     lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	link      lipgloss.Style
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	cursor    lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			key: plain, value: plain, heading: plain, muted: plain, link: plain,
			title: plain, tab: plain, activeTab: plain, cursor: plain,
		}
	}
	return styles{
		key:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		heading:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
		link:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		title:     lipgloss.NewStyle().Bold(true),
		tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		activeTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		cursor:    lipgloss.NewStyle().Reverse(true),
	}
}
