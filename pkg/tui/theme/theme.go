package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
	Run    RunTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Status lipgloss.Style
	Mode   lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Faint lipgloss.Style
}

// RunTheme styles the guided cooking screen.
type RunTheme struct {
	StepTitle lipgloss.Style
	StepNote  lipgloss.Style
	Progress  lipgloss.Style
	Done      lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Footer: FooterTheme{
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Mode:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Faint: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Run: RunTheme{
			StepTitle: lipgloss.NewStyle().Bold(true),
			StepNote:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Progress:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Done:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),
		},
	}
}
