package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("105")
	ColorAccent    = lipgloss.Color("212")
	ColorMuted     = lipgloss.Color("241")
	ColorError     = lipgloss.Color("196")
	ColorSuccess   = lipgloss.Color("78")
	ColorHighlight = lipgloss.Color("229")
)

var (
	// Title is the app header style
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	// Frame surrounds the currently displayed image reference
	Frame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	// Caption renders the attribution line under the image
	Caption = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	// Status renders informational status messages
	Status = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	// StatusError renders failure status messages
	StatusError = lipgloss.NewStyle().
			Foreground(ColorError)

	// Label renders form labels and section headers
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent)

	// GroupHeader renders a gallery recipient row
	GroupHeader = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// Selected highlights the focused gallery row
	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	// Dim renders de-emphasized text (counts, hints, empty states)
	Dim = lipgloss.NewStyle().
		Foreground(ColorMuted)

	// Lightbox frames the full-screen viewer
	Lightbox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	// Help renders the key hint footer
	Help = lipgloss.NewStyle().
		Foreground(ColorMuted)
)
