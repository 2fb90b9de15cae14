package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Design system colors - adaptive based on terminal background
var (
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorError     lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorBorder    lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background
func initializeColors() {
	// Check for environment variable override
	switch os.Getenv("GLAMOUR_STYLE") {
	case "light":
		setLightThemeColors()
		return
	case "dark":
		setDarkThemeColors()
		return
	}

	if lipgloss.HasDarkBackground() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")  // Bright magenta/pink
	ColorAccent = lipgloss.Color("214")   // Bright orange/yellow
	ColorSuccess = lipgloss.Color("10")   // Bright green
	ColorWarning = lipgloss.Color("11")   // Bright yellow
	ColorError = lipgloss.Color("9")      // Bright red
	ColorText = lipgloss.Color("252")     // Near white
	ColorTextMuted = lipgloss.Color("244")// Light gray
	ColorBorder = lipgloss.Color("238")   // Dark gray
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")  // Darker magenta for contrast
	ColorAccent = lipgloss.Color("130")   // Darker orange
	ColorSuccess = lipgloss.Color("22")   // Dark green
	ColorWarning = lipgloss.Color("136")  // Dark yellow/orange
	ColorError = lipgloss.Color("160")    // Dark red
	ColorText = lipgloss.Color("235")     // Near black
	ColorTextMuted = lipgloss.Color("243")// Medium gray
	ColorBorder = lipgloss.Color("250")   // Light gray
}

// Styles bundles the lipgloss styles used by the TUI views.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Label      lipgloss.Style
	FocusLabel lipgloss.Style
	Counter    lipgloss.Style
	CounterHot lipgloss.Style
	Tip        lipgloss.Style
	Hashtag    lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Issue      lipgloss.Style
	Help       lipgloss.Style
	Pane       lipgloss.Style
}

// NewStyles builds the style set for the detected terminal background.
func NewStyles() Styles {
	initializeColors()
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).MarginBottom(1),
		Subtitle:   lipgloss.NewStyle().Foreground(ColorTextMuted),
		Label:      lipgloss.NewStyle().Foreground(ColorText),
		FocusLabel: lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		Counter:    lipgloss.NewStyle().Foreground(ColorTextMuted),
		CounterHot: lipgloss.NewStyle().Bold(true).Foreground(ColorWarning),
		Tip:        lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true),
		Hashtag:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Status:     lipgloss.NewStyle().Foreground(ColorSuccess),
		Error:      lipgloss.NewStyle().Foreground(ColorError),
		Issue:      lipgloss.NewStyle().Foreground(ColorWarning),
		Help:       lipgloss.NewStyle().Foreground(ColorTextMuted).MarginTop(1),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
	}
}
