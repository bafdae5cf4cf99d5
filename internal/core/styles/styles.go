// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports. Rebuilt by SetTheme.
var (
	TitleStyle lipgloss.Style

	InputStyle        lipgloss.Style
	InputFocusedStyle lipgloss.Style

	ButtonStyle        lipgloss.Style
	ButtonFocusedStyle lipgloss.Style

	AlertStyle lipgloss.Style

	RowStyle         lipgloss.Style
	RowSelectedStyle lipgloss.Style
	CheckboxStyle    lipgloss.Style
	TaskTextStyle    lipgloss.Style
	TaskDoneStyle    lipgloss.Style
	DeleteStyle      lipgloss.Style

	PlaceholderStyle lipgloss.Style
	FooterStyle      lipgloss.Style
	LabelStyle       lipgloss.Style
	HelpStyle        lipgloss.Style
)

// AlertIcon prefixes validation errors.
const AlertIcon = "!"

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		MarginBottom(1)

	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1)
	InputFocusedStyle = InputStyle.
		BorderForeground(p.Primary)

	ButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Foreground)
	ButtonFocusedStyle = ButtonStyle.
		Background(p.Primary).
		Bold(true)

	AlertStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	RowStyle = lipgloss.NewStyle().
		PaddingLeft(2)
	RowSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Primary).
		PaddingLeft(1)
	CheckboxStyle = lipgloss.NewStyle().
		Foreground(p.Primary)
	TaskTextStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	TaskDoneStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Strikethrough(true)
	DeleteStyle = lipgloss.NewStyle().
		Foreground(p.Error)

	PlaceholderStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)
	FooterStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	LabelStyle = lipgloss.NewStyle().
		Foreground(p.Success)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// FormTheme returns a huh theme matching the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()
	p := CurrentPalette

	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(p.Muted)
	t.Blurred.Title = t.Blurred.Title.Foreground(p.Muted)

	return t
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := string(CurrentPalette.Foreground)
	primary := string(CurrentPalette.Primary)
	muted := string(CurrentPalette.Muted)

	cfg.Document.Color = &fg
	cfg.Paragraph.Color = &fg
	cfg.Heading.Color = &primary
	cfg.H1.Color = &primary
	cfg.H2.Color = &primary
	cfg.Item.Color = &fg
	cfg.Task.Color = &fg
	cfg.Task.Ticked = "[x] "
	cfg.Task.Unticked = "[ ] "
	cfg.Strikethrough.Color = &muted

	return cfg
}
