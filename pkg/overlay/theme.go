package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Variant selects the accent a panel is framed with.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantDanger  Variant = "danger"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// NormalizeVariant maps a config string to a canonical variant. The empty
// string counts as default.
func NormalizeVariant(v string) (Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "default":
		return VariantDefault, true
	case "danger", "error":
		return VariantDanger, true
	case "warning", "warn":
		return VariantWarning, true
	case "info":
		return VariantInfo, true
	}
	return VariantDefault, false
}

// Theme bundles the styles a panel renders with. Themes are passed
// explicitly at open time or fall back to the manager's ambient default;
// panels never sniff presentation state off their anchors.
type Theme struct {
	Name         string
	Border       lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Muted        lipgloss.Style
	Backdrop     lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	Accents      map[Variant]lipgloss.TerminalColor
}

// Accent returns the color for a variant, falling back to the default
// accent and then to no color at all.
func (t Theme) Accent(v Variant) lipgloss.TerminalColor {
	if c, ok := t.Accents[v]; ok {
		return c
	}
	if c, ok := t.Accents[VariantDefault]; ok {
		return c
	}
	return lipgloss.NoColor{}
}

// Frame returns the panel border style accented for a variant.
func (t Theme) Frame(v Variant) lipgloss.Style {
	return t.Border.BorderForeground(t.Accent(v))
}

// ThemeDark is the ambient default: light text for dark terminals.
var ThemeDark = Theme{
	Name:         "dark",
	Border:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
	Body:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Backdrop:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	Button:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 2),
	ButtonActive: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Padding(0, 2),
	Accents: map[Variant]lipgloss.TerminalColor{
		VariantDefault: lipgloss.Color("212"),
		VariantDanger:  lipgloss.Color("196"),
		VariantWarning: lipgloss.Color("214"),
		VariantInfo:    lipgloss.Color("45"),
	},
}

// ThemeLight is for light terminals.
var ThemeLight = Theme{
	Name:         "light",
	Border:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 1),
	Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("232")),
	Body:         lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
	Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Backdrop:     lipgloss.NewStyle().Foreground(lipgloss.Color("251")),
	Button:       lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("253")).Padding(0, 2),
	ButtonActive: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Padding(0, 2),
	Accents: map[Variant]lipgloss.TerminalColor{
		VariantDefault: lipgloss.Color("127"),
		VariantDanger:  lipgloss.Color("124"),
		VariantWarning: lipgloss.Color("136"),
		VariantInfo:    lipgloss.Color("31"),
	},
}

// ThemeMono uses attributes only, for terminals without a palette.
var ThemeMono = Theme{
	Name:         "mono",
	Border:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	Title:        lipgloss.NewStyle().Bold(true),
	Body:         lipgloss.NewStyle(),
	Muted:        lipgloss.NewStyle().Faint(true),
	Backdrop:     lipgloss.NewStyle().Faint(true),
	Button:       lipgloss.NewStyle().Reverse(true).Padding(0, 2),
	ButtonActive: lipgloss.NewStyle().Reverse(true).Bold(true).Padding(0, 2),
}

// LookupTheme resolves a theme name. Unknown names report false so callers
// can fall back to the ambient default.
func LookupTheme(name string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return ThemeDark, true
	case "light":
		return ThemeLight, true
	case "mono", "monochrome":
		return ThemeMono, true
	}
	return Theme{}, false
}

// ThemeNames lists the registered theme names.
func ThemeNames() []string {
	return []string{"dark", "light", "mono"}
}
