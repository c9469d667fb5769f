package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/ghprofile/internal/skills"
)

// Shimmer animation for the GHPROFILE logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "G H P R O F I L E" as a flowing wave of blue light.
// Deep navy (#1a2a4a) -> bright sky (#60a5fa).
func renderShimmerLogo(frame int) string {
	const text = "GHPROFILE"
	n := len(text)

	var out strings.Builder
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(26 + b*(96-26))
		g := clampByte(42 + b*(165-42))
		bl := clampByte(74 + b*(250-74))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)
		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(text[i])))

		if i < n-1 {
			out.WriteString("  ")
		}
	}

	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171")).
			Bold(true)

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#facc15"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8890a0")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#60a5fa")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	chipKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	barFillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1e1e2a"))

	borderColor = lipgloss.Color("#1e1e2a")

	// Language colors, from GitHub linguist
	languageColors = map[string]lipgloss.Color{
		"Go":         lipgloss.Color("#00ADD8"),
		"JavaScript": lipgloss.Color("#f1e05a"),
		"TypeScript": lipgloss.Color("#3178c6"),
		"Python":     lipgloss.Color("#3572A5"),
		"Java":       lipgloss.Color("#b07219"),
		"Ruby":       lipgloss.Color("#701516"),
		"PHP":        lipgloss.Color("#4F5D95"),
		"C":          lipgloss.Color("#555555"),
		"C++":        lipgloss.Color("#f34b7d"),
		"C#":         lipgloss.Color("#178600"),
		"Rust":       lipgloss.Color("#dea584"),
		"Swift":      lipgloss.Color("#F05138"),
		"Kotlin":     lipgloss.Color("#A97BFF"),
		"Shell":      lipgloss.Color("#89e051"),
		"HTML":       lipgloss.Color("#e34c26"),
		"CSS":        lipgloss.Color("#563d7c"),
		"Vue":        lipgloss.Color("#41b883"),
		"Dart":       lipgloss.Color("#00B4AB"),
		"Scala":      lipgloss.Color("#c22d40"),
		"Elixir":     lipgloss.Color("#6e4a7e"),
		"Haskell":    lipgloss.Color("#5e5086"),
		"Lua":        lipgloss.Color("#000080"),
		"Vim Script": lipgloss.Color("#199f4b"),
		"Nix":        lipgloss.Color("#7e7eff"),
		"Zig":        lipgloss.Color("#ec915c"),
	}

	defaultLanguageColor = lipgloss.Color("#8b949e")
)

// LanguageStyle returns a style colored for the given language.
func LanguageStyle(language string) lipgloss.Style {
	if c, ok := languageColors[language]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(defaultLanguageColor)
}

// skillStyle returns the tag style for a language at the given size.
func skillStyle(language string, size skills.Size) lipgloss.Style {
	s := LanguageStyle(language)
	switch size {
	case skills.SizeLarge:
		return s.Bold(true).Underline(true)
	case skills.SizeMedium:
		return s.Bold(true)
	default:
		return s.Faint(true)
	}
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// keyBindings lists the navigation keys shown in the help overlay.
var keyBindings = []struct{ key, desc string }{
	{"enter", "Fetch the typed username (search) / open repository (nav)"},
	{"tab / esc", "Switch between search and navigation"},
	{"1-9", "Fetch a recent or suggested user"},
	{"/", "Filter repositories by name"},
	{"s", "Toggle sort by stars"},
	{"u", "Sort by last update"},
	{"n / right", "Next page"},
	{"p / left", "Previous page"},
	{"j / k", "Move between repositories"},
	{"o", "Open repository in browser"},
	{"c", "Copy repository URL"},
	{"b", "Open blog"},
	{"?", "Toggle this help"},
	{"q / ctrl+c", "Quit"},
}

// helpView renders the key reference overlay.
func helpView() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("G H P R O F I L E")

	keyStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n", title, sectionHeaderStyle.Render("Keys"))
	for _, k := range keyBindings {
		fmt.Fprintf(&b, "    %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", k.key)), descStyle.Render(k.desc))
	}
	return b.String()
}
