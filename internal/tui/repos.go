package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/ghprofile/internal/repoview"
	"github.com/naveenspark/ghprofile/pkg/domain"
)

const (
	noReposForFilter = "No repositories to display for this filter."
	noReposFound     = "No repositories found"
	noDescription    = "No description provided"
)

// reposModel is the repository section: a filtered, sorted, paged list
// with a cursor over the visible page.
type reposModel struct {
	ctl     repoview.Controller
	view    repoview.View
	cursor  int
	editing bool // typing into the filter
}

func newReposModel() reposModel {
	m := reposModel{}
	m.view = m.ctl.View()
	return m
}

func (m *reposModel) setRepositories(repos []domain.Repository) {
	m.view = m.ctl.SetRepositories(repos)
	m.cursor = 0
	m.editing = false
}

// selected returns the repository under the cursor.
func (m reposModel) selected() (domain.Repository, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Repositories) {
		return domain.Repository{}, false
	}
	return m.view.Repositories[m.cursor], true
}

func (m *reposModel) apply(v repoview.View) {
	pageChanged := v.Page != m.view.Page
	m.view = v
	if pageChanged || m.cursor >= len(v.Repositories) {
		m.cursor = 0
	}
}

// Update handles repository keys. It reports whether the key was consumed.
func (m reposModel) Update(msg tea.KeyMsg) (reposModel, bool) {
	key := msg.String()

	if m.editing {
		switch key {
		case "enter", "esc", "tab":
			m.editing = false
		default:
			filter := m.ctl.State().Filter
			if next := editRune(filter, key, maxFilterLen); next != filter {
				m.view = m.ctl.SetFilterText(next)
				m.cursor = 0
			}
		}
		return m, true
	}

	switch key {
	case "/":
		m.editing = true
	case "s":
		m.apply(m.ctl.ToggleStars())
	case "u":
		m.apply(m.ctl.SetSortMode(repoview.SortRecent))
	case "n", "right":
		m.apply(m.ctl.NextPage())
	case "p", "left":
		m.apply(m.ctl.PrevPage())
	case "j", "down":
		if m.cursor < len(m.view.Repositories)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	default:
		return m, false
	}
	return m, true
}

// sortLabel describes the active ordering.
func (m reposModel) sortLabel() string {
	if m.ctl.State().Sort == repoview.SortStars {
		return "★ stars"
	}
	return "updated"
}

// pageInfo renders the "Showing a–b of n" line.
func (m reposModel) pageInfo() string {
	v := m.view
	if v.TotalFiltered == 0 {
		return noReposFound
	}
	return fmt.Sprintf("Showing %d–%d of %d repositories (page %d of %d)", v.From, v.To, v.TotalFiltered, v.Page, v.TotalPages)
}

func (m reposModel) View(width, frame int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %s %s  %s\n",
		sectionHeaderStyle.Render("Repositories"),
		dimStyle.Render(fmt.Sprintf("(%s)", formatCount(m.ctl.Len()))),
		metaStyle.Render("sort: ")+accentStyle.Render(m.sortLabel()))
	fmt.Fprintf(&b, "  %s\n\n", renderInput("/ ", m.ctl.State().Filter, "filter by name", m.editing, frame))

	if len(m.view.Repositories) == 0 {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(noReposForFilter))
	}
	for i, r := range m.view.Repositories {
		b.WriteString(repoCard(r, i == m.cursor, width))
	}

	fmt.Fprintf(&b, "\n  %s\n", metaStyle.Render(m.pageInfo()))
	return b.String()
}

// repoCard renders one repository as three lines plus a spacer.
func repoCard(r domain.Repository, selected bool, width int) string {
	textWidth := max(width-6, 20)

	prefix := "  "
	name := normalStyle.Bold(true).Render(r.Name)
	if selected {
		prefix = accentStyle.Render("> ")
		name = selectedStyle.Render(r.Name)
	}
	var badges []string
	if r.Fork {
		badges = append(badges, badgeStyle.Render("[Fork]"))
	}
	if r.Private {
		badges = append(badges, badgeStyle.Render("[Private]"))
	}
	title := prefix + name
	if len(badges) > 0 {
		title += " " + strings.Join(badges, " ")
	}

	desc := strings.TrimSpace(r.Description)
	descStyle := normalStyle
	if desc == "" {
		desc = noDescription
		descStyle = dimStyle
	}

	var stats []string
	if r.Language != "" {
		stats = append(stats, LanguageStyle(r.Language).Render("●")+" "+dimStyle.Render(r.Language))
	}
	stats = append(stats,
		starStyle.Render("★")+" "+dimStyle.Render(formatCount(r.Stars)),
		dimStyle.Render("⑂ "+formatCount(r.Forks)),
		dimStyle.Render("◉ "+formatCount(r.Watchers)),
		metaStyle.Render(formatUpdated(r.UpdatedAt)),
	)

	line := title + "\n" +
		"    " + descStyle.Render(truncStr(desc, textWidth)) + "\n" +
		"    " + strings.Join(stats, "  ") + "\n"
	return line + "\n"
}
