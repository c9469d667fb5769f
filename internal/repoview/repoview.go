// Package repoview owns a user's repository list and the filter, sort and
// page parameters that decide which repositories are visible.
package repoview

import (
	"cmp"
	"slices"
	"strings"

	"github.com/naveenspark/ghprofile/pkg/domain"
)

// PageSize is the number of repositories shown per page.
const PageSize = 3

// SortMode selects the ordering of the filtered repositories.
type SortMode int

const (
	SortRecent SortMode = iota // most recently updated first
	SortStars                  // most starred first
)

func (m SortMode) String() string {
	if m == SortStars {
		return "stars"
	}
	return "updated"
}

// State is the current set of view parameters.
type State struct {
	Filter string
	Sort   SortMode
	Page   int
}

// View is the computed visible page.
type View struct {
	Repositories  []domain.Repository
	TotalFiltered int
	Page          int
	TotalPages    int
	From          int // 1-based index of the first visible repository, 0 when empty
	To            int // 1-based index of the last visible repository, 0 when empty
}

// Controller holds the full repository set and its view state.
// The zero value is an empty controller on page 1.
type Controller struct {
	repos []domain.Repository
	state State
}

// New returns a controller over repos with default view parameters.
func New(repos []domain.Repository) *Controller {
	c := &Controller{}
	c.SetRepositories(repos)
	return c
}

// SetRepositories replaces the full set and resets filter, sort and page.
func (c *Controller) SetRepositories(repos []domain.Repository) View {
	c.repos = slices.Clone(repos)
	c.state = State{Sort: SortRecent, Page: 1}
	return c.View()
}

// SetFilterText updates the name filter. The page returns to 1.
func (c *Controller) SetFilterText(text string) View {
	c.state.Filter = text
	c.state.Page = 1
	return c.View()
}

// SetSortMode changes the ordering. The page is kept, clamped to the new total.
func (c *Controller) SetSortMode(mode SortMode) View {
	c.state.Sort = mode
	c.clamp()
	return c.View()
}

// ToggleStars switches between star and recency ordering.
func (c *Controller) ToggleStars() View {
	if c.state.Sort == SortStars {
		return c.SetSortMode(SortRecent)
	}
	return c.SetSortMode(SortStars)
}

// SetPage moves to page n, clamped into range.
func (c *Controller) SetPage(n int) View {
	c.state.Page = n
	c.clamp()
	return c.View()
}

// NextPage advances one page; it stays put on the last page.
func (c *Controller) NextPage() View {
	return c.SetPage(c.state.Page + 1)
}

// PrevPage goes back one page; it stays put on the first page.
func (c *Controller) PrevPage() View {
	return c.SetPage(c.state.Page - 1)
}

// State returns the current view parameters.
func (c *Controller) State() State {
	return c.state
}

// Len returns the size of the full repository set.
func (c *Controller) Len() int {
	return len(c.repos)
}

// View computes the visible page from the current state. It does not mutate c.
func (c *Controller) View() View {
	sorted := c.sorted()
	total := totalPages(len(sorted))
	page := min(max(c.state.Page, 1), total)

	start := (page - 1) * PageSize
	end := min(start+PageSize, len(sorted))
	visible := []domain.Repository{}
	if start < end {
		visible = slices.Clone(sorted[start:end])
	}

	v := View{
		Repositories:  visible,
		TotalFiltered: len(sorted),
		Page:          page,
		TotalPages:    total,
	}
	if len(visible) > 0 {
		v.From = start + 1
		v.To = start + len(visible)
	}
	return v
}

func (c *Controller) clamp() {
	total := totalPages(len(c.filtered()))
	c.state.Page = min(max(c.state.Page, 1), total)
}

// filtered returns the repositories whose name contains the filter text,
// ignoring case, in their original order.
func (c *Controller) filtered() []domain.Repository {
	needle := strings.ToLower(strings.TrimSpace(c.state.Filter))
	if needle == "" {
		return slices.Clone(c.repos)
	}
	out := make([]domain.Repository, 0, len(c.repos))
	for _, r := range c.repos {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// sorted orders a fresh filtered copy, so sort modes never compound.
func (c *Controller) sorted() []domain.Repository {
	repos := c.filtered()
	switch c.state.Sort {
	case SortStars:
		slices.SortStableFunc(repos, func(a, b domain.Repository) int {
			return cmp.Compare(b.Stars, a.Stars)
		})
	default:
		slices.SortStableFunc(repos, func(a, b domain.Repository) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
	return repos
}

func totalPages(n int) int {
	if n == 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}
