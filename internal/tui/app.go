package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/naveenspark/ghprofile/internal/browser"
	"github.com/naveenspark/ghprofile/internal/skills"
	"github.com/naveenspark/ghprofile/pkg/client"
	"github.com/naveenspark/ghprofile/pkg/domain"
)

// maxChips is the number of quick-pick chips, one per digit key.
const maxChips = 9

// barFillDelay is how long after a profile renders before its bars animate in.
const barFillDelay = 100 * time.Millisecond

// Fetcher loads a profile and its repositories.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*domain.ProfileResult, error)
}

// RecentStore is the recent-search list backing the chips.
type RecentStore interface {
	List() []string
	Record(username string) []string
}

// Options configures an App.
type Options struct {
	Suggestions []string
	Username    string // fetched on start when set
	Logger      *slog.Logger
}

type focus int

const (
	focusSearch focus = iota
	focusNav
)

// submitMsg starts a fetch for username.
type submitMsg struct {
	username string
}

// fetchResultMsg carries the outcome of one fetch generation.
type fetchResultMsg struct {
	id       uuid.UUID
	username string
	result   *domain.ProfileResult
	err      error
}

// barFillMsg fills the profile bars for generation id.
type barFillMsg struct {
	id uuid.UUID
}

// actionResultMsg reports the outcome of an open or copy.
type actionResultMsg struct {
	status string
	err    error
}

// App is the root Bubbletea model.
type App struct {
	fetcher     Fetcher
	store       RecentStore
	suggestions []string
	initial     string
	logger      *slog.Logger

	now      func() time.Time
	openURL  func(string) error
	copyText func(string) error

	focus   focus
	input   string
	recent  []string
	spinner spinner.Model

	loading bool
	fetchID uuid.UUID
	cancel  context.CancelFunc

	result     *domain.ProfileResult
	skills     []domain.Skill
	repos      reposModel
	barsFilled bool
	errMsg     string
	status     string

	helpOpen bool
	width    int
	height   int
	frame    int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(f Fetcher, store RecentStore, opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return App{
		fetcher:     f,
		store:       store,
		suggestions: opts.Suggestions,
		initial:     strings.TrimSpace(opts.Username),
		logger:      logger,
		now:         time.Now,
		openURL:     browser.Open,
		copyText:    clipboard.WriteAll,
		input:       strings.TrimSpace(opts.Username),
		recent:      store.List(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		repos:       newReposModel(),
	}
}

func (a App) Init() tea.Cmd {
	if a.initial == "" {
		return shimmerTickCmd()
	}
	username := a.initial
	return tea.Batch(shimmerTickCmd(), func() tea.Msg { return submitMsg{username: username} })
}

// submit starts a new fetch generation, cancelling any fetch in flight.
func (a *App) submit(raw string) tea.Cmd {
	username := strings.TrimSpace(raw)
	a.input = username
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.result = nil
	a.barsFilled = false

	if username == "" {
		a.loading = false
		a.fetchID = uuid.Nil
		a.errMsg = client.Message(&client.FetchError{Kind: client.ErrEmptyUsername})
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New()
	a.fetchID = id
	a.cancel = cancel
	a.loading = true
	a.errMsg = ""

	a.logger.Debug("fetch started", slog.String("username", username), slog.String("fetch_id", id.String()))

	f := a.fetcher
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		defer cancel()
		res, err := f.FetchProfile(ctx, username)
		return fetchResultMsg{id: id, username: username, result: res, err: err}
	})
}

func (a App) handleResult(msg fetchResultMsg) (App, tea.Cmd) {
	if msg.id != a.fetchID {
		a.logger.Debug("dropping stale fetch result", slog.String("username", msg.username), slog.String("fetch_id", msg.id.String()))
		return a, nil
	}
	a.loading = false
	a.cancel = nil

	if msg.err != nil {
		a.result = nil
		a.errMsg = client.Message(msg.err)
		a.logger.Warn("fetch failed", slog.String("username", msg.username), slog.String("error", msg.err.Error()))
		return a, nil
	}

	a.errMsg = ""
	a.result = msg.result
	a.skills = skills.Compute(msg.result.Repositories)
	a.repos.setRepositories(msg.result.Repositories)
	a.barsFilled = false
	// Record the name as typed, not Profile.Login, so chips keep the user's casing.
	a.recent = a.store.Record(msg.username)
	a.focus = focusNav
	a.logger.Info("profile loaded", slog.String("username", msg.username), slog.Int("repositories", len(msg.result.Repositories)))

	id := msg.id
	return a, tea.Tick(barFillDelay, func(time.Time) tea.Msg { return barFillMsg{id: id} })
}

// chips returns the recent searches followed by suggestions not already listed.
func (a App) chips() []string {
	out := make([]string, 0, maxChips)
	seen := make(map[string]bool)
	for _, list := range [][]string{a.recent, a.suggestions} {
		for _, u := range list {
			k := strings.ToLower(u)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, u)
			if len(out) == maxChips {
				return out
			}
		}
	}
	return out
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case submitMsg:
		cmd := a.submit(msg.username)
		return a, cmd

	case fetchResultMsg:
		return a.handleResult(msg)

	case barFillMsg:
		if msg.id == a.fetchID && a.result != nil {
			a.barsFilled = true
		}
		return a, nil

	case actionResultMsg:
		if msg.err != nil {
			a.status = msg.err.Error()
			a.logger.Warn("action failed", slog.String("error", msg.err.Error()))
		} else {
			a.status = msg.status
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	a.status = ""

	if key == "ctrl+c" {
		return a.quit()
	}

	// Help overlay captures all keys when open
	if a.helpOpen {
		switch key {
		case "?", "esc":
			a.helpOpen = false
		case "q":
			return a.quit()
		}
		return a, nil
	}

	if a.focus == focusSearch {
		switch key {
		case "enter":
			cmd := a.submit(a.input)
			return a, cmd
		case "tab", "esc":
			a.focus = focusNav
		default:
			a.input = editRune(a.input, key, maxUsernameLen)
		}
		return a, nil
	}

	if a.repos.editing {
		a.repos, _ = a.repos.Update(msg)
		return a, nil
	}

	switch key {
	case "?":
		a.helpOpen = true
		return a, nil
	case "q":
		return a.quit()
	case "tab", "esc":
		a.focus = focusSearch
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		chips := a.chips()
		if i := int(key[0] - '1'); i < len(chips) {
			cmd := a.submit(chips[i])
			return a, cmd
		}
		return a, nil
	}

	if a.result == nil {
		return a, nil
	}

	switch key {
	case "o", "enter":
		if r, ok := a.repos.selected(); ok {
			return a, a.open(repoURL(a.result.Profile.Login, r))
		}
		return a, nil
	case "c":
		if r, ok := a.repos.selected(); ok {
			return a, a.copy(repoURL(a.result.Profile.Login, r))
		}
		return a, nil
	case "b":
		if a.result.Profile.Blog == "" {
			a.status = "no blog set"
			return a, nil
		}
		return a, a.open(a.result.Profile.BlogURL())
	}

	a.repos, _ = a.repos.Update(msg)
	return a, nil
}

func (a App) quit() (tea.Model, tea.Cmd) {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	return a, tea.Quit
}

func (a App) open(url string) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return actionResultMsg{err: fmt.Errorf("open failed: %w", err)}
		}
		return actionResultMsg{status: "opened " + url}
	}
}

func (a App) copy(text string) tea.Cmd {
	copyText := a.copyText
	return func() tea.Msg {
		if err := copyText(text); err != nil {
			return actionResultMsg{err: fmt.Errorf("copy failed: %w", err)}
		}
		return actionResultMsg{status: "copied " + text}
	}
}

// repoURL returns the repository page, deriving it when the API omitted it.
func repoURL(login string, r domain.Repository) string {
	if r.HTMLURL != "" {
		return r.HTMLURL
	}
	return "https://github.com/" + login + "/" + r.Name
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	header := centerLine(logo, a.width, lipgloss.Width(logo))

	search := " " + renderInput("> ", a.input, "github username", a.focus == focusSearch && !a.helpOpen, a.frame)

	var chipLine strings.Builder
	chipLine.WriteString(" ")
	for i, c := range a.chips() {
		fmt.Fprintf(&chipLine, " %s %s", chipKeyStyle.Render(fmt.Sprintf("%d", i+1)), dimStyle.Render(c))
	}

	var body string
	switch {
	case a.helpOpen:
		body = helpView()
	case a.loading:
		body = fmt.Sprintf("\n  %s %s\n", a.spinner.View(), dimStyle.Render("Fetching @"+a.input+"..."))
	case a.errMsg != "":
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			Render(errorStyle.Render(a.errMsg))
		body = "\n" + indent(box, "  ") + "\n"
	case a.result != nil:
		body = "\n" + profileView(a.result.Profile, a.barsFilled, a.now()) + "\n" +
			skillsView(a.skills) + "\n" +
			a.repos.View(a.width, a.frame)
	default:
		body = "\n  " + dimStyle.Render("Search for a GitHub user to see their profile.") + "\n"
	}

	help := " " + a.helpKeys()
	if a.status != "" {
		help = " " + accentStyle.Render(a.status) + "  " + help
	}

	// Chrome: header(1) + search(1) + chips(1) + help(1)
	const chrome = 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, search, chipLine.String(), body, help)
}

func (a App) helpKeys() string {
	switch {
	case a.helpOpen:
		return helpEntry("?", "close") + "  " + helpEntry("q", "quit")
	case a.focus == focusSearch:
		return helpEntry("enter", "fetch") + "  " + helpEntry("tab", "browse") + "  " + helpEntry("ctrl+c", "quit")
	case a.repos.editing:
		return helpEntry("type", "filter") + "  " + helpEntry("enter", "done")
	}
	keys := []string{helpEntry("1-9", "chips")}
	if a.result != nil {
		keys = append(keys,
			helpEntry("/", "filter"),
			helpEntry("s/u", "sort"),
			helpEntry("n/p", "page"),
			helpEntry("j/k", "move"),
			helpEntry("o", "open"),
			helpEntry("c", "copy"),
			helpEntry("b", "blog"),
		)
	}
	keys = append(keys, helpEntry("tab", "search"), helpEntry("?", "help"), helpEntry("q", "quit"))
	return strings.Join(keys, "  ")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
