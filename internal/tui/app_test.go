package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/naveenspark/ghprofile/internal/recent"
	"github.com/naveenspark/ghprofile/pkg/client"
	"github.com/naveenspark/ghprofile/pkg/domain"
)

var testNow = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

// fakeFetcher serves canned results and records calls.
type fakeFetcher struct {
	mu      sync.Mutex
	results map[string]*domain.ProfileResult
	errs    map[string]error
	calls   []string
}

func (f *fakeFetcher) FetchProfile(ctx context.Context, username string) (*domain.ProfileResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, username)
	if err := ctx.Err(); err != nil {
		return nil, &client.FetchError{Kind: client.ErrNetwork, Username: username, Err: err}
	}
	if err, ok := f.errs[username]; ok {
		return nil, err
	}
	if res, ok := f.results[username]; ok {
		return res, nil
	}
	return nil, &client.FetchError{Kind: client.ErrUserNotFound, Status: 404, Username: username}
}

func testProfile(login string, repos int) *domain.ProfileResult {
	res := &domain.ProfileResult{
		Profile: domain.Profile{
			Login:       login,
			Name:        strings.ToUpper(login[:1]) + login[1:],
			Followers:   219304,
			Following:   0,
			PublicRepos: repos,
			PublicGists: 3,
			CreatedAt:   testNow.AddDate(-5, 0, 0),
		},
		Repositories: []domain.Repository{},
	}
	for i := 0; i < repos; i++ {
		lang := "Go"
		if i%3 == 0 {
			lang = "C"
		}
		res.Repositories = append(res.Repositories, domain.Repository{
			Name:      fmt.Sprintf("%s-repo-%d", login, i),
			Language:  lang,
			Stars:     i * 10,
			UpdatedAt: testNow.Add(-time.Duration(i) * time.Hour),
			HTMLURL:   fmt.Sprintf("https://github.com/%s/%s-repo-%d", login, login, i),
		})
	}
	return res
}

func newTestApp(t *testing.T, f *fakeFetcher, suggestions ...string) App {
	t.Helper()
	store := recent.NewStore(recent.NewMemoryBackend(), nil)
	a := NewApp(f, store, Options{Suggestions: suggestions})
	a.now = func() time.Time { return testNow }
	a.openURL = func(string) error { return errors.New("no browser in tests") }
	a.copyText = func(string) error { return errors.New("no clipboard in tests") }
	a.width = 100
	a.height = 60
	return a
}

func press(a App, key string) (App, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	model, cmd := a.Update(msg)
	return model.(App), cmd
}

func typeText(a App, text string) App {
	for _, r := range text {
		a, _ = press(a, string(r))
	}
	return a
}

// collect runs cmd, expanding batches, and returns the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func fetchResult(t *testing.T, cmd tea.Cmd) fetchResultMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if r, ok := msg.(fetchResultMsg); ok {
			return r
		}
	}
	t.Fatal("command produced no fetchResultMsg")
	return fetchResultMsg{}
}

// load submits username and feeds the fetch result back into the app.
func load(t *testing.T, a App, username string) App {
	t.Helper()
	a.focus = focusSearch
	a.input = ""
	a = typeText(a, username)
	a, cmd := press(a, "enter")
	if !a.loading {
		t.Fatalf("expected loading after submitting %q", username)
	}
	model, _ := a.Update(fetchResult(t, cmd))
	return model.(App)
}

func TestAppSubmitRendersProfile(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 7)}}
	a := load(t, newTestApp(t, f), "torvalds")

	if a.loading {
		t.Error("expected loading=false after result")
	}
	if a.focus != focusNav {
		t.Errorf("expected focus to move to nav after success, got %d", a.focus)
	}

	view := a.View()
	for _, want := range []string{
		"Torvalds", "@torvalds", noBio, notSpecified,
		"219,304", "followers", "Skills", "Go 4", "C 3",
		"torvalds-repo-0", "Showing 1–3 of 7 repositories (page 1 of 3)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Twitter") || strings.Contains(view, "Blog") {
		t.Errorf("blog and twitter rows should be hidden when unset:\n%s", view)
	}
}

func TestAppSubmitRecordsRecent(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{
		"alice": testProfile("alice", 1),
		"bob":   testProfile("bob", 1),
	}}
	a := newTestApp(t, f)
	a = load(t, a, "alice")
	a = load(t, a, "bob")

	if got := strings.Join(a.recent, ","); got != "bob,alice" {
		t.Errorf("recent = %q, want bob,alice", got)
	}
	if got := strings.Join(a.store.List(), ","); got != "bob,alice" {
		t.Errorf("store = %q, want bob,alice", got)
	}
}

func TestAppRecordsTypedCasing(t *testing.T) {
	res := testProfile("torvalds", 1)
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"TorValds": res}}
	a := load(t, newTestApp(t, f), "TorValds")

	if got := strings.Join(a.recent, ","); got != "TorValds" {
		t.Errorf("recent = %q, want the typed name TorValds", got)
	}
}

func TestAppFailedFetchNotRecorded(t *testing.T) {
	f := &fakeFetcher{}
	a := load(t, newTestApp(t, f), "ghost")

	if len(a.recent) != 0 {
		t.Errorf("failed fetch should not be recorded, got %v", a.recent)
	}
	if !strings.Contains(a.View(), `User "ghost" not found on GitHub`) {
		t.Errorf("expected not-found message, got:\n%s", a.View())
	}
}

func TestAppEmptyUsernameShowsError(t *testing.T) {
	f := &fakeFetcher{}
	a := newTestApp(t, f)
	a = typeText(a, "   ")
	a, cmd := press(a, "enter")

	if cmd != nil {
		t.Error("expected no command for blank username")
	}
	if len(f.calls) != 0 {
		t.Errorf("expected no fetch, got calls %v", f.calls)
	}
	if !strings.Contains(a.View(), "Please enter a GitHub username") {
		t.Errorf("expected empty-username message, got:\n%s", a.View())
	}
}

func TestAppErrorHidesPreviousProfile(t *testing.T) {
	f := &fakeFetcher{
		results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 2)},
		errs:    map[string]error{"limited": &client.FetchError{Kind: client.ErrRateLimited, Status: 403}},
	}
	a := newTestApp(t, f)
	a = load(t, a, "torvalds")
	a = load(t, a, "limited")

	view := a.View()
	if !strings.Contains(view, "GitHub API rate limit exceeded. Try again later.") {
		t.Errorf("expected rate-limit message, got:\n%s", view)
	}
	if strings.Contains(view, "@torvalds") {
		t.Errorf("previous profile should be hidden on error:\n%s", view)
	}
}

func TestAppSupersedesInFlightFetch(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{
		"alice": testProfile("alice", 1),
		"bob":   testProfile("bob", 1),
	}}
	a := newTestApp(t, f)

	a = typeText(a, "alice")
	a, first := press(a, "enter")
	firstID := a.fetchID

	a.input = ""
	a = typeText(a, "bob")
	a, second := press(a, "enter")
	if a.fetchID == firstID {
		t.Fatal("expected a new fetch generation")
	}

	stale := fetchResult(t, first)
	if !errors.Is(stale.err, context.Canceled) {
		t.Errorf("superseded fetch should see a cancelled context, got %v", stale.err)
	}
	model, _ := a.Update(stale)
	a = model.(App)
	if !a.loading || a.result != nil || a.errMsg != "" {
		t.Errorf("stale result must be dropped: loading=%v result=%v err=%q", a.loading, a.result, a.errMsg)
	}

	model, _ = a.Update(fetchResult(t, second))
	a = model.(App)
	if a.result == nil || a.result.Profile.Login != "bob" {
		t.Fatalf("expected bob's profile, got %+v", a.result)
	}
	if got := strings.Join(a.recent, ","); got != "bob" {
		t.Errorf("only the current fetch should be recorded, got %q", got)
	}
}

func TestAppBarsFillAfterDeferredTick(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 50)}}
	a := newTestApp(t, f)
	a = typeText(a, "torvalds")
	a, cmd := press(a, "enter")
	model, tick := a.Update(fetchResult(t, cmd))
	a = model.(App)

	if a.barsFilled {
		t.Fatal("bars should start empty")
	}
	if tick == nil {
		t.Fatal("expected a deferred bar fill command")
	}
	if strings.Contains(a.View(), "█████") {
		t.Error("empty bars should not render filled cells")
	}

	model, _ = a.Update(barFillMsg{id: a.fetchID})
	a = model.(App)
	if !a.barsFilled {
		t.Error("expected bars filled after tick")
	}
	if !strings.Contains(a.View(), strings.Repeat("█", barWidth)) {
		t.Errorf("50 repos should fill the repos bar:\n%s", a.View())
	}
}

func TestAppStaleBarFillIgnored(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 1)}}
	a := load(t, newTestApp(t, f), "torvalds")

	model, _ := a.Update(barFillMsg{id: uuid.New()})
	a = model.(App)
	if a.barsFilled {
		t.Error("bar fill from another generation should be ignored")
	}
}

func TestAppChips(t *testing.T) {
	f := &fakeFetcher{}
	a := newTestApp(t, f, "torvalds", "gaearon", "a", "b", "c", "d", "e", "f", "g", "h")
	a.recent = []string{"Torvalds", "alice"}

	chips := a.chips()
	if len(chips) != maxChips {
		t.Fatalf("expected %d chips, got %d: %v", maxChips, len(chips), chips)
	}
	if chips[0] != "Torvalds" || chips[1] != "alice" || chips[2] != "gaearon" {
		t.Errorf("recent first, suggestions deduped: got %v", chips)
	}
}

func TestAppChipKeyFetches(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"gaearon": testProfile("gaearon", 1)}}
	a := newTestApp(t, f, "torvalds", "gaearon")
	a, _ = press(a, "tab")

	a, cmd := press(a, "2")
	if !a.loading || a.input != "gaearon" {
		t.Fatalf("expected fetch of gaearon, loading=%v input=%q", a.loading, a.input)
	}
	model, _ := a.Update(fetchResult(t, cmd))
	a = model.(App)
	if a.result == nil || a.result.Profile.Login != "gaearon" {
		t.Errorf("expected gaearon profile, got %+v", a.result)
	}

	// Out of range chip does nothing.
	a, cmd = press(a, "9")
	if cmd != nil || a.loading {
		t.Error("expected no fetch for an empty chip slot")
	}
}

func TestAppDigitsTypeInSearch(t *testing.T) {
	a := newTestApp(t, &fakeFetcher{}, "torvalds")
	a = typeText(a, "user1")
	if a.input != "user1" || a.loading {
		t.Errorf("digits should type in search mode, input=%q loading=%v", a.input, a.loading)
	}
}

func TestAppRepositoryNavigation(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 7)}}
	a := load(t, newTestApp(t, f), "torvalds")

	a, _ = press(a, "n")
	if a.repos.view.Page != 2 {
		t.Fatalf("expected page 2 after n, got %d", a.repos.view.Page)
	}
	a, _ = press(a, "n")
	a, _ = press(a, "n")
	if a.repos.view.Page != 3 {
		t.Errorf("page should clamp at 3, got %d", a.repos.view.Page)
	}
	if !strings.Contains(a.View(), "Showing 7–7 of 7 repositories (page 3 of 3)") {
		t.Errorf("unexpected page info:\n%s", a.View())
	}
	a, _ = press(a, "p")
	if a.repos.view.Page != 2 {
		t.Errorf("expected page 2 after p, got %d", a.repos.view.Page)
	}

	a, _ = press(a, "s")
	if a.repos.sortLabel() != "★ stars" {
		t.Errorf("expected star sort, got %q", a.repos.sortLabel())
	}
	if a.repos.view.Page != 2 {
		t.Errorf("sort should keep the page, got %d", a.repos.view.Page)
	}
	a, _ = press(a, "u")
	if a.repos.sortLabel() != "updated" {
		t.Errorf("expected update sort, got %q", a.repos.sortLabel())
	}
}

func TestAppRepositoryFilter(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 12)}}
	a := load(t, newTestApp(t, f), "torvalds")
	a, _ = press(a, "n")

	a, _ = press(a, "/")
	if !a.repos.editing {
		t.Fatal("expected filter editing after /")
	}
	a = typeText(a, "REPO-1")
	a, _ = press(a, "enter")

	if a.repos.editing {
		t.Error("enter should end filter editing")
	}
	if got := a.repos.ctl.State().Filter; got != "REPO-1" {
		t.Errorf("filter = %q, want REPO-1", got)
	}
	// repo-1, repo-10, repo-11
	if a.repos.view.TotalFiltered != 3 || a.repos.view.Page != 1 {
		t.Errorf("expected 3 matches on page 1, got %d on page %d", a.repos.view.TotalFiltered, a.repos.view.Page)
	}

	a, _ = press(a, "/")
	a = typeText(a, "zzz")
	view := a.View()
	if !strings.Contains(view, noReposForFilter) || !strings.Contains(view, noReposFound) {
		t.Errorf("expected empty filter messages:\n%s", view)
	}
}

func TestAppCursorMovesWithinPage(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 7)}}
	a := load(t, newTestApp(t, f), "torvalds")

	for range 5 {
		a, _ = press(a, "j")
	}
	if a.repos.cursor != 2 {
		t.Errorf("cursor should stop at the last visible repo, got %d", a.repos.cursor)
	}
	a, _ = press(a, "k")
	if a.repos.cursor != 1 {
		t.Errorf("expected cursor 1 after k, got %d", a.repos.cursor)
	}
	a, _ = press(a, "n")
	if a.repos.cursor != 0 {
		t.Errorf("page change should reset the cursor, got %d", a.repos.cursor)
	}
}

func TestAppOpenCopyAndBlog(t *testing.T) {
	res := testProfile("torvalds", 3)
	res.Profile.Blog = "example.com"
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": res}}
	a := load(t, newTestApp(t, f), "torvalds")

	var opened, copied []string
	a.openURL = func(u string) error { opened = append(opened, u); return nil }
	a.copyText = func(s string) error { copied = append(copied, s); return nil }

	a, _ = press(a, "j")
	a, cmd := press(a, "o")
	model, _ := a.Update(collect(cmd)[0])
	a = model.(App)
	// Recency order: repo-0 is newest, so the second card is repo-1.
	if len(opened) != 1 || opened[0] != "https://github.com/torvalds/torvalds-repo-1" {
		t.Errorf("opened = %v", opened)
	}
	if !strings.Contains(a.View(), "opened https://github.com/torvalds/torvalds-repo-1") {
		t.Errorf("expected status line after open:\n%s", a.View())
	}

	_, cmd = press(a, "c")
	collect(cmd)
	if len(copied) != 1 || copied[0] != "https://github.com/torvalds/torvalds-repo-1" {
		t.Errorf("copied = %v", copied)
	}

	_, cmd = press(a, "b")
	collect(cmd)
	if len(opened) != 2 || opened[1] != "https://example.com" {
		t.Errorf("blog open = %v", opened)
	}
}

func TestAppActionFailureShowsStatus(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 1)}}
	a := load(t, newTestApp(t, f), "torvalds")

	a, cmd := press(a, "c")
	model, _ := a.Update(collect(cmd)[0])
	a = model.(App)
	if !strings.Contains(a.View(), "copy failed: no clipboard in tests") {
		t.Errorf("expected copy failure status:\n%s", a.View())
	}
}

func TestAppBlogUnset(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 1)}}
	a := load(t, newTestApp(t, f), "torvalds")

	a, cmd := press(a, "b")
	if cmd != nil {
		t.Error("expected no open command without a blog")
	}
	if a.status != "no blog set" {
		t.Errorf("status = %q", a.status)
	}
}

func TestAppRepoURLFallback(t *testing.T) {
	got := repoURL("torvalds", domain.Repository{Name: "linux"})
	if got != "https://github.com/torvalds/linux" {
		t.Errorf("repoURL = %q", got)
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp(t, &fakeFetcher{})
	a, _ = press(a, "tab")
	a, _ = press(a, "?")
	if !a.helpOpen {
		t.Fatal("expected help overlay after ?")
	}
	if !strings.Contains(a.View(), "Toggle sort by stars") {
		t.Errorf("expected key reference in help:\n%s", a.View())
	}
	a, _ = press(a, "esc")
	if a.helpOpen {
		t.Error("esc should close help")
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t, &fakeFetcher{})

	// q types into the search box.
	a, cmd := press(a, "q")
	if cmd != nil || a.input != "q" {
		t.Errorf("q should type in search mode, input=%q", a.input)
	}

	a, _ = press(a, "tab")
	_, cmd = press(a, "q")
	if cmd == nil {
		t.Fatal("expected quit command on q in nav mode")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}

	_, cmd = press(newTestApp(t, &fakeFetcher{}), "ctrl+c")
	if cmd == nil {
		t.Fatal("expected quit command on ctrl+c")
	}
}

func TestAppTabTogglesFocus(t *testing.T) {
	a := newTestApp(t, &fakeFetcher{})
	if a.focus != focusSearch {
		t.Fatal("app should start in search focus")
	}
	a, _ = press(a, "tab")
	if a.focus != focusNav {
		t.Error("tab should switch to nav")
	}
	a, _ = press(a, "esc")
	if a.focus != focusSearch {
		t.Error("esc should return to search")
	}
}

func TestAppInitFetchesInitialUsername(t *testing.T) {
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 1)}}
	store := recent.NewStore(recent.NewMemoryBackend(), nil)
	a := NewApp(f, store, Options{Username: " torvalds "})

	var submit *submitMsg
	for _, msg := range collect(a.Init()) {
		if m, ok := msg.(submitMsg); ok {
			submit = &m
		}
	}
	if submit == nil || submit.username != "torvalds" {
		t.Fatalf("expected submitMsg for torvalds, got %+v", submit)
	}

	model, cmd := a.Update(*submit)
	a = model.(App)
	model, _ = a.Update(fetchResult(t, cmd))
	a = model.(App)
	if a.result == nil {
		t.Fatal("expected profile after initial fetch")
	}
}

func TestAppSpinnerStopsWhenIdle(t *testing.T) {
	a := newTestApp(t, &fakeFetcher{})
	_, cmd := a.Update(a.spinner.Tick())
	if cmd != nil {
		t.Error("spinner should not keep ticking when idle")
	}
}

func TestAppShimmerFrameIncrements(t *testing.T) {
	a := newTestApp(t, &fakeFetcher{})
	initial := a.frame

	model, _ := a.Update(shimmerTickMsg{})
	a = model.(App)

	if a.frame != initial+1 {
		t.Errorf("expected frame=%d after shimmerTickMsg, got %d", initial+1, a.frame)
	}
}

func TestAppLayoutFitsTerminal(t *testing.T) {
	termHeight := 30
	f := &fakeFetcher{results: map[string]*domain.ProfileResult{"torvalds": testProfile("torvalds", 7)}}
	a := newTestApp(t, f)
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: termHeight})
	a = load(t, model.(App), "torvalds")

	lines := strings.Split(a.View(), "\n")
	if len(lines) > termHeight {
		t.Errorf("App.View() has %d lines, want <= %d", len(lines), termHeight)
		for i, line := range lines {
			t.Logf("  %2d: %q", i, line)
		}
	}
}
