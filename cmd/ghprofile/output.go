package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)
	cmdStyle  = lipgloss.NewStyle().Bold(true)
	descStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa"))
)

func printHelp(w io.Writer) {
	title := titleStyle.Render("G H P R O F I L E")
	tagline := descStyle.Italic(true).Render("Browse GitHub profiles, languages and repositories from the terminal.")

	commands := []struct{ cmd, desc string }{
		{"ghprofile", "Open the profile browser (interactive TUI)"},
		{"ghprofile <username>", "Open the browser and fetch a user"},
		{"ghprofile recent", "List recent searches"},
		{"ghprofile forget", "Clear recent searches"},
		{"ghprofile --version", "Show version"},
		{"ghprofile help", "You are here"},
	}
	env := []struct{ name, desc string }{
		{"GITHUB_TOKEN", "Personal access token for higher rate limits"},
		{"GHPROFILE_HOME", "Config and state directory (default ~/.ghprofile)"},
		{"GHPROFILE_API_URL", "API base URL (default https://api.github.com)"},
		{"GHPROFILE_TIMEOUT", "Per-request timeout, e.g. 10s (default 15s)"},
		{"GHPROFILE_STORE", "Recent-search storage: file or sqlite"},
		{"GHPROFILE_DEBUG", "Set to 1 to log to <home>/debug.log"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprintf(w, "\n  Environment:\n")
	for _, e := range env {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", e.name)), descStyle.Render(e.desc))
	}
	fmt.Fprintln(w)
}

func printRecent(w io.Writer, list []string) {
	fmt.Fprintf(w, "\n  %s\n\n", titleStyle.Render("Recent searches"))
	if len(list) == 0 {
		fmt.Fprintf(w, "  %s\n\n", descStyle.Render("No recent searches."))
		return
	}
	for i, u := range list {
		fmt.Fprintf(w, "    %s  %s\n", keyStyle.Render(fmt.Sprintf("%d", i+1)), u)
	}
	fmt.Fprintln(w)
}

func printForgotten(w io.Writer) {
	fmt.Fprintf(w, "  %s\n", descStyle.Render("Recent searches cleared."))
}
