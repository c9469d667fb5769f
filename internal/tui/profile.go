package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/naveenspark/ghprofile/internal/skills"
	"github.com/naveenspark/ghprofile/pkg/domain"
)

const (
	noBio         = "No bio available"
	notSpecified  = "Not specified"
	noLanguageMsg = "No language data available from repositories"
)

// profileView renders the profile panel: identity, details, counters and bars.
func profileView(p domain.Profile, barsFilled bool, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %s  %s\n", selectedStyle.Render(p.DisplayName()), accentStyle.Render("@"+p.Login))
	if p.AvatarURL != "" {
		fmt.Fprintf(&b, "  %s\n", metaStyle.Render(p.AvatarURL))
	}

	bio := p.Bio
	if strings.TrimSpace(bio) == "" {
		bio = noBio
	}
	fmt.Fprintf(&b, "  %s\n\n", normalStyle.Render(bio))

	detail := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			value = notSpecified
		}
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(fmt.Sprintf("%-9s", label)), normalStyle.Render(value))
	}
	detail("Location", p.Location)
	detail("Company", p.Company)
	if p.Blog != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(fmt.Sprintf("%-9s", "Blog")), accentStyle.Render(p.BlogLabel()))
	}
	if p.Twitter != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(fmt.Sprintf("%-9s", "Twitter")), accentStyle.Render("@"+p.Twitter))
	}

	counters := []string{
		selectedStyle.Render(formatCount(p.Followers)) + " " + dimStyle.Render("followers"),
		selectedStyle.Render(formatCount(p.Following)) + " " + dimStyle.Render("following"),
		selectedStyle.Render(formatCount(p.PublicRepos)) + " " + dimStyle.Render("repos"),
	}
	fmt.Fprintf(&b, "\n  %s\n\n", strings.Join(counters, metaStyle.Render("  ·  ")))

	bar := func(label string, ratio float64, value string) {
		fmt.Fprintf(&b, "  %s %s %s\n", dimStyle.Render(fmt.Sprintf("%-9s", label)), renderBar(ratio, barsFilled), normalStyle.Render(value))
	}
	bar("Repos", p.RepoRatio(), formatCount(p.PublicRepos))
	bar("Gists", p.GistRatio(), formatCount(p.PublicGists))
	bar("Age", p.AgeRatio(now), formatCount(p.AccountAgeDays(now))+" days")

	return b.String()
}

// skillsView renders the language tags, sized and colored by weight.
func skillsView(list []domain.Skill) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", sectionHeaderStyle.Render("Skills"))
	if len(list) == 0 {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(noLanguageMsg))
		return b.String()
	}

	top := list[0].Count
	tags := make([]string, 0, len(list))
	for _, s := range list {
		size := skills.SizeFor(skills.Weight(s, top))
		label := fmt.Sprintf("%s %d", s.Language, s.Count)
		tags = append(tags, skillStyle(s.Language, size).Render(label))
	}
	fmt.Fprintf(&b, "  %s\n", strings.Join(tags, "  "))
	return b.String()
}
