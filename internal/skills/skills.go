// Package skills ranks the languages found across a user's repositories.
package skills

import (
	"cmp"
	"slices"

	"github.com/naveenspark/ghprofile/pkg/domain"
)

// MaxSkills is the number of languages kept in a ranking.
const MaxSkills = 10

// Compute counts repositories per language and returns the most used first.
// Repositories without a language are skipped. Equal counts keep the order in
// which each language first appeared.
func Compute(repos []domain.Repository) []domain.Skill {
	index := make(map[string]int)
	skills := []domain.Skill{}
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		if i, ok := index[r.Language]; ok {
			skills[i].Count++
			continue
		}
		index[r.Language] = len(skills)
		skills = append(skills, domain.Skill{Language: r.Language, Count: 1})
	}

	slices.SortStableFunc(skills, func(a, b domain.Skill) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(skills) > MaxSkills {
		skills = skills[:MaxSkills]
	}
	return skills
}

// Weight returns s's count as a percentage of the top-ranked count.
func Weight(s domain.Skill, top int) float64 {
	if top <= 0 {
		return 0
	}
	return float64(s.Count) / float64(top) * 100
}

// Size buckets a weight into the three tag sizes.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

// SizeFor returns the tag size for a weight percentage.
func SizeFor(weight float64) Size {
	switch {
	case weight > 80:
		return SizeLarge
	case weight > 50:
		return SizeMedium
	default:
		return SizeSmall
	}
}
