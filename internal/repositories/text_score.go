package repository

import (
	"strings"
	"unicode"

	model "gig-marketplace.com/gig-marketplace/pkg/models"
)

type weightedField struct {
	weight float64
	text   func(g *model.Gig) string
}

// Title counts most, then skills, category, description, and the address
// fields least.
var scoredFields = []weightedField{
	{10, func(g *model.Gig) string { return g.Title }},
	{5, skillText},
	{4, func(g *model.Gig) string { return g.Category + " " + g.SubCategory }},
	{2, func(g *model.Gig) string { return g.Description }},
	{1, func(g *model.Gig) string { return g.Location.Address }},
	{1, func(g *model.Gig) string { return g.Location.City }},
	{1, func(g *model.Gig) string { return g.Location.State }},
}

func skillText(g *model.Gig) string {
	parts := make([]string, 0, len(g.Skills)*2)
	for _, s := range g.Skills {
		parts = append(parts, s.Name, s.Category)
	}
	return strings.Join(parts, " ")
}

// Terms splits a free-text query into lower-cased, de-duplicated terms.
func Terms(q string) []string {
	fields := strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

// TextScore sums the weights of every field each term occurs in. Zero means
// the gig does not match the query at all.
func TextScore(g *model.Gig, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}

	var score float64
	for _, f := range scoredFields {
		text := strings.ToLower(f.text(g))
		if text == "" {
			continue
		}
		for _, term := range terms {
			if strings.Contains(text, term) {
				score += f.weight
			}
		}
	}
	return score
}
