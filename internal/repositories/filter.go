package repository

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"

	"gig-marketplace.com/gig-marketplace/internal/constants"
)

// Filter is the predicate set understood by Find, Count and Near. Zero
// values are ignored.
type Filter struct {
	Statuses []constants.GigStatus
	// ActiveAt keeps only gigs with expires_at >= ActiveAt.
	ActiveAt *time.Time

	PosterID    string
	ApplicantID string

	Category        string
	PaymentType     string
	Urgency         constants.Urgency
	ExperienceLevel string

	// Skills matches gigs carrying any of the names, case-insensitively.
	Skills []string

	MinRate *float64
	MaxRate *float64

	// LocationText is a substring matched against address, city and state.
	LocationText string

	// TextTerms matches gigs where any term appears in a text-indexed field.
	TextTerms []string
}

var textColumns = []string{
	"title", "description", "category", "sub_category", "skills",
	"location_address", "location_city", "location_state",
}

var locationColumns = []string{"location_address", "location_city", "location_state"}

// UrgencyScoreSQL orders rows the same way constants.UrgencyScore does.
const UrgencyScoreSQL = "CASE urgency WHEN 'urgent' THEN 4 WHEN 'high' THEN 3 WHEN 'low' THEN 1 ELSE 2 END"

func applyFilter(q *gorm.DB, f Filter) *gorm.DB {
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.ActiveAt != nil {
		q = q.Where("expires_at >= ?", *f.ActiveAt)
	}
	if f.PosterID != "" {
		q = q.Where("poster_id = ?", f.PosterID)
	}
	if f.ApplicantID != "" {
		q = q.Where("instr(applications, ?) > 0", jsonPair("applicantId", f.ApplicantID))
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.PaymentType != "" {
		q = q.Where("payment_type = ?", f.PaymentType)
	}
	if f.Urgency != "" {
		q = q.Where("urgency = ?", f.Urgency)
	}
	if f.ExperienceLevel != "" {
		q = q.Where("experience_level = ?", f.ExperienceLevel)
	}
	if f.MinRate != nil {
		q = q.Where("payment_rate >= ?", *f.MinRate)
	}
	if f.MaxRate != nil {
		q = q.Where("payment_rate <= ?", *f.MaxRate)
	}

	if len(f.Skills) > 0 {
		patterns := make([]string, 0, len(f.Skills))
		for _, s := range f.Skills {
			patterns = append(patterns, contains(jsonPair("name", strings.ToLower(strings.TrimSpace(s)))))
		}
		q = anyLike(q, []string{"skills"}, patterns)
	}

	if f.LocationText != "" {
		q = anyLike(q, locationColumns, []string{contains(strings.ToLower(f.LocationText))})
	}

	if len(f.TextTerms) > 0 {
		patterns := make([]string, 0, len(f.TextTerms))
		for _, term := range f.TextTerms {
			patterns = append(patterns, contains(term))
		}
		q = anyLike(q, textColumns, patterns)
	}

	return q
}

// anyLike adds one parenthesised predicate matching when any column is LIKE
// any pattern.
func anyLike(q *gorm.DB, columns, patterns []string) *gorm.DB {
	var (
		parts []string
		args  []interface{}
	)
	for _, p := range patterns {
		for _, c := range columns {
			parts = append(parts, "LOWER("+c+") LIKE ? ESCAPE '\\'")
			args = append(args, p)
		}
	}
	return q.Where("("+strings.Join(parts, " OR ")+")", args...)
}

func contains(s string) string {
	return "%" + escapeLike(s) + "%"
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// jsonPair renders `"key":"value"` exactly as encoding/json writes it inside
// the stored JSON columns.
func jsonPair(key, value string) string {
	v, _ := json.Marshal(value)
	return `"` + key + `":` + string(v)
}
