package catalog

import "strings"

// YearRange is an inclusive [Lo, Hi] bound on publish year.
type YearRange struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Filters narrows catalog results. A nil/empty field means no constraint
// on that field; present fields combine with logical AND.
type Filters struct {
	Query     string     `json:"query"`
	Category  *Category  `json:"category,omitempty"`
	MinRating *float64   `json:"minRating,omitempty"`
	YearRange *YearRange `json:"yearRange,omitempty"`
}

// Matches reports whether the book passes every active filter clause.
// Matching is case-insensitive via simple lowercase folding; no
// locale-aware collation.
func Matches(b Book, f Filters) bool {
	matchesQuery := true
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		matchesQuery = strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q)
		if !matchesQuery {
			for _, tag := range b.Tags {
				if strings.Contains(strings.ToLower(tag), q) {
					matchesQuery = true
					break
				}
			}
		}
	}

	matchesCategory := f.Category == nil || b.Category == *f.Category
	matchesRating := f.MinRating == nil || b.Rating >= *f.MinRating
	matchesYear := f.YearRange == nil ||
		(b.PublishYear >= f.YearRange.Lo && b.PublishYear <= f.YearRange.Hi)

	return matchesQuery && matchesCategory && matchesRating && matchesYear
}
