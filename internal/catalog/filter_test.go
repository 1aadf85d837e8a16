package catalog

import "testing"

func ptrCategory(c Category) *Category { return &c }
func ptrFloat(f float64) *float64      { return &f }

func TestMatchesEmptyFiltersAlwaysPasses(t *testing.T) {
	for _, b := range SeedBooks() {
		if !Matches(b, Filters{}) {
			t.Fatalf("book %q should match empty filters", b.ID)
		}
	}
}

func TestMatchesOwnTitleCaseInsensitive(t *testing.T) {
	books := append(SeedBooks(), Book{
		ID:     "x",
		Title:  "The Go Programming Language",
		Author: "Donovan",
		Tags:   []string{"Go"},
	})
	for _, b := range books {
		if !Matches(b, Filters{Query: b.Title}) {
			t.Fatalf("book %q should match its own title", b.ID)
		}
	}
	upper := Filters{Query: "THE GO PROGRAMMING"}
	if !Matches(books[len(books)-1], upper) {
		t.Fatalf("query matching should be case-insensitive")
	}
}

func TestMatchesQueryAgainstAuthorAndTags(t *testing.T) {
	b := Book{
		ID:     "x",
		Title:  "untitled",
		Author: "史蒂芬·霍金",
		Tags:   []string{"物理学", "宇宙学"},
	}
	if !Matches(b, Filters{Query: "霍金"}) {
		t.Fatalf("expected author substring match")
	}
	if !Matches(b, Filters{Query: "宇宙"}) {
		t.Fatalf("expected tag substring match")
	}
	if Matches(b, Filters{Query: "黑洞"}) {
		t.Fatalf("unexpected match on absent text")
	}
}

func TestMatchesClausesCombineWithAND(t *testing.T) {
	b := Book{
		ID:          "2",
		Title:       "时间简史续编",
		Author:      "史蒂芬·霍金",
		Category:    CategoryScience,
		Rating:      4.9,
		PublishYear: 2022,
		Tags:        []string{"物理学"},
	}

	all := Filters{
		Query:     "时间",
		Category:  ptrCategory(CategoryScience),
		MinRating: ptrFloat(4.85),
		YearRange: &YearRange{Lo: 2020, Hi: 2023},
	}
	if !Matches(b, all) {
		t.Fatalf("expected all clauses to pass")
	}

	failing := []Filters{
		{Query: "时间", Category: ptrCategory(CategoryHistory)},
		{Query: "时间", MinRating: ptrFloat(4.95)},
		{Query: "时间", YearRange: &YearRange{Lo: 2023, Hi: 2024}},
		{Query: "不存在", Category: ptrCategory(CategoryScience)},
	}
	for i, f := range failing {
		if Matches(b, f) {
			t.Fatalf("filters %d should fail one clause", i)
		}
	}
}

func TestMatchesBoundsAreInclusive(t *testing.T) {
	b := Book{ID: "x", Title: "t", Rating: 4.5, PublishYear: 2022}
	if !Matches(b, Filters{MinRating: ptrFloat(4.5)}) {
		t.Fatalf("minRating bound should be inclusive")
	}
	if !Matches(b, Filters{YearRange: &YearRange{Lo: 2022, Hi: 2022}}) {
		t.Fatalf("year bounds should be inclusive")
	}
}
