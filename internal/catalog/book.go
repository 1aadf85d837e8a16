package catalog

// Category labels a book with one of the fixed shelf categories.
type Category string

const (
	CategoryLiterature Category = "literature"
	CategoryTechnology Category = "technology"
	CategoryHistory    Category = "history"
	CategoryScience    Category = "science"
	CategoryPhilosophy Category = "philosophy"
	CategoryBiography  Category = "biography"
	CategoryFiction    Category = "fiction"
	CategoryBusiness   Category = "business"
)

// Book is a catalog record. Records are immutable after load.
type Book struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Category        Category `json:"category"`
	Description     string   `json:"description"`
	Cover           string   `json:"cover"`
	Rating          float64  `json:"rating"`
	PublishYear     int      `json:"publishYear"`
	Pages           int      `json:"pages"`
	ISBN            string   `json:"isbn"`
	Tags            []string `json:"tags"`
	AuthorBio       string   `json:"authorBio"`
	TableOfContents []string `json:"tableOfContents"`
}
