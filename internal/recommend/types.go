package recommend

// Movie is a catalog entry. Genre holds space-separated tags.
type Movie struct {
	Title string `yaml:"title"`
	Genre string `yaml:"genre"`
}

// Catalog is the ordered set of recommendable movies.
// Order fixes index positions and breaks ranking ties.
type Catalog []Movie

// UserRatings holds one user's ratings keyed by title.
// A missing title and a rating of 0 both mean "not rated".
type UserRatings struct {
	User    string             `yaml:"user"`
	Ratings map[string]float64 `yaml:"ratings"`
}

// Ratings is the ordered rating table. Order breaks neighbor ties.
type Ratings []UserRatings

const (
	DefaultTopN          = 3
	DefaultLikeThreshold = 4.0
	DefaultBonus         = 0.5

	MinRating = 0.0
	MaxRating = 5.0
)

// DemoCatalog returns the built-in six movie catalog
func DemoCatalog() Catalog {
	return Catalog{
		{Title: "The Matrix", Genre: "Action Sci-Fi"},
		{Title: "John Wick", Genre: "Action Thriller"},
		{Title: "Inception", Genre: "Sci-Fi Thriller"},
		{Title: "The Dark Knight", Genre: "Action Crime"},
		{Title: "Interstellar", Genre: "Sci-Fi Drama"},
		{Title: "Avengers", Genre: "Action Sci-Fi"},
	}
}

// DemoRatings returns the built-in ratings for User1..User4
func DemoRatings() Ratings {
	return Ratings{
		{User: "User1", Ratings: map[string]float64{
			"The Matrix": 5, "John Wick": 4, "The Dark Knight": 5, "Avengers": 4,
		}},
		{User: "User2", Ratings: map[string]float64{
			"The Matrix": 4, "Inception": 5, "The Dark Knight": 4, "Interstellar": 4,
		}},
		{User: "User3", Ratings: map[string]float64{
			"Inception": 4, "The Dark Knight": 4, "Interstellar": 5,
		}},
		{User: "User4", Ratings: map[string]float64{
			"The Matrix": 5, "John Wick": 4, "Avengers": 5,
		}},
	}
}
