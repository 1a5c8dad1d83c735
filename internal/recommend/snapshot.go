package recommend

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"movie-recommender/internal/vector"
)

// Snapshot is an immutable, fully precomputed view of one catalog/ratings version.
// It is shared read-only between concurrent callers.
type Snapshot struct {
	Version string
	BuiltAt time.Time

	catalog    Catalog
	users      []string
	titleIndex map[string]int
	userIndex  map[string]int

	// ratings is dense: users x titles in catalog column order, missing = 0
	ratings    [][]float64
	contentSim [][]float64
	userSim    [][]float64
	vocabulary *vector.Vocabulary
}

// BuildSnapshot validates the tables and precomputes both similarity matrices
func BuildSnapshot(catalog Catalog, ratings Ratings, mode vector.TokenizerMode) (*Snapshot, error) {
	if err := validate(catalog, ratings, mode); err != nil {
		return nil, err
	}

	s := &Snapshot{
		Version:    uuid.New().String(),
		BuiltAt:    time.Now(),
		catalog:    make(Catalog, len(catalog)),
		users:      make([]string, len(ratings)),
		titleIndex: make(map[string]int, len(catalog)),
		userIndex:  make(map[string]int, len(ratings)),
	}
	copy(s.catalog, catalog)

	genres := make([]string, len(catalog))
	for i, m := range catalog {
		s.titleIndex[m.Title] = i
		genres[i] = m.Genre
	}

	genreRows, vocab := vector.TermFrequencyMatrix(genres, mode)
	s.vocabulary = vocab
	s.contentSim = vector.SimilarityMatrix(genreRows)

	s.ratings = make([][]float64, len(ratings))
	for u, ur := range ratings {
		s.users[u] = ur.User
		s.userIndex[ur.User] = u

		row := make([]float64, len(catalog))
		for title, value := range ur.Ratings {
			row[s.titleIndex[title]] = value
		}
		s.ratings[u] = row
	}
	s.userSim = vector.SimilarityMatrix(s.ratings)

	return s, nil
}

func validate(catalog Catalog, ratings Ratings, mode vector.TokenizerMode) error {
	if len(catalog) == 0 {
		return &ValidationError{Field: "catalog", Reason: "must contain at least one movie"}
	}

	titles := make(map[string]struct{}, len(catalog))
	for _, m := range catalog {
		if strings.TrimSpace(m.Title) == "" {
			return &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		if _, dup := titles[m.Title]; dup {
			return &ValidationError{Field: "title", Value: m.Title, Reason: "duplicate title"}
		}
		titles[m.Title] = struct{}{}

		// A genre without terms would have a zero similarity row
		if len(vector.Tokenize(m.Genre, mode)) == 0 {
			return &ValidationError{Field: "genre", Value: m.Genre, Reason: "no genre terms (title " + m.Title + ")"}
		}
	}

	users := make(map[string]struct{}, len(ratings))
	for _, ur := range ratings {
		if strings.TrimSpace(ur.User) == "" {
			return &ValidationError{Field: "user", Reason: "must not be empty"}
		}
		if _, dup := users[ur.User]; dup {
			return &ValidationError{Field: "user", Value: ur.User, Reason: "duplicate user"}
		}
		users[ur.User] = struct{}{}

		for title, value := range ur.Ratings {
			if _, ok := titles[title]; !ok {
				return &ValidationError{Field: "rating title", Value: title, Reason: "not in catalog (user " + ur.User + ")"}
			}
			if math.IsNaN(value) || value < MinRating || value > MaxRating {
				return &ValidationError{
					Field:  "rating",
					Value:  strconv.FormatFloat(value, 'g', -1, 64),
					Reason: "must be between 0 and 5 (user " + ur.User + ", title " + title + ")",
				}
			}
		}
	}

	return nil
}

// Titles returns the catalog titles in catalog order
func (s *Snapshot) Titles() []string {
	out := make([]string, len(s.catalog))
	for i, m := range s.catalog {
		out[i] = m.Title
	}
	return out
}

// Catalog returns a copy of the catalog
func (s *Snapshot) Catalog() Catalog {
	out := make(Catalog, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Users returns the user names in input order
func (s *Snapshot) Users() []string {
	out := make([]string, len(s.users))
	copy(out, s.users)
	return out
}

// Terms returns the genre vocabulary
func (s *Snapshot) Terms() []string {
	return s.vocabulary.Terms()
}

// ContentSimilarity returns the genre similarity of two titles
func (s *Snapshot) ContentSimilarity(a, b string) (float64, bool) {
	i, ok := s.titleIndex[a]
	if !ok {
		return 0, false
	}
	j, ok := s.titleIndex[b]
	if !ok {
		return 0, false
	}
	return s.contentSim[i][j], true
}

// UserSimilarity returns the rating similarity of two users
func (s *Snapshot) UserSimilarity(a, b string) (float64, bool) {
	i, ok := s.userIndex[a]
	if !ok {
		return 0, false
	}
	j, ok := s.userIndex[b]
	if !ok {
		return 0, false
	}
	return s.userSim[i][j], true
}
