package recommend

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"movie-recommender/internal/vector"
)

func newDemoScorer(t *testing.T, opts ...Option) *Scorer {
	t.Helper()
	s, err := NewScorer(DemoCatalog(), DemoRatings(), opts...)
	if err != nil {
		t.Fatalf("NewScorer() failed: %v", err)
	}
	return s
}

func TestRecommendDemoTables(t *testing.T) {
	s := newDemoScorer(t)

	rec, err := s.Explain("User1", "The Matrix", 3)
	if err != nil {
		t.Fatalf("Explain() failed: %v", err)
	}

	if rec.Neighbor != "User4" {
		t.Errorf("Expected neighbor User4, got %s", rec.Neighbor)
	}

	expectedLiked := []string{"The Matrix", "John Wick", "Avengers"}
	if !reflect.DeepEqual(rec.Liked, expectedLiked) {
		t.Errorf("Liked = %v, want %v", rec.Liked, expectedLiked)
	}

	expected := []string{"Avengers", "John Wick", "Inception"}
	if got := rec.Titles(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Titles() = %v, want %v", got, expected)
	}

	expectedScores := []float64{1.5, 1.0, 0.5}
	for i, st := range rec.Results {
		if math.Abs(st.Score-expectedScores[i]) > 1e-9 {
			t.Errorf("Score for %s = %v, want %v", st.Title, st.Score, expectedScores[i])
		}
	}

	if rec.Results[0].Bonus != DefaultBonus {
		t.Errorf("Expected Avengers to carry the neighbor bonus, got %v", rec.Results[0].Bonus)
	}
	if rec.Results[2].Bonus != 0 {
		t.Errorf("Expected Inception to carry no bonus, got %v", rec.Results[2].Bonus)
	}
}

func TestRecommendErrors(t *testing.T) {
	s := newDemoScorer(t)

	tests := []struct {
		name     string
		user     string
		movie    string
		wantKind NotFoundKind
	}{
		{name: "Unknown user", user: "Nobody", movie: "The Matrix", wantKind: KindUser},
		{name: "Unknown movie", user: "User1", movie: "Titanic", wantKind: KindMovie},
		{name: "Both unknown reports movie first", user: "Nobody", movie: "Titanic", wantKind: KindMovie},
		{name: "Case sensitive title", user: "User1", movie: "the matrix", wantKind: KindMovie},
		{name: "Case sensitive user", user: "user1", movie: "The Matrix", wantKind: KindUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Recommend(tt.user, tt.movie, 3)
			if err == nil {
				t.Fatalf("Expected error")
			}
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("Expected *NotFoundError, got %T", err)
			}
			if nf.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", nf.Kind, tt.wantKind)
			}
		})
	}
}

func TestRecommendSingleUser(t *testing.T) {
	ratings := Ratings{
		{User: "Solo", Ratings: map[string]float64{"The Matrix": 5}},
	}
	s, err := NewScorer(DemoCatalog(), ratings)
	if err != nil {
		t.Fatalf("NewScorer() failed: %v", err)
	}

	_, err = s.Recommend("Solo", "The Matrix", 3)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("Expected ErrInsufficientData, got %v", err)
	}
	var ide *InsufficientDataError
	if !errors.As(err, &ide) || ide.Users != 1 {
		t.Errorf("Expected InsufficientDataError with 1 user, got %v", err)
	}
}

func TestRecommendNeverReturnsSeed(t *testing.T) {
	s := newDemoScorer(t)

	for _, user := range s.Users() {
		for _, seed := range s.Titles() {
			titles, err := s.Recommend(user, seed, 10)
			if err != nil {
				t.Fatalf("Recommend(%s, %s) failed: %v", user, seed, err)
			}
			for _, title := range titles {
				if title == seed {
					t.Errorf("Recommend(%s, %s) returned the seed: %v", user, seed, titles)
				}
			}
		}
	}
}

func TestRecommendSeedExcludedOnTie(t *testing.T) {
	// Avengers ties The Matrix at the top; The Matrix is first in catalog order
	s := newDemoScorer(t)

	titles, err := s.Recommend("User1", "Avengers", 3)
	if err != nil {
		t.Fatalf("Recommend() failed: %v", err)
	}
	expected := []string{"The Matrix", "John Wick", "Inception"}
	if !reflect.DeepEqual(titles, expected) {
		t.Errorf("Recommend() = %v, want %v", titles, expected)
	}
}

func TestRecommendTopN(t *testing.T) {
	s := newDemoScorer(t)

	tests := []struct {
		name     string
		topN     int
		expected int
	}{
		{name: "One", topN: 1, expected: 1},
		{name: "Default when zero", topN: 0, expected: DefaultTopN},
		{name: "Default when negative", topN: -2, expected: DefaultTopN},
		{name: "All but seed", topN: 5, expected: 5},
		{name: "Larger than catalog", topN: 50, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			titles, err := s.Recommend("User2", "Inception", tt.topN)
			if err != nil {
				t.Fatalf("Recommend() failed: %v", err)
			}
			if len(titles) != tt.expected {
				t.Errorf("Expected %d titles, got %d: %v", tt.expected, len(titles), titles)
			}
		})
	}
}

func TestRecommendIdempotent(t *testing.T) {
	s := newDemoScorer(t)

	first, err := s.Recommend("User3", "Interstellar", 3)
	if err != nil {
		t.Fatalf("Recommend() failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := s.Recommend("User3", "Interstellar", 3)
		if err != nil {
			t.Fatalf("Recommend() failed: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Recommend() not idempotent: %v vs %v", first, again)
		}
	}
}

func TestRecommendNeighborTieKeepsInputOrder(t *testing.T) {
	catalog := Catalog{
		{Title: "A", Genre: "x"},
		{Title: "B", Genre: "y"},
		{Title: "C", Genre: "z"},
	}
	ratings := Ratings{
		{User: "me", Ratings: map[string]float64{"A": 5}},
		{User: "first", Ratings: map[string]float64{"A": 5, "B": 5}},
		{User: "second", Ratings: map[string]float64{"A": 5, "C": 5}},
	}
	s, err := NewScorer(catalog, ratings)
	if err != nil {
		t.Fatalf("NewScorer() failed: %v", err)
	}

	rec, err := s.Explain("me", "A", 2)
	if err != nil {
		t.Fatalf("Explain() failed: %v", err)
	}
	if rec.Neighbor != "first" {
		t.Errorf("Expected tie to resolve to first, got %s", rec.Neighbor)
	}
	if got := rec.Titles(); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("Titles() = %v, want [B C]", got)
	}
}

func TestRecommendOptions(t *testing.T) {
	s := newDemoScorer(t, WithBonus(0), WithLikeThreshold(5))

	rec, err := s.Explain("User1", "The Matrix", 5)
	if err != nil {
		t.Fatalf("Explain() failed: %v", err)
	}
	if !reflect.DeepEqual(rec.Liked, []string{"The Matrix", "Avengers"}) {
		t.Errorf("Liked = %v", rec.Liked)
	}
	for _, st := range rec.Results {
		if st.Bonus != 0 || st.Score != st.ContentScore {
			t.Errorf("Expected no bonus with WithBonus(0), got %+v", st)
		}
	}
}

func TestWordTokenizerChangesContentScores(t *testing.T) {
	s := newDemoScorer(t, WithTokenizer(vector.TokenizeWord))

	sim, ok := s.Snapshot().ContentSimilarity("The Matrix", "Inception")
	if !ok {
		t.Fatalf("Expected both titles to be found")
	}
	// {action, sci, fi} vs {sci, fi, thriller}
	if math.Abs(sim-2.0/3.0) > 1e-9 {
		t.Errorf("ContentSimilarity() = %v, want 2/3", sim)
	}
}

func TestUpdateSwapsSnapshot(t *testing.T) {
	s := newDemoScorer(t)
	before := s.Snapshot()

	ratings := DemoRatings()
	ratings[0].Ratings = map[string]float64{"Inception": 5, "Interstellar": 5}
	if err := s.Update(DemoCatalog(), ratings); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	after := s.Snapshot()
	if after == before || after.Version == before.Version {
		t.Fatalf("Expected a new snapshot after Update")
	}

	rec, err := s.Explain("User1", "The Matrix", 3)
	if err != nil {
		t.Fatalf("Explain() failed: %v", err)
	}
	if rec.Version != after.Version {
		t.Errorf("Expected result from version %s, got %s", after.Version, rec.Version)
	}
	if rec.Neighbor != "User3" {
		t.Errorf("Expected neighbor User3 after update, got %s", rec.Neighbor)
	}
}

func TestUpdateKeepsSnapshotOnError(t *testing.T) {
	s := newDemoScorer(t)
	before := s.Snapshot()

	bad := Ratings{{User: "User1", Ratings: map[string]float64{"Titanic": 5}}}
	err := s.Update(DemoCatalog(), bad)
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("Expected ErrInvalidData, got %v", err)
	}
	if s.Snapshot() != before {
		t.Errorf("Expected failed update to keep the previous snapshot")
	}
}

func TestConcurrentRecommendDuringUpdate(t *testing.T) {
	s := newDemoScorer(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				titles, err := s.Recommend("User1", "The Matrix", 3)
				if err != nil {
					t.Errorf("Recommend() failed: %v", err)
					return
				}
				if len(titles) != 3 {
					t.Errorf("Expected 3 titles, got %v", titles)
					return
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		if err := s.Update(DemoCatalog(), DemoRatings()); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
	}
	wg.Wait()
}

func TestNewScorerRejectsGenreWithoutTerms(t *testing.T) {
	tests := []struct {
		name  string
		genre string
		mode  vector.TokenizerMode
	}{
		{name: "Empty genre", genre: "", mode: vector.TokenizeWhitespace},
		{name: "Blank genre", genre: "   ", mode: vector.TokenizeWhitespace},
		{name: "Single letters in word mode", genre: "x y", mode: vector.TokenizeWord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := Catalog{
				{Title: "A", Genre: "Action"},
				{Title: "B", Genre: tt.genre},
			}
			_, err := NewScorer(catalog, nil, WithTokenizer(tt.mode))
			if !errors.Is(err, ErrInvalidData) {
				t.Fatalf("Expected ErrInvalidData, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != "genre" {
				t.Errorf("Expected genre validation error, got %v", err)
			}
		})
	}
}

func TestContentDiagonalIsOneForAcceptedCatalogs(t *testing.T) {
	for _, mode := range []vector.TokenizerMode{vector.TokenizeWhitespace, vector.TokenizeWord} {
		s := newDemoScorer(t, WithTokenizer(mode))
		for _, title := range s.Titles() {
			sim, _ := s.Snapshot().ContentSimilarity(title, title)
			if sim != 1 {
				t.Errorf("%s: ContentSimilarity(%s, %s) = %v, want 1", mode, title, title, sim)
			}
		}
	}
}

func TestNewScorerRejectsNonFiniteSettings(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "NaN bonus", opt: WithBonus(math.NaN())},
		{name: "Infinite bonus", opt: WithBonus(math.Inf(1))},
		{name: "NaN threshold", opt: WithLikeThreshold(math.NaN())},
		{name: "Infinite threshold", opt: WithLikeThreshold(math.Inf(-1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScorer(DemoCatalog(), DemoRatings(), tt.opt)
			if !errors.Is(err, ErrInvalidData) {
				t.Errorf("Expected ErrInvalidData, got %v", err)
			}
		})
	}
}

func TestRecommendUserWithoutRatingsFallsBackToFirstOtherUser(t *testing.T) {
	ratings := append(DemoRatings(), UserRatings{User: "Newbie"})
	s, err := NewScorer(DemoCatalog(), ratings)
	if err != nil {
		t.Fatalf("NewScorer() failed: %v", err)
	}

	rec, err := s.Explain("Newbie", "The Matrix", 3)
	if err != nil {
		t.Fatalf("Explain() failed: %v", err)
	}
	if rec.Neighbor != "User1" {
		t.Errorf("Expected neighbor User1, got %s", rec.Neighbor)
	}
	if rec.NeighborSimilarity != 0 {
		t.Errorf("Expected similarity 0, got %v", rec.NeighborSimilarity)
	}

	expected := []string{"Avengers", "John Wick", "The Dark Knight"}
	if got := rec.Titles(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Titles() = %v, want %v", got, expected)
	}
}
