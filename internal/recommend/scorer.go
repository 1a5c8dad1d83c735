package recommend

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync/atomic"

	"movie-recommender/internal/logging"
	"movie-recommender/internal/vector"
)

// Scorer ranks movies for a (user, seed movie) pair by blending genre
// similarity with a bonus for titles the user's closest neighbor liked.
type Scorer struct {
	tokenizer     vector.TokenizerMode
	likeThreshold float64
	bonus         float64

	snapshot atomic.Pointer[Snapshot]
}

// Option configures a Scorer
type Option func(*Scorer)

// WithTokenizer selects how genre strings are split into terms
func WithTokenizer(mode vector.TokenizerMode) Option {
	return func(s *Scorer) { s.tokenizer = mode }
}

// WithLikeThreshold sets the minimum rating that counts as "liked".
// NaN or infinite values make NewScorer fail.
func WithLikeThreshold(threshold float64) Option {
	return func(s *Scorer) { s.likeThreshold = threshold }
}

// WithBonus sets the score added to titles the neighbor liked.
// NaN or infinite values make NewScorer fail.
func WithBonus(bonus float64) Option {
	return func(s *Scorer) { s.bonus = bonus }
}

// ScoredTitle is one ranked entry with its score breakdown
type ScoredTitle struct {
	Title        string
	ContentScore float64
	Bonus        float64
	Score        float64
}

// Recommendation is the full result of a recommend call
type Recommendation struct {
	User               string
	Seed               string
	Neighbor           string
	NeighborSimilarity float64
	Liked              []string
	Results            []ScoredTitle
	Version            string
}

// Titles returns the recommended titles in rank order
func (r *Recommendation) Titles() []string {
	out := make([]string, len(r.Results))
	for i, st := range r.Results {
		out[i] = st.Title
	}
	return out
}

// NewScorer validates the tables and precomputes the first snapshot
func NewScorer(catalog Catalog, ratings Ratings, opts ...Option) (*Scorer, error) {
	s := &Scorer{
		tokenizer:     vector.TokenizeWhitespace,
		likeThreshold: DefaultLikeThreshold,
		bonus:         DefaultBonus,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !isFinite(s.likeThreshold) {
		return nil, &ValidationError{Field: "like threshold", Value: strconv.FormatFloat(s.likeThreshold, 'g', -1, 64), Reason: "must be a finite number"}
	}
	if !isFinite(s.bonus) {
		return nil, &ValidationError{Field: "bonus", Value: strconv.FormatFloat(s.bonus, 'g', -1, 64), Reason: "must be a finite number"}
	}

	if err := s.Update(catalog, ratings); err != nil {
		return nil, err
	}
	return s, nil
}

// Update rebuilds both similarity matrices and swaps them in as one snapshot.
// On error the current snapshot stays in place.
func (s *Scorer) Update(catalog Catalog, ratings Ratings) error {
	snap, err := BuildSnapshot(catalog, ratings, s.tokenizer)
	if err != nil {
		logging.Error("Snapshot build failed: %v", err)
		return fmt.Errorf("failed to build snapshot: %w", err)
	}

	s.snapshot.Store(snap)
	logging.Info("Snapshot %s built: %d movies, %d users, %d genre terms",
		snap.Version, len(snap.catalog), len(snap.users), snap.vocabulary.Size())
	return nil
}

// Snapshot returns the snapshot currently served
func (s *Scorer) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Titles returns the catalog titles of the current snapshot
func (s *Scorer) Titles() []string {
	return s.Snapshot().Titles()
}

// Users returns the user names of the current snapshot
func (s *Scorer) Users() []string {
	return s.Snapshot().Users()
}

// Recommend returns up to topN titles for user based on seedMovie.
// topN <= 0 selects DefaultTopN.
func (s *Scorer) Recommend(user, seedMovie string, topN int) ([]string, error) {
	rec, err := s.Explain(user, seedMovie, topN)
	if err != nil {
		return nil, err
	}
	return rec.Titles(), nil
}

// Explain is Recommend with the score breakdown and the chosen neighbor
func (s *Scorer) Explain(user, seedMovie string, topN int) (*Recommendation, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	// One load per call so the whole computation sees a single version
	snap := s.snapshot.Load()

	seedIdx, ok := snap.titleIndex[seedMovie]
	if !ok {
		return nil, &NotFoundError{Kind: KindMovie, Name: seedMovie}
	}
	userIdx, ok := snap.userIndex[user]
	if !ok {
		return nil, &NotFoundError{Kind: KindUser, Name: user}
	}
	if len(snap.users) < 2 {
		return nil, &InsufficientDataError{Users: len(snap.users)}
	}

	neighborIdx := mostSimilarUser(snap.userSim, userIdx)

	var liked []string
	likedSet := make([]bool, len(snap.catalog))
	for t, value := range snap.ratings[neighborIdx] {
		if value >= s.likeThreshold {
			likedSet[t] = true
			liked = append(liked, snap.catalog[t].Title)
		}
	}

	scored := make([]ScoredTitle, 0, len(snap.catalog))
	for t, m := range snap.catalog {
		content := snap.contentSim[seedIdx][t]
		bonus := 0.0
		if likedSet[t] {
			bonus = s.bonus
		}
		scored = append(scored, ScoredTitle{
			Title:        m.Title,
			ContentScore: content,
			Bonus:        bonus,
			Score:        content + bonus,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	results := make([]ScoredTitle, 0, topN)
	for _, st := range scored {
		if len(results) == topN {
			break
		}
		if st.Title == seedMovie {
			continue
		}
		results = append(results, st)
	}

	rec := &Recommendation{
		User:               user,
		Seed:               seedMovie,
		Neighbor:           snap.users[neighborIdx],
		NeighborSimilarity: snap.userSim[userIdx][neighborIdx],
		Liked:              liked,
		Results:            results,
		Version:            snap.Version,
	}

	logging.Debug("Recommend [%s] user=%s seed=%s neighbor=%s (%.3f) results=%d",
		snap.Version, user, seedMovie, rec.Neighbor, rec.NeighborSimilarity, len(results))
	return rec, nil
}

// mostSimilarUser ranks every other user by similarity to userIdx.
// Ties keep input order.
func mostSimilarUser(userSim [][]float64, userIdx int) int {
	others := make([]int, 0, len(userSim)-1)
	for v := range userSim {
		if v != userIdx {
			others = append(others, v)
		}
	}

	row := userSim[userIdx]
	sort.SliceStable(others, func(i, j int) bool {
		return row[others[i]] > row[others[j]]
	})
	return others[0]
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
