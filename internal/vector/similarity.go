package vector

import (
	"math"
)

// CosineSimilarity calculates the cosine similarity between two vectors
// Returns a value between -1 and 1, where 1 means identical direction.
// Vectors of different length or with a zero norm have similarity 0.
func CosineSimilarity(vec1, vec2 []float64) float64 {
	if len(vec1) != len(vec2) {
		return 0
	}

	var dotProduct, norm1, norm2 float64
	for i := 0; i < len(vec1); i++ {
		dotProduct += vec1[i] * vec2[i]
		norm1 += vec1[i] * vec1[i]
		norm2 += vec2[i] * vec2[i]
	}

	if norm1 == 0 || norm2 == 0 {
		return 0
	}

	return dotProduct / math.Sqrt(norm1*norm2)
}

// SimilarityMatrix computes the pairwise cosine similarity of all rows.
// The result is symmetric; the diagonal is 1 for non-zero rows and 0 otherwise.
func SimilarityMatrix(rows [][]float64) [][]float64 {
	n := len(rows)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		if isZero(rows[i]) {
			matrix[i][i] = 0
		} else {
			matrix[i][i] = 1
		}
		for j := i + 1; j < n; j++ {
			sim := CosineSimilarity(rows[i], rows[j])
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}

	return matrix
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
