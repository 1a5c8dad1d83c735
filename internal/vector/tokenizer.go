package vector

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// TokenizerMode selects how genre strings are split into terms
type TokenizerMode string

const (
	// TokenizeWhitespace splits on whitespace, so "Sci-Fi" stays one term
	TokenizeWhitespace TokenizerMode = "whitespace"
	// TokenizeWord extracts runs of two or more word characters, so "Sci-Fi" becomes "sci" and "fi"
	TokenizeWord TokenizerMode = "word"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// ParseTokenizerMode converts a config value into a TokenizerMode.
// An empty string selects the whitespace tokenizer.
func ParseTokenizerMode(s string) (TokenizerMode, error) {
	switch TokenizerMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", TokenizeWhitespace:
		return TokenizeWhitespace, nil
	case TokenizeWord:
		return TokenizeWord, nil
	default:
		return "", fmt.Errorf("unknown tokenizer mode %q", s)
	}
}

// Tokenize splits text into case-folded terms
func Tokenize(text string, mode TokenizerMode) []string {
	// Casers keep state, so each call gets its own
	folded := cases.Fold().String(text)

	if mode == TokenizeWord {
		return wordPattern.FindAllString(folded, -1)
	}
	return strings.Fields(folded)
}

// Vocabulary maps every term seen across a set of documents to a column index
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary builds a vocabulary from tokenized documents.
// Terms are indexed in the order they are first seen.
func NewVocabulary(docs [][]string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	for _, doc := range docs {
		for _, term := range doc {
			if _, ok := v.index[term]; !ok {
				v.index[term] = len(v.terms)
				v.terms = append(v.terms, term)
			}
		}
	}
	return v
}

// Terms returns the vocabulary in column order
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Size returns the number of distinct terms
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// Vectorize counts term occurrences. Unknown terms are ignored.
func (v *Vocabulary) Vectorize(tokens []string) []float64 {
	vec := make([]float64, len(v.terms))
	for _, token := range tokens {
		if i, ok := v.index[token]; ok {
			vec[i]++
		}
	}
	return vec
}

// TermFrequencyMatrix tokenizes every text and returns one count vector per text
// over the shared vocabulary.
func TermFrequencyMatrix(texts []string, mode TokenizerMode) ([][]float64, *Vocabulary) {
	docs := make([][]string, len(texts))
	for i, text := range texts {
		docs[i] = Tokenize(text, mode)
	}

	vocab := NewVocabulary(docs)
	rows := make([][]float64, len(docs))
	for i, doc := range docs {
		rows[i] = vocab.Vectorize(doc)
	}
	return rows, vocab
}
