package classifier

import (
	"math"
	"regexp"
	"sort"

	"github.com/Andrela2025/Agro-Conecta/internal/utils"
)

// tokens are runs of two or more letters, digits or underscores
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// vectorizer turns text into L2-normalized TF-IDF vectors over the unigrams
// and bigrams seen at fit time.
type vectorizer struct {
	index map[string]int
	terms []string
	idf   []float64
}

// analyze lowercases, folds accents and returns unigrams followed by bigrams
func analyze(text string) []string {
	tokens := tokenPattern.FindAllString(utils.FoldAccents(text), -1)
	grams := make([]string, 0, 2*len(tokens))
	grams = append(grams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+" "+tokens[i+1])
	}
	return grams
}

// fitVectorizer builds the vocabulary and smoothed idf weights from docs
func fitVectorizer(docs []string) *vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, g := range analyze(doc) {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			df[g]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v := &vectorizer{
		index: make(map[string]int, len(terms)),
		terms: terms,
		idf:   make([]float64, len(terms)),
	}
	for i, term := range terms {
		v.index[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v
}

// size returns the vocabulary size
func (v *vectorizer) size() int {
	return len(v.terms)
}

// transform projects text onto the fitted vocabulary. Unknown n-grams are
// ignored; text with no known n-gram yields the zero vector.
func (v *vectorizer) transform(text string) []float64 {
	vec := make([]float64, len(v.terms))
	for _, g := range analyze(text) {
		if i, ok := v.index[g]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i, tf := range vec {
		if tf == 0 {
			continue
		}
		vec[i] = tf * v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
