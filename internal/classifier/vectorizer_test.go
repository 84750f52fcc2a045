package classifier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "unigrams then bigrams",
			text: "precio del café",
			want: []string{"precio", "del", "cafe", "precio del", "del cafe"},
		},
		{
			name: "single letters are dropped before pairing",
			text: "café y precio",
			want: []string{"cafe", "precio", "cafe precio"},
		},
		{
			name: "punctuation splits tokens",
			text: "¿Cuánto?¡Hola!",
			want: []string{"cuanto", "hola", "cuanto hola"},
		},
		{
			name: "empty",
			text: "  ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze(tt.text))
		})
	}
}

func TestFitVectorizer_SortedVocabularyAndSmoothIDF(t *testing.T) {
	v := fitVectorizer([]string{"precio cafe", "cafe"})

	require.Equal(t, []string{"cafe", "precio", "precio cafe"}, v.terms)
	// cafe appears in both docs, precio in one: idf = ln((1+n)/(1+df)) + 1
	assert.InDelta(t, 1.0, v.idf[v.index["cafe"]], 1e-12)
	assert.InDelta(t, math.Log(3.0/2.0)+1, v.idf[v.index["precio"]], 1e-12)
}

func TestTransform_IsUnitLength(t *testing.T) {
	v := fitVectorizer([]string{"precio del cafe", "hola buenos dias"})

	vec := v.transform("PRECIO del café, precio")
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
	assert.Greater(t, vec[v.index["precio"]], vec[v.index["del"]], "repeated terms weigh more")
}

func TestTransform_OutOfVocabularyIsZero(t *testing.T) {
	v := fitVectorizer([]string{"precio del cafe"})

	vec := v.transform("weather forecast")
	for _, x := range vec {
		assert.Zero(t, x)
	}
	assert.Len(t, vec, v.size())
}
