// Package classifier maps free-text utterances to intents with a TF-IDF
// vectorizer and a multinomial logistic regression fitted once at startup.
//
// A trained Model is immutable; Predict and Decide are safe for concurrent use.
package classifier

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"

	"github.com/Andrela2025/Agro-Conecta/internal/model"
)

// ErrCorpus is returned when the training corpus cannot produce a model
var ErrCorpus = errors.New("invalid training corpus")

// Options controls training
type Options struct {
	// C is the inverse L2 regularization strength
	C float64
	// MaxIterations caps the optimizer's major iterations
	MaxIterations int
}

// DefaultOptions returns the settings used by the service
func DefaultOptions() Options {
	return Options{C: 10, MaxIterations: 500}
}

// Decision is a prediction together with the winning class probability
type Decision struct {
	Intent     model.Intent `json:"intent"`
	Confidence float64      `json:"confidence"`
}

// Model is a fitted vectorizer plus softmax weights
type Model struct {
	vec     *vectorizer
	labels  []model.Intent
	weights [][]float64 // one row per label
	bias    []float64
}

// Train fits a model on the corpus. Training starts from all-zero weights and
// uses no randomness, so the same corpus and options give the same model.
func Train(corpus []TrainingExample, opts Options) (*Model, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("%w: corpus is empty", ErrCorpus)
	}
	if opts.C <= 0 {
		opts.C = DefaultOptions().C
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultOptions().MaxIterations
	}

	labels := distinctLabels(corpus)
	if len(labels) < 2 {
		return nil, fmt.Errorf("%w: need at least two labels, got %d", ErrCorpus, len(labels))
	}
	labelIndex := make(map[model.Intent]int, len(labels))
	for i, l := range labels {
		labelIndex[l] = i
	}

	docs := make([]string, len(corpus))
	for i, ex := range corpus {
		docs[i] = ex.Utterance
	}
	vec := fitVectorizer(docs)

	xs := make([]sparseRow, len(corpus))
	ys := make([]int, len(corpus))
	for i, ex := range corpus {
		xs[i] = toSparse(vec.transform(ex.Utterance))
		ys[i] = labelIndex[ex.Label]
	}

	obj := &objective{xs: xs, ys: ys, k: len(labels), d: vec.size(), c: opts.C}
	problem := optimize.Problem{
		Func: func(theta []float64) float64 { return obj.eval(theta, nil) },
		Grad: func(grad, theta []float64) { obj.eval(theta, grad) },
	}
	settings := &optimize.Settings{
		MajorIterations:   opts.MaxIterations,
		GradientThreshold: 1e-6,
	}

	result, err := optimize.Minimize(problem, make([]float64, obj.k*(obj.d+1)), settings, &optimize.LBFGS{})
	if result == nil {
		return nil, fmt.Errorf("train classifier: %w", err)
	}
	if err != nil {
		// the last location is still a usable model
		logrus.WithError(err).Warn("classifier optimizer stopped early")
	}

	m := &Model{
		vec:     vec,
		labels:  labels,
		weights: make([][]float64, obj.k),
		bias:    make([]float64, obj.k),
	}
	for k := 0; k < obj.k; k++ {
		row := result.X[k*(obj.d+1) : (k+1)*(obj.d+1)]
		m.weights[k] = append([]float64(nil), row[:obj.d]...)
		m.bias[k] = row[obj.d]
	}

	logrus.WithFields(logrus.Fields{
		"examples":   len(corpus),
		"labels":     len(labels),
		"vocabulary": vec.size(),
		"iterations": result.Stats.MajorIterations,
		"loss":       result.F,
		"status":     result.Status.String(),
	}).Debug("classifier trained")

	return m, nil
}

// Predict returns the highest scoring intent. It never returns IntentUnknown.
func (m *Model) Predict(utterance string) model.Intent {
	return m.Decide(utterance).Intent
}

// Decide returns the highest scoring intent and its softmax probability.
// Ties go to the first label in name order.
func (m *Model) Decide(utterance string) Decision {
	scores := m.scores(m.vec.transform(utterance))

	best := 0
	for k := 1; k < len(scores); k++ {
		if scores[k] > scores[best] {
			best = k
		}
	}

	lse := logSumExp(scores)
	return Decision{
		Intent:     m.labels[best],
		Confidence: math.Exp(scores[best] - lse),
	}
}

// Labels returns the trained labels in name order
func (m *Model) Labels() []model.Intent {
	return append([]model.Intent(nil), m.labels...)
}

// VocabularySize returns the number of n-gram features
func (m *Model) VocabularySize() int {
	return m.vec.size()
}

func (m *Model) scores(x []float64) []float64 {
	out := make([]float64, len(m.labels))
	for k, w := range m.weights {
		s := m.bias[k]
		for j, v := range x {
			if v != 0 {
				s += w[j] * v
			}
		}
		out[k] = s
	}
	return out
}

func distinctLabels(corpus []TrainingExample) []model.Intent {
	seen := make(map[model.Intent]struct{})
	var labels []model.Intent
	for _, ex := range corpus {
		if _, ok := seen[ex.Label]; ok {
			continue
		}
		seen[ex.Label] = struct{}{}
		labels = append(labels, ex.Label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].String() < labels[j].String()
	})
	return labels
}

func logSumExp(xs []float64) float64 {
	maxV := math.Inf(-1)
	for _, x := range xs {
		if x > maxV {
			maxV = x
		}
	}
	var sum float64
	for _, x := range xs {
		sum += math.Exp(x - maxV)
	}
	return maxV + math.Log(sum)
}
