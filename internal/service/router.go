package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Andrela2025/Agro-Conecta/internal/classifier"
	"github.com/Andrela2025/Agro-Conecta/internal/dataset"
	"github.com/Andrela2025/Agro-Conecta/internal/model"
)

// DefaultUserName is used by the greeting when no name is supplied
const DefaultUserName = "amigo"

// Predictor maps an utterance to an intent
type Predictor interface {
	Decide(utterance string) classifier.Decision
}

// Answer is the routed response to one utterance
type Answer struct {
	Intent     model.Intent
	Confidence float64
	Text       string
}

// Router dispatches utterances to intent resolvers
type Router struct {
	predictor   Predictor
	store       *dataset.Store
	resolvers   map[model.Intent]Resolver
	defaultName string
	log         logrus.FieldLogger
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithDefaultName sets the greeting name used when the caller supplies none
func WithDefaultName(name string) RouterOption {
	return func(r *Router) {
		if name = strings.TrimSpace(name); name != "" {
			r.defaultName = name
		}
	}
}

// WithResolver overrides or adds the resolver for one intent
func WithResolver(intent model.Intent, resolver Resolver) RouterOption {
	return func(r *Router) {
		r.resolvers[intent] = resolver
	}
}

// WithLogger sets the logger used for resolver failures
func WithLogger(log logrus.FieldLogger) RouterOption {
	return func(r *Router) {
		r.log = log
	}
}

// NewRouter creates a router over a trained predictor and a loaded store
func NewRouter(predictor Predictor, store *dataset.Store, opts ...RouterOption) *Router {
	r := &Router{
		predictor:   predictor,
		store:       store,
		resolvers:   DefaultResolvers(),
		defaultName: DefaultUserName,
		log:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Answer classifies the utterance and runs the matching resolver. It never
// fails: unknown intents and resolver errors produce the fallback text.
func (r *Router) Answer(utterance, userName string) Answer {
	if strings.TrimSpace(utterance) == "" {
		return Answer{Intent: model.IntentUnknown, Text: FallbackAnswer}
	}

	decision := r.predictor.Decide(utterance)
	answer := Answer{Intent: decision.Intent, Confidence: decision.Confidence}

	resolve, ok := r.resolvers[decision.Intent]
	if !ok {
		r.log.WithField("intent", decision.Intent.String()).Warn("no resolver for intent")
		answer.Text = FallbackAnswer
		return answer
	}

	name := strings.TrimSpace(userName)
	if name == "" {
		name = r.defaultName
	}

	text, err := resolve(Query{Utterance: utterance, UserName: name}, r.store)
	if err != nil {
		var empty *EmptyDataError
		if errors.As(err, &empty) {
			answer.Text = EmptyDataAnswer(empty.Topic)
			return answer
		}
		r.log.WithError(err).WithField("intent", decision.Intent.String()).Error("resolver failed")
		answer.Text = FallbackAnswer
		return answer
	}

	answer.Text = text
	return answer
}

// Ask answers an API request and reports how long it took
func (r *Router) Ask(req *model.AskRequest) *model.AskResponse {
	startTime := time.Now()

	answer := r.Answer(req.Utterance, req.Name)

	r.log.WithFields(logrus.Fields{
		"intent":     answer.Intent.String(),
		"confidence": answer.Confidence,
	}).Debug("question answered")

	return &model.AskResponse{
		Answer:     answer.Text,
		Intent:     answer.Intent,
		Confidence: answer.Confidence,
		Took:       time.Since(startTime).Milliseconds(),
	}
}
