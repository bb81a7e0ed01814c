// Package assistant answers course questions: it routes each query to a
// redirect, a verbatim syllabus excerpt, or a model completion, and
// renders the reply text.
package assistant

import (
	"context"
	"time"

	"github.com/garyellow/syllabus-assistant-go/internal/analytics"
	"github.com/garyellow/syllabus-assistant-go/internal/ctxutil"
	"github.com/garyellow/syllabus-assistant-go/internal/document"
	domerrors "github.com/garyellow/syllabus-assistant-go/internal/errors"
	"github.com/garyellow/syllabus-assistant-go/internal/genai"
	"github.com/garyellow/syllabus-assistant-go/internal/intent"
	"github.com/garyellow/syllabus-assistant-go/internal/logger"
	"github.com/garyellow/syllabus-assistant-go/internal/metrics"
	"github.com/garyellow/syllabus-assistant-go/internal/rag"
	"github.com/garyellow/syllabus-assistant-go/internal/sentry"
	"github.com/garyellow/syllabus-assistant-go/internal/stringutil"
	"github.com/garyellow/syllabus-assistant-go/internal/syllabus"
)

// Routing labels reported to analytics and metrics.
const (
	LabelRedirect      = "EBO_ESSAY_ASSISTANT"
	LabelDeterministic = "DETERMINISTIC_DUE"
	LabelModel         = "MODEL"
	LabelGeneral       = "GENERAL_ASSISTANT"
)

// SnapshotSource provides the current syllabus. Implemented by *document.Store.
type SnapshotSource interface {
	Snapshot(ctx context.Context) *document.Snapshot
}

// Answer is the reply to one question.
type Answer struct {
	Text     string
	RoutedTo string
	Decision intent.Decision
}

// Options wires a Service.
type Options struct {
	Documents SnapshotSource
	Completer genai.Completer // nil when no credential is configured
	Provider  genai.Provider  // configured provider, used in the missing-credential message
	// CredentialEnv names the env key that would enable the completer.
	CredentialEnv string
	Ranker        *rag.SectionRanker
	Composer      *Composer
	Reporter      *analytics.Reporter
	Metrics       *metrics.Metrics
	Logger        *logger.Logger
}

// Service runs the answer pipeline. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	docs          SnapshotSource
	completer     genai.Completer
	provider      genai.Provider
	credentialEnv string
	ranker        *rag.SectionRanker
	composer      *Composer
	reporter      *analytics.Reporter
	metrics       *metrics.Metrics
	logger        *logger.Logger
}

// NewService creates a Service.
func NewService(opts Options) *Service {
	provider := opts.Provider
	if provider == "" {
		provider = genai.ProviderOpenAI
	}
	return &Service{
		docs:          opts.Documents,
		completer:     opts.Completer,
		provider:      provider,
		credentialEnv: opts.CredentialEnv,
		ranker:        opts.Ranker,
		composer:      opts.Composer,
		reporter:      opts.Reporter,
		metrics:       opts.Metrics,
		logger:        opts.Logger.WithModule("assistant"),
	}
}

// Answer answers query.
//
// Errors are limited to a blank query (domerrors.ErrMissingQuery) and a
// generative answer without a completion credential
// (domerrors.ErrMissingCredential). Completion failures become the
// UnavailableMessage reply.
func (s *Service) Answer(ctx context.Context, query string) (*Answer, error) {
	q := stringutil.NormalizeQuery(query)
	if q == "" {
		return nil, domerrors.ErrMissingQuery
	}

	decision := intent.Classify(q)
	log := s.logger.WithFields(map[string]any{
		"route":  decision.Route.String(),
		"entity": decision.Entity.String(),
	})
	log.DebugContext(ctx, "Classified query")

	var (
		body  string
		label string
		err   error
	)
	switch decision.Route {
	case intent.RouteRedirect:
		body, label = s.composer.Redirect(decision.Entity), LabelRedirect
	case intent.RouteDeterministic:
		body, label, err = s.answerDeterministic(ctx, q, decision.Entity)
	default:
		body, label, err = s.answerGenerative(ctx, q, decision.Entity, s.docs.Snapshot(ctx))
	}
	if err != nil {
		return nil, err
	}

	answer := &Answer{
		Text:     s.composer.WithDisclaimer(body),
		RoutedTo: label,
		Decision: decision,
	}

	s.reporter.Report(ctxutil.PreserveTracing(ctx), analytics.Event{
		ResponseText: answer.Text,
		QueryText:    query,
		RoutedTo:     label,
	})
	return answer, nil
}

func (s *Service) answerDeterministic(ctx context.Context, q string, entity intent.Entity) (string, string, error) {
	snap := s.docs.Snapshot(ctx)
	selected := syllabus.SelectSections(snap.Sections, entity)
	if len(selected) == 0 {
		s.metrics.RecordExtraction("no_sections")
		return s.answerGenerative(ctx, q, entity, snap)
	}

	for _, section := range selected {
		scope := syllabus.ExtensionScope(snap.Sections, section, entity)
		block, ok := syllabus.ExtractDueBlock(section.Text(), scope)
		if !ok {
			continue
		}
		s.metrics.RecordExtraction("hit")
		return s.composer.Deterministic(entity, block, section.ReferenceLinks), LabelDeterministic, nil
	}

	s.metrics.RecordExtraction("miss")
	s.logger.WithField("entity", entity.String()).
		DebugContext(ctx, "No due statement found, falling back to completion")
	return s.answerGenerative(ctx, q, entity, snap)
}

func (s *Service) answerGenerative(ctx context.Context, q string, entity intent.Entity, snap *document.Snapshot) (string, string, error) {
	selected := syllabus.SelectSections(snap.Sections, entity)

	var (
		label           string
		syllabusContext string
		sectionLinks    []string
	)
	if len(selected) > 0 {
		label = LabelModel
		syllabusContext = s.ranker.Context(q, selected, "")
		for _, sec := range selected {
			sectionLinks = append(sectionLinks, sec.ReferenceLinks...)
		}
	} else {
		label = LabelGeneral
		if s.ranker.Fits(snap.Text) {
			syllabusContext = snap.Text
		} else {
			syllabusContext = s.ranker.Context(q, snap.Sections, snap.Text)
		}
	}

	if s.completer == nil {
		return "", label, domerrors.NewMissingCredentialError(s.credentialEnv,
			"Missing "+s.provider.DisplayName()+" API key")
	}

	start := time.Now()
	reply, err := s.completer.Complete(ctx, syllabusContext, q)
	duration := time.Since(start).Seconds()

	if err != nil {
		s.metrics.RecordCompletion(s.completer.Provider().String(), "error", duration)
		s.logger.WithError(err).
			WithField("routed_to", label).
			WithField("transient", genai.IsTransient(err)).
			ErrorContext(ctx, "Completion failed")
		sentry.CaptureException(ctx, err, map[string]string{
			"routed_to": label,
			"provider":  s.completer.Provider().String(),
		})
		return UnavailableMessage, label, nil
	}

	if stringutil.IsBlank(reply) {
		s.metrics.RecordCompletion(s.completer.Provider().String(), "empty", duration)
		return NoResponseMessage, label, nil
	}

	s.metrics.RecordCompletion(s.completer.Provider().String(), "success", duration)
	return s.composer.Generative(reply, sectionLinks), label, nil
}
