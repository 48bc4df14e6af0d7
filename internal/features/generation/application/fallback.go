package application

import (
	"context"
	"fmt"

	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
	"github.com/phrazzld/scry-sub004/internal/features/generation/infrastructure"
)

// FallbackTier names the degradation strategy that produced a result.
type FallbackTier string

const (
	TierTwoPhase FallbackTier = "TWO_PHASE"
	TierDirect   FallbackTier = "DIRECT"
	TierStatic   FallbackTier = "STATIC_FALLBACK"
)

// generateWithFallback walks the degradation tiers in order. A failure
// anywhere in the two-phase chain moves straight to the direct single-call
// strategy; a later-phase failure never re-runs the decomposition, because
// the provider has just demonstrated it is unavailable for this class of
// call. There is no backoff and no re-invocation of the same phase: the
// policy is degrade, not retry. The static tier cannot fail, so a question
// set always comes back.
func (s *generationService) generateWithFallback(ctx context.Context, client infrastructure.AIClient, topic string) ([]domain.Question, FallbackTier) {
	raw, err := NewChainRunner(client, s.log).Run(ctx, ProductionPhases(), topic)
	if err == nil {
		questions, perr := s.parseQuestions(raw)
		if perr == nil {
			return questions, TierTwoPhase
		}
		err = perr
	}
	s.logDegradation("two-phase chain failed, trying direct generation", topic, err)

	raw, err = s.generateDirect(ctx, client, topic)
	if err == nil {
		questions, perr := s.parseQuestions(raw)
		if perr == nil {
			return questions, TierDirect
		}
		err = perr
	}
	s.logDegradation("direct generation failed, serving static fallback", topic, err)

	return StaticFallback(topic), TierStatic
}

// generateDirect asks the model to decompose and generate in one structured
// call.
func (s *generationService) generateDirect(ctx context.Context, client infrastructure.AIClient, topic string) (string, error) {
	prompt, err := RenderTemplate(directTemplate, map[string]string{"userInput": topic})
	if err != nil {
		return "", err
	}
	return client.GenerateQuestionSet(ctx, prompt)
}

// parseQuestions validates the raw structured output. Contract violations
// are logged but the flagged items are kept; only an unparseable or empty
// set counts as a failure worth degrading over.
func (s *generationService) parseQuestions(raw string) ([]domain.Question, error) {
	set, err := domain.ParseQuestionSet(raw)
	if err != nil {
		return nil, err
	}
	questions, violations := domain.ValidateQuestions(set.Questions)
	if len(violations) > 0 {
		s.log.Warn("question set has contract violations", "violations", violations)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("provider returned an empty question set")
	}
	return questions, nil
}

// logDegradation tags the failure with its classified kind. Credential
// problems log at error severity so they reach operational alerting; the
// degradation path is taken either way.
func (s *generationService) logDegradation(msg, topic string, err error) {
	classified := domain.WrapClassified(err)
	if classified.Kind == domain.KindAPIKey {
		s.log.Error(msg, "topic", topic, "kind", classified.Kind, "error", classified.Err)
		return
	}
	s.log.Warn(msg, "topic", topic, "kind", classified.Kind, "error", classified.Err)
}
