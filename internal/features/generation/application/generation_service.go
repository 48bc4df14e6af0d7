package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
	"github.com/phrazzld/scry-sub004/internal/features/generation/infrastructure"
	"github.com/phrazzld/scry-sub004/internal/platform/logger"
)

// ClientFactory builds a provider adapter for the given provider variant.
// Injected so tests can substitute a fake adapter without process-global
// state.
type ClientFactory func(ctx context.Context, provider domain.ProviderConfig) (infrastructure.AIClient, error)

// GenerationService is the engine's public surface.
type GenerationService interface {
	// GenerateQuestions runs the production two-phase chain with fallback.
	// It returns an error only for engine misconfiguration (for example,
	// missing credentials); generation-class failures degrade internally
	// and still yield a question set.
	GenerateQuestions(ctx context.Context, topic string) ([]domain.Question, error)

	// ExecuteConfig runs an arbitrary N-phase chain for the experimentation
	// harness. Chain failures are recorded in the result rather than
	// returned; the error return covers invalid configs or inputs only.
	// This operation must stay off any unauthenticated HTTP surface.
	ExecuteConfig(ctx context.Context, cfg domain.Config, input string) (domain.ExecutionResult, error)
}

type generationService struct {
	clients  ClientFactory
	recorder RunRecorder
	log      *logger.Logger
}

// NewGenerationService creates the generation service.
func NewGenerationService(clients ClientFactory, recorder RunRecorder, log *logger.Logger) GenerationService {
	return &generationService{clients: clients, recorder: recorder, log: log}
}

func (s *generationService) GenerateQuestions(ctx context.Context, topic string) ([]domain.Question, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}

	cfg := ProductionConfig()
	client, err := s.clients(ctx, cfg.Provider)
	if err != nil {
		return nil, domain.WrapClassified(fmt.Errorf("failed to create provider client: %w", err))
	}

	start := time.Now()
	questions, tier := s.generateWithFallback(ctx, client, topic)
	s.recorder.RecordRun(RunMetrics{
		Topic:         topic,
		QuestionCount: len(questions),
		Success:       len(questions) > 0,
		Duration:      time.Since(start),
	})
	s.log.Info("questions generated", "topic", topic, "tier", tier, "count", len(questions))
	return questions, nil
}

func (s *generationService) ExecuteConfig(ctx context.Context, cfg domain.Config, input string) (domain.ExecutionResult, error) {
	if err := cfg.Validate(); err != nil {
		return domain.ExecutionResult{}, err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.ExecutionResult{}, fmt.Errorf("input must not be empty")
	}

	client, err := s.clients(ctx, cfg.Provider)
	if err != nil {
		return domain.ExecutionResult{}, domain.WrapClassified(fmt.Errorf("failed to create provider client: %w", err))
	}

	start := time.Now()
	result := domain.ExecutionResult{
		ConfigID:   cfg.ID,
		ConfigName: cfg.Name,
		Input:      input,
		ExecutedAt: start,
	}

	raw, err := NewChainRunner(client, s.log).Run(ctx, cfg.Phases, input)
	result.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		classified := domain.WrapClassified(err)
		result.Errors = append(result.Errors, classified.Error())
		s.recordExecution(input, result)
		return result, nil
	}
	result.RawOutput = raw

	if last := cfg.Phases[len(cfg.Phases)-1]; last.OutputType == domain.OutputQuestions {
		set, perr := domain.ParseQuestionSet(raw)
		if perr != nil {
			result.Errors = append(result.Errors, perr.Error())
		} else {
			questions, violations := domain.ValidateQuestions(set.Questions)
			result.Questions = questions
			result.Errors = append(result.Errors, violations...)
		}
	}

	result.Valid = len(result.Errors) == 0
	s.recordExecution(input, result)
	return result, nil
}

func (s *generationService) recordExecution(input string, result domain.ExecutionResult) {
	s.recorder.RecordRun(RunMetrics{
		Topic:         input,
		QuestionCount: len(result.Questions),
		Success:       result.Successful(),
		Duration:      time.Duration(result.LatencyMs) * time.Millisecond,
	})
}
