package application

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
	"github.com/phrazzld/scry-sub004/internal/features/generation/infrastructure"
	"github.com/phrazzld/scry-sub004/internal/platform/logger"
)

// PhaseError reports which phase of a chain failed and why. The chain stops
// at the first failure; there are no partial results.
type PhaseError struct {
	Phase int
	Name  string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("phase %d (%s) failed: %v", e.Phase, e.Name, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// ChainRunner walks an ordered list of phases, threading variables between
// them. The runner holds no cross-run state; concurrent runs are independent.
type ChainRunner struct {
	client infrastructure.AIClient
	log    *logger.Logger
}

func NewChainRunner(client infrastructure.AIClient, log *logger.Logger) *ChainRunner {
	return &ChainRunner{client: client, log: log}
}

// Run executes the phases in declared order against an environment seeded
// with {userInput: input}. Each phase renders its template, calls the
// provider in the mode its output type declares, and binds its output for
// downstream phases. The last phase's output is the chain's result.
func (r *ChainRunner) Run(ctx context.Context, phases []domain.PromptPhase, input string) (string, error) {
	vars := map[string]string{"userInput": input}
	log := r.log.With("phaseCount", len(phases))

	var output string
	for i, phase := range phases {
		prompt, err := RenderTemplate(phase.Template, vars)
		if err != nil {
			return "", &PhaseError{Phase: i, Name: phase.Name, Err: err}
		}

		phaseStart := time.Now()
		switch phase.OutputType {
		case domain.OutputText:
			output, err = r.client.GenerateText(ctx, prompt)
		case domain.OutputQuestions:
			output, err = r.client.GenerateQuestionSet(ctx, prompt)
		default:
			err = fmt.Errorf("unknown output type %q", phase.OutputType)
		}
		if err != nil {
			return "", &PhaseError{Phase: i, Name: phase.Name, Err: err}
		}

		if phase.OutputVariable != "" {
			vars[phase.OutputVariable] = output
		}
		log.Debug("phase completed",
			"phase", phase.Name,
			"index", i,
			"durationMs", time.Since(phaseStart).Milliseconds(),
			"outputChars", len(output),
		)
	}
	return output, nil
}
