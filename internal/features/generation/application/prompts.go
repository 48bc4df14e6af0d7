package application

import (
	"fmt"
	"time"

	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
)

// decompositionTemplate asks the model to break the topic into atomic,
// individually testable knowledge units before any questions are written.
const decompositionTemplate = `You are a learning-science expert preparing material for spaced-repetition study.

Topic: {{userInput}}

Break this topic down into its atomic knowledge units: the smallest discrete
facts, definitions, distinctions, and relationships a learner must hold to
understand the topic. List each unit on its own line. Do not write quiz
questions yet. Do not add commentary before or after the list.`

// generationTemplate turns the decomposition into a schema-conformant
// question set.
const generationTemplate = `You are writing quiz questions for spaced-repetition study of the topic "{{userInput}}".

The topic decomposes into these atomic knowledge units:
{{atomicConcepts}}

Write one question per knowledge unit, up to 20 questions. Each question is
either multiple-choice (2 to 4 options) or true-false (options exactly
["True", "False"]). The correctAnswer must be copied verbatim from the
options. Add a short explanation for each answer.

Return ONLY JSON of the shape {"questions": [...]} matching the declared
schema. No markdown fences, no commentary.`

// directTemplate is the degraded single-call strategy: decompose and
// generate in one structured request.
const directTemplate = `You are writing quiz questions for spaced-repetition study.

Topic: {{userInput}}

First identify the topic's atomic knowledge units (the smallest discrete
testable facts), then write one question per unit, up to 20 questions. Each
question is either multiple-choice (2 to 4 options) or true-false (options
exactly ["True", "False"]). The correctAnswer must be copied verbatim from
the options. Add a short explanation for each answer.

Return ONLY JSON of the shape {"questions": [...]} matching the declared
schema. No markdown fences, no commentary.`

// ProductionPhases is the two-phase chain the public entry point runs:
// atomic decomposition as free text, then structured question generation.
func ProductionPhases() []domain.PromptPhase {
	return []domain.PromptPhase{
		{
			Name:           "atomic-decomposition",
			Template:       decompositionTemplate,
			OutputVariable: "atomicConcepts",
			OutputType:     domain.OutputText,
		},
		{
			Name:       "question-generation",
			Template:   generationTemplate,
			OutputType: domain.OutputQuestions,
		},
	}
}

// ProductionConfig is the read-only baseline configuration the production
// flow executes and the experimentation harness compares against.
func ProductionConfig() domain.Config {
	temperature := 0.7
	created := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	return domain.Config{
		ID:     "prod-two-phase",
		Name:   "Production two-phase chain",
		IsProd: true,
		Phases: ProductionPhases(),
		Provider: domain.GoogleConfig{
			Model:       "gemini-2.5-flash",
			Temperature: &temperature,
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// StaticFallback is the deterministic offline tier. It always succeeds and
// needs no network, so the public entry point can guarantee a non-empty
// result for any generation-class failure.
func StaticFallback(topic string) []domain.Question {
	return []domain.Question{
		{
			Question: fmt.Sprintf("What is %s?", topic),
			Type:     domain.TypeMultipleChoice,
			Options: []string{
				fmt.Sprintf("A concept or subject known as %s", topic),
				"A unit of measurement",
				"A chemical element",
				"A historical treaty",
			},
			CorrectAnswer: fmt.Sprintf("A concept or subject known as %s", topic),
			Explanation:   "Placeholder question generated while the AI service was unavailable.",
		},
		{
			Question:      fmt.Sprintf("%s is a subject that can be studied in more depth.", topic),
			Type:          domain.TypeTrueFalse,
			Options:       []string{"True", "False"},
			CorrectAnswer: "True",
			Explanation:   "Placeholder question generated while the AI service was unavailable.",
		},
	}
}
