package application

import (
	"context"

	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
	"github.com/phrazzld/scry-sub004/internal/features/generation/infrastructure"
)

// fakeAIClient scripts the provider adapter. Prompts are recorded so tests
// can assert on variable threading.
type fakeAIClient struct {
	generateText        func(prompt string) (string, error)
	generateQuestionSet func(prompt string) (string, error)

	textPrompts     []string
	questionPrompts []string
}

func (f *fakeAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.textPrompts = append(f.textPrompts, prompt)
	if f.generateText == nil {
		return "", nil
	}
	return f.generateText(prompt)
}

func (f *fakeAIClient) GenerateQuestionSet(ctx context.Context, prompt string) (string, error) {
	f.questionPrompts = append(f.questionPrompts, prompt)
	if f.generateQuestionSet == nil {
		return "", nil
	}
	return f.generateQuestionSet(prompt)
}

func fakeFactory(client infrastructure.AIClient) ClientFactory {
	return func(ctx context.Context, provider domain.ProviderConfig) (infrastructure.AIClient, error) {
		return client, nil
	}
}

type fakeRecorder struct {
	runs []RunMetrics
}

func (r *fakeRecorder) RecordRun(m RunMetrics) {
	r.runs = append(r.runs, m)
}

// twoQuestionJSON is a minimal conformant structured output.
const twoQuestionJSON = `{"questions":[
	{"question":"What engine runs JavaScript in Chrome?","type":"multiple-choice","options":["V8","SpiderMonkey","JavaScriptCore"],"correctAnswer":"V8"},
	{"question":"JavaScript is statically typed.","type":"true-false","options":["True","False"],"correctAnswer":"False"}
]}`
