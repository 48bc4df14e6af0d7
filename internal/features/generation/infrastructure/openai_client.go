package infrastructure

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
	"github.com/phrazzld/scry-sub004/internal/platform/logger"
)

// openAIClient adapts the OpenAI chat completions API to AIClient.
type openAIClient struct {
	client *openai.Client
	cfg    domain.OpenAIConfig
	log    *logger.Logger
}

// NewOpenAIClient creates an OpenAI-backed adapter, requires OPENAI_API_KEY.
func NewOpenAIClient(cfg domain.OpenAIConfig, log *logger.Logger) (AIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key (OPENAI_API_KEY is not set)")
	}
	return &openAIClient{client: openai.NewClient(apiKey), cfg: cfg, log: log}, nil
}

func (c *openAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.request(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openAIClient) GenerateQuestionSet(ctx context.Context, prompt string) (string, error) {
	req := c.request(prompt)
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   "question_set",
			Schema: questionSetSchema(),
		},
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openAIClient) request(prompt string) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if c.cfg.Temperature != nil {
		req.Temperature = float32(*c.cfg.Temperature)
	}
	if c.cfg.MaxCompletionTokens != nil {
		req.MaxCompletionTokens = *c.cfg.MaxCompletionTokens
	}
	if c.cfg.ReasoningEffort != "" {
		req.ReasoningEffort = c.cfg.ReasoningEffort
	}
	if c.cfg.Verbosity != "" {
		req.Verbosity = c.cfg.Verbosity
	}
	return req
}

// questionSetSchema is the wire contract for structured generation. The
// "type" field is not required; a missing type is defaulted during
// validation rather than rejected.
func questionSetSchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"questions": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"question": {Type: jsonschema.String},
						"type": {
							Type: jsonschema.String,
							Enum: []string{string(domain.TypeMultipleChoice), string(domain.TypeTrueFalse)},
						},
						"options": {
							Type:  jsonschema.Array,
							Items: &jsonschema.Definition{Type: jsonschema.String},
						},
						"correctAnswer": {Type: jsonschema.String},
						"explanation":   {Type: jsonschema.String},
					},
					Required: []string{"question", "options", "correctAnswer"},
				},
			},
		},
		Required: []string{"questions"},
	}
}
