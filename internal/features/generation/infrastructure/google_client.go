package infrastructure

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
	"github.com/phrazzld/scry-sub004/internal/platform/logger"
)

// googleClient adapts the Gemini API to AIClient.
type googleClient struct {
	client *genai.Client
	cfg    domain.GoogleConfig
	log    *logger.Logger
}

// NewGoogleClient creates a Gemini-backed adapter, requires GEMINI_API_KEY.
func NewGoogleClient(ctx context.Context, cfg domain.GoogleConfig, log *logger.Logger) (AIClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing Gemini API key (GEMINI_API_KEY is not set)")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &googleClient{client: client, cfg: cfg, log: log}, nil
}

func (c *googleClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), c.generateConfig(nil))
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *googleClient) GenerateQuestionSet(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), c.generateConfig(questionSetResponseSchema()))
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *googleClient) generateConfig(schema *genai.Schema) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{}
	if c.cfg.Temperature != nil {
		gc.Temperature = genai.Ptr(float32(*c.cfg.Temperature))
	}
	if c.cfg.TopP != nil {
		gc.TopP = genai.Ptr(float32(*c.cfg.TopP))
	}
	if c.cfg.MaxOutputTokens != nil {
		gc.MaxOutputTokens = int32(*c.cfg.MaxOutputTokens)
	}
	if schema != nil {
		gc.ResponseMIMEType = "application/json"
		gc.ResponseSchema = schema
	}
	return gc
}

func questionSetResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question": {Type: genai.TypeString},
						"type": {
							Type: genai.TypeString,
							Enum: []string{string(domain.TypeMultipleChoice), string(domain.TypeTrueFalse)},
						},
						"options": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
						"correctAnswer": {Type: genai.TypeString},
						"explanation":   {Type: genai.TypeString},
					},
					Required: []string{"question", "options", "correctAnswer"},
				},
			},
		},
		Required: []string{"questions"},
	}
}
