package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func validConfig() Config {
	return Config{
		ID:     "exp-1",
		Name:   "experiment",
		IsProd: false,
		Phases: []PromptPhase{
			{Name: "clarify", Template: "explain {{userInput}}", OutputVariable: "notes", OutputType: OutputText},
			{Name: "generate", Template: "questions from {{notes}}", OutputType: OutputQuestions},
		},
		Provider: GoogleConfig{Model: "gemini-2.5-flash", Temperature: floatPtr(0.7)},
	}
}

func TestConfigValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestConfigValidate_RequiresPhases(t *testing.T) {
	cfg := validConfig()
	cfg.Phases = nil
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty phases")
	}
}

func TestConfigValidate_NonFinalPhaseNeedsOutputVariable(t *testing.T) {
	cfg := validConfig()
	cfg.Phases[0].OutputVariable = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "outputVariable") {
		t.Fatalf("expected outputVariable error, got %v", err)
	}
}

func TestConfigValidate_FinalPhaseMaySkipOutputVariable(t *testing.T) {
	cfg := validConfig()
	cfg.Phases[1].OutputVariable = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestConfigValidate_BlankPhaseName(t *testing.T) {
	cfg := validConfig()
	cfg.Phases[0].Name = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for blank phase name")
	}
}

func TestGoogleConfigValidate_Bounds(t *testing.T) {
	cases := []struct {
		name string
		cfg  GoogleConfig
		ok   bool
	}{
		{"valid", GoogleConfig{Model: "gemini-2.5-flash", Temperature: floatPtr(1.5), TopP: floatPtr(0.9), MaxOutputTokens: intPtr(2048)}, true},
		{"temperature high", GoogleConfig{Model: "m", Temperature: floatPtr(2.1)}, false},
		{"temperature low", GoogleConfig{Model: "m", Temperature: floatPtr(-0.1)}, false},
		{"topP high", GoogleConfig{Model: "m", TopP: floatPtr(1.01)}, false},
		{"maxOutputTokens zero", GoogleConfig{Model: "m", MaxOutputTokens: intPtr(0)}, false},
		{"maxOutputTokens over", GoogleConfig{Model: "m", MaxOutputTokens: intPtr(65537)}, false},
		{"blank model", GoogleConfig{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestOpenAIConfigValidate_Bounds(t *testing.T) {
	cases := []struct {
		name string
		cfg  OpenAIConfig
		ok   bool
	}{
		{"valid", OpenAIConfig{Model: "gpt-5-mini", ReasoningEffort: "medium", Verbosity: "low", MaxCompletionTokens: intPtr(4096), Temperature: floatPtr(1)}, true},
		{"bad effort", OpenAIConfig{Model: "m", ReasoningEffort: "extreme"}, false},
		{"bad verbosity", OpenAIConfig{Model: "m", Verbosity: "silent"}, false},
		{"tokens over", OpenAIConfig{Model: "m", MaxCompletionTokens: intPtr(128001)}, false},
		{"blank model", OpenAIConfig{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestConfigJSON_RoundTrip(t *testing.T) {
	cfg := validConfig()
	cfg.CreatedAt = time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	cfg.UpdatedAt = cfg.CreatedAt

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Config
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigJSON_ProviderDiscriminant(t *testing.T) {
	data := []byte(`{
		"id": "exp-2",
		"name": "openai experiment",
		"isProd": false,
		"provider": "openai",
		"model": "gpt-5-mini",
		"reasoningEffort": "high",
		"phases": [{"name": "only", "template": "ask about {{userInput}}", "outputType": "questions"}]
	}`)
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	oc, ok := cfg.Provider.(OpenAIConfig)
	if !ok {
		t.Fatalf("expected OpenAIConfig, got %T", cfg.Provider)
	}
	if oc.Model != "gpt-5-mini" || oc.ReasoningEffort != "high" {
		t.Fatalf("unexpected provider config: %#v", oc)
	}
}

func TestConfigJSON_RejectsForeignVariantFields(t *testing.T) {
	// topP belongs to the google variant; on an openai config it is an error.
	data := []byte(`{
		"id": "exp-3",
		"name": "mixed",
		"provider": "openai",
		"model": "gpt-5-mini",
		"topP": 0.5,
		"phases": [{"name": "only", "template": "t {{userInput}}", "outputType": "questions"}]
	}`)
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err == nil {
		t.Fatalf("expected error for foreign variant field")
	}
}

func TestConfigJSON_RejectsUnknownProvider(t *testing.T) {
	data := []byte(`{"id": "x", "name": "x", "provider": "anthropic", "model": "m", "phases": []}`)
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
