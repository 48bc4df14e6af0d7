package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Provider discriminates the provider-specific half of a Config.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderOpenAI Provider = "openai"
)

// PhaseOutput declares what a phase asks the provider for.
type PhaseOutput string

const (
	// OutputText is an unconstrained free-text completion.
	OutputText PhaseOutput = "text"
	// OutputQuestions is a structured completion constrained to the
	// question-set schema.
	OutputQuestions PhaseOutput = "questions"
)

// PromptPhase is one templated prompt plus one provider call in a chain.
type PromptPhase struct {
	Name           string      `json:"name"`
	Template       string      `json:"template"`
	OutputVariable string      `json:"outputVariable,omitempty"`
	OutputType     PhaseOutput `json:"outputType"`
}

// Validate checks a single phase. Every phase except the last must bind its
// output to a variable for downstream phases.
func (p PromptPhase) Validate(last bool) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("phase name must not be blank")
	}
	if strings.TrimSpace(p.Template) == "" {
		return fmt.Errorf("phase %q: template must not be blank", p.Name)
	}
	switch p.OutputType {
	case OutputText, OutputQuestions:
	default:
		return fmt.Errorf("phase %q: unknown output type %q", p.Name, p.OutputType)
	}
	if !last && strings.TrimSpace(p.OutputVariable) == "" {
		return fmt.Errorf("phase %q: outputVariable is required on non-final phases", p.Name)
	}
	return nil
}

// ProviderConfig is the provider-specific half of a Config. The two
// implementations form a closed union; the adapter factory switches
// exhaustively over them.
type ProviderConfig interface {
	Provider() Provider
	ModelName() string
	Validate() error
}

// GoogleConfig carries Gemini generation parameters.
type GoogleConfig struct {
	Model           string   `json:"model"`
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
}

func (c GoogleConfig) Provider() Provider { return ProviderGoogle }
func (c GoogleConfig) ModelName() string  { return c.Model }

func (c GoogleConfig) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("google config: model must not be blank")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("google config: temperature %v out of range [0,2]", *c.Temperature)
	}
	if c.MaxOutputTokens != nil && (*c.MaxOutputTokens < 1 || *c.MaxOutputTokens > 65536) {
		return fmt.Errorf("google config: maxOutputTokens %d out of range [1,65536]", *c.MaxOutputTokens)
	}
	if c.TopP != nil && (*c.TopP < 0 || *c.TopP > 1) {
		return fmt.Errorf("google config: topP %v out of range [0,1]", *c.TopP)
	}
	return nil
}

// OpenAIConfig carries OpenAI generation parameters.
type OpenAIConfig struct {
	Model               string   `json:"model"`
	ReasoningEffort     string   `json:"reasoningEffort,omitempty"`
	Verbosity           string   `json:"verbosity,omitempty"`
	MaxCompletionTokens *int     `json:"maxCompletionTokens,omitempty"`
	Temperature         *float64 `json:"temperature,omitempty"`
}

func (c OpenAIConfig) Provider() Provider { return ProviderOpenAI }
func (c OpenAIConfig) ModelName() string  { return c.Model }

func (c OpenAIConfig) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("openai config: model must not be blank")
	}
	switch c.ReasoningEffort {
	case "", "minimal", "low", "medium", "high":
	default:
		return fmt.Errorf("openai config: invalid reasoningEffort %q", c.ReasoningEffort)
	}
	switch c.Verbosity {
	case "", "low", "medium", "high":
	default:
		return fmt.Errorf("openai config: invalid verbosity %q", c.Verbosity)
	}
	if c.MaxCompletionTokens != nil && (*c.MaxCompletionTokens < 1 || *c.MaxCompletionTokens > 128000) {
		return fmt.Errorf("openai config: maxCompletionTokens %d out of range [1,128000]", *c.MaxCompletionTokens)
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("openai config: temperature %v out of range [0,2]", *c.Temperature)
	}
	return nil
}

// Config is one named prompt-chain configuration. Production configs
// (IsProd) are read-only baselines; the store refuses to overwrite them.
type Config struct {
	ID        string
	Name      string
	IsProd    bool
	Phases    []PromptPhase
	Provider  ProviderConfig
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate reports whether the config as a whole is executable: phases are
// present and individually valid, and the provider parameters are in bounds.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("config name must not be blank")
	}
	if len(c.Phases) == 0 {
		return fmt.Errorf("config %q: at least one phase is required", c.Name)
	}
	for i, phase := range c.Phases {
		if err := phase.Validate(i == len(c.Phases)-1); err != nil {
			return fmt.Errorf("config %q: %w", c.Name, err)
		}
	}
	if c.Provider == nil {
		return fmt.Errorf("config %q: provider config is required", c.Name)
	}
	if err := c.Provider.Validate(); err != nil {
		return fmt.Errorf("config %q: %w", c.Name, err)
	}
	return nil
}

// configHead is the provider-independent part of a Config on the wire. The
// provider-specific fields sit beside these at the top level, keyed by the
// "provider" discriminant.
type configHead struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	IsProd    bool          `json:"isProd"`
	Phases    []PromptPhase `json:"phases"`
	Provider  Provider      `json:"provider"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

var headKeys = map[string]bool{
	"id": true, "name": true, "isProd": true, "phases": true,
	"provider": true, "createdAt": true, "updatedAt": true,
}

// UnmarshalJSON decodes the tagged union strictly: after the shared fields
// are stripped, every remaining key must belong to the declared provider
// variant. Fields of the other variant are a validation error, not noise.
func (c *Config) UnmarshalJSON(data []byte) error {
	var head configHead
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	rest := make(map[string]json.RawMessage, len(all))
	for k, v := range all {
		if !headKeys[k] {
			rest[k] = v
		}
	}
	restJSON, err := json.Marshal(rest)
	if err != nil {
		return err
	}

	var provider ProviderConfig
	switch head.Provider {
	case ProviderGoogle:
		var g GoogleConfig
		if err := strictUnmarshal(restJSON, &g); err != nil {
			return fmt.Errorf("google provider fields: %w", err)
		}
		provider = g
	case ProviderOpenAI:
		var o OpenAIConfig
		if err := strictUnmarshal(restJSON, &o); err != nil {
			return fmt.Errorf("openai provider fields: %w", err)
		}
		provider = o
	default:
		return fmt.Errorf("unknown provider %q", head.Provider)
	}

	c.ID = head.ID
	c.Name = head.Name
	c.IsProd = head.IsProd
	c.Phases = head.Phases
	c.Provider = provider
	c.CreatedAt = head.CreatedAt
	c.UpdatedAt = head.UpdatedAt
	return nil
}

// MarshalJSON flattens the provider variant's fields to the top level next
// to the shared fields, mirroring UnmarshalJSON.
func (c Config) MarshalJSON() ([]byte, error) {
	if c.Provider == nil {
		return nil, fmt.Errorf("config %q: provider config is required", c.Name)
	}
	head := configHead{
		ID:        c.ID,
		Name:      c.Name,
		IsProd:    c.IsProd,
		Phases:    c.Phases,
		Provider:  c.Provider.Provider(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	merged := map[string]json.RawMessage{}

	headJSON, err := json.Marshal(head)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(headJSON, &merged); err != nil {
		return nil, err
	}

	providerJSON, err := json.Marshal(c.Provider)
	if err != nil {
		return nil, err
	}
	var providerFields map[string]json.RawMessage
	if err := json.Unmarshal(providerJSON, &providerFields); err != nil {
		return nil, err
	}
	for k, v := range providerFields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func strictUnmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
