package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
)

func experimentConfig(id string) domain.Config {
	temp := 0.5
	return domain.Config{
		ID:   id,
		Name: "experiment " + id,
		Phases: []domain.PromptPhase{
			{Name: "only", Template: "ask about {{userInput}}", OutputType: domain.OutputQuestions},
		},
		Provider: domain.GoogleConfig{Model: "gemini-2.5-flash", Temperature: &temp},
	}
}

func TestFileStore_SaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.json")
	store := NewFileStore(path)

	want := experimentConfig("exp-1")
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 config, got %d", len(got))
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_SaveReplacesByID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.json")
	store := NewFileStore(path)

	first := experimentConfig("exp-1")
	if err := store.Save(first); err != nil {
		t.Fatalf("save: %v", err)
	}
	updated := first
	updated.Name = "renamed"
	if err := store.Save(updated); err != nil {
		t.Fatalf("save updated: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Name != "renamed" {
		t.Fatalf("expected replacement by id, got %#v", got)
	}
}

func TestFileStore_RejectsProdConfig(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "configs.json"))
	cfg := experimentConfig("prod-1")
	cfg.IsProd = true
	if err := store.Save(cfg); err == nil {
		t.Fatalf("expected error when saving a production baseline")
	}
}

func TestFileStore_RejectsOverwritingProdEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.json")

	// Seed the file with a production baseline directly.
	seedJSON := `[{"id":"prod-1","name":"baseline","isProd":true,"provider":"google","model":"gemini-2.5-flash",` +
		`"phases":[{"name":"only","template":"ask about {{userInput}}","outputType":"questions"}]}]`
	if err := os.WriteFile(path, []byte(seedJSON), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := NewFileStore(path)
	impostor := experimentConfig("prod-1")
	if err := store.Save(impostor); err == nil {
		t.Fatalf("expected error when overwriting a production baseline entry")
	}
}

func TestFileStore_LoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.yaml")
	yaml := `
- id: exp-yaml
  name: yaml experiment
  provider: openai
  model: gpt-5-mini
  reasoningEffort: low
  phases:
    - name: only
      template: "ask about {{userInput}}"
      outputType: questions
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	configs, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(configs) != 1 {
		t.Fatalf("expected 1 config, got %d", len(configs))
	}
	oc, ok := configs[0].Provider.(domain.OpenAIConfig)
	if !ok {
		t.Fatalf("expected OpenAIConfig, got %T", configs[0].Provider)
	}
	if oc.Model != "gpt-5-mini" || oc.ReasoningEffort != "low" {
		t.Fatalf("unexpected provider config: %#v", oc)
	}
}

func TestFileStore_LoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.json")
	// temperature out of bounds
	bad := `[{"id":"x","name":"x","provider":"google","model":"m","temperature":9,` +
		`"phases":[{"name":"only","template":"t {{userInput}}","outputType":"questions"}]}]`
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := NewFileStore(path).Load(); err == nil {
		t.Fatalf("expected validation error on load")
	}
}
