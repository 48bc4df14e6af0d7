package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phrazzld/scry-sub004/internal/features/generation/domain"
)

// Store defines the interface for experiment configuration management.
type Store interface {
	Load() ([]domain.Config, error)
	Save(cfg domain.Config) error
}

// fileStore keeps experiment configs in a single JSON or YAML file, decided
// by the file extension.
type fileStore struct {
	path string
}

// NewFileStore creates a file-backed Store.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

// Load reads every config from the backing file.
func (s *fileStore) Load() ([]domain.Config, error) {
	absPath, err := filepath.Abs(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", s.path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", absPath, err)
	}

	if isYAML(absPath) {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s from YAML: %w", absPath, err)
		}
	}

	var configs []domain.Config
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configs from %s: %w", absPath, err)
	}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config in %s: %w", absPath, err)
		}
	}
	return configs, nil
}

// Save writes cfg into the backing file, replacing any config with the same
// ID. Production configs are read-only baselines: persisting changes to one
// is a usage error, not something to merge around.
func (s *fileStore) Save(cfg domain.Config) error {
	if cfg.IsProd {
		return fmt.Errorf("config %q is a production baseline and cannot be modified", cfg.Name)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	configs, err := s.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		configs = nil
	}

	replaced := false
	for i, existing := range configs {
		if existing.ID == cfg.ID {
			if existing.IsProd {
				return fmt.Errorf("config %q is a production baseline and cannot be overwritten", existing.Name)
			}
			configs[i] = cfg
			replaced = true
			break
		}
	}
	if !replaced {
		configs = append(configs, cfg)
	}

	absPath, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", s.path, err)
	}

	data, err := json.MarshalIndent(configs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configs: %w", err)
	}
	if isYAML(absPath) {
		data, err = jsonToYAML(data)
		if err != nil {
			return fmt.Errorf("failed to convert configs to YAML: %w", err)
		}
	}

	if err := os.WriteFile(absPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write configs to %s: %w", absPath, err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// yamlToJSON reroutes YAML input through JSON so domain.Config keeps a
// single strict decoding path for the provider union.
func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func jsonToYAML(data []byte) ([]byte, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}
