package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"channelhub/internal/common/fsutil"
	"channelhub/pkg/types"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr           string `json:"addr" yaml:"addr" toml:"addr"`
	DefinitionsDir string `json:"definitions_dir" yaml:"definitions_dir" toml:"definitions_dir"`
	// Definitions declared inline, merged with those found in DefinitionsDir.
	Definitions  []types.ModuleDefinition `json:"definitions" yaml:"definitions" toml:"definitions" validate:"dive"`
	StrictIDs    bool                     `json:"strict_ids" yaml:"strict_ids" toml:"strict_ids"`
	LogLevel     string                   `json:"log_level" yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=debug info warn error off"`
	LogFormat    string                   `json:"log_format" yaml:"log_format" toml:"log_format" validate:"omitempty,oneof=console json"`
	MaxBodyBytes int64                    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" validate:"gte=0"`
	CORSEnabled  bool                     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins  []string                 `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	// Instances created at startup, in order.
	Instances []InstanceConfig `json:"instances" yaml:"instances" toml:"instances" validate:"dive"`
}

// InstanceConfig declares a module instance to create at startup. An empty
// ID lets the hub assign one.
type InstanceConfig struct {
	ID   string `json:"id" yaml:"id" toml:"id"`
	Kind string `json:"kind" yaml:"kind" toml:"kind" validate:"required"`
	Name string `json:"name" yaml:"name" toml:"name"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	if err := Unmarshal(filepath.Ext(p), b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Unmarshal decodes b into v using the format implied by a file extension.
func Unmarshal(ext string, b []byte, v any) error {
	switch ext = strings.ToLower(ext); ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, v)
	case ".json":
		return json.Unmarshal(b, v)
	case ".toml":
		return toml.Unmarshal(b, v)
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
}

// SupportedExtension reports whether Unmarshal can decode files with ext.
func SupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json", ".toml":
		return true
	}
	return false
}
