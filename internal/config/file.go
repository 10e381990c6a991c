package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// source resolves a setting as: environment variable, then config file value, then default.
type source struct {
	values map[string]string
}

func (s source) get(envVar, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	if value, ok := s.values[envVar]; ok && value != "" {
		return value
	}
	return defaultValue
}

// readFile parses a flat document whose keys are the environment variable names, e.g.
//
//	API_PORT: 8000
//	storage_driver: redis
//
// Files ending in .json or .jsonc are read as JSON with comments and trailing commas allowed,
// anything else as YAML.
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[config Load] read %s: %w", path, err)
	}
	raw := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), &raw)
	default:
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("[config Load] parse %s: %w", path, err)
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		values[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return values, nil
}
