package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// LoadFile reads settings from a .yaml/.yml or .properties file.
// Nested YAML maps are flattened by joining keys with "_".
func LoadFile(path string) (Props, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return ParseYAML(data)
	case ".properties":
		p, err := properties.LoadFile(path, properties.UTF8)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		props := make(Props, p.Len())
		for _, k := range p.Keys() {
			v, _ := p.Get(k)
			props[k] = v
		}
		return props, nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

func ParseYAML(data []byte) (Props, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	props := make(Props)
	if err := flatten(props, "", raw); err != nil {
		return nil, err
	}
	return props, nil
}

func flatten(out Props, prefix string, m map[string]any) error {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "_" + k
		}
		switch val := v.(type) {
		case map[string]any:
			if err := flatten(out, key, val); err != nil {
				return err
			}
		case []any:
			return Errorf(key, "", "lists are not supported")
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return nil
}
