package compiler

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/csdlgen/internal/dto"
)

// Format selects the document syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks the format from a file extension. Anything but ".json" is YAML.
func FormatOf(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes a graph document.
// Unknown keys are rejected so misspelled fields surface early.
func Parse(data []byte, format Format) (*dto.Graph, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json graph: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml graph: %w", err)
		}
	}

	var graph dto.Graph
	if raw == nil {
		return &graph, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &graph,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return &graph, nil
}

// parseDecorator accepts the short form "name" (an optional leading @ is ignored)
// and the long form {name, args}.
func parseDecorator(v any) (dto.Decorator, error) {
	switch d := v.(type) {
	case string:
		return dto.Decorator{Name: strings.TrimPrefix(d, "@")}, nil
	case map[string]any:
		var dec dto.Decorator
		if err := mapstructure.Decode(d, &dec); err != nil {
			return dec, fmt.Errorf("invalid decorator entry: %w", err)
		}
		dec.Name = strings.TrimPrefix(dec.Name, "@")
		if dec.Name == "" {
			return dec, fmt.Errorf("decorator entry missing name")
		}
		for i, arg := range dec.Args {
			dec.Args[i] = normalizeScalar(arg)
		}
		return dec, nil
	default:
		return dto.Decorator{}, fmt.Errorf("invalid decorator entry of type %T", v)
	}
}

// normalizeScalar folds YAML integers into float64 so numbers compare the same from either syntax.
func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}
