package rules

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/academy/internal/grading"
)

// documentSchema is the JSON schema every rule document must satisfy before
// it is decoded into Go types.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":        "string",
			"pattern":     "^v[0-9]+",
			"description": "Semantic version of the rule document, e.g. v1.0.0",
		},
		"rule_sets": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    ruleSetSchema,
		},
	},
	"required":             []any{"version", "rule_sets"},
	"additionalProperties": false,
}

var idSchema = map[string]any{
	"type":    "string",
	"pattern": "^[a-z0-9][a-z0-9-]*$",
}

var idListSchema = map[string]any{
	"type":  "array",
	"items": idSchema,
}

var ruleSetSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":    idSchema,
		"title": map[string]any{"type": "string"},
		"criteria": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          idSchema,
					"description": map[string]any{"type": "string"},
					"hint":        map[string]any{"type": "string"},
					"match": map[string]any{
						"type": "string",
						"enum": []any{"any", "all"},
					},
					"patterns": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
				},
				"required":             []any{"id", "patterns"},
				"additionalProperties": false,
			},
		},
		"tiers": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": idSchema,
					"level": map[string]any{
						"type": "string",
						"enum": levelEnum(),
					},
					"min_score": map[string]any{"type": "integer"},
					"when": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"all_of":  idListSchema,
							"none_of": idListSchema,
						},
						"additionalProperties": false,
					},
					"message": map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"id", "level", "message"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"id", "criteria", "tiers"},
	"additionalProperties": false,
}

func levelEnum() []any {
	levels := grading.AllLevels()
	out := make([]any, len(levels))
	for i, l := range levels {
		out[i] = string(l)
	}
	return out
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles documentSchema once and caches the result.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects a parsed JSON value, so round-trip the Go map.
		raw, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://rule-document.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// validateDocument checks a generic decoded document against the schema.
func validateDocument(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile rule schema: %w", err)
	}
	// Normalize YAML-decoded values to what encoding/json would produce.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("convert document: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
