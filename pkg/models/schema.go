package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// reportSchema pins the report contract consumers depend on. Validation
// runs in the MCP layer and in tests; the engine itself never re-checks.
const reportSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": [
    "files_analyzed", "files_skipped", "nodes_created",
    "dependencies_mapped", "dead_code", "duplicates",
    "semantic_mismatches", "graph_stats"
  ],
  "properties": {
    "files_analyzed": {"type": "integer", "minimum": 0},
    "files_skipped": {"type": "array", "items": {"type": "string"}},
    "nodes_created": {"type": "integer", "minimum": 0},
    "dependencies_mapped": {"type": "integer", "minimum": 0},
    "dead_code": {"type": "array", "items": {"type": "string"}},
    "duplicates": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["hash", "count", "recommended_keeper", "removal_candidates"],
        "properties": {
          "hash": {"type": "string"},
          "count": {"type": "integer", "minimum": 2},
          "recommended_keeper": {"type": "string"},
          "removal_candidates": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "semantic_mismatches": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["node_id", "name", "expected_intent", "actual_intent", "severity"],
        "properties": {
          "severity": {"enum": ["low", "medium", "high"]}
        }
      }
    },
    "graph_stats": {
      "type": "object",
      "required": ["total_nodes", "node_type_counts", "dependency_density"],
      "properties": {
        "dependency_density": {"type": "number", "minimum": 0, "maximum": 1}
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(reportSchema))
		if err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("report.json", doc); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("report.json")
	})
	return schema, schemaErr
}

// ValidateReport checks a report against the published JSON contract.
func ValidateReport(r *Report) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile report schema: %w", err)
	}

	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode report: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("report contract violation: %w", err)
	}
	return nil
}
