package parser

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resultSchemaJSON = `{
  "type": "object",
  "required": ["key_points", "risk_level", "confidence"],
  "properties": {
    "key_points": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key", "value"],
        "properties": {
          "key": {"type": "string"},
          "value": {"type": ["string", "number", "boolean"]}
        }
      }
    },
    "risk_level": {"enum": ["Low", "Medium", "High"]},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`

var (
	resultSchemaOnce sync.Once
	resultSchema     *jsonschema.Schema
	resultSchemaErr  error
)

func compiledResultSchema() (*jsonschema.Schema, error) {
	resultSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("result.json", strings.NewReader(resultSchemaJSON)); err != nil {
			resultSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		resultSchema, resultSchemaErr = compiler.Compile("result.json")
	})
	return resultSchema, resultSchemaErr
}

// CheckShape compares a structured result with the documented extraction shape and
// returns one warning per mismatch. The result is never rejected; an empty slice means
// the shape matched.
func CheckShape(result any) []string {
	schema, err := compiledResultSchema()
	if err != nil {
		return []string{"shape check unavailable: " + err.Error()}
	}

	err = schema.Validate(result)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	var warnings []string
	collectLeaves(ve, &warnings)
	return warnings
}

func collectLeaves(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, out)
	}
}
