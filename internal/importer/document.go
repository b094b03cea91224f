package importer

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://adapta/track-import.json"

// documentSchema describes the shape of a track import document. Cross-field
// rules (unique IDs, date formats) are checked by ValidateImportSchema.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["track", "milestones"],
  "properties": {
    "track": {
      "type": "object",
      "required": ["title"],
      "properties": {
        "id": {"type": "string"},
        "title": {"type": "string", "minLength": 1},
        "description": {"type": "string"}
      },
      "additionalProperties": false
    },
    "milestones": {
      "type": "array",
      "items": {"$ref": "#/$defs/milestone"}
    }
  },
  "additionalProperties": false,
  "$defs": {
    "milestone": {
      "type": "object",
      "required": ["title", "steps"],
      "properties": {
        "ref": {"type": "string"},
        "title": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "end_date": {"type": "string"},
        "steps": {"type": "array", "items": {"$ref": "#/$defs/step"}}
      },
      "additionalProperties": false
    },
    "step": {
      "type": "object",
      "required": ["id", "title", "type"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "required": {"type": "boolean"},
        "type": {"enum": ["task", "survey", "presentation", "meeting"]},
        "meeting": {"$ref": "#/$defs/meeting"},
        "questions": {"type": "array", "items": {"type": "string"}},
        "url": {"type": "string"}
      },
      "additionalProperties": false
    },
    "meeting": {
      "type": "object",
      "required": ["date"],
      "properties": {
        "date": {"type": "string"},
        "time": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
        "duration_min": {"type": "integer", "minimum": 1},
        "location": {"type": "string"},
        "tool": {"type": "string"},
        "participants": {"type": "array", "items": {"type": "string"}}
      },
      "additionalProperties": false
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledDocumentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(documentSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(documentSchemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a parsed JSON value against the document schema.
func validateDocument(doc any) error {
	schema, err := compiledDocumentSchema()
	if err != nil {
		return fmt.Errorf("compiling import schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("import file does not match schema: %w", err)
	}
	return nil
}
