package report

// Schema is the JSON Schema (Draft 2020-12) for the cooked JSON
// output. It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/cooked/answers.schema.json",
  "title": "cooked answers",
  "description": "Output schema for cooked ask/form --format=json",
  "type": "object",
  "required": ["id", "version", "answers", "duration_ms"],
  "properties": {
    "id": {
      "type": "string",
      "format": "uuid",
      "description": "Random run identifier"
    },
    "version": {
      "type": "string",
      "description": "cooked version that produced the output"
    },
    "title": {
      "type": "string",
      "description": "Form title, when set"
    },
    "timestamp": {
      "type": "string",
      "format": "date-time",
      "description": "Run start time (RFC 3339, UTC)"
    },
    "duration_ms": {
      "type": "integer",
      "minimum": 0
    },
    "answers": {
      "type": "array",
      "items": { "$ref": "#/$defs/Answer" }
    }
  },
  "$defs": {
    "Answer": {
      "type": "object",
      "required": ["name", "kind", "raw", "value"],
      "properties": {
        "name": { "type": "string", "minLength": 1 },
        "kind": {
          "type": "string",
          "enum": ["int", "float", "bool", "yesno", "date", "phone", "string", "list", "choice", "table"]
        },
        "raw": {
          "type": "string",
          "description": "Cleaned input after default substitution"
        },
        "value": {
          "description": "Converted value; null for blank answers",
          "anyOf": [
            { "type": "null" },
            { "type": "integer" },
            { "type": "number" },
            { "type": "boolean" },
            { "type": "string" },
            { "type": "array" },
            { "$ref": "#/$defs/TableRow" }
          ]
        }
      }
    },
    "TableRow": {
      "type": "object",
      "required": ["id", "value"],
      "properties": {
        "id": { "type": "integer" },
        "value": { "type": "string" }
      },
      "additionalProperties": false
    }
  }
}`
