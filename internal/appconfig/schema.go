package appconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "root":         { "type": "string" },
    "dataDir":      { "type": "string" },
    "storageDir":   { "type": "string" },
    "chunkSize":    { "type": "integer", "minimum": 1 },
    "chunkOverlap": { "type": "integer", "minimum": 0 },
    "topK":         { "type": "integer", "minimum": 0 },
    "extensions":   { "type": "array", "items": { "type": "string", "minLength": 1 } },
    "excludeGlobs": { "type": "array", "items": { "type": "string" } },
    "previewChars": { "type": "integer", "minimum": 0 },
    "logFile":      { "type": "string" },
    "debug":        { "type": "boolean" },
    "jsonMode":     { "type": "boolean" }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(configSchema)

// ValidateDocument checks a raw JSON config document against the config schema.
func ValidateDocument(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("config schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, ", "))
}

// ValidateFile reads path and validates it with ValidateDocument.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}
	if err := ValidateDocument(data); err != nil {
		return fmt.Errorf("config file %q: %w", path, err)
	}
	return nil
}
