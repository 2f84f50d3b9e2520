package voice

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// profileSchema is the JSON Schema a persisted voice profile must satisfy.
const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["handle", "writing_style", "tone", "analyzed_at"],
  "properties": {
    "handle": {"type": "string", "minLength": 1},
    "writing_style": {"type": "string", "minLength": 1},
    "tone": {"type": "string", "minLength": 1},
    "common_topics": {"type": "array", "items": {"type": "string"}},
    "tag_usage": {
      "type": "object",
      "additionalProperties": {"type": "integer", "minimum": 0}
    },
    "average_length": {"type": "integer", "minimum": 0},
    "engagement_patterns": {"type": "object"},
    "analyzed_at": {"type": "string"}
  }
}`

// FieldError is a single schema violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// SchemaValidationError reports every field that failed schema validation.
type SchemaValidationError struct {
	Errors []FieldError
}

func (e *SchemaValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("voice profile validation failed:\n")
	for i, fieldErr := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fieldErr.Field, fieldErr.Message)
	}
	return sb.String()
}

// ValidateProfileJSON checks raw profile JSON against the profile schema.
func ValidateProfileJSON(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(profileSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("profile schema validation failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &SchemaValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
