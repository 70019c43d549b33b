package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// RootField names the document itself in a ValidationError.
const RootField = "(root)"

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Schema is a compiled JSON Schema.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses schemaJSON. name is only used in error messages.
func Compile(name, schemaJSON string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return &Schema{name: name, schema: s}, nil
}

// Validate checks data against the schema. Errors are sorted by field, then
// message, so the same bytes always produce the same result. Malformed JSON
// yields a single MALFORMED_JSON error on the root.
func (s *Schema) Validate(data []byte) *ValidationResult {
	if !json.Valid(data) {
		msg := "malformed JSON"
		var probe interface{}
		if err := json.Unmarshal(data, &probe); err != nil {
			msg += ": " + err.Error()
		}
		return invalid(ValidationError{Field: RootField, Message: msg, Code: "MALFORMED_JSON"})
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return invalid(ValidationError{Field: RootField, Message: s.name + ": " + err.Error(), Code: "VALIDATION_FAILED"})
	}
	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   fieldOf(re),
			Message: re.Description(),
			Code:    codeOf(re.Type()),
		})
	}
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Field != errs[j].Field {
			return errs[i].Field < errs[j].Field
		}
		return errs[i].Message < errs[j].Message
	})
	return &ValidationResult{Valid: false, Errors: errs}
}

func invalid(e ValidationError) *ValidationResult {
	return &ValidationResult{Valid: false, Errors: []ValidationError{e}}
}

// fieldOf points required-property errors at the missing property rather
// than its parent object.
func fieldOf(re gojsonschema.ResultError) string {
	field := re.Field()
	if re.Type() != "required" {
		return field
	}
	prop, _ := re.Details()["property"].(string)
	if prop == "" || field == prop || strings.HasSuffix(field, "."+prop) {
		return field
	}
	if field == RootField {
		return prop
	}
	return field + "." + prop
}

func codeOf(kind string) string {
	switch kind {
	case "required":
		return "REQUIRED_FIELD_MISSING"
	case "invalid_type":
		return "INVALID_TYPE"
	case "additional_property_not_allowed":
		return "EXTRA_FIELD"
	default:
		return strings.ToUpper(kind)
	}
}
