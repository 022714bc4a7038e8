package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed course.schema.json
var courseSchemaJSON []byte

const courseSchemaURL = "schema://course.json"

var (
	courseSchemaOnce sync.Once
	courseSchema     *jsonschema.Schema
	courseSchemaErr  error
)

func compiledCourseSchema() (*jsonschema.Schema, error) {
	courseSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(courseSchemaJSON))
		if err != nil {
			courseSchemaErr = fmt.Errorf("parse course schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(courseSchemaURL, doc); err != nil {
			courseSchemaErr = fmt.Errorf("add course schema: %w", err)
			return
		}
		courseSchema, courseSchemaErr = c.Compile(courseSchemaURL)
	})
	return courseSchema, courseSchemaErr
}

// validateCourse checks a raw course document against the course schema.
// Documents still being generated only need their summary fields.
func validateCourse(raw []byte) error {
	schema, err := compiledCourseSchema()
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &InvalidDocumentError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := schema.Validate(doc); err != nil {
		return &InvalidDocumentError{Err: err}
	}
	return nil
}

// isJSONNull reports whether raw is the literal null (or empty).
func isJSONNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decode[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}
