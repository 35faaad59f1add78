// Package schema validates planner documents against embedded JSON schemas
// before they are accepted from an import.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"tableflip.dev/planner/pkg/model"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[model.FileKind]string{
	model.KindSettings: "settings.json",
	model.KindYear:     "yearly.json",
	model.KindMonth:    "monthly.json",
	model.KindMandal:   "mandal.json",
}

var (
	compileOnce sync.Once
	compiled    map[model.FileKind]*jsonschema.Schema
	compileErr  error
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func compile() {
	compiled = make(map[model.FileKind]*jsonschema.Schema, len(schemaFiles))
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	for _, file := range schemaFiles {
		data, err := schemaFS.ReadFile("schemas/" + file)
		if err != nil {
			compileErr = fmt.Errorf("schema: read %s: %w", file, err)
			return
		}
		if err := compiler.AddResource(file, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("schema: add %s: %w", file, err)
			return
		}
	}
	for kind, file := range schemaFiles {
		s, err := compiler.Compile(file)
		if err != nil {
			compileErr = fmt.Errorf("schema: compile %s: %w", file, err)
			return
		}
		compiled[kind] = s
	}
}

// Validate checks a document of the given kind. Malformed JSON is reported
// as a ValidationError with an empty path.
func Validate(kind model.FileKind, data []byte) error {
	compileOnce.Do(compile)
	if compileErr != nil {
		return compileErr
	}
	s, ok := compiled[kind]
	if !ok {
		return fmt.Errorf("schema: no schema for %q", kind)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return &ValidationError{Err: fmt.Errorf("malformed JSON: %w", err)}
	}
	if dec.More() {
		return &ValidationError{Err: errors.New("malformed JSON: trailing data")}
	}

	if err := s.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		return errors.Join(collect(nil, ve)...)
	}
	return nil
}

// ValidateFile classifies name and validates data against its schema.
func ValidateFile(name string, data []byte) error {
	info := model.ClassifyFile(name)
	if info.Kind == model.KindUnknown {
		return fmt.Errorf("schema: unrecognised document %q", name)
	}
	return Validate(info.Kind, data)
}

func collect(out []error, err *jsonschema.ValidationError) []error {
	if len(err.Causes) == 0 {
		return append(out, &ValidationError{
			Path: pointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
	}
	for _, cause := range err.Causes {
		out = collect(out, cause)
	}
	return out
}

func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}
