// Package calculator adapts the typed calculator modules to a single type-erased
// interface so the CLI, the HTTP API and the batch runner can drive any of them by name.
package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/iwvelando/property-calculators/internal/engine"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of an input payload.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrUnknownCalculator is returned when a calculator name is not registered.
	ErrUnknownCalculator = errors.New("unknown calculator")

	// ErrDecode is returned when an input payload cannot be decoded.
	ErrDecode = errors.New("decode payload")
)

// FormatFromContentType maps an HTTP Content-Type to a payload format. Anything that is
// not YAML is treated as JSON.
func FormatFromContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	switch strings.ToLower(mediaType) {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FormatFromPath picks a payload format from a file extension.
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// Result is the complete outcome of one calculation.
type Result struct {
	Calculator string                 `json:"calculator" yaml:"calculator"`
	Inputs     any                    `json:"inputs" yaml:"inputs"`
	Outputs    any                    `json:"outputs" yaml:"outputs"`
	Warnings   map[string]string      `json:"warnings" yaml:"warnings"`
	Projection []engine.ProjectionRow `json:"projection" yaml:"projection"`
	Report     string                 `json:"report" yaml:"report"`
}

// Info describes a registered calculator.
type Info struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Runner is the type-erased view of one calculator.
type Runner interface {
	Name() string
	Title() string
	Description() string
	Defaults() any
	Calculate(ctx context.Context, payload []byte, format Format) (*Result, error)
	Validate(payload []byte, format Format) (engine.ValidationResult, error)
	ValidateField(field string, value any, payload []byte, format Format) (engine.FieldResult, error)
	Report(payload []byte, format Format) (string, error)
}

// Definition wires the typed parts of a calculator together.
type Definition[I, O any] struct {
	Name        string
	Title       string
	Description string

	Defaults  func() I
	Schema    *engine.Schema[I]
	Calculate func(I) (O, error)
	Report    func(I, O) string
	// Projection extracts the generic projection rows from the outputs, if the module has any.
	Projection func(O) []engine.ProjectionRow
}

// Module implements Runner for one typed calculator.
type Module[I, O any] struct {
	def Definition[I, O]
}

// New builds a Runner from a definition.
func New[I, O any](def Definition[I, O]) *Module[I, O] {
	return &Module[I, O]{def: def}
}

func (m *Module[I, O]) Name() string        { return m.def.Name }
func (m *Module[I, O]) Title() string       { return m.def.Title }
func (m *Module[I, O]) Description() string { return m.def.Description }
func (m *Module[I, O]) Defaults() any       { return m.def.Defaults() }

// Decode reads a payload over the module defaults, so fields absent from the payload keep
// their default value. Unknown fields are rejected.
func (m *Module[I, O]) Decode(payload []byte, format Format) (I, error) {
	in := m.def.Defaults()
	if len(bytes.TrimSpace(payload)) == 0 {
		return in, nil
	}

	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(payload))
		dec.KnownFields(true)
		err = dec.Decode(&in)
	default:
		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.DisallowUnknownFields()
		err = dec.Decode(&in)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return in, fmt.Errorf("%w for %s: %w", ErrDecode, m.def.Name, err)
	}
	return in, nil
}

// Run decodes, validates and calculates, returning typed values.
func (m *Module[I, O]) Run(payload []byte, format Format) (I, O, engine.ValidationResult, error) {
	var out O
	in, err := m.Decode(payload, format)
	if err != nil {
		return in, out, engine.ValidationResult{}, err
	}
	res, err := m.def.Schema.Validate(in)
	if err != nil {
		return in, out, res, err
	}
	out, err = m.def.Calculate(in)
	return in, out, res, err
}

// Calculate implements Runner.
func (m *Module[I, O]) Calculate(ctx context.Context, payload []byte, format Format) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in, out, res, err := m.Run(payload, format)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Calculator: m.def.Name,
		Inputs:     in,
		Outputs:    out,
		Warnings:   res.Warnings,
		Projection: []engine.ProjectionRow{},
	}
	if m.def.Projection != nil {
		result.Projection = m.def.Projection(out)
	}
	if m.def.Report != nil {
		result.Report = m.def.Report(in, out)
	}
	return result, nil
}

// Validate implements Runner.
func (m *Module[I, O]) Validate(payload []byte, format Format) (engine.ValidationResult, error) {
	in, err := m.Decode(payload, format)
	if err != nil {
		return engine.ValidationResult{}, err
	}
	return m.def.Schema.ValidateAll(in), nil
}

// ValidateField implements Runner.
func (m *Module[I, O]) ValidateField(field string, value any, payload []byte, format Format) (engine.FieldResult, error) {
	in, err := m.Decode(payload, format)
	if err != nil {
		return engine.FieldResult{}, err
	}
	return m.def.Schema.ValidateField(field, value, in), nil
}

// Report implements Runner.
func (m *Module[I, O]) Report(payload []byte, format Format) (string, error) {
	in, out, _, err := m.Run(payload, format)
	if err != nil {
		return "", err
	}
	if m.def.Report == nil {
		return "", nil
	}
	return m.def.Report(in, out), nil
}
