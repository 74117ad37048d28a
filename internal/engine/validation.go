package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidInput is matched by every *ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationResult is the outcome of validating a whole input record. Errors block a
// calculation; warnings never do.
type ValidationResult struct {
	IsValid  bool              `json:"isValid"`
	Errors   map[string]string `json:"errors"`
	Warnings map[string]string `json:"warnings"`
}

// FieldResult is the outcome of validating a single field.
type FieldResult struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// ValidationError is returned by Calculate when the input record fails validation.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Result.Errors))
	for field := range e.Result.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Result.Errors[field]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Relation is a cross-field check. It receives the candidate value of the field and the
// full record and returns an error message, a warning message, or neither.
type Relation[T any] func(value float64, in T) (err string, warn string)

// TextRelation is the Relation of a text field. It runs after the enum check.
type TextRelation[T any] func(value string, in T) (err string, warn string)

// FieldRule describes how to read and check one field of T. Exactly one of Number,
// Text or Items is set.
type FieldRule[T any] struct {
	Name     string
	Label    string
	Required bool

	Number func(T) float64
	Text   func(T) string
	Items  func(T) []string

	Min, Max       float64
	HasMin, HasMax bool
	MinMessage     string
	MaxMessage     string

	Allowed []string

	WarnAbove, WarnBelow               float64
	HasWarnAbove, HasWarnBelow         bool
	WarnAboveMessage, WarnBelowMessage string

	Relation     Relation[T]
	TextRelation TextRelation[T]
}

// Number declares a numeric field.
func Number[T any](name, label string, get func(T) float64) FieldRule[T] {
	return FieldRule[T]{Name: name, Label: label, Number: get}
}

// Text declares a string field.
func Text[T any](name, label string, get func(T) string) FieldRule[T] {
	return FieldRule[T]{Name: name, Label: label, Text: get}
}

// Items declares a list-of-strings field.
func Items[T any](name, label string, get func(T) []string) FieldRule[T] {
	return FieldRule[T]{Name: name, Label: label, Items: get}
}

// NonNegative sets a minimum of zero.
func (r FieldRule[T]) NonNegative() FieldRule[T] {
	r.Min, r.HasMin = 0, true
	return r
}

// Range bounds the value to [min, max].
func (r FieldRule[T]) Range(min, max float64) FieldRule[T] {
	r.Min, r.HasMin = min, true
	r.Max, r.HasMax = max, true
	return r
}

// AtLeast sets a minimum, optionally with a custom message.
func (r FieldRule[T]) AtLeast(min float64, message ...string) FieldRule[T] {
	r.Min, r.HasMin = min, true
	if len(message) > 0 {
		r.MinMessage = message[0]
	}
	return r
}

// AtMost sets a maximum, optionally with a custom message.
func (r FieldRule[T]) AtMost(max float64, message ...string) FieldRule[T] {
	r.Max, r.HasMax = max, true
	if len(message) > 0 {
		r.MaxMessage = message[0]
	}
	return r
}

// Require marks the field as required.
func (r FieldRule[T]) Require() FieldRule[T] {
	r.Required = true
	return r
}

// OneOf restricts a text or list field to the given values.
func (r FieldRule[T]) OneOf(values ...string) FieldRule[T] {
	r.Allowed = values
	return r
}

// WarnIfAbove adds a non-blocking warning when the value exceeds limit.
func (r FieldRule[T]) WarnIfAbove(limit float64, message string) FieldRule[T] {
	r.WarnAbove, r.HasWarnAbove, r.WarnAboveMessage = limit, true, message
	return r
}

// WarnIfBelow adds a non-blocking warning when the value is under limit.
func (r FieldRule[T]) WarnIfBelow(limit float64, message string) FieldRule[T] {
	r.WarnBelow, r.HasWarnBelow, r.WarnBelowMessage = limit, true, message
	return r
}

// Relate attaches a cross-field check.
func (r FieldRule[T]) Relate(rel Relation[T]) FieldRule[T] {
	r.Relation = rel
	return r
}

// RelateText attaches a cross-field check to a text field.
func (r FieldRule[T]) RelateText(rel TextRelation[T]) FieldRule[T] {
	r.TextRelation = rel
	return r
}

// Schema is the ordered list of field rules of one calculator.
type Schema[T any] struct {
	Fields []FieldRule[T]
}

// NewSchema builds a schema from rules.
func NewSchema[T any](fields ...FieldRule[T]) *Schema[T] {
	return &Schema[T]{Fields: fields}
}

// Rule returns the rule with the given field name.
func (s *Schema[T]) Rule(name string) (FieldRule[T], bool) {
	for _, rule := range s.Fields {
		if rule.Name == name {
			return rule, true
		}
	}
	return FieldRule[T]{}, false
}

// ValidateAll checks every field of the record. The first message recorded for a field wins.
func (s *Schema[T]) ValidateAll(in T) ValidationResult {
	result := ValidationResult{
		Errors:   make(map[string]string),
		Warnings: make(map[string]string),
	}

	for _, rule := range s.Fields {
		fr := rule.check(rule.Value(in), in)
		if fr.Error != "" {
			if _, exists := result.Errors[rule.Name]; !exists {
				result.Errors[rule.Name] = fr.Error
			}
		}
		if fr.Warning != "" {
			if _, exists := result.Warnings[rule.Name]; !exists {
				result.Warnings[rule.Name] = fr.Warning
			}
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// ValidateField checks one candidate value in the context of the record. An unknown
// field name is reported as valid.
func (s *Schema[T]) ValidateField(name string, value any, in T) FieldResult {
	rule, ok := s.Rule(name)
	if !ok {
		return FieldResult{IsValid: true}
	}
	return rule.check(value, in)
}

// Validate is ValidateAll returning a *ValidationError when the record is invalid.
func (s *Schema[T]) Validate(in T) (ValidationResult, error) {
	res := s.ValidateAll(in)
	if !res.IsValid {
		return res, &ValidationError{Result: res}
	}
	return res, nil
}

// Value reads the field from the record.
func (r FieldRule[T]) Value(in T) any {
	switch {
	case r.Number != nil:
		return r.Number(in)
	case r.Text != nil:
		return r.Text(in)
	case r.Items != nil:
		return r.Items(in)
	default:
		return nil
	}
}

// check is the single implementation behind ValidateAll and ValidateField.
func (r FieldRule[T]) check(value any, in T) FieldResult {
	var err, warn string
	switch {
	case r.Number != nil:
		err, warn = r.checkNumber(value, in)
	case r.Text != nil:
		err, warn = r.checkText(value, in)
	case r.Items != nil:
		err = r.checkItems(value)
	}
	return FieldResult{IsValid: err == "", Error: err, Warning: warn}
}

func (r FieldRule[T]) checkNumber(value any, in T) (string, string) {
	if value == nil {
		if r.Required {
			return fmt.Sprintf("%s is required", r.Label), ""
		}
		return "", ""
	}

	v, ok := toFloat(value)
	if !ok {
		return fmt.Sprintf("%s must be a number", r.Label), ""
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%s must be a finite number", r.Label), ""
	}
	if r.Required && v == 0 && !(r.HasMin && r.Min < 0) {
		return fmt.Sprintf("%s is required", r.Label), ""
	}
	if r.HasMin && v < r.Min {
		switch {
		case r.MinMessage != "":
			return r.MinMessage, ""
		case r.Min == 0:
			return fmt.Sprintf("%s cannot be negative", r.Label), ""
		default:
			return fmt.Sprintf("%s must be at least %s", r.Label, formatBound(r.Min)), ""
		}
	}
	if r.HasMax && v > r.Max {
		if r.MaxMessage != "" {
			return r.MaxMessage, ""
		}
		return fmt.Sprintf("%s must be at most %s", r.Label, formatBound(r.Max)), ""
	}

	var warn string
	if r.Relation != nil {
		relErr, relWarn := r.Relation(v, in)
		if relErr != "" {
			return relErr, ""
		}
		warn = relWarn
	}
	if warn == "" && r.HasWarnAbove && v > r.WarnAbove {
		warn = r.WarnAboveMessage
	}
	if warn == "" && r.HasWarnBelow && v < r.WarnBelow {
		warn = r.WarnBelowMessage
	}
	return "", warn
}

func (r FieldRule[T]) checkText(value any, in T) (string, string) {
	var s string
	switch t := value.(type) {
	case nil:
	case string:
		s = t
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)

	if s == "" {
		if r.Required {
			return fmt.Sprintf("%s is required", r.Label), ""
		}
		return "", ""
	}
	if len(r.Allowed) > 0 && !contains(r.Allowed, s) {
		return fmt.Sprintf("%s must be one of: %s", r.Label, strings.Join(r.Allowed, ", ")), ""
	}
	if r.TextRelation != nil {
		return r.TextRelation(s, in)
	}
	return "", ""
}

func (r FieldRule[T]) checkItems(value any) string {
	var items []string
	switch t := value.(type) {
	case nil:
	case []string:
		items = t
	case []any:
		for _, item := range t {
			items = append(items, fmt.Sprint(item))
		}
	case string:
		if t != "" {
			items = strings.Split(t, ",")
		}
	default:
		return fmt.Sprintf("%s must be a list", r.Label)
	}

	if len(items) == 0 {
		if r.Required {
			return fmt.Sprintf("%s is required", r.Label)
		}
		return ""
	}
	if len(r.Allowed) == 0 {
		return ""
	}
	for _, item := range items {
		if !contains(r.Allowed, strings.TrimSpace(item)) {
			return fmt.Sprintf("%s contains unknown value %q; must be one of: %s",
				r.Label, item, strings.Join(r.Allowed, ", "))
		}
	}
	return ""
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case bool:
		return Flag(v), true
	default:
		return 0, false
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
