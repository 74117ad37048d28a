// Package output renders calculation results for the terminal.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/storage"
	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/iwvelando/property-calculators/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders result to w in the named format.
func Write(w io.Writer, result *calculator.Result, format string) error {
	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}
	switch format {
	case constants.OutputFormatCSV:
		return CSVFormat(w, result)
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	case constants.OutputFormatMarkdown:
		_, err := io.WriteString(w, result.Report)
		return err
	default:
		return PrettyFormat(w, result)
	}
}

// PrettyFormat outputs a human-readable key/value table of the outputs followed by any warnings.
func PrettyFormat(w io.Writer, result *calculator.Result) error {
	fields, err := Flatten(result.Outputs)
	if err != nil {
		return err
	}

	width := len("Field")
	for _, f := range fields {
		width = max(width, len(f.Key))
	}

	p := message.NewPrinter(language.English)
	if _, err := fmt.Fprintf(w, "--- Results for %s ---\n", result.Calculator); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%-*s | Value\n", width, "Field")
	_, _ = fmt.Fprintf(w, "%s | _____\n", strings.Repeat("_", width))
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "%-*s | %s\n", width, f.Key, f.display(p)); err != nil {
			return err
		}
	}

	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintf(w, "\nWarnings:\n")
		keys := make([]string, 0, len(result.Warnings))
		for k := range result.Warnings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "- %s: %s\n", k, result.Warnings[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

// CSVFormat outputs the projection rows. A result without a projection is written as
// field,value pairs.
func CSVFormat(w io.Writer, result *calculator.Result) error {
	cw := csv.NewWriter(w)
	if len(result.Projection) > 0 {
		return storage.WriteProjection(cw, result.Projection)
	}

	fields, err := Flatten(result.Outputs)
	if err != nil {
		return err
	}
	if err := cw.Write([]string{"field", "value"}); err != nil {
		return err
	}
	for _, f := range fields {
		if err := cw.Write([]string{f.Key, f.raw()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the whole result as indented JSON.
func JSONFormat(w io.Writer, result *calculator.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// Field is one scalar leaf of a flattened output record.
type Field struct {
	Key   string
	Value any
}

func (f Field) display(p *message.Printer) string {
	switch v := f.Value.(type) {
	case float64:
		if v == float64(int64(v)) {
			return p.Sprintf("%d", int64(v))
		}
		return p.Sprintf("%.2f", v)
	case nil:
		return "-"
	default:
		return fmt.Sprint(v)
	}
}

func (f Field) raw() string {
	switch v := f.Value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Flatten turns an output record into dotted-key leaves sorted by key. Array elements
// are addressed by index.
func Flatten(outputs any) ([]Field, error) {
	data, err := json.Marshal(outputs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode outputs: %w", err)
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode outputs: %w", err)
	}

	var fields []Field
	flatten("", tree, &fields)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields, nil
}

func flatten(prefix string, node any, fields *[]Field) {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			flatten(join(prefix, key), child, fields)
		}
	case []any:
		for i, child := range v {
			flatten(join(prefix, strconv.Itoa(i)), child, fields)
		}
	default:
		*fields = append(*fields, Field{Key: prefix, Value: v})
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
