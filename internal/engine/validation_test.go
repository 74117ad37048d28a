package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

type sample struct {
	Value      float64
	Down       float64
	Price      float64
	Rate       float64
	Zone       string
	Mitigation []string
}

func sampleSchema() *Schema[sample] {
	return NewSchema(
		Number("value", "Property value", func(s sample) float64 { return s.Value }).
			NonNegative().Require().
			WarnIfAbove(10_000_000, "Property value is unusually high"),
		Number("down", "Down payment", func(s sample) float64 { return s.Down }).
			NonNegative().
			Relate(func(v float64, s sample) (string, string) {
				if v > s.Price {
					return "Down payment cannot exceed purchase price", ""
				}
				return "", ""
			}),
		Number("rate", "Interest rate", func(s sample) float64 { return s.Rate }).
			Range(0, 30).
			WarnIfAbove(15, "Interest rate is unusually high"),
		Number("deductible", "Building deductible", func(s sample) float64 { return 1000 }).
			AtLeast(500, "Building deductible must be at least $500"),
		Text("zone", "Flood zone", func(s sample) string { return s.Zone }).
			Require().OneOf("X", "AE", "VE"),
		Items("mitigation", "Mitigation measures", func(s sample) []string { return s.Mitigation }).
			OneOf("sump-pump", "flood-walls"),
	)
}

func validSample() sample {
	return sample{Value: 500000, Down: 100000, Price: 500000, Rate: 4.5, Zone: "AE"}
}

func TestValidateAllValidRecord(t *testing.T) {
	res := sampleSchema().ValidateAll(validSample())
	if !res.IsValid || len(res.Errors) != 0 {
		t.Errorf("expected valid record, got %+v", res)
	}
	if res.Errors == nil || res.Warnings == nil {
		t.Error("result maps should never be nil")
	}
}

func TestValidateAllMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*sample)
		field   string
		message string
	}{
		{"Negative", func(s *sample) { s.Value = -1000 }, "value", "Property value cannot be negative"},
		{"Required", func(s *sample) { s.Value = 0 }, "value", "Property value is required"},
		{"Above max", func(s *sample) { s.Rate = 31 }, "rate", "Interest rate must be at most 30"},
		{"Relation", func(s *sample) { s.Down = 600000 }, "down", "Down payment cannot exceed purchase price"},
		{"Enum", func(s *sample) { s.Zone = "Q" }, "zone", "Flood zone must be one of: X, AE, VE"},
		{"Required text", func(s *sample) { s.Zone = " " }, "zone", "Flood zone is required"},
		{"Unknown list item", func(s *sample) { s.Mitigation = []string{"moat"} }, "mitigation",
			`Mitigation measures contains unknown value "moat"; must be one of: sump-pump, flood-walls`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSample()
			tt.mutate(&in)
			res := sampleSchema().ValidateAll(in)
			if res.IsValid {
				t.Fatal("expected invalid result")
			}
			if got := res.Errors[tt.field]; got != tt.message {
				t.Errorf("error for %s = %q, expected %q", tt.field, got, tt.message)
			}
		})
	}
}

func TestValidateAllWarningsDoNotBlock(t *testing.T) {
	in := validSample()
	in.Rate = 16
	in.Value = 20_000_000
	res := sampleSchema().ValidateAll(in)
	if !res.IsValid {
		t.Fatalf("warnings must not invalidate: %+v", res)
	}
	if res.Warnings["rate"] != "Interest rate is unusually high" || res.Warnings["value"] == "" {
		t.Errorf("unexpected warnings: %+v", res.Warnings)
	}
}

func TestValidateFieldMatchesValidateAll(t *testing.T) {
	schema := sampleSchema()
	records := []sample{
		validSample(),
		{Value: -1, Down: 9, Price: 1, Rate: 40, Zone: "Q", Mitigation: []string{"moat"}},
		{Value: 0, Rate: 16, Zone: ""},
	}

	for _, in := range records {
		all := schema.ValidateAll(in)
		for _, rule := range schema.Fields {
			fr := schema.ValidateField(rule.Name, rule.Value(in), in)
			if fr.Error != all.Errors[rule.Name] {
				t.Errorf("field %s: ValidateField error %q, ValidateAll error %q", rule.Name, fr.Error, all.Errors[rule.Name])
			}
			if fr.Warning != all.Warnings[rule.Name] {
				t.Errorf("field %s: ValidateField warning %q, ValidateAll warning %q", rule.Name, fr.Warning, all.Warnings[rule.Name])
			}
			if fr.IsValid != (fr.Error == "") {
				t.Errorf("field %s: IsValid inconsistent with error", rule.Name)
			}
		}
	}
}

func TestValidateFieldValueConversions(t *testing.T) {
	schema := sampleSchema()
	in := validSample()

	tests := []struct {
		name  string
		field string
		value any
		valid bool
	}{
		{"Float", "rate", 4.5, true},
		{"Int", "rate", 4, true},
		{"String number", "rate", "4.5", true},
		{"JSON number", "rate", json.Number("31"), false},
		{"Not a number", "rate", "abc", false},
		{"Nil optional", "rate", nil, true},
		{"Nil required", "value", nil, false},
		{"Comma list", "mitigation", "sump-pump,flood-walls", true},
		{"Any list", "mitigation", []any{"moat"}, false},
		{"Unknown field", "nope", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schema.ValidateField(tt.field, tt.value, in); got.IsValid != tt.valid {
				t.Errorf("ValidateField(%s, %v) = %+v, expected valid=%v", tt.field, tt.value, got, tt.valid)
			}
		})
	}
}

func TestValidateReturnsTypedError(t *testing.T) {
	in := validSample()
	in.Value = -5

	res, err := sampleSchema().Validate(in)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(err, ErrInvalidInput) = false for %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Result.Errors["value"] != res.Errors["value"] {
		t.Errorf("errors.As did not expose result: %v", err)
	}
	if got := err.Error(); got != "invalid input: value: Property value cannot be negative" {
		t.Errorf("Error() = %q", got)
	}

	if _, err := sampleSchema().Validate(validSample()); err != nil {
		t.Errorf("unexpected error for valid record: %v", err)
	}
}

func TestRelateText(t *testing.T) {
	schema := NewSchema(
		Text("issues", "Known issues", func(s sample) string { return s.Zone }).
			OneOf("none", "liens", "forged").
			RelateText(func(v string, s sample) (string, string) {
				switch {
				case v == "forged" && s.Value > 0:
					return "Forged titles cannot be insured", ""
				case v != "none":
					return "", "Known title issues may affect insurability"
				}
				return "", ""
			}),
	)

	tests := []struct {
		zone    string
		err     string
		warning string
	}{
		{"none", "", ""},
		{"liens", "", "Known title issues may affect insurability"},
		{"forged", "Forged titles cannot be insured", ""},
		{"other", "Known issues must be one of: none, liens, forged", ""},
	}

	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			in := validSample()
			in.Zone = tt.zone
			res := schema.ValidateAll(in)
			if res.Errors["issues"] != tt.err || res.Warnings["issues"] != tt.warning {
				t.Errorf("ValidateAll() = %+v, expected error %q warning %q", res, tt.err, tt.warning)
			}
			if fr := schema.ValidateField("issues", tt.zone, in); fr.Error != tt.err || fr.Warning != tt.warning {
				t.Errorf("ValidateField() = %+v", fr)
			}
		})
	}
}
