package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{name: "Valid pretty format", format: "pretty"},
		{name: "Valid csv format", format: "csv"},
		{name: "Valid json format", format: "json"},
		{name: "Valid markdown format", format: "markdown"},
		{name: "Empty format", format: "", expectErr: true},
		{name: "Case sensitive - uppercase", format: "PRETTY", expectErr: true},
		{name: "Case sensitive - CSV uppercase", format: "CSV", expectErr: true},
		{name: "Leading/trailing spaces", format: " pretty ", expectErr: true},
		{name: "Similar but incorrect format", format: "prettyprint", expectErr: true},
		{name: "XML format not supported", format: "xml", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateOutputFormat(%q) expected error but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateOutputFormat(%q) unexpected error: %v", tt.format, err)
			}
		})
	}
}

func TestErrorMessageListsFormats(t *testing.T) {
	err := ValidateOutputFormat("xml")
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, format := range OutputFormats {
		if !strings.Contains(err.Error(), format) {
			t.Errorf("error %q does not list %s", err, format)
		}
	}
	if !strings.Contains(err.Error(), `"xml"`) {
		t.Errorf("error %q does not quote the rejected value", err)
	}
}

func TestValidateLogging(t *testing.T) {
	tests := []struct {
		name      string
		check     func(string) error
		value     string
		expectErr bool
	}{
		{name: "Debug level", check: ValidateLogLevel, value: "debug"},
		{name: "Warning alias", check: ValidateLogLevel, value: "warning"},
		{name: "Unknown level", check: ValidateLogLevel, value: "trace", expectErr: true},
		{name: "JSON format", check: ValidateLogFormat, value: "json"},
		{name: "Console format", check: ValidateLogFormat, value: "console"},
		{name: "Unknown format", check: ValidateLogFormat, value: "logfmt", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.value)
			if (err != nil) != tt.expectErr {
				t.Errorf("check(%q) error = %v, expectErr %v", tt.value, err, tt.expectErr)
			}
		})
	}
}
