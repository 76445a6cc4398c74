package diff

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected OutputFormat
		wantErr  bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", FormatText, true},
		{"", FormatText, true},
	}

	for _, tt := range tests {
		format, err := ParseFormat(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Expected error for format '%s', got nil", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("Expected no error for format '%s', got: %v", tt.name, err)
		}
		if format != tt.expected {
			t.Errorf("Expected %v for '%s', got %v", tt.expected, tt.name, format)
		}
	}
}

func sampleResults() []Result {
	return []Result{
		Added{Path: "b", Value: Number(5)},
		Modified{Path: "a", Old: Number(1), New: Number(2)},
		TensorShapeChanged{Path: "fc1.weight", OldShape: []uint64{2, 3}, NewShape: []uint64{2, 4}},
		OptimizerChanged{Path: "optimizer", Old: "sgd", New: "adam"},
	}
}

func TestFormat_Text(t *testing.T) {
	output, err := New().Format(sampleResults(), FormatText)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expectedLines := []string{
		"+ b: 5",
		"~ a: 1 -> 2",
		"! fc1.weight: shape [2 3] -> [2 4]",
		"~ optimizer: sgd -> adam",
	}
	for _, line := range expectedLines {
		if !strings.Contains(output, line) {
			t.Errorf("Expected output to contain '%s', got:\n%s", line, output)
		}
	}
}

func TestFormat_JSON(t *testing.T) {
	output, err := New().Format(sampleResults(), FormatJSON)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var docs []map[string]interface{}
	if err := json.Unmarshal([]byte(output), &docs); err != nil {
		t.Fatalf("Expected valid JSON, got error: %v", err)
	}
	if len(docs) != 4 {
		t.Fatalf("Expected 4 documents, got %d", len(docs))
	}
	if docs[0]["type"] != "Added" || docs[0]["path"] != "b" {
		t.Errorf("Unexpected first document: %#v", docs[0])
	}
	if docs[3]["old"] != "sgd" || docs[3]["new"] != "adam" {
		t.Errorf("Unexpected optimizer document: %#v", docs[3])
	}
}

func TestFormat_YAML(t *testing.T) {
	output, err := New().Format(sampleResults(), FormatYAML)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var docs []map[string]interface{}
	if err := yaml.Unmarshal([]byte(output), &docs); err != nil {
		t.Fatalf("Expected valid YAML, got error: %v", err)
	}
	if len(docs) != 4 {
		t.Fatalf("Expected 4 documents, got %d", len(docs))
	}
	if docs[1]["type"] != "Modified" {
		t.Errorf("Expected second document type 'Modified', got %v", docs[1]["type"])
	}
}

func TestFormat_Empty(t *testing.T) {
	output, err := New().Format(nil, FormatText)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if output != "" {
		t.Errorf("Expected empty output, got '%s'", output)
	}
}
