// Package yamldoc converts between the in-memory task collection and the
// YAML document used for persistence and for the assistant exchange
// format. Parsing is strict: every field is validated and the result is
// a typed collection or an error, never a partially trusted shape.
package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument wraps all parse and validation failures.
var ErrInvalidDocument = errors.New("invalid task document")

// Document is the top-level YAML structure.
type Document struct {
	Tasks []TaskRecord `yaml:"tasks"`
}

// TaskRecord is one task as it appears in the YAML document.
type TaskRecord struct {
	ID           string   `yaml:"id,omitempty"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description,omitempty"`
	Status       string   `yaml:"status"`
	Priority     string   `yaml:"priority"`
	StartDate    string   `yaml:"start_date"`
	EndDate      string   `yaml:"end_date"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// DecodeDocument parses YAML text into a Document. Unknown fields are
// rejected so a malformed assistant rewrite fails loudly instead of
// silently dropping data.
func DecodeDocument(text string) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader([]byte(text)))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// StripFences removes markdown code fences (```yaml ... ``` or
// ``` ... ```) that generative models often wrap around YAML output.
// Text without fences passes through unchanged.
func StripFences(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}
