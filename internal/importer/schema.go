package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of an import file. Files may be
// YAML or JSON; JSON is read as YAML.
type ImportSchema struct {
	Activities []ActivityImport `yaml:"activities" json:"activities"`
}

// ActivityImport defines one activity together with its goal history and
// logged sessions.
type ActivityImport struct {
	Name     string          `yaml:"name" json:"name"`
	Unit     string          `yaml:"unit,omitempty" json:"unit,omitempty"`
	Goals    []GoalImport    `yaml:"goals,omitempty" json:"goals,omitempty"`
	Sessions []SessionImport `yaml:"sessions,omitempty" json:"sessions,omitempty"`
}

// GoalImport defines one goal version. Kind is inferred like on the command
// line: days-of-week when On is set, every-x-days otherwise.
type GoalImport struct {
	Kind     string `yaml:"kind,omitempty" json:"kind,omitempty"`
	From     string `yaml:"from" json:"from"`
	Every    int    `yaml:"every,omitempty" json:"every,omitempty"`
	Weeks    int    `yaml:"weeks,omitempty" json:"weeks,omitempty"`
	Target   string `yaml:"target,omitempty" json:"target,omitempty"`
	Criteria string `yaml:"criteria,omitempty" json:"criteria,omitempty"`
	// On maps a weekday to "value[:criteria]".
	On map[string]string `yaml:"on,omitempty" json:"on,omitempty"`
}

// SessionImport defines a logged session.
type SessionImport struct {
	Date  string `yaml:"date" json:"date"`
	Value string `yaml:"value" json:"value"`
	Note  string `yaml:"note,omitempty" json:"note,omitempty"`
}

// LoadImportSchema reads and parses an import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses YAML or JSON. Unknown fields are rejected.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var schema ImportSchema
	if err := dec.Decode(&schema); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("import file is empty")
		}
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
