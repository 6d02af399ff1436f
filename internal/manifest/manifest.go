// Package manifest models the package manifest (package.json) as far as the
// build pipeline needs to: reading the version and sanitizing the copy that
// ships in the output directory.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Fields stripped from the published manifest. They only matter during
// development and would either leak tooling or block publication (`private`).
var developmentFields = []string{"private", "scripts", "devDependencies"}

// Manifest is a loaded package manifest. The underlying document keeps every
// field, known or not; serialization is deterministic (sorted keys).
type Manifest struct {
	fields map[string]any
}

// New wraps an existing field map, mainly for tests.
func New(fields map[string]any) *Manifest {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Manifest{fields: fields}
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &Manifest{fields: fields}, nil
}

// Version returns the manifest version string, or an error when the field is
// missing or not a string.
func (m *Manifest) Version() (string, error) {
	v, ok := m.fields["version"]
	if !ok {
		return "", fmt.Errorf("manifest has no version field")
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("manifest version is not a string: %v", v)
	}
	return s, nil
}

// Name returns the package name, or "" when absent.
func (m *Manifest) Name() string {
	s, _ := m.fields["name"].(string)
	return s
}

// Has reports whether the manifest contains the given top-level field.
func (m *Manifest) Has(field string) bool {
	_, ok := m.fields[field]
	return ok
}

// PublishAccess returns publishConfig.access, or "" when absent.
func (m *Manifest) PublishAccess() string {
	pc, _ := m.fields["publishConfig"].(map[string]any)
	s, _ := pc["access"].(string)
	return s
}

// Sanitize prepares the manifest for publication: development-only fields are
// dropped (their absence is fine) and publishConfig.access is forced to
// "public", overwriting any existing value.
func (m *Manifest) Sanitize() {
	for _, field := range developmentFields {
		delete(m.fields, field)
	}

	pc, ok := m.fields["publishConfig"].(map[string]any)
	if !ok {
		pc = map[string]any{}
		m.fields["publishConfig"] = pc
	}
	pc["access"] = "public"
}

// Marshal serializes the manifest with two-space indentation, no HTML
// escaping, and a trailing newline. Map keys marshal sorted, so output is
// byte-stable across runs.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.fields); err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Save overwrites the manifest file at path in place. There is no partial
// write protection; the pipeline is the only writer at build time.
func (m *Manifest) Save(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
