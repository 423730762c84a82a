package metadata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kicadtools/pcmgen/internal/models"
)

// DefaultKicadVersion is assumed when the base metadata carries no
// kicad_version field.
var DefaultKicadVersion = json.RawMessage(`"8.0"`)

// Base holds the parsed contents of metadata.base.json. Every field is
// carried through to the published package record untouched, except
// kicad_version, which is consumed at load time and re-emitted inside
// each version entry instead, whatever its JSON type.
type Base struct {
	Identifier   string
	KicadVersion json.RawMessage

	fields map[string]json.RawMessage
}

// Load reads and parses a base metadata file
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.BuildError{Type: models.ErrMetadata, Path: path, Err: err}
	}

	base, err := Parse(data)
	if err != nil {
		return nil, &models.BuildError{Type: models.ErrMetadata, Path: path, Err: err}
	}
	return base, nil
}

// Parse parses base metadata from raw JSON
func Parse(data []byte) (*Base, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("invalid metadata: %w", err)
	}

	identifier, err := stringField(fields, "identifier")
	if err != nil {
		return nil, err
	}

	if _, ok := fields["author"]; !ok {
		return nil, fmt.Errorf("missing required field %q", "author")
	}

	kicadVersion := DefaultKicadVersion
	if raw, ok := fields["kicad_version"]; ok {
		kicadVersion = raw
		delete(fields, "kicad_version")
	}

	return &Base{
		Identifier:   identifier,
		KicadVersion: kicadVersion,
		fields:       fields,
	}, nil
}

// Maintainer returns the maintainer field, falling back to author when
// the base metadata has no maintainer.
func (b *Base) Maintainer() json.RawMessage {
	if raw, ok := b.fields["maintainer"]; ok {
		return raw
	}
	return b.fields["author"]
}

// PackageRecord builds the full package object: every base field plus
// the given version list. The versions argument is either the
// published or the shipped view of the entries.
func (b *Base) PackageRecord(versions interface{}) (map[string]json.RawMessage, error) {
	record := make(map[string]json.RawMessage, len(b.fields)+1)
	for k, v := range b.fields {
		record[k] = v
	}

	raw, err := json.Marshal(versions)
	if err != nil {
		return nil, err
	}
	record["versions"] = raw

	return record, nil
}

func stringField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("missing required field %q", name)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %q: %w", name, err)
	}
	if s == "" {
		return "", fmt.Errorf("field %q is empty", name)
	}
	return s, nil
}
