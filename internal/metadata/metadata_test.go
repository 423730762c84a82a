package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kicadtools/pcmgen/internal/models"
)

func TestParsePopsKicadVersion(t *testing.T) {
	base, err := Parse([]byte(`{
		"identifier": "com.example.lib",
		"name": "Example Library",
		"author": "Jane Doe",
		"kicad_version": "8.99"
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if base.Identifier != "com.example.lib" {
		t.Errorf("Identifier = %q, want %q", base.Identifier, "com.example.lib")
	}
	if string(base.KicadVersion) != `"8.99"` {
		t.Errorf("KicadVersion = %s, want %s", base.KicadVersion, `"8.99"`)
	}

	// kicad_version is consumed, not re-emitted at top level
	record, err := base.PackageRecord(nil)
	if err != nil {
		t.Fatalf("PackageRecord failed: %v", err)
	}
	if _, ok := record["kicad_version"]; ok {
		t.Errorf("kicad_version should not appear in the package record")
	}
	if _, ok := record["name"]; !ok {
		t.Errorf("unrecognized base fields must be carried through")
	}
}

func TestParseDefaultKicadVersion(t *testing.T) {
	base, err := Parse([]byte(`{"identifier": "com.example.lib", "author": "Jane Doe"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if string(base.KicadVersion) != string(DefaultKicadVersion) {
		t.Errorf("KicadVersion = %s, want default %s", base.KicadVersion, DefaultKicadVersion)
	}
}

func TestParseNonStringKicadVersion(t *testing.T) {
	// The field is carried through untouched whatever its JSON type
	base, err := Parse([]byte(`{"identifier": "com.example.lib", "author": "Jane Doe", "kicad_version": 8}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if string(base.KicadVersion) != "8" {
		t.Errorf("KicadVersion = %s, want %s", base.KicadVersion, "8")
	}

	record, err := base.PackageRecord(nil)
	if err != nil {
		t.Fatalf("PackageRecord failed: %v", err)
	}
	if _, ok := record["kicad_version"]; ok {
		t.Errorf("kicad_version should still be consumed from the base fields")
	}
}

func TestParseMissingRequiredFields(t *testing.T) {
	if _, err := Parse([]byte(`{"author": "Jane Doe"}`)); err == nil {
		t.Errorf("expected error for missing identifier")
	}
	if _, err := Parse([]byte(`{"identifier": "com.example.lib"}`)); err == nil {
		t.Errorf("expected error for missing author")
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Errorf("expected error for malformed JSON")
	}
}

func TestMaintainerFallsBackToAuthor(t *testing.T) {
	base, err := Parse([]byte(`{"identifier": "com.example.lib", "author": "Jane Doe"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var maintainer string
	if err := json.Unmarshal(base.Maintainer(), &maintainer); err != nil {
		t.Fatalf("Maintainer is not a JSON string: %v", err)
	}
	if maintainer != "Jane Doe" {
		t.Errorf("Maintainer = %q, want %q", maintainer, "Jane Doe")
	}

	base, err = Parse([]byte(`{"identifier": "com.example.lib", "author": "Jane Doe", "maintainer": "John Smith"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := json.Unmarshal(base.Maintainer(), &maintainer); err != nil {
		t.Fatalf("Maintainer is not a JSON string: %v", err)
	}
	if maintainer != "John Smith" {
		t.Errorf("Maintainer = %q, want %q", maintainer, "John Smith")
	}
}

func TestPackageRecordEmbedsVersions(t *testing.T) {
	base, err := Parse([]byte(`{"identifier": "com.example.lib", "author": "Jane Doe"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	record, err := base.PackageRecord([]models.Version{{
		Version:      "1.0.0",
		Status:       models.StatusStable,
		KicadVersion: json.RawMessage(`"8.0"`),
	}})
	if err != nil {
		t.Fatalf("PackageRecord failed: %v", err)
	}

	var versions []models.Version
	if err := json.Unmarshal(record["versions"], &versions); err != nil {
		t.Fatalf("versions field: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("got %d versions, want 1", len(versions))
	}
	if versions[0].Version != "1.0.0" || versions[0].Status != models.StatusStable {
		t.Errorf("unexpected version entry: %+v", versions[0])
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "pcmgen-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "metadata.base.json")
	os.WriteFile(path, []byte(`{"identifier": "com.example.lib", "author": "Jane Doe"}`), 0644)

	base, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if base.Identifier != "com.example.lib" {
		t.Errorf("Identifier = %q, want %q", base.Identifier, "com.example.lib")
	}

	if _, err := Load(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
