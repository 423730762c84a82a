package models

import "encoding/json"

// Version statuses accepted by the PCM schema
const (
	StatusStable      = "stable"
	StatusTesting     = "testing"
	StatusDevelopment = "development"
	StatusDeprecated  = "deprecated"
)

// ValidStatuses lists the accepted release statuses in display order
var ValidStatuses = []string{StatusStable, StatusTesting, StatusDevelopment, StatusDeprecated}

// IsValidStatus reports whether s is an accepted release status
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Version is a single entry in a package's version list as published
// in packages.json. All download fields are always emitted, including
// zero sizes.
type Version struct {
	Version        string          `json:"version"`
	Status         string          `json:"status"`
	KicadVersion   json.RawMessage `json:"kicad_version"`
	DownloadSHA256 string          `json:"download_sha256"`
	DownloadURL    string          `json:"download_url"`
	DownloadSize   int64           `json:"download_size"`
	InstallSize    int64           `json:"install_size"`
}

// ShippedVersion is the pre-build view of a version entry written into
// the metadata file inside the archive, before any download fields
// exist.
type ShippedVersion struct {
	Version      string          `json:"version"`
	Status       string          `json:"status"`
	KicadVersion json.RawMessage `json:"kicad_version"`
}

// Shipped returns the view of v that ships inside the archive
func (v Version) Shipped() ShippedVersion {
	return ShippedVersion{
		Version:      v.Version,
		Status:       v.Status,
		KicadVersion: v.KicadVersion,
	}
}

// PackagesIndex is the wrapper object written to packages.json
type PackagesIndex struct {
	Packages []map[string]json.RawMessage `json:"packages"`
}
