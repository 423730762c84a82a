package models

import "encoding/json"

// RepositorySchema is the schema reference stamped into repository.json
const RepositorySchema = "https://gitlab.com/kicad/code/kicad/-/raw/master/" +
	"kicad/pcm/schemas/pcm.v1.schema.json#/definitions/Repository"

// BuildConfig contains configuration for a package build
type BuildConfig struct {
	// Release identity
	Version string
	Status  string

	// GitHub coordinates for the published URLs
	Owner string
	Repo  string

	// Project root the fixed layout is resolved against
	RootDir string

	// Optional index signing
	GPGKeyPath    string
	GPGPassphrase string
}

// Resource describes one downloadable artifact in repository.json
type Resource struct {
	URL             string `json:"url"`
	SHA256          string `json:"sha256"`
	UpdateTimeUTC   string `json:"update_time_utc"`
	UpdateTimestamp int64  `json:"update_timestamp"`
}

// Repository is the top-level index a PCM client fetches first
type Repository struct {
	Schema     string          `json:"$schema"`
	Name       string          `json:"name"`
	Maintainer json.RawMessage `json:"maintainer"`
	Packages   Resource        `json:"packages"`
	Resources  Resource        `json:"resources"`
}
