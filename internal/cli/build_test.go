package cli

import (
	"testing"

	"github.com/kicadtools/pcmgen/internal/models"
)

func TestValidateConfig(t *testing.T) {
	valid := models.BuildConfig{
		Version: "1.0.0",
		Status:  models.StatusStable,
		Owner:   "acme",
		Repo:    "widgets",
		RootDir: ".",
	}

	if err := validateConfig(&valid); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(c *models.BuildConfig)
	}{
		{"missing version", func(c *models.BuildConfig) { c.Version = "" }},
		{"missing owner", func(c *models.BuildConfig) { c.Owner = "" }},
		{"missing repo", func(c *models.BuildConfig) { c.Repo = "" }},
		{"bad status", func(c *models.BuildConfig) { c.Status = "experimental" }},
	}

	for _, tc := range cases {
		config := valid
		tc.mutate(&config)
		if err := validateConfig(&config); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestValidateConfigDefaultsRoot(t *testing.T) {
	config := models.BuildConfig{
		Version: "1.0.0",
		Status:  models.StatusDevelopment,
		Owner:   "acme",
		Repo:    "widgets",
	}

	if err := validateConfig(&config); err != nil {
		t.Fatalf("validateConfig failed: %v", err)
	}
	if config.RootDir != "." {
		t.Errorf("RootDir = %q, want %q", config.RootDir, ".")
	}
}
