package cli

import (
	"fmt"
	"strings"

	"github.com/kicadtools/pcmgen/internal/builder"
	"github.com/kicadtools/pcmgen/internal/models"
	"github.com/kicadtools/pcmgen/internal/signer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	var config models.BuildConfig

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the package archive and repository indexes",
		Long: `Stages lib-content into a temporary directory, injects version
metadata, archives it under dist/releases/ and emits packages.json,
resources.zip and repository.json under dist/. The dist directory is
recreated from scratch on every run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate configuration
			if err := validateConfig(&config); err != nil {
				return err
			}

			logrus.Info("Starting package build...")
			logrus.Debugf("Configuration: %+v", config)

			var s signer.Signer
			if config.GPGKeyPath != "" {
				gpgSigner, err := signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
				if err != nil {
					return &models.BuildError{
						Type: models.ErrSigning,
						Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
					}
				}
				logrus.Info("GPG signer initialized")
				s = gpgSigner
			}

			result, err := builder.New(s).Build(cmd.Context(), &config)
			if err != nil {
				return err
			}

			logrus.Info("Package build completed successfully!")

			fmt.Fprintf(cmd.OutOrStdout(), "Built package: %s\n", result.PackagePath)
			fmt.Fprintln(cmd.OutOrStdout(), "Repository URL for KiCad PCM:")
			fmt.Fprintln(cmd.OutOrStdout(), result.RepositoryURL)
			return nil
		},
	}

	// Release identity flags
	cmd.Flags().StringVar(&config.Version, "version", "", "Package version, e.g. 1.0.0")
	cmd.Flags().StringVar(&config.Status, "status", models.StatusStable,
		fmt.Sprintf("PCM version status (%s)", strings.Join(models.ValidStatuses, "|")))

	// URL construction flags
	cmd.Flags().StringVar(&config.Owner, "github-owner", "", "GitHub username/org")
	cmd.Flags().StringVar(&config.Repo, "repo", "", "GitHub repository name")

	// Layout flags
	cmd.Flags().StringVar(&config.RootDir, "root", ".", "Project root containing lib-content and pcm/metadata.base.json")

	// Index signing flags
	cmd.Flags().StringVarP(&config.GPGKeyPath, "gpg-key", "k", "", "Path to GPG private key for signing index files")
	cmd.Flags().StringVarP(&config.GPGPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")

	return cmd
}

func validateConfig(config *models.BuildConfig) error {
	if config.Version == "" {
		return &models.BuildError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("version is required"),
		}
	}

	if config.Owner == "" {
		return &models.BuildError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("github-owner is required"),
		}
	}

	if config.Repo == "" {
		return &models.BuildError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("repo is required"),
		}
	}

	if !models.IsValidStatus(config.Status) {
		return &models.BuildError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("status must be one of %s", strings.Join(models.ValidStatuses, "|")),
		}
	}

	if config.RootDir == "" {
		config.RootDir = "."
	}

	return nil
}
