package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pcmgen",
		Short: "Build KiCad PCM package archives and repository index files",
		Long: `Pcmgen packages a directory of KiCad library content into a
distributable zip and generates the JSON index files the KiCad
Plugin and Content Manager fetches: packages.json, resources.zip
and repository.json, with SHA-256 checksums and GitHub download
URLs filled in.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewBuildCmd())

	return rootCmd
}
