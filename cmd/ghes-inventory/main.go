// ghes-inventory exports a CSV inventory of every organization and
// repository visible to a credential within a GitHub Enterprise instance.
//
// Configuration is taken from the environment (optionally a .env file);
// see the flag and variable descriptions below.
package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tallyhq/ghes-inventory/internal/inventory"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	output     string
	enterprise string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "ghes-inventory",
	Version: Version,
	Short:   "Export a CSV inventory of all repositories in a GitHub Enterprise instance",
	Long: `Walks every organization visible to the credential under the configured
enterprise slug, fetches per-repository metadata (size, activity counters,
protection rules, languages, authorship) through the GraphQL API, and writes
one CSV row per repository.

Required environment variables:
  GITHUB_TOKEN    personal access token (or GITHUB_APP_ID,
                  GITHUB_APP_INSTALLATION_ID and GITHUB_APP_PRIVATE_KEY
                  for GitHub App authentication)
  GITHUB_HOST     GitHub Enterprise hostname

Optional environment variables:
  GITHUB_ENTERPRISE_SLUG        enterprise slug (default "github")
  REPOSITORY_INVENTORY          output path (default
                                <cwd>/repository-inventory-<epoch-ms>.csv)
  REPOSITORY_INCLUDE_PATTERNS   comma-separated repo name globs to include
  REPOSITORY_EXCLUDE_PATTERNS   comma-separated repo name globs to exclude`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (overrides REPOSITORY_INVENTORY)")
	rootCmd.Flags().StringVarP(&enterprise, "enterprise", "e", "", "Enterprise slug (overrides GITHUB_ENTERPRISE_SLUG)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func run(cmd *cobra.Command, _ []string) error {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	config, err := inventory.FromEnv()
	if err != nil {
		return err
	}
	if output != "" {
		config.OutputPath = output
	}
	if enterprise != "" {
		config.EnterpriseSlug = enterprise
	}

	inv, err := inventory.New(config)
	if err != nil {
		return err
	}

	return inv.Run(cmd.Context())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
