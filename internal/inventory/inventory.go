package inventory

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/tallyhq/ghes-inventory/internal/github"
)

// Inventory walks every organization and repository visible under an
// enterprise and produces CSV inventory lines.
type Inventory struct {
	client github.GitHubClient
	config Config
	filter *RepoFilter
}

// New creates a new Inventory with the given configuration.
// It supports two authentication methods:
//   - GitHub App: Set AppID, InstallationID, and PrivateKey
//   - Classic PAT: Set Token
func New(config Config) (*Inventory, error) {
	var client github.GitHubClient
	var err error

	if config.AppID != 0 && config.PrivateKey != "" {
		if config.InstallationID == 0 {
			return nil, fmt.Errorf("%s is required when using GitHub App authentication", EnvInstallationID)
		}
		client, err = github.NewClientFromApp(
			config.AppID,
			config.InstallationID,
			[]byte(config.PrivateKey),
			config.Host,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub App client: %w", err)
		}
	} else if config.Token != "" {
		client = github.NewClient(config.Token, config.Host)
	} else {
		return nil, fmt.Errorf("authentication required: provide %s or %s + %s", EnvToken, EnvAppID, EnvPrivateKey)
	}

	return newWithClient(config, client)
}

// NewWithClient creates an Inventory with a custom client (for testing).
func NewWithClient(config Config, client github.GitHubClient) (*Inventory, error) {
	return newWithClient(config, client)
}

func newWithClient(config Config, client github.GitHubClient) (*Inventory, error) {
	filter, err := NewRepoFilter(config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	return &Inventory{
		client: client,
		config: config,
		filter: filter,
	}, nil
}

// Produce walks the enterprise and emits CSV lines through emit: the header
// first, then one line per repository, grouped by organization in traversal
// order. All organizations are resolved before any repository page is
// fetched, and an organization's repositories are fully accumulated before
// its first row is emitted.
//
// The first error, whether from the API or from emit, aborts the run. There
// is no retry and no per-organization isolation.
func (inv *Inventory) Produce(ctx context.Context, emit func(line string) error) error {
	if err := emit(Header + "\n"); err != nil {
		return err
	}

	orgs, err := inv.client.ListOrganizations(ctx, inv.config.EnterpriseSlug)
	if err != nil {
		return fmt.Errorf("failed to fetch organizations: %w", err)
	}
	log.WithFields(log.Fields{
		"enterprise":    inv.config.EnterpriseSlug,
		"organizations": len(orgs),
	}).Info("resolved organizations")

	total := 0
	skipped := 0
	for _, org := range orgs {
		repos, err := inv.client.ListRepositories(ctx, org.Login)
		if err != nil {
			return fmt.Errorf("failed to fetch repositories for %s: %w", org.Login, err)
		}
		log.WithFields(log.Fields{
			"organization": org.Login,
			"repositories": len(repos),
		}).Debug("fetched repositories")

		for _, repo := range repos {
			if !inv.filter.Match(repo.Name) {
				skipped++
				continue
			}
			if err := emit(FormatRow(org.Login, repo)); err != nil {
				return err
			}
			total++
		}
	}

	log.WithFields(log.Fields{
		"organizations": len(orgs),
		"repositories":  total,
		"skipped":       skipped,
	}).Info("inventory complete")

	return nil
}

// Run produces the inventory and writes it to the configured output path.
func (inv *Inventory) Run(ctx context.Context) error {
	return WriteFile(inv.config.OutputPath, func(emit func(line string) error) error {
		return inv.Produce(ctx, emit)
	})
}
