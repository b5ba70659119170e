package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// GitHubClient defines the interface for GitHub API operations.
// This interface allows for easy mocking in tests.
type GitHubClient interface {
	ListOrganizations(ctx context.Context, enterprise string) ([]Organization, error)
	ListRepositories(ctx context.Context, org string) ([]Repository, error)
}

// Client wraps the GitHub GraphQL client for a GitHub Enterprise host.
type Client struct {
	graphql *githubv4.Client
}

// Ensure Client implements GitHubClient.
var _ GitHubClient = (*Client)(nil)

// NewClient creates a new client authenticated with a personal access token.
// host is the GitHub Enterprise hostname; the GraphQL endpoint is derived
// from it.
func NewClient(token, host string) *Client {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), src)

	return &Client{
		graphql: githubv4.NewEnterpriseClient(graphqlURL(host), httpClient),
	}
}

// NewClientFromApp creates a client using GitHub App authentication.
func NewClientFromApp(appID, installationID int64, privateKey []byte, host string) (*Client, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}

	return &Client{
		graphql: githubv4.NewEnterpriseClient(graphqlURL(host), &http.Client{Transport: itr}),
	}, nil
}

// NewClientWithGraphQL creates a client against an explicit GraphQL endpoint
// with a custom HTTP client (for testing against httptest servers).
func NewClientWithGraphQL(httpClient *http.Client, graphqlEndpoint string) *Client {
	return &Client{
		graphql: githubv4.NewEnterpriseClient(graphqlEndpoint, httpClient),
	}
}

// graphqlURL builds the GraphQL endpoint for a GitHub Enterprise hostname.
func graphqlURL(host string) string {
	return fmt.Sprintf(graphqlEndpointFormat, host)
}

// ListOrganizations fetches every organization under the enterprise slug,
// accumulated across all pages in server order.
func (c *Client) ListOrganizations(ctx context.Context, enterprise string) ([]Organization, error) {
	orgs, err := paginate(ctx, func(ctx context.Context, cursor *githubv4.String) (page[Organization], error) {
		var query organizationsQuery
		variables := map[string]interface{}{
			"slug":     githubv4.String(enterprise),
			"pageSize": githubv4.Int(PageSize),
			"cursor":   cursor,
		}

		if err := c.graphql.Query(ctx, &query, variables); err != nil {
			return page[Organization]{}, err
		}

		conn := query.Enterprise.Organizations
		return page[Organization]{
			Nodes:       conn.Nodes,
			EndCursor:   conn.PageInfo.EndCursor,
			HasNextPage: conn.PageInfo.HasNextPage,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing organizations for enterprise %q: %w", enterprise, err)
	}
	return orgs, nil
}

// ListRepositories fetches every repository under the organization with the
// full inventory field set, accumulated across all pages in server order.
func (c *Client) ListRepositories(ctx context.Context, org string) ([]Repository, error) {
	repos, err := paginate(ctx, func(ctx context.Context, cursor *githubv4.String) (page[Repository], error) {
		var query repositoriesQuery
		variables := map[string]interface{}{
			"login":         githubv4.String(org),
			"pageSize":      githubv4.Int(PageSize),
			"cursor":        cursor,
			"headRefPrefix": githubv4.String(headRefPrefix),
			"tagRefPrefix":  githubv4.String(tagRefPrefix),
			"authorSample":  githubv4.Int(AuthorSampleSize),
		}

		if err := c.graphql.Query(ctx, &query, variables); err != nil {
			return page[Repository]{}, err
		}

		conn := query.Organization.Repositories
		return page[Repository]{
			Nodes:       conn.Nodes,
			EndCursor:   conn.PageInfo.EndCursor,
			HasNextPage: conn.PageInfo.HasNextPage,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing repositories for organization %q: %w", org, err)
	}
	return repos, nil
}
