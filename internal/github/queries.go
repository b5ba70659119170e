// Package github provides GraphQL client functionality for GitHub Enterprise.
package github

import "github.com/shurcooL/githubv4"

// pageInfo carries the cursor state of one connection page.
type pageInfo struct {
	EndCursor   githubv4.String
	HasNextPage bool
}

// organizationsQuery fetches one page of organizations under an enterprise.
type organizationsQuery struct {
	Enterprise struct {
		Organizations struct {
			Nodes    []Organization
			PageInfo pageInfo
		} `graphql:"organizations(first: $pageSize, after: $cursor)"`
	} `graphql:"enterprise(slug: $slug)"`
}

// repositoriesQuery fetches one page of repositories under an organization,
// requesting the full inventory field set per repository.
type repositoriesQuery struct {
	Organization struct {
		Repositories struct {
			Nodes    []Repository
			PageInfo pageInfo
		} `graphql:"repositories(first: $pageSize, after: $cursor)"`
	} `graphql:"organization(login: $login)"`
}

// Organization identifies a GitHub organization within an enterprise.
type Organization struct {
	Login string
}

// Language is a programming language as reported by GitHub's linguist.
type Language struct {
	Name string
}

// GitActor is an author identity on a commit.
type GitActor struct {
	Name  string
	Email string
}

// Count wraps the totalCount field of a GraphQL connection.
type Count struct {
	TotalCount int
}

// Repository holds the per-repository metadata requested for the inventory.
// Timestamps are kept as the raw ISO-8601 strings returned by the API.
type Repository struct {
	Name                  string
	URL                   string
	Branches              Count `graphql:"branches: refs(refPrefix: $headRefPrefix)"`
	BranchProtectionRules Count
	CommitComments        Count
	Collaborators         Count
	DiskUsage             int
	Discussions           Count
	HasWikiEnabled        bool
	IsEmpty               bool
	IsFork                bool
	Issues                Count
	Milestones            Count
	Projects              Count
	PullRequests          Count
	PushedAt              string
	Releases              Count
	Tags                  Count `graphql:"tags: refs(refPrefix: $tagRefPrefix)"`
	UpdatedAt             string
	IsArchived            bool
	IsTemplate            bool
	Languages             struct {
		Nodes []Language
	} `graphql:"languages(first: $pageSize)"`
	// PrimaryLanguage is nil when GitHub has not detected a language.
	PrimaryLanguage *Language
	// DefaultBranchRef is nil for repositories without commits.
	DefaultBranchRef *DefaultBranchRef
}

// DefaultBranchRef carries the commit history sample reachable from the
// default branch tip.
type DefaultBranchRef struct {
	Target struct {
		Commit struct {
			History struct {
				Nodes []CommitNode
			} `graphql:"history(first: $authorSample)"`
		} `graphql:"... on Commit"`
	}
}

// CommitNode is one commit in a history sample.
type CommitNode struct {
	Author GitActor
}

// Authors returns the distinct author identities sampled from the default
// branch tip, in first-seen order. It returns nil for empty repositories.
func (r Repository) Authors() []GitActor {
	if r.DefaultBranchRef == nil {
		return nil
	}

	var authors []GitActor
	seen := make(map[GitActor]bool)
	for _, commit := range r.DefaultBranchRef.Target.Commit.History.Nodes {
		if seen[commit.Author] {
			continue
		}
		seen[commit.Author] = true
		authors = append(authors, commit.Author)
	}
	return authors
}

// LanguageNames returns the names of all detected languages in server order.
func (r Repository) LanguageNames() []string {
	names := make([]string, 0, len(r.Languages.Nodes))
	for _, lang := range r.Languages.Nodes {
		names = append(names, lang.Name)
	}
	return names
}
