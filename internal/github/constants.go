package github

// API configuration.
const (
	// PageSize is the number of nodes requested per GraphQL round-trip.
	// The server may return fewer on the last page.
	PageSize = 100

	// AuthorSampleSize bounds the commit history sample used to collect
	// author identities from the default branch tip.
	AuthorSampleSize = 25

	graphqlEndpointFormat = "https://%s/api/graphql"
)

// Ref prefixes used to count branches and tags through the refs connection.
const (
	headRefPrefix = "refs/heads/"
	tagRefPrefix  = "refs/tags/"
)
