package inventory

import (
	"strconv"
	"strings"

	"github.com/tallyhq/ghes-inventory/internal/github"
)

// Header is the fixed 25-column CSV header line, without terminator.
const Header = "Name,Organization,URL,Branches (#),Branch Protection Rules (#)," +
	"Commit Comments (#),Collaborators (#),Disk Usage (KB),Discussions (#)," +
	"Has Wiki Enabled?,Is Empty?,Is Fork?,Issues (#),Milestones (#),Projects (#)," +
	"Pull Requests (#),Pushed At,Releases (#),Tags (#),Updated At,Is Archived?," +
	"Is Template?,Languages,Primary Language,Authors"

// MultiValueSeparator joins the members of multi-valued fields (languages,
// authors) within a single CSV cell.
const MultiValueSeparator = "::"

// FormatRow renders one repository as a newline-terminated CSV line in the
// fixed column order of Header.
//
// Field values are written verbatim: embedded commas, quotes, or newlines in
// repository metadata are not escaped. This is a known limitation inherited
// from the reference exporter.
func FormatRow(org string, repo github.Repository) string {
	fields := []string{
		repo.Name,
		org,
		repo.URL,
		strconv.Itoa(repo.Branches.TotalCount),
		strconv.Itoa(repo.BranchProtectionRules.TotalCount),
		strconv.Itoa(repo.CommitComments.TotalCount),
		strconv.Itoa(repo.Collaborators.TotalCount),
		strconv.Itoa(repo.DiskUsage),
		strconv.Itoa(repo.Discussions.TotalCount),
		strconv.FormatBool(repo.HasWikiEnabled),
		strconv.FormatBool(repo.IsEmpty),
		strconv.FormatBool(repo.IsFork),
		strconv.Itoa(repo.Issues.TotalCount),
		strconv.Itoa(repo.Milestones.TotalCount),
		strconv.Itoa(repo.Projects.TotalCount),
		strconv.Itoa(repo.PullRequests.TotalCount),
		repo.PushedAt,
		strconv.Itoa(repo.Releases.TotalCount),
		strconv.Itoa(repo.Tags.TotalCount),
		repo.UpdatedAt,
		strconv.FormatBool(repo.IsArchived),
		strconv.FormatBool(repo.IsTemplate),
		strings.Join(repo.LanguageNames(), MultiValueSeparator),
		formatPrimaryLanguage(repo.PrimaryLanguage),
		formatAuthors(repo.Authors()),
	}
	return strings.Join(fields, ",") + "\n"
}

// formatPrimaryLanguage renders the primary language name, or empty string
// when GitHub has not detected one.
func formatPrimaryLanguage(lang *github.Language) string {
	if lang == nil {
		return ""
	}
	return lang.Name
}

// formatAuthors renders author identities as "Name <email>" pairs joined by
// the multi-value separator. An empty or nil author list renders as empty
// string.
func formatAuthors(authors []github.GitActor) string {
	pairs := make([]string, 0, len(authors))
	for _, author := range authors {
		pairs = append(pairs, author.Name+" <"+author.Email+">")
	}
	return strings.Join(pairs, MultiValueSeparator)
}
