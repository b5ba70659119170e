package github

import (
	"context"

	"github.com/shurcooL/githubv4"
)

// page is one bounded batch of nodes plus its continuation state.
type page[T any] struct {
	Nodes       []T
	EndCursor   githubv4.String
	HasNextPage bool
}

// fetchFunc fetches a single page starting at the given cursor.
// A nil cursor requests the first page.
type fetchFunc[T any] func(ctx context.Context, cursor *githubv4.String) (page[T], error)

// paginate drives a cursor-paginated connection to exhaustion and returns
// all nodes. Each page's nodes are appended after the nodes accumulated so
// far, so the result preserves server order across pages. The first fetch
// error aborts the traversal and is returned as-is.
func paginate[T any](ctx context.Context, fetch fetchFunc[T]) ([]T, error) {
	var (
		nodes  []T
		cursor *githubv4.String
	)

	for {
		p, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, p.Nodes...)

		if !p.HasNextPage {
			return nodes, nil
		}
		end := p.EndCursor
		cursor = &end
	}
}
