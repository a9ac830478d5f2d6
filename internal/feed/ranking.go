// Package feed orders the post list for a viewer: search matches ahead of
// non-matches, then new posts from followed authors ahead of everything
// else. Both passes are stable, so relative order within each group is the
// store's newest-first order.
package feed

import (
	"strings"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
)

// Viewer carries the per-user state the ranker needs. A nil Viewer (or one
// following nobody) disables the promotion pass.
type Viewer struct {
	FollowingIDs []string
	SeenPostIDs  []string
}

// Rank applies the search pass and then the promotion pass. It returns the
// ordered posts and the number of search matches (zero when the query is
// empty).
func Rank(posts []models.Post, query string, viewer *Viewer) ([]models.Post, int) {
	ordered, matchCount := SearchOrder(posts, query)
	return PromoteUnseen(ordered, viewer), matchCount
}

// SearchOrder moves posts matching the query ahead of non-matches,
// preserving relative order within each group. A post matches when the
// trimmed, lowercased query is a substring of its title, author name,
// author username or genre.
func SearchOrder(posts []models.Post, query string) ([]models.Post, int) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return posts, 0
	}

	matches := make([]models.Post, 0, len(posts))
	rest := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if matchesQuery(&p, q) {
			matches = append(matches, p)
		} else {
			rest = append(rest, p)
		}
	}
	return append(matches, rest...), len(matches)
}

func matchesQuery(p *models.Post, q string) bool {
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Author), q) ||
		strings.Contains(strings.ToLower(p.AuthorUsername), q) ||
		strings.Contains(strings.ToLower(p.Genre), q)
}

// PromoteUnseen moves posts authored by someone the viewer follows and not
// yet seen by the viewer to the front, preserving relative order otherwise.
func PromoteUnseen(posts []models.Post, viewer *Viewer) []models.Post {
	if viewer == nil || len(viewer.FollowingIDs) == 0 {
		return posts
	}

	following := make(map[string]bool, len(viewer.FollowingIDs))
	for _, id := range viewer.FollowingIDs {
		following[id] = true
	}
	seen := make(map[string]bool, len(viewer.SeenPostIDs))
	for _, id := range viewer.SeenPostIDs {
		seen[id] = true
	}

	top := make([]models.Post, 0, len(posts))
	rest := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.AuthorID != "" && following[p.AuthorID] && !seen[p.ID] {
			top = append(top, p)
		} else {
			rest = append(rest, p)
		}
	}
	return append(top, rest...)
}
