package feed

import (
	"testing"

	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
)

func postIDs(posts []models.Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func assertOrder(t *testing.T, got []models.Post, want []string) {
	t.Helper()
	gotIDs := postIDs(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %d posts, want %d (%v)", len(gotIDs), len(want), gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, gotIDs, want)
		}
	}
}

func TestSearchOrderMatchesTitleAuthorUsernameGenre(t *testing.T) {
	posts := []models.Post{
		{ID: "1", Title: "Gardening"},
		{ID: "2", Title: "Love Letter", Author: "Alice"},
		{ID: "3", Title: "Autumn", Genre: "Romance, love"},
		{ID: "4", Title: "Cooking", AuthorUsername: "love_sick99"},
	}

	ordered, matchCount := SearchOrder(posts, "love")

	if matchCount != 3 {
		t.Fatalf("matchCount = %d, want 3", matchCount)
	}
	// Matches keep their relative order and come before non-matches.
	assertOrder(t, ordered, []string{"2", "3", "4", "1"})
}

func TestSearchOrderIsCaseInsensitiveAndTrimmed(t *testing.T) {
	posts := []models.Post{
		{ID: "1", Title: "Autumn"},
		{ID: "2", Title: "LOVE letter"},
	}

	ordered, matchCount := SearchOrder(posts, "  LoVe ")

	if matchCount != 1 {
		t.Fatalf("matchCount = %d, want 1", matchCount)
	}
	assertOrder(t, ordered, []string{"2", "1"})
}

func TestSearchOrderEmptyQueryKeepsOrder(t *testing.T) {
	posts := []models.Post{{ID: "1"}, {ID: "2"}}

	ordered, matchCount := SearchOrder(posts, "   ")

	if matchCount != 0 {
		t.Fatalf("matchCount = %d, want 0", matchCount)
	}
	assertOrder(t, ordered, []string{"1", "2"})
}

func TestPromoteUnseenMovesFollowedUnseenToFront(t *testing.T) {
	posts := []models.Post{
		{ID: "1", AuthorID: "stranger"},
		{ID: "2", AuthorID: "friend"},
		{ID: "3", AuthorID: "friend"},
		{ID: "4", AuthorID: "other-friend"},
	}
	viewer := &Viewer{
		FollowingIDs: []string{"friend", "other-friend"},
		SeenPostIDs:  []string{"3"},
	}

	ordered := PromoteUnseen(posts, viewer)

	// 2 and 4 are followed and unseen; 3 is followed but already seen.
	assertOrder(t, ordered, []string{"2", "4", "1", "3"})
}

func TestPromoteUnseenNilViewerIsNoop(t *testing.T) {
	posts := []models.Post{{ID: "1", AuthorID: "a"}, {ID: "2", AuthorID: "b"}}

	assertOrder(t, PromoteUnseen(posts, nil), []string{"1", "2"})
	assertOrder(t, PromoteUnseen(posts, &Viewer{}), []string{"1", "2"})
}

func TestPromoteUnseenIgnoresPostsWithoutAuthorID(t *testing.T) {
	posts := []models.Post{
		{ID: "1"},
		{ID: "2", AuthorID: "friend"},
	}
	viewer := &Viewer{FollowingIDs: []string{"friend"}}

	assertOrder(t, PromoteUnseen(posts, viewer), []string{"2", "1"})
}

func TestRankAppliesSearchThenPromotion(t *testing.T) {
	posts := []models.Post{
		{ID: "1", Title: "Autumn", AuthorID: "friend"},
		{ID: "2", Title: "Love Letter", AuthorID: "stranger"},
		{ID: "3", Title: "Cooking", AuthorID: "stranger"},
	}
	viewer := &Viewer{FollowingIDs: []string{"friend"}}

	ordered, matchCount := Rank(posts, "love", viewer)

	if matchCount != 1 {
		t.Fatalf("matchCount = %d, want 1", matchCount)
	}
	// Search puts 2 first, then promotion lifts the unseen followed post 1
	// above everything.
	assertOrder(t, ordered, []string{"1", "2", "3"})
}
