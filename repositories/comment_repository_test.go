package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListComments(t *testing.T) {
	db := newTestDB(t)
	ada := seedUser(t, db, "Ada", "ada@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)

	post, err := posts.Create(ada, "Discussed", "s", "b", "https://example.com/a.png")
	require.NoError(t, err)
	other, err := posts.Create(ada, "Quiet", "s", "b", "https://example.com/b.png")
	require.NoError(t, err)

	_, err = comments.Create(post.ID, ada, "author here")
	require.NoError(t, err)
	_, err = comments.Create(post.ID, bob, "nice post")
	require.NoError(t, err)

	list, err := comments.ForPost(post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, c := range list {
		assert.Equal(t, post.ID, c.PostID)
		// the author is loaded for display name and avatar email
		assert.NotEmpty(t, c.Author.Name)
		assert.NotEmpty(t, c.Author.Email)
	}

	empty, err := comments.ForPost(other.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
