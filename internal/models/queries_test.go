package models

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blog/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Init(database))
	t.Cleanup(func() { database.Close() })
	return database
}

func TestCreateUserDuplicate(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, CreateUser(database, "alice", "hash1"))
	err := CreateUser(database, "alice", "hash2")
	require.ErrorIs(t, err, ErrDuplicateUsername)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM user`).Scan(&count))
	require.Equal(t, 1, count, "failed registration must not insert a row")
}

func TestGetUser(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, CreateUser(database, "alice", "hash"))

	byName, err := GetUserByUsername(database, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", byName.Username)
	require.Equal(t, "hash", byName.PasswordHash)

	byID, err := GetUserByID(database, byName.ID)
	require.NoError(t, err)
	require.Equal(t, byName.Username, byID.Username)

	_, err = GetUserByUsername(database, "bob")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPostLifecycle(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, CreateUser(database, "alice", "hash"))
	alice, err := GetUserByUsername(database, "alice")
	require.NoError(t, err)

	id, err := CreatePost(database, "first", "hello\nworld", alice.ID)
	require.NoError(t, err)

	post, err := GetPost(database, id)
	require.NoError(t, err)
	require.Equal(t, "first", post.Title)
	require.Equal(t, "hello\nworld", post.Body, "newlines preserved verbatim")
	require.Equal(t, alice.ID, post.AuthorID)
	require.Equal(t, "alice", post.Author)
	require.False(t, post.Created.IsZero(), "store assigns the created timestamp")

	require.NoError(t, UpdatePost(database, id, "renamed", ""))
	post, err = GetPost(database, id)
	require.NoError(t, err)
	require.Equal(t, "renamed", post.Title)
	require.Equal(t, "", post.Body)
	require.Equal(t, alice.ID, post.AuthorID, "update touches only title and body")

	require.NoError(t, DeletePost(database, id))
	_, err = GetPost(database, id)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetPostNotFound(t *testing.T) {
	database := openTestDB(t)
	_, err := GetPost(database, 999)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPostsOrder(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, CreateUser(database, "alice", "hash"))
	alice, err := GetUserByUsername(database, "alice")
	require.NoError(t, err)

	// Explicit timestamps so the ordering is not at the mercy of the
	// store clock's one-second resolution.
	base := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		_, err := database.Exec(`INSERT INTO post (title, body, author_id, created) VALUES (?, ?, ?, ?)`,
			title, "", alice.ID, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}
	// Same timestamp as "newest": id breaks the tie.
	_, err = database.Exec(`INSERT INTO post (title, body, author_id, created) VALUES (?, ?, ?, ?)`,
		"tied", "", alice.ID, base.Add(2*time.Hour))
	require.NoError(t, err)

	posts, err := ListPosts(database)
	require.NoError(t, err)
	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	require.Equal(t, []string{"tied", "newest", "middle", "oldest"}, titles)

	again, err := ListPosts(database)
	require.NoError(t, err)
	require.Equal(t, posts, again, "listing is stable without intervening writes")
}
