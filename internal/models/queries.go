package models

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	ErrDuplicateUsername = errors.New("username already registered")
	ErrPostNotFound      = errors.New("post not found")
)

// CreateUser inserts a new user with an already-hashed password.
// A uniqueness violation on username is reported as ErrDuplicateUsername;
// any other store error propagates as-is.
func CreateUser(db *sql.DB, username, passwordHash string) error {
	_, err := db.Exec(`INSERT INTO user (username, password_hash) VALUES (?, ?)`, username, passwordHash)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: user.username") {
		return ErrDuplicateUsername
	}
	return err
}

func GetUserByUsername(db *sql.DB, username string) (*User, error) {
	row := db.QueryRow(`SELECT id, username, password_hash FROM user WHERE username = ?`, username)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByID(db *sql.DB, id int64) (*User, error) {
	row := db.QueryRow(`SELECT id, username, password_hash FROM user WHERE id = ?`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListPosts returns all posts joined with the author's username, most
// recent first. Equal timestamps fall back to id order so the result is
// deterministic.
func ListPosts(db *sql.DB) ([]Post, error) {
	rows, err := db.Query(`SELECT p.id, p.author_id, p.created, p.title, p.body, u.username
		FROM post p JOIN user u ON p.author_id = u.id
		ORDER BY p.created DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Created, &p.Title, &p.Body, &p.Author); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func GetPost(db *sql.DB, id int64) (*Post, error) {
	row := db.QueryRow(`SELECT p.id, p.author_id, p.created, p.title, p.body, u.username
		FROM post p JOIN user u ON p.author_id = u.id
		WHERE p.id = ?`, id)
	var p Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Created, &p.Title, &p.Body, &p.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePost inserts a post for the given author. The store assigns the
// id and created timestamp. Title validation happens in the handler.
func CreatePost(db *sql.DB, title, body string, authorID int64) (int64, error) {
	res, err := db.Exec(`INSERT INTO post (title, body, author_id) VALUES (?, ?, ?)`, title, body, authorID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePost overwrites title and body of an existing post. The caller
// has already verified existence and ownership.
func UpdatePost(db *sql.DB, id int64, title, body string) error {
	_, err := db.Exec(`UPDATE post SET title = ?, body = ? WHERE id = ?`, title, body, id)
	return err
}

func DeletePost(db *sql.DB, id int64) error {
	_, err := db.Exec(`DELETE FROM post WHERE id = ?`, id)
	return err
}
