package models

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Post is a row of the post table joined with its author's username.
type Post struct {
	ID       int64
	AuthorID int64
	Created  time.Time
	Title    string
	Body     string
	Author   string
}
