package model

import "time"

// Post is a wall entry. Author is set at creation and immutable afterwards;
// the repository eager-loads it for feed reads.
type Post struct {
	ID        uint
	Text      string
	Images    ImageList
	AuthorID  uint
	Author    Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}
