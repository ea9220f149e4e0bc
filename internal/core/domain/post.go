package domain

import "time"

// Post is a free-standing content record exposed by the dashboard API.
type Post struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
}
