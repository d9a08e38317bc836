package domain

import "time"

// Comment is a note attached to a ticket. Internal comments are visible to
// staff only. Comments are immutable once created.
type Comment struct {
	ID         string
	TicketID   string
	AuthorID   string
	AuthorName string
	Content    string
	Internal   bool
	CreatedAt  time.Time
}
