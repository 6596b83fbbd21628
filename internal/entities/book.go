package entities

import "time"

// Book is a catalog entry as returned by the server.
type Book struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Summary     string    `json:"summary"`
	ImageURL    string    `json:"image"`
	OwnerUserID uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	Reviews     []Review  `json:"reviews,omitempty"`
}

// Review is a read-only aggregate attached to a book view.
type Review struct {
	ID           uint      `json:"id"`
	BookID       uint      `json:"book_id"`
	Notes        string    `json:"notes"`
	AuthorUserID uint      `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}
