package entity

import (
	"math"
	"strings"
	"time"
)

// BlogState is the two-state lifecycle tag of a post.
type BlogState string

const (
	StateDraft     BlogState = "draft"
	StatePublished BlogState = "published"
)

// ParseBlogState validates a caller-supplied state. Anything outside the
// enumeration is rejected rather than stored as a free-form string.
func ParseBlogState(s string) (BlogState, bool) {
	switch BlogState(s) {
	case StateDraft, StatePublished:
		return BlogState(s), true
	}
	return "", false
}

// wordsPerMinute is the reading speed assumed for the reading_time estimate.
const wordsPerMinute = 200

// ReadingTime estimates whole minutes needed to read body: ceil(words/200)
// with a floor of one minute for any non-empty body. It is always derived
// server-side, never taken from input.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}
	return int(math.Max(1, math.Ceil(float64(words)/wordsPerMinute)))
}

// Blog is the aggregate root for the blog domain. AuthorID is fixed at
// creation and never reassigned.
type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	Body        string    `json:"body"`
	AuthorID    string    `json:"author_id"`
	Author      *Author   `json:"author,omitempty"`
	State       BlogState `json:"state"`
	ReadCount   int64     `json:"read_count"`
	ReadingTime int       `json:"reading_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnedBy is the capability check consulted before every mutating operation.
func (b *Blog) OwnedBy(userID string) bool {
	return userID != "" && b.AuthorID == userID
}

// Visible reports whether the post is discoverable by non-owner callers.
func (b *Blog) Visible() bool {
	return b.State == StatePublished
}
