package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Comment is one user comment on a listing. Comments are append-only
// from the client's perspective; only the like counter moves after
// creation, and it never decreases.
type Comment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Avatar    string `json:"avatar"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
}

// AnonymousAuthor is used when no session is active at comment time.
const AnonymousAuthor = "Anonymous"

// NewComment builds a client-generated comment. The ID is derived from
// the clock, the avatar glyph from the author's first rune.
func NewComment(author, content string, now time.Time) Comment {
	author = strings.TrimSpace(author)
	if author == "" {
		author = AnonymousAuthor
	}
	return Comment{
		ID:        fmt.Sprintf("c%d", now.UnixMilli()),
		Author:    author,
		Avatar:    avatarGlyph(author),
		Content:   content,
		Timestamp: now.Format(time.RFC3339),
		Likes:     0,
	}
}

// avatarGlyph returns the uppercased first rune of the author name.
func avatarGlyph(author string) string {
	r, size := utf8.DecodeRuneInString(author)
	if size == 0 || r == utf8.RuneError {
		return "A"
	}
	return strings.ToUpper(string(r))
}
