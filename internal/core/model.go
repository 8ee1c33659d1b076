package core

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role identifies which side of a scam conversation a message belongs to.
type Role string

const (
	RoleScammer Role = "scammer"
	RoleUser    Role = "user"
)

var titleCaser = cases.Title(language.English)

// Display returns the role in the casing used when rendering transcripts.
func (r Role) Display() string {
	return titleCaser.String(string(r))
}

// Valid reports whether the role is one of the accepted values.
func (r Role) Valid() bool {
	return r == RoleScammer || r == RoleUser
}

// Message is a single turn of a scam conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the ordered exchange submitted for reply generation.
type Conversation struct {
	Messages []Message
}

// ClassificationResult is the structured outcome of classifying a piece of text.
// The label is expected to be one of Scam, Most Certainly Scam, Safe,
// Most Certainly Safe or Unknown, but the backend's wording is passed
// through verbatim and never checked against that vocabulary.
type ClassificationResult struct {
	Label         string
	Tags          []string
	Justification string
}

// ReplyResult is the outcome of generating a conversational reply.
// ConversationLength is the character count of the flattened transcript
// that was sent to the backend.
type ReplyResult struct {
	Reply              string
	ConversationLength int
}

// CacheEntry is a cached classification keyed by a hash of the input text.
type CacheEntry struct {
	TextHash      string
	Label         string
	Tags          []string
	Justification string
	LastSeen      time.Time
	ExpiresAt     time.Time
}
