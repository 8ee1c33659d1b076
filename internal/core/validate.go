package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validator enforces the payload bounds for both gateway operations. All
// trimming happens before any length check, so a whitespace-only message of
// any size is rejected as empty rather than as oversized. Lengths are counted
// in characters, not bytes.
type Validator struct {
	maxMessages        int
	maxMessageLength   int
	maxConversationLen int
	maxTextLength      int
}

// NewValidator creates a validator with the configured bounds.
func NewValidator(maxMessages, maxMessageLength, maxConversationLen, maxTextLength int) *Validator {
	return &Validator{
		maxMessages:        maxMessages,
		maxMessageLength:   maxMessageLength,
		maxConversationLen: maxConversationLen,
		maxTextLength:      maxTextLength,
	}
}

// ValidateConversation checks message count, per-message content and the
// aggregate conversation length. Message contents are trimmed in place so the
// transcript is built from the normalized form.
func (v *Validator) ValidateConversation(conv *Conversation) error {
	if conv == nil || len(conv.Messages) == 0 {
		return fmt.Errorf("%w: conversation must contain at least one message", ErrValidation)
	}
	if len(conv.Messages) > v.maxMessages {
		return fmt.Errorf("%w: conversation cannot exceed %d messages", ErrValidation, v.maxMessages)
	}

	total := 0
	for i := range conv.Messages {
		msg := &conv.Messages[i]
		if !msg.Role.Valid() {
			return fmt.Errorf("%w: message %d has invalid role %q", ErrValidation, i, msg.Role)
		}
		msg.Content = strings.TrimSpace(msg.Content)
		length := utf8.RuneCountInString(msg.Content)
		if length == 0 {
			return fmt.Errorf("%w: message %d content cannot be empty", ErrValidation, i)
		}
		if length > v.maxMessageLength {
			return fmt.Errorf("%w: message %d content cannot exceed %d characters", ErrValidation, i, v.maxMessageLength)
		}
		total += length
	}

	if total > v.maxConversationLen {
		return fmt.Errorf("%w: total conversation length cannot exceed %d characters", ErrValidation, v.maxConversationLen)
	}
	return nil
}

// ValidateText checks a single classification input and returns the trimmed
// form that should be sent to the backend.
func (v *Validator) ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: text cannot be empty", ErrValidation)
	}
	if utf8.RuneCountInString(trimmed) > v.maxTextLength {
		return "", fmt.Errorf("%w: text cannot exceed %d characters", ErrValidation, v.maxTextLength)
	}
	return trimmed, nil
}
