package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultValidator() *Validator {
	return NewValidator(50, 1000, 5000, 2000)
}

func conversationOf(contents ...string) *Conversation {
	conv := &Conversation{}
	for _, c := range contents {
		conv.Messages = append(conv.Messages, Message{Role: RoleScammer, Content: c})
	}
	return conv
}

func TestValidateConversation_Accepts(t *testing.T) {
	v := defaultValidator()

	assert.NoError(t, v.ValidateConversation(conversationOf("hello")))

	// Exactly at the message count bound.
	contents := make([]string, 50)
	for i := range contents {
		contents[i] = "ok"
	}
	assert.NoError(t, v.ValidateConversation(conversationOf(contents...)))
}

func TestValidateConversation_Empty(t *testing.T) {
	v := defaultValidator()

	assert.ErrorIs(t, v.ValidateConversation(nil), ErrValidation)
	assert.ErrorIs(t, v.ValidateConversation(&Conversation{}), ErrValidation)
}

func TestValidateConversation_TooManyMessages(t *testing.T) {
	v := defaultValidator()

	contents := make([]string, 51)
	for i := range contents {
		contents[i] = "ok"
	}
	assert.ErrorIs(t, v.ValidateConversation(conversationOf(contents...)), ErrValidation)
}

func TestValidateConversation_InvalidRole(t *testing.T) {
	v := defaultValidator()

	conv := &Conversation{Messages: []Message{{Role: "operator", Content: "hello"}}}
	assert.ErrorIs(t, v.ValidateConversation(conv), ErrValidation)
}

func TestValidateConversation_WhitespaceOnlyIsEmpty(t *testing.T) {
	v := defaultValidator()

	// Whitespace-only content is rejected as empty even when the raw
	// string exceeds the per-message bound.
	conv := conversationOf(strings.Repeat(" ", 2000))
	err := v.ValidateConversation(conv)
	require.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateConversation_MessageTooLong(t *testing.T) {
	v := defaultValidator()

	assert.NoError(t, v.ValidateConversation(conversationOf(strings.Repeat("a", 1000))))
	assert.ErrorIs(t, v.ValidateConversation(conversationOf(strings.Repeat("a", 1001))), ErrValidation)
}

func TestValidateConversation_TrimBeforeLengthCheck(t *testing.T) {
	v := defaultValidator()

	// 1000 content characters padded with whitespace must pass.
	conv := conversationOf("  " + strings.Repeat("a", 1000) + "  ")
	require.NoError(t, v.ValidateConversation(conv))
	assert.Equal(t, strings.Repeat("a", 1000), conv.Messages[0].Content)
}

func TestValidateConversation_AggregateLength(t *testing.T) {
	v := defaultValidator()

	// Five messages of 1000 characters sit exactly at the aggregate bound.
	msg := strings.Repeat("a", 1000)
	assert.NoError(t, v.ValidateConversation(conversationOf(msg, msg, msg, msg, msg)))

	// One more character anywhere tips it over.
	assert.ErrorIs(t, v.ValidateConversation(conversationOf(msg, msg, msg, msg, msg, "x")), ErrValidation)
}

func TestValidateConversation_CountsRunesNotBytes(t *testing.T) {
	v := defaultValidator()

	// 1000 three-byte runes fit the 1000-character bound.
	assert.NoError(t, v.ValidateConversation(conversationOf(strings.Repeat("好", 1000))))
}

func TestValidateText(t *testing.T) {
	v := defaultValidator()

	trimmed, err := v.ValidateText("  Dear friend, I have a business proposal.  ")
	require.NoError(t, err)
	assert.Equal(t, "Dear friend, I have a business proposal.", trimmed)
}

func TestValidateText_Empty(t *testing.T) {
	v := defaultValidator()

	_, err := v.ValidateText("   \n\t ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateText_TooLong(t *testing.T) {
	v := defaultValidator()

	_, err := v.ValidateText(strings.Repeat("a", 2001))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = v.ValidateText(strings.Repeat("a", 2000))
	assert.NoError(t, err)
}
