package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification_WellFormed(t *testing.T) {
	raw := "Scam, Urgency, Financial\nClassic advance-fee fraud pattern."

	result, err := ParseClassification(raw)
	require.NoError(t, err)

	assert.Equal(t, "Scam", result.Label)
	assert.Equal(t, []string{"Urgency", "Financial"}, result.Tags)
	assert.Equal(t, "Classic advance-fee fraud pattern.", result.Justification)
}

func TestParseClassification_NoTags(t *testing.T) {
	result, err := ParseClassification("Safe\nNothing suspicious here.")
	require.NoError(t, err)

	assert.Equal(t, "Safe", result.Label)
	assert.Empty(t, result.Tags)
	assert.Equal(t, "Nothing suspicious here.", result.Justification)
}

func TestParseClassification_ExtraLinesIgnored(t *testing.T) {
	raw := "Most Certainly Scam, Phishing attempt\nAsks for bank credentials.\nSome trailing chatter\nMore chatter"

	result, err := ParseClassification(raw)
	require.NoError(t, err)

	assert.Equal(t, "Most Certainly Scam", result.Label)
	assert.Equal(t, []string{"Phishing attempt"}, result.Tags)
	assert.Equal(t, "Asks for bank credentials.", result.Justification)
}

func TestParseClassification_TrimsFields(t *testing.T) {
	raw := "  Scam ,  Banking ,Investment fraud  \n   Money upfront for a promised return.  "

	result, err := ParseClassification(raw)
	require.NoError(t, err)

	assert.Equal(t, "Scam", result.Label)
	assert.Equal(t, []string{"Banking", "Investment fraud"}, result.Tags)
	assert.Equal(t, "Money upfront for a promised return.", result.Justification)
}

func TestParseClassification_CRLF(t *testing.T) {
	result, err := ParseClassification("Safe, Unknown\r\nLooks like a routine newsletter.")
	require.NoError(t, err)

	assert.Equal(t, "Safe", result.Label)
	assert.Equal(t, []string{"Unknown"}, result.Tags)
	assert.Equal(t, "Looks like a routine newsletter.", result.Justification)
}

func TestParseClassification_SingleLineFails(t *testing.T) {
	for _, raw := range []string{"Scam, Urgency", "Scam, Urgency\n", "", "just some text"} {
		_, err := ParseClassification(raw)
		assert.True(t, errors.Is(err, ErrBackendMalformed), "input %q should be malformed", raw)
	}
}

func TestParseClassification_Deterministic(t *testing.T) {
	raw := "Scam, Romance scam\nBuilds false intimacy before asking for money."

	first, err := ParseClassification(raw)
	require.NoError(t, err)

	// Re-rendering the canonical output and parsing again reproduces the
	// same result.
	rebuilt := first.Label + ", " + strings.Join(first.Tags, ", ") + "\n" + first.Justification
	second, err := ParseClassification(rebuilt)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCleanReply_StripsUserPrefix(t *testing.T) {
	assert.Equal(t, "hi there", CleanReply("User: hi there"))
}

func TestCleanReply_StripsScammerPrefix(t *testing.T) {
	assert.Equal(t, "send it now", CleanReply("Scammer: send it now"))
}

func TestCleanReply_OnlyLeadingPrefix(t *testing.T) {
	assert.Equal(t, "Hi User: there", CleanReply("  Hi User: there  "))
}

func TestCleanReply_StripsExactlyOne(t *testing.T) {
	assert.Equal(t, "Scammer: give me the details", CleanReply("User: Scammer: give me the details"))
}

func TestCleanReply_CaseSensitive(t *testing.T) {
	assert.Equal(t, "user: lowercase stays", CleanReply("user: lowercase stays"))
}

func TestCleanReply_PlainTextTrimmed(t *testing.T) {
	assert.Equal(t, "no prefix at all", CleanReply("  no prefix at all \n"))
}

func TestCleanReply_EmptyAfterStrip(t *testing.T) {
	assert.Equal(t, "", CleanReply("User:   "))
}

func TestBuildTranscript(t *testing.T) {
	messages := []Message{
		{Role: RoleScammer, Content: "Send me your bank info"},
		{Role: RoleUser, Content: "which bank?"},
	}

	assert.Equal(t, "Scammer: Send me your bank info\nUser: which bank?", BuildTranscript(messages))
}

func TestBuildTranscript_PreservesOrder(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "first"},
		{Role: RoleScammer, Content: "second"},
		{Role: RoleUser, Content: "third"},
	}

	transcript := BuildTranscript(messages)
	assert.Equal(t, "User: first\nScammer: second\nUser: third", transcript)
}
