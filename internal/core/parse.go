package core

import (
	"fmt"
	"strings"
)

// ParseClassification turns the classification backend's free-text reply into
// a structured result. The contract is two lines: the first holds the label
// followed by comma-separated tags, the second holds the justification.
// Anything past the second line is ignored. Fewer than two lines is a
// malformed response.
func ParseClassification(raw string) (*ClassificationResult, error) {
	lines := splitLines(raw)
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: expected label and justification lines, got %d line(s)", ErrBackendMalformed, len(lines))
	}

	fields := strings.Split(lines[0], ",")
	label := strings.TrimSpace(fields[0])

	tags := make([]string, 0, len(fields)-1)
	for _, tag := range fields[1:] {
		tags = append(tags, strings.TrimSpace(tag))
	}

	return &ClassificationResult{
		Label:         label,
		Tags:          tags,
		Justification: strings.TrimSpace(lines[1]),
	}, nil
}

// CleanReply removes a single leading "User:" or "Scammer:" role echo that
// generation backends sometimes reproduce, then trims surrounding whitespace.
// The match is case-sensitive and only applies at the very start of the text.
func CleanReply(raw string) string {
	for _, prefix := range []string{"User:", "Scammer:"} {
		if strings.HasPrefix(raw, prefix) {
			return strings.TrimSpace(raw[len(prefix):])
		}
	}
	return strings.TrimSpace(raw)
}

// BuildTranscript flattens a conversation into the role-prefixed textual form
// fed to the reply-generation backend, one "<Role>: <content>" line per
// message in input order.
func BuildTranscript(messages []Message) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = fmt.Sprintf("%s: %s", msg.Role.Display(), msg.Content)
	}
	return strings.Join(lines, "\n")
}

// splitLines splits on line breaks, tolerating CRLF endings. A trailing line
// terminator does not produce an extra empty line, and an empty string yields
// no lines at all.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
