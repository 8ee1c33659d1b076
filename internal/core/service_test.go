package core

import (
	"context"
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClassifier struct {
	reply string
	err   error
	calls int
	seen  string
}

func (s *stubClassifier) ClassifyText(_ context.Context, text string) (string, error) {
	s.calls++
	s.seen = text
	return s.reply, s.err
}

type stubResponder struct {
	reply string
	err   error
	seen  string
}

func (s *stubResponder) GenerateReply(_ context.Context, transcript string) (string, error) {
	s.seen = transcript
	return s.reply, s.err
}

type stubCache struct {
	entries map[string]*CacheEntry
	setErr  error
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*CacheEntry)}
}

func (s *stubCache) Get(_ context.Context, textHash string) (*CacheEntry, error) {
	entry, ok := s.entries[textHash]
	if !ok {
		return nil, errors.New("not found")
	}
	return entry, nil
}

func (s *stubCache) Set(_ context.Context, entry *CacheEntry) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.entries[entry.TextHash] = entry
	return nil
}

func (s *stubCache) Delete(_ context.Context, textHash string) error {
	delete(s.entries, textHash)
	return nil
}

func (s *stubCache) Cleanup(_ context.Context) error { return nil }

func newTestService(classifier ClassifierClient, responder ResponderClient, cache CacheRepository) *GatewayService {
	validator := NewValidator(50, 1000, 5000, 2000)
	return NewGatewayService(classifier, responder, cache, validator,
		zap.NewNop(), cache != nil, time.Hour, 30*time.Second)
}

func TestClassify(t *testing.T) {
	classifier := &stubClassifier{reply: "Scam, Urgency, Financial\nClassic advance-fee fraud pattern."}
	svc := newTestService(classifier, nil, nil)

	result, err := svc.Classify(context.Background(), "  You have won $1,000,000!  ")
	require.NoError(t, err)

	assert.Equal(t, "Scam", result.Label)
	assert.Equal(t, []string{"Urgency", "Financial"}, result.Tags)
	assert.Equal(t, "Classic advance-fee fraud pattern.", result.Justification)
	assert.Equal(t, "You have won $1,000,000!", classifier.seen, "backend receives the trimmed text")
}

func TestClassify_ValidationShortCircuits(t *testing.T) {
	classifier := &stubClassifier{reply: "Safe\nFine."}
	svc := newTestService(classifier, nil, nil)

	_, err := svc.Classify(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, classifier.calls)
}

func TestClassify_MalformedBackendReply(t *testing.T) {
	svc := newTestService(&stubClassifier{reply: "just one line"}, nil, nil)

	_, err := svc.Classify(context.Background(), "some email")
	assert.ErrorIs(t, err, ErrBackendMalformed)
}

func TestClassify_TimeoutTranslated(t *testing.T) {
	svc := newTestService(&stubClassifier{err: context.DeadlineExceeded}, nil, nil)

	_, err := svc.Classify(context.Background(), "some email")
	assert.ErrorIs(t, err, ErrBackendTimeout)
}

func TestClassify_UnknownErrorBecomesUnavailable(t *testing.T) {
	svc := newTestService(&stubClassifier{err: errors.New("connection refused")}, nil, nil)

	_, err := svc.Classify(context.Background(), "some email")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestClassify_SentinelsPassThrough(t *testing.T) {
	for _, sentinel := range []error{ErrBackendTimeout, ErrBackendUnavailable, ErrBackendMalformed} {
		svc := newTestService(&stubClassifier{err: sentinel}, nil, nil)
		_, err := svc.Classify(context.Background(), "some email")
		assert.ErrorIs(t, err, sentinel)
	}
}

func TestClassify_CacheHitSkipsBackend(t *testing.T) {
	classifier := &stubClassifier{reply: "Scam, Phishing attempt\nAsks for credentials."}
	cache := newStubCache()
	svc := newTestService(classifier, nil, cache)

	first, err := svc.Classify(context.Background(), "Verify your account now")
	require.NoError(t, err)
	require.Equal(t, 1, classifier.calls)

	second, err := svc.Classify(context.Background(), "Verify your account now")
	require.NoError(t, err)
	assert.Equal(t, 1, classifier.calls, "second call served from cache")
	assert.Equal(t, first, second)
}

func TestClassify_CacheKeyUsesTrimmedText(t *testing.T) {
	classifier := &stubClassifier{reply: "Safe\nRoutine message."}
	cache := newStubCache()
	svc := newTestService(classifier, nil, cache)

	_, err := svc.Classify(context.Background(), "hello there")
	require.NoError(t, err)

	_, err = svc.Classify(context.Background(), "   hello there \n")
	require.NoError(t, err)
	assert.Equal(t, 1, classifier.calls)
}

func TestClassify_CacheSetFailureIsNotFatal(t *testing.T) {
	cache := newStubCache()
	cache.setErr = errors.New("disk full")
	svc := newTestService(&stubClassifier{reply: "Safe\nFine."}, nil, cache)

	result, err := svc.Classify(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Safe", result.Label)
}

func TestGenerateReply(t *testing.T) {
	responder := &stubResponder{reply: "User: Oh wow, which bank should I use?"}
	svc := newTestService(nil, responder, nil)

	conv := &Conversation{Messages: []Message{
		{Role: RoleScammer, Content: "Send me your bank info"},
	}}

	result, err := svc.GenerateReply(context.Background(), conv)
	require.NoError(t, err)

	assert.Equal(t, "Oh wow, which bank should I use?", result.Reply)
	assert.Equal(t, "Scammer: Send me your bank info", responder.seen)
	assert.Equal(t, utf8.RuneCountInString("Scammer: Send me your bank info"), result.ConversationLength)
}

func TestGenerateReply_MultiTurnTranscript(t *testing.T) {
	responder := &stubResponder{reply: "sounds great, tell me more"}
	svc := newTestService(nil, responder, nil)

	conv := &Conversation{Messages: []Message{
		{Role: RoleScammer, Content: "I am a prince"},
		{Role: RoleUser, Content: "amazing!"},
		{Role: RoleScammer, Content: "I need your help"},
	}}

	_, err := svc.GenerateReply(context.Background(), conv)
	require.NoError(t, err)
	assert.Equal(t, "Scammer: I am a prince\nUser: amazing!\nScammer: I need your help", responder.seen)
}

func TestGenerateReply_EmptyAfterCleanup(t *testing.T) {
	svc := newTestService(nil, &stubResponder{reply: "User:   "}, nil)

	conv := &Conversation{Messages: []Message{{Role: RoleScammer, Content: "hello"}}}
	_, err := svc.GenerateReply(context.Background(), conv)
	assert.ErrorIs(t, err, ErrEmptyGeneration)
}

func TestGenerateReply_ValidationShortCircuits(t *testing.T) {
	responder := &stubResponder{reply: "fine"}
	svc := newTestService(nil, responder, nil)

	_, err := svc.GenerateReply(context.Background(), &Conversation{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, responder.seen)
}

func TestGenerateReply_TimeoutTranslated(t *testing.T) {
	svc := newTestService(nil, &stubResponder{err: context.DeadlineExceeded}, nil)

	conv := &Conversation{Messages: []Message{{Role: RoleScammer, Content: "hello"}}}
	_, err := svc.GenerateReply(context.Background(), conv)
	assert.ErrorIs(t, err, ErrBackendTimeout)
}

func TestTextKey(t *testing.T) {
	assert.Equal(t, TextKey("hello"), TextKey("hello"))
	assert.NotEqual(t, TextKey("hello"), TextKey("hello "))
	assert.Len(t, TextKey("hello"), 64)
}
