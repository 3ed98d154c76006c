package pipeline_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/wagateway/gateway/internal/domain/errors"
	"github.com/wagateway/gateway/internal/domain/models"
	"github.com/wagateway/gateway/internal/infrastructure/cache/memory"
	"github.com/wagateway/gateway/internal/services/pipeline"
	"github.com/wagateway/gateway/internal/services/replycache"
	"github.com/wagateway/gateway/internal/services/session"
	"github.com/wagateway/gateway/internal/testutils/mocks"
)

type fixture struct {
	pipeline   pipeline.Pipeline
	completion *mocks.MockCompletionClient
	cache      replycache.Service
	session    session.State
}

func newFixture(t *testing.T, withCache bool) *fixture {
	t.Helper()

	f := &fixture{
		completion: &mocks.MockCompletionClient{},
		session:    session.NewState(),
	}

	if withCache {
		backend := memory.NewCache(memory.Config{DefaultTTL: time.Minute})
		t.Cleanup(func() { backend.Close() })

		var err error
		f.cache, err = replycache.NewService(&replycache.Config{Cache: backend, TTL: time.Minute})
		require.NoError(t, err)
	}

	p, err := pipeline.NewService(&pipeline.Config{
		Completion: f.completion,
		Cache:      f.cache,
		Session:    f.session,
	})
	require.NoError(t, err)
	f.pipeline = p

	return f
}

func TestNewService_Validation(t *testing.T) {
	_, err := pipeline.NewService(nil)
	assert.ErrorContains(t, err, "config is required")

	_, err = pipeline.NewService(&pipeline.Config{Session: session.NewState()})
	assert.ErrorContains(t, err, "completion client is required")

	_, err = pipeline.NewService(&pipeline.Config{Completion: &mocks.MockCompletionClient{}})
	assert.ErrorContains(t, err, "session state is required")
}

func TestHandle_MissThenHit(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.completion.On("Complete", mock.Anything, models.CompletionRequest{
		Platform: models.PlatformWeb,
		Message:  "hello",
	}).Return(models.CompletionResult{Text: "Hi! How can I help?"}, nil).Once()

	first, err := f.pipeline.Handle(ctx, models.OriginWeb, "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi! How can I help?", first.Text)
	assert.False(t, first.Cached)

	second, err := f.pipeline.Handle(ctx, models.OriginWeb, "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi! How can I help?", second.Text)
	assert.True(t, second.Cached)

	f.completion.AssertNumberOfCalls(t, "Complete", 1)

	stats := f.cache.Stats(ctx)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestHandle_OriginsDoNotShareCache(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.completion.On("Complete", mock.Anything, mock.MatchedBy(func(r models.CompletionRequest) bool {
		return r.Platform == models.PlatformWeb
	})).Return(models.CompletionResult{Text: "web reply"}, nil).Once()
	f.completion.On("Complete", mock.Anything, mock.MatchedBy(func(r models.CompletionRequest) bool {
		return r.Platform == models.PlatformWhatsApp
	})).Return(models.CompletionResult{Text: "whatsapp reply"}, nil).Once()

	web, err := f.pipeline.Handle(ctx, models.OriginWeb, "", "hello")
	require.NoError(t, err)
	chat, err := f.pipeline.Handle(ctx, models.OriginChat, "628111@s.whatsapp.net", "hello")
	require.NoError(t, err)

	assert.Equal(t, "web reply", web.Text)
	assert.Equal(t, "whatsapp reply", chat.Text)
	f.completion.AssertExpectations(t)
}

func TestHandle_CachingDisabled(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	f.completion.On("Complete", mock.Anything, mock.Anything).
		Return(models.CompletionResult{Text: "fresh"}, nil)

	_, err := f.pipeline.Handle(ctx, models.OriginWeb, "", "hello")
	require.NoError(t, err)
	_, err = f.pipeline.Handle(ctx, models.OriginWeb, "", "hello")
	require.NoError(t, err)

	f.completion.AssertNumberOfCalls(t, "Complete", 2)
}

func TestHandle_RejectsEmptyMessage(t *testing.T) {
	f := newFixture(t, true)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := f.pipeline.Handle(context.Background(), models.OriginChat, "u", msg)
		assert.True(t, domainerrors.IsInvalidInput(err), "message %q", msg)
	}

	f.completion.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestHandle_RejectsOversizedWebMessage(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.pipeline.Handle(context.Background(), models.OriginWeb, "", strings.Repeat("a", 2001))

	assert.True(t, domainerrors.IsInvalidInput(err))
	f.completion.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestHandle_AcceptsMaxLengthWebMessage(t *testing.T) {
	f := newFixture(t, true)
	f.completion.On("Complete", mock.Anything, mock.Anything).
		Return(models.CompletionResult{Text: "ok"}, nil)

	// 2000 multi-byte characters are still 2000 characters
	_, err := f.pipeline.Handle(context.Background(), models.OriginWeb, "", strings.Repeat("é", 2000))

	assert.NoError(t, err)
}

func TestHandle_ChatOriginHasNoLengthLimit(t *testing.T) {
	f := newFixture(t, true)
	f.completion.On("Complete", mock.Anything, mock.Anything).
		Return(models.CompletionResult{Text: "ok"}, nil)

	_, err := f.pipeline.Handle(context.Background(), models.OriginChat, "u", strings.Repeat("a", 2001))

	assert.NoError(t, err)
}

func TestHandle_TimeoutReturnsSafeMessage(t *testing.T) {
	f := newFixture(t, true)
	timeoutErr := domainerrors.NewAITimeoutError("Sorry, that took too long.", context.DeadlineExceeded)
	f.completion.On("Complete", mock.Anything, mock.Anything).
		Return(models.CompletionResult{}, timeoutErr)

	reply, err := f.pipeline.Handle(context.Background(), models.OriginWeb, "", "slow question")

	require.Error(t, err)
	assert.True(t, domainerrors.IsAITimeout(err))
	assert.Equal(t, "Sorry, that took too long.", reply.Text)
	assert.NotContains(t, reply.Text, "deadline")
}

func TestHandle_FailureIsNotCached(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.completion.On("Complete", mock.Anything, mock.Anything).
		Return(models.CompletionResult{}, domainerrors.NewAIUnavailableError("down", assert.AnError)).Once()
	f.completion.On("Complete", mock.Anything, mock.Anything).
		Return(models.CompletionResult{Text: "back up"}, nil).Once()

	_, err := f.pipeline.Handle(ctx, models.OriginWeb, "", "q")
	require.Error(t, err)

	reply, err := f.pipeline.Handle(ctx, models.OriginWeb, "", "q")
	require.NoError(t, err)
	assert.Equal(t, "back up", reply.Text)
	assert.Zero(t, f.cache.Stats(ctx).Hits)
}

func TestHandle_UnclassifiedErrorUsesGenericMessage(t *testing.T) {
	f := newFixture(t, true)
	f.completion.On("Complete", mock.Anything, mock.Anything).
		Return(models.CompletionResult{}, assert.AnError)

	reply, err := f.pipeline.Handle(context.Background(), models.OriginChat, "u", "q")

	assert.True(t, domainerrors.IsAIUnavailable(err))
	assert.Equal(t, pipeline.DefaultErrorMessage, reply.Text)
}

func TestHandle_RecordsUser(t *testing.T) {
	f := newFixture(t, true)
	f.completion.On("Complete", mock.Anything, mock.Anything).
		Return(models.CompletionResult{Text: "ok"}, nil)

	_, _ = f.pipeline.Handle(context.Background(), models.OriginChat, "628111@s.whatsapp.net", "a")
	_, _ = f.pipeline.Handle(context.Background(), models.OriginChat, "628111@s.whatsapp.net", "b")
	_, _ = f.pipeline.Handle(context.Background(), models.OriginWeb, "", "c")

	assert.Equal(t, []string{"628111@s.whatsapp.net"}, f.session.ActiveUsers())
}
