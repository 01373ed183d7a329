package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	testlog "mogilev-express/internal/testutil"
)

func TestTelegramGateway_SendCode_OK(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewTelegramGateway(srv.URL, "bot-token", srv.Client())
	require.NotNil(t, g)

	err := g.SendCode(context.Background(), 424242, "1234")
	require.NoError(t, err)
	require.Equal(t, "/botbot-token/sendMessage", gotPath)
	require.Equal(t, int64(424242), gotBody.ChatID)
	require.Contains(t, gotBody.Text, "1234")
}

func TestTelegramGateway_SendCode_StatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewTelegramGateway(srv.URL, "tok", srv.Client())

	err := g.SendCode(context.Background(), 1, "1234")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusBadGateway, se.Code)
}

func TestNewTelegramGateway_NilWithoutToken(t *testing.T) {
	t.Parallel()

	require.Nil(t, NewTelegramGateway("https://api.telegram.org", "", nil))
}

type fakeNotifier struct {
	mu    sync.Mutex
	errs  []error
	calls int
}

func (f *fakeNotifier) SendCode(context.Context, int64, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= len(f.errs) {
		return f.errs[f.calls-1]
	}
	return nil
}

func TestRetryingGateway_RetriesTransient(t *testing.T) {
	t.Parallel()

	next := &fakeNotifier{errs: []error{
		&StatusError{Code: 503},
		&StatusError{Code: 429},
	}}

	retries := &countingCounter{}
	g := NewRetryingGateway(next, testlog.New().Logger(), retries, RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
	})
	var waits []time.Duration
	g.sleep = func(_ context.Context, d time.Duration) bool {
		waits = append(waits, d)
		return true
	}

	require.NoError(t, g.SendCode(context.Background(), 7, "1234"))
	require.Equal(t, 3, next.calls)
	require.Equal(t, 2, retries.n)
	// бэкофф: 1мс, потом упирается в потолок 2мс
	require.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, waits)
}

func TestRetryingGateway_StopsWhenSleepCanceled(t *testing.T) {
	t.Parallel()

	next := &fakeNotifier{errs: []error{
		&StatusError{Code: 503},
		&StatusError{Code: 503},
	}}

	g := NewRetryingGateway(next, testlog.New().Logger(), nil, RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   time.Millisecond,
		MaxDelay:    time.Millisecond,
	})
	g.sleep = func(context.Context, time.Duration) bool { return false }

	err := g.SendCode(context.Background(), 7, "1234")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 503, se.Code)
	require.Equal(t, 1, next.calls)
}

func TestRetryingGateway_PermanentErrorNoRetry(t *testing.T) {
	t.Parallel()

	next := &fakeNotifier{errs: []error{
		&StatusError{Code: 400},
		&StatusError{Code: 400},
	}}

	g := NewRetryingGateway(next, testlog.New().Logger(), nil, RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   time.Millisecond,
		MaxDelay:    time.Millisecond,
	})

	err := g.SendCode(context.Background(), 7, "1234")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 400, se.Code)
	require.Equal(t, 1, next.calls)
}

func TestRetryingGateway_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	next := &fakeNotifier{errs: []error{
		errors.New("dial timeout"),
		errors.New("dial timeout"),
		errors.New("dial timeout"),
	}}

	g := NewRetryingGateway(next, testlog.New().Logger(), nil, RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    time.Millisecond,
	})

	require.Error(t, g.SendCode(context.Background(), 7, "1234"))
	require.Equal(t, 3, next.calls)
}

func TestNewRetryingGateway_NilNext(t *testing.T) {
	t.Parallel()

	require.Nil(t, NewRetryingGateway(nil, testlog.New().Logger(), nil, RetryConfig{}))
}

func TestBackoff_Caps(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100*time.Millisecond, backoff(100*time.Millisecond, time.Second, 1))
	require.Equal(t, 400*time.Millisecond, backoff(100*time.Millisecond, time.Second, 3))
	require.Equal(t, time.Second, backoff(100*time.Millisecond, time.Second, 10))
}

type countingCounter struct{ n int }

func (c *countingCounter) Inc() { c.n++ }
