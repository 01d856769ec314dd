package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"brokerage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterStub struct{ n int64 }

func (c *counterStub) Inc() { atomic.AddInt64(&c.n, 1) }

func (c *counterStub) Count() int64 { return atomic.LoadInt64(&c.n) }

func noDelay() Config {
	return Config{MaxAttempts: 4}
}

func TestDo_RetriesStoreUnavailableThenSucceeds(t *testing.T) {
	ctr := &counterStub{}
	r := NewReader(noDelay(), nil, ctr)

	var calls int32
	got, err := Do(t.Context(), r, "get request", func(context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return "", errs.NewStoreUnavailableError("get request", errors.New("connection reset"))
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, int64(2), ctr.Count())
}

func TestDo_NoRetryOnBusinessError(t *testing.T) {
	ctr := &counterStub{}
	r := NewReader(noDelay(), nil, ctr)
	notFound := errs.NewObjectNotFoundError("request", "42")

	var calls int32
	_, err := Do(t.Context(), r, "get request", func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, notFound
	})

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Zero(t, ctr.Count())
}

func TestDo_StopsAfterMaxAttempts(t *testing.T) {
	r := NewReader(noDelay(), nil, nil)

	var calls int32
	_, err := Do(t.Context(), r, "list audit", func(context.Context) ([]int, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errs.NewStoreUnavailableError("list audit", errors.New("timeout"))
	})

	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestDo_StopsWhenContextCancelled(t *testing.T) {
	r := NewReader(Config{MaxAttempts: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}, nil, nil)
	ctx, cancel := context.WithCancel(t.Context())

	var calls int32
	_, err := Do(ctx, r, "get request", func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		cancel()
		return 0, errs.NewStoreUnavailableError("get request", errors.New("timeout"))
	})

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDo_NilReaderCallsOnce(t *testing.T) {
	got, err := Do(t.Context(), nil, "get", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, 10*time.Millisecond, backoff(10*time.Millisecond, time.Second, 1))
	assert.Equal(t, 40*time.Millisecond, backoff(10*time.Millisecond, time.Second, 3))
	assert.Equal(t, time.Second, backoff(10*time.Millisecond, time.Second, 20))
}
