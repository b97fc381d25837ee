package http_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/newsextract"
	nehttp "github.com/fwojciec/newsextract/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ newsextract.DomainLimiter = (*nehttp.DomainLimiter)(nil)

// waitTime returns how long a Wait on host took.
func waitTime(t *testing.T, l *nehttp.DomainLimiter, host string) time.Duration {
	t.Helper()
	start := time.Now()
	require.NoError(t, l.Wait(context.Background(), host))
	return time.Since(start)
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request to a site is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := nehttp.NewDomainLimiter(10)

		assert.Less(t, waitTime(t, limiter, "bianet.org"), 50*time.Millisecond)
	})

	t.Run("spaces out requests to the same site", func(t *testing.T) {
		t.Parallel()

		limiter := nehttp.NewDomainLimiter(10)
		waitTime(t, limiter, "bianet.org")

		assert.GreaterOrEqual(t, waitTime(t, limiter, "bianet.org"), 80*time.Millisecond)
	})

	t.Run("treats www and port variants as one site", func(t *testing.T) {
		t.Parallel()

		limiter := nehttp.NewDomainLimiter(10)
		waitTime(t, limiter, "www.T24.com.tr:443")

		assert.GreaterOrEqual(t, waitTime(t, limiter, "t24.com.tr"), 80*time.Millisecond)
	})

	t.Run("keeps sites independent", func(t *testing.T) {
		t.Parallel()

		limiter := nehttp.NewDomainLimiter(10)
		waitTime(t, limiter, "bianet.org")

		assert.Less(t, waitTime(t, limiter, "t24.com.tr"), 50*time.Millisecond)
	})

	t.Run("does not limit when rate is zero", func(t *testing.T) {
		t.Parallel()

		limiter := nehttp.NewDomainLimiter(0)
		waitTime(t, limiter, "bianet.org")

		assert.Less(t, waitTime(t, limiter, "bianet.org"), 50*time.Millisecond)
	})

	t.Run("returns error when context ends first", func(t *testing.T) {
		t.Parallel()

		limiter := nehttp.NewDomainLimiter(1)
		waitTime(t, limiter, "odatv.com")

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "odatv.com"))
	})

	t.Run("serves concurrent waiters", func(t *testing.T) {
		t.Parallel()

		limiter := nehttp.NewDomainLimiter(100)
		var wg sync.WaitGroup
		var completed atomic.Int32

		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Wait(context.Background(), "bianet.org") == nil {
					completed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(5), completed.Load())
	})
}
