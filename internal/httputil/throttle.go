// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// Throttle gates outbound requests through a token bucket so a burst of
// editor invocations stays under the remote API's per-IP limit. It issues
// each request exactly once and never retries.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle returns a Throttle allowing rps requests per second with the
// given burst. A non-positive rps disables throttling.
func NewThrottle(rps float64, burst int) *Throttle {
	if rps <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Do waits for a token and then executes req once. If ctx is cancelled
// while waiting, Do returns the context error without sending anything.
func (t *Throttle) Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return client.Do(req.WithContext(ctx))
}

// maxDrain bounds how much of an unread body DrainClose consumes. Larger
// remainders are abandoned with the connection.
const maxDrain = 64 << 10

// DrainClose discards up to maxDrain bytes of body and closes it so the
// underlying connection can be reused.
func DrainClose(body io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(body, maxDrain))
	body.Close()
}
