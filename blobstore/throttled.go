package blobstore

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// Throttled wraps a Store with a rate limit on operations. Each Open,
// Create, Delete and List waits for one token before hitting the underlying
// store; the wait respects context cancellation.
type Throttled struct {
	inner   Store
	limiter *rate.Limiter
}

// NewThrottled wraps inner with the given limiter.
func NewThrottled(inner Store, limiter *rate.Limiter) *Throttled {
	return &Throttled{inner: inner, limiter: limiter}
}

func (s *Throttled) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Open(ctx, name)
}

func (s *Throttled) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Create(ctx, name)
}

func (s *Throttled) Delete(ctx context.Context, name string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.inner.Delete(ctx, name)
}

func (s *Throttled) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.List(ctx, prefix)
}
