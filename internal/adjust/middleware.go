package adjust

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Middleware wraps a Suggester with a cross-cutting concern.
type Middleware func(next Suggester) Suggester

// Chain applies middlewares so the first one is outermost.
func Chain(s Suggester, mws ...Middleware) Suggester {
	for i := len(mws) - 1; i >= 0; i-- {
		s = mws[i](s)
	}
	return s
}

// WithRetry retries Suggest up to maxAttempts with exponential backoff
// starting at baseDelay. Malformed output and canceled contexts are not retried.
func WithRetry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next Suggester) Suggester {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next Suggester
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }

func (r *retrying) Suggest(ctx context.Context, in Input) (Output, error) {
	var last error
	for i := 0; i < r.max; i++ {
		out, err := r.next.Suggest(ctx, in)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, ErrMalformedOutput) {
			return Output{}, err
		}
		last = err

		if i == r.max-1 {
			break
		}
		select {
		case <-ctx.Done():
			return Output{}, ctx.Err()
		case <-time.After(r.base * time.Duration(1<<i)):
		}
	}
	return Output{}, last
}

// WithCache memoizes suggestions for identical inputs in an LRU of the given size.
// Size <= 0 disables caching.
func WithCache(size int) Middleware {
	return func(next Suggester) Suggester {
		if size <= 0 {
			return next
		}
		cache, err := lru.New[Input, Output](size)
		if err != nil {
			return next
		}
		return &caching{next: next, cache: cache}
	}
}

type caching struct {
	next  Suggester
	cache *lru.Cache[Input, Output]
}

func (c *caching) Name() string { return c.next.Name() }

func (c *caching) Suggest(ctx context.Context, in Input) (Output, error) {
	if out, ok := c.cache.Get(in); ok {
		return out, nil
	}
	out, err := c.next.Suggest(ctx, in)
	if err != nil {
		return Output{}, err
	}
	if validate(out) == nil {
		c.cache.Add(in, out)
	}
	return out, nil
}

// WithFallback answers with secondary whenever the wrapped suggester fails
// or returns a malformed suggestion.
func WithFallback(secondary Suggester) Middleware {
	return func(next Suggester) Suggester {
		return &fallback{primary: next, secondary: secondary}
	}
}

type fallback struct {
	primary   Suggester
	secondary Suggester
}

func (f *fallback) Name() string { return f.primary.Name() + "+" + f.secondary.Name() }

func (f *fallback) Suggest(ctx context.Context, in Input) (Output, error) {
	out, err := f.primary.Suggest(ctx, in)
	if err == nil && validate(out) == nil {
		return out, nil
	}
	// The primary may have consumed the caller's deadline.
	return f.secondary.Suggest(context.WithoutCancel(ctx), in)
}
