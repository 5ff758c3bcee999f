package generation

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/salscrudato/deckard/internal/models"
)

// RateLimited wraps p so calls respect an overall requests-per-second
// budget. A non-positive rps returns p unchanged.
func RateLimited(p Provider, rps float64) Provider {
	if rps <= 0 {
		return p
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &rateLimitedProvider{
		delegate: p,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

type rateLimitedProvider struct {
	delegate Provider
	limiter  *rate.Limiter
}

func (p *rateLimitedProvider) Name() string {
	return p.delegate.Name()
}

// GenerateSlide waits for rate limit clearance, then delegates.
func (p *rateLimitedProvider) GenerateSlide(ctx context.Context, req SlideRequest) (*models.SlideContent, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.delegate.GenerateSlide(ctx, req)
}
