// Package content implements menu content resolution as an ordered provider
// chain: try each provider in turn, fall through on error, with a terminal
// provider that is guaranteed to succeed (the embedded dataset).
package content

import (
	"context"

	"rosmarino/internal/domain/menu"
	"rosmarino/internal/shared/logger"
)

// Provider supplies menu content for a locale. Implementations other than the
// terminal static provider may fail; the chain absorbs those failures.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, locale string) (*menu.Menu, error)
}

// Chain resolves content through an ordered list of providers. The last
// provider must never fail; Resolve therefore never returns an error.
type Chain struct {
	providers []Provider
	logger    logger.Interface
}

func NewChain(log logger.Interface, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    log,
	}
}

// Resolve returns the first successful provider result. Provider failures are
// logged as informational and absorbed, never surfaced to the caller.
func (c *Chain) Resolve(ctx context.Context, locale string) *menu.Menu {
	for i, p := range c.providers {
		m, err := p.Fetch(ctx, locale)
		if err == nil {
			return m
		}
		c.logger.Infow("content provider failed, falling through",
			"provider", p.Name(),
			"locale", locale,
			"remaining", len(c.providers)-i-1,
			"error", err)
	}

	// Unreachable with a correctly configured chain; keep callers total anyway.
	c.logger.Errorw("all content providers failed", "locale", locale)
	return &menu.Menu{Locale: locale, Categories: []menu.Category{}, Items: []menu.Item{}}
}
