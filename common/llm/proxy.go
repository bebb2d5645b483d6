package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"ficct.app/scrum/core/config"
)

// Proxy fans a request over an ordered provider chain and returns the
// first valid response. With fallback disabled only the first provider
// is tried.
type Proxy struct {
	providers []Provider
	fallback  bool

	mu    sync.Mutex
	usage map[string]*ProviderUsage
}

// ProviderUsage accumulates in-process counters per provider. Counters
// reset on restart and via ResetStats.
type ProviderUsage struct {
	Requests     int64
	Failures     int64
	InputTokens  int64
	OutputTokens int64
	CostUSD      float64
}

func NewProxy(providers []Provider, cfg config.ProxyConfig) *Proxy {
	return &Proxy{
		providers: providers,
		fallback:  cfg.FallbackEnabled,
		usage:     make(map[string]*ProviderUsage),
	}
}

// NewProxyFromConfig wires the standard chain: Llama 4 Maverick, then
// Llama 4 Scout, then the Azure deployment. Providers whose credentials
// are missing are left out of the chain.
func NewProxyFromConfig(ctx context.Context, cfg config.Config) (*Proxy, error) {
	var providers []Provider

	if cfg.Bedrock.Enabled() {
		bedrock, err := NewBedrockProviders(ctx, cfg.Bedrock)
		if err != nil {
			return nil, err
		}
		providers = append(providers, bedrock...)
	}
	if cfg.Azure.Enabled() {
		providers = append(providers, NewAzureProvider(cfg.Azure))
	}
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	return NewProxy(providers, cfg.Proxy), nil
}

// Generate tries each provider in order until one returns a valid
// response. Provider errors and invalid responses both advance the
// chain; the attempt history is carried on the returned response.
func (p *Proxy) Generate(ctx context.Context, req Request) (*Response, error) {
	if len(p.providers) == 0 {
		return nil, ErrNoProviders
	}

	providers := p.providers
	if !p.fallback {
		providers = providers[:1]
	}

	var attempts []Attempt
	for _, provider := range providers {
		start := time.Now()
		resp, err := provider.Generate(ctx, req)
		if err != nil {
			p.recordFailure(provider.Key())
			attempts = append(attempts, Attempt{
				Provider: provider.Key(),
				Model:    provider.Model(),
				Error:    err.Error(),
				Latency:  time.Since(start),
			})
			slog.WarnContext(ctx, "llm provider failed, trying next",
				"provider", provider.Key(), "error", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if reason, ok := validateResponse(resp.Content); !ok {
			p.recordFailure(provider.Key())
			attempts = append(attempts, Attempt{
				Provider: provider.Key(),
				Model:    provider.Model(),
				Error:    fmt.Sprintf("invalid response: %s", reason),
				Latency:  resp.Latency,
			})
			slog.WarnContext(ctx, "llm provider returned invalid response, trying next",
				"provider", provider.Key(), "reason", reason)
			continue
		}

		p.recordSuccess(provider.Key(), resp)
		resp.Attempts = append(attempts, Attempt{
			Provider: provider.Key(),
			Model:    provider.Model(),
			Latency:  resp.Latency,
		})
		return resp, nil
	}

	return nil, &ErrAllProvidersFailed{Attempts: attempts}
}

// validateResponse rejects degenerate generations: empty or near-empty
// output, and output that is mostly one repeated word.
func validateResponse(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "empty content", false
	}
	if len(trimmed) < 3 {
		return "content too short", false
	}

	words := strings.Fields(trimmed)
	if len(words) > 10 {
		counts := make(map[string]int, len(words))
		max := 0
		for _, w := range words {
			counts[w]++
			if counts[w] > max {
				max = counts[w]
			}
		}
		if float64(max) > float64(len(words))*0.5 {
			return "excessive word repetition", false
		}
	}

	return "", true
}

func (p *Proxy) recordSuccess(key string, resp *Response) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u := p.usageLocked(key)
	u.Requests++
	u.InputTokens += int64(resp.InputTokens)
	u.OutputTokens += int64(resp.OutputTokens)
	u.CostUSD += resp.CostUSD
}

func (p *Proxy) recordFailure(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u := p.usageLocked(key)
	u.Requests++
	u.Failures++
}

func (p *Proxy) usageLocked(key string) *ProviderUsage {
	u, ok := p.usage[key]
	if !ok {
		u = &ProviderUsage{}
		p.usage[key] = u
	}
	return u
}

// Stats returns a snapshot of per-provider usage counters.
func (p *Proxy) Stats() map[string]ProviderUsage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]ProviderUsage, len(p.usage))
	for k, v := range p.usage {
		out[k] = *v
	}
	return out
}

// ResetStats clears all usage counters.
func (p *Proxy) ResetStats() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usage = make(map[string]*ProviderUsage)
}
