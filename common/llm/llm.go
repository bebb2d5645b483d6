// Package llm provides a provider-agnostic chat completion client with
// ordered fallback across AWS Bedrock and Azure OpenAI deployments.
package llm

import (
	"context"
	"errors"
	"time"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleDeveloper Role = "developer"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Request is a normalized chat completion request. Providers that do not
// support a knob (e.g. temperature on reasoning models) ignore it.
type Request struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
	TopP        float64
}

const (
	defaultTemperature = 0.7
	defaultTopP        = 0.9
)

// sampling returns the request's temperature and top_p with unset zero
// values replaced by the defaults. top_p 0 is degenerate greedy decoding
// and some backends reject it outright.
func sampling(req Request) (temperature, topP float64) {
	temperature = req.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	topP = req.TopP
	if topP == 0 {
		topP = defaultTopP
	}
	return temperature, topP
}

type Response struct {
	Content      string
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	Latency      time.Duration
	StopReason   string
	// Attempts records every provider tried before this response was
	// produced, including the successful one.
	Attempts []Attempt
}

type Attempt struct {
	Provider string
	Model    string
	Error    string
	Latency  time.Duration
}

// Provider is a single upstream chat completion backend.
type Provider interface {
	// Key identifies the provider in usage stats and attempt history,
	// e.g. "bedrock/llama4-maverick" or "azure/o4-mini".
	Key() string
	Model() string
	Generate(ctx context.Context, req Request) (*Response, error)
}

var ErrNoProviders = errors.New("llm: no providers configured")

// ErrAllProvidersFailed is returned by the proxy when every provider in
// the chain errored or produced an invalid response.
type ErrAllProvidersFailed struct {
	Attempts []Attempt
}

func (e *ErrAllProvidersFailed) Error() string {
	if len(e.Attempts) == 0 {
		return "llm: all providers failed"
	}
	last := e.Attempts[len(e.Attempts)-1]
	return "llm: all providers failed, last error from " + last.Provider + ": " + last.Error
}

// cost computes the USD cost for a request given per-million-token prices.
func cost(inputTokens, outputTokens int, inputPrice, outputPrice float64) float64 {
	return float64(inputTokens)/1_000_000*inputPrice + float64(outputTokens)/1_000_000*outputPrice
}
