package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/shared"

	"ficct.app/scrum/core/config"
)

type azureProvider struct {
	client          openai.Client
	deployment      string
	reasoningEffort string
	inputPrice      float64
	outputPrice     float64
}

// NewAzureProvider creates the Azure OpenAI chat provider, the last link
// of the fallback chain.
func NewAzureProvider(cfg config.AzureConfig) Provider {
	client := openai.NewClient(
		azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
		azure.WithAPIKey(cfg.APIKey),
	)

	inputPrice, outputPrice := azurePricing(cfg.ChatDeployment)

	return &azureProvider{
		client:          client,
		deployment:      cfg.ChatDeployment,
		reasoningEffort: cfg.ReasoningEffort,
		inputPrice:      inputPrice,
		outputPrice:     outputPrice,
	}
}

func azurePricing(deployment string) (input, output float64) {
	switch {
	case strings.HasPrefix(deployment, "o4-mini"):
		return 6.0, 24.0
	case strings.HasPrefix(deployment, "gpt-4"):
		return 30.0, 60.0
	default:
		return 6.0, 24.0
	}
}

// isReasoningModel reports whether the deployment is an o-series model.
// Those reject temperature and top_p and take max_completion_tokens
// instead of max_tokens.
func isReasoningModel(deployment string) bool {
	return strings.HasPrefix(deployment, "o")
}

func (p *azureProvider) Key() string   { return "azure/" + p.deployment }
func (p *azureProvider) Model() string { return p.deployment }

func (p *azureProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.deployment),
		Messages: convertMessages(req.Messages),
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	if isReasoningModel(p.deployment) {
		params.MaxCompletionTokens = openai.Int(int64(maxTokens))
		params.ReasoningEffort = shared.ReasoningEffort(p.reasoningEffort)
	} else {
		temperature, topP := sampling(req)
		params.MaxTokens = openai.Int(int64(maxTokens))
		params.Temperature = openai.Float(temperature)
		params.TopP = openai.Float(topP)
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("azure chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("azure chat completion: no choices in response")
	}

	choice := resp.Choices[0]

	slog.DebugContext(ctx, "azure generation completed",
		"deployment", p.deployment,
		"duration_ms", latency.Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"finish_reason", choice.FinishReason)

	return &Response{
		Content:      strings.TrimSpace(choice.Message.Content),
		Provider:     p.Key(),
		Model:        p.deployment,
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		CostUSD:      cost(int(resp.Usage.PromptTokens), int(resp.Usage.CompletionTokens), p.inputPrice, p.outputPrice),
		Latency:      latency,
		StopReason:   string(choice.FinishReason),
	}, nil
}

func convertMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case RoleSystem, RoleDeveloper:
			result = append(result, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}
