package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"ficct.app/scrum/core/config"
)

const (
	modelLlama4Maverick = "us.meta.llama4-maverick-17b-instruct-v1:0"
	modelLlama4Scout    = "us.meta.llama4-scout-17b-instruct-v1:0"

	// Llama 4 models on Bedrock cap generation length at 8192 tokens.
	bedrockMaxGenLen = 8192
)

// specialToken matches Llama chat template control tokens that the model
// occasionally leaks into its output.
var specialToken = regexp.MustCompile(`<\|.*?\|>`)

type bedrockProvider struct {
	client      *bedrockruntime.Client
	key         string
	modelID     string
	inputPrice  float64 // USD per 1M input tokens
	outputPrice float64 // USD per 1M output tokens
}

// NewBedrockProviders returns the two Llama 4 providers in fallback order:
// Maverick first, Scout second.
func NewBedrockProviders(ctx context.Context, cfg config.BedrockConfig) ([]Provider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := bedrockruntime.NewFromConfig(awsCfg)

	return []Provider{
		&bedrockProvider{
			client:      client,
			key:         "bedrock/llama4-maverick",
			modelID:     modelLlama4Maverick,
			inputPrice:  0.24,
			outputPrice: 0.97,
		},
		&bedrockProvider{
			client:      client,
			key:         "bedrock/llama4-scout",
			modelID:     modelLlama4Scout,
			inputPrice:  0.06,
			outputPrice: 0.24,
		},
	}, nil
}

func (p *bedrockProvider) Key() string   { return p.key }
func (p *bedrockProvider) Model() string { return p.modelID }

type bedrockRequest struct {
	Prompt      string  `json:"prompt"`
	MaxGenLen   int     `json:"max_gen_len"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type bedrockResponse struct {
	Generation           string `json:"generation"`
	PromptTokenCount     int    `json:"prompt_token_count"`
	GenerationTokenCount int    `json:"generation_token_count"`
	StopReason           string `json:"stop_reason"`
}

func (p *bedrockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 || maxTokens > bedrockMaxGenLen {
		maxTokens = bedrockMaxGenLen
	}
	temperature, topP := sampling(req)

	body, err := json.Marshal(bedrockRequest{
		Prompt:      formatLlamaPrompt(req.Messages),
		MaxGenLen:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal bedrock request: %w", err)
	}

	start := time.Now()
	out, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", p.modelID, err)
	}

	var parsed bedrockResponse
	if err := json.Unmarshal(out.Body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal bedrock response: %w", err)
	}

	content := cleanGeneration(parsed.Generation)

	slog.DebugContext(ctx, "bedrock generation completed",
		"model", p.modelID,
		"duration_ms", latency.Milliseconds(),
		"prompt_tokens", parsed.PromptTokenCount,
		"generation_tokens", parsed.GenerationTokenCount,
		"stop_reason", parsed.StopReason)

	return &Response{
		Content:      content,
		Provider:     p.key,
		Model:        p.modelID,
		InputTokens:  parsed.PromptTokenCount,
		OutputTokens: parsed.GenerationTokenCount,
		CostUSD:      cost(parsed.PromptTokenCount, parsed.GenerationTokenCount, p.inputPrice, p.outputPrice),
		Latency:      latency,
		StopReason:   parsed.StopReason,
	}, nil
}

// formatLlamaPrompt renders messages into the Llama 4 chat template.
// The developer role is an OpenAI convention Llama does not know, so it
// is mapped to system.
func formatLlamaPrompt(messages []Message) string {
	var b strings.Builder
	b.WriteString("<|begin_of_text|>")
	for _, msg := range messages {
		role := msg.Role
		if role == RoleDeveloper {
			role = RoleSystem
		}
		b.WriteString("<|start_header_id|>")
		b.WriteString(string(role))
		b.WriteString("<|end_header_id|>\n\n")
		b.WriteString(msg.Content)
		b.WriteString("<|eot_id|>")
	}
	// Trailing assistant header cues the model to respond.
	b.WriteString("<|start_header_id|>assistant<|end_header_id|>\n\n")
	return b.String()
}

func cleanGeneration(s string) string {
	return strings.TrimSpace(specialToken.ReplaceAllString(s, ""))
}
